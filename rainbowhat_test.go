package rainbowhat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWiresEveryPeripheral(t *testing.T) {
	h := New(&Opts{Simulate: true})

	require.NotNil(t, h.Lights)
	require.NotNil(t, h.Buttons)
	require.NotNil(t, h.Buzzer)
	require.NotNil(t, h.Strip)
	require.NotNil(t, h.Display)
}

func TestSimulatedSessionEndToEnd(t *testing.T) {
	h := New(&Opts{Simulate: true})

	assert.NoError(t, h.Lights.RGB(true, false, true))
	assert.True(t, h.Lights.Red.State())
	assert.False(t, h.Lights.Green.State())

	h.Strip.SetAll(0x20, 0x40, 0x80, 0.5)
	assert.NoError(t, h.Strip.Show())

	require.NoError(t, h.Display.PrintString("OK", false))
	assert.NoError(t, h.Display.WriteDisplay())

	pressed, err := h.Buttons.A.Pressed()
	assert.NoError(t, err)
	assert.False(t, pressed)

	assert.NoError(t, h.Beep())
	assert.NoError(t, h.Halt())
	assert.False(t, h.Lights.Red.State())
}

func TestNilOptsDefaultsToHardware(t *testing.T) {
	h := New(nil)
	require.NotNil(t, h.Strip)
}
