package touch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestPressedReadsActiveLow(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO21", Num: PinA, L: gpio.Low}
	b := NewFromPin(p, nil)

	pressed, err := b.Pressed()
	assert.NoError(t, err)
	assert.True(t, pressed)

	p.L = gpio.High
	pressed, err = b.Pressed()
	assert.NoError(t, err)
	assert.False(t, pressed)
}

func TestSimulationUsesInjectedState(t *testing.T) {
	b := New(PinB, &Opts{Simulate: true})

	pressed, err := b.Pressed()
	assert.NoError(t, err)
	assert.False(t, pressed)

	b.SetPressed(true)
	pressed, err = b.Pressed()
	assert.NoError(t, err)
	assert.True(t, pressed)
}

func TestNewButtonsWiring(t *testing.T) {
	bs := NewButtons(&Opts{Simulate: true})
	assert.Equal(t, PinA, bs.A.pin)
	assert.Equal(t, PinB, bs.B.pin)
	assert.Equal(t, PinC, bs.C.pin)
}
