package ht16k33

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func record(t *testing.T, opts *Opts) (*Dev, *i2ctest.Record) {
	rec := &i2ctest.Record{}
	return NewFromBus(rec, opts), rec
}

// writes flattens the recorded transactions for easy comparison; every
// controller transaction is write-only.
func writes(rec *i2ctest.Record) [][]byte {
	var w [][]byte
	for _, op := range rec.Ops {
		w = append(w, op.W)
	}
	return w
}

func TestWriteDisplayRunsInitSequenceOnce(t *testing.T) {
	d, rec := record(t, nil)
	d.SetWord(0, 0xBEEF)

	assert.NoError(t, d.WriteDisplay())
	assert.NoError(t, d.WriteDisplay())

	assert.Equal(t, [][]byte{
		{0x21},             // system setup | oscillator on
		{0x81},             // blink cmd | display on | off
		{0xEF},             // brightness | default 15
		{0x00, 0xEF, 0xBE, 0, 0, 0, 0, 0, 0}, // buffer flush
		{0x00, 0xEF, 0xBE, 0, 0, 0, 0, 0, 0},
	}, writes(rec))
	for _, op := range rec.Ops {
		assert.Equal(t, DefaultAddr, op.Addr)
	}
}

func TestSetBlinkWritesCommand(t *testing.T) {
	d, rec := record(t, nil)

	assert.NoError(t, d.SetBlink(Blink2Hz))

	// Lazy setup first (oscillator, stored blink, brightness), then the
	// explicit blink write.
	assert.Equal(t, [][]byte{{0x21}, {0x83}, {0xEF}, {0x83}}, writes(rec))
}

func TestSetBrightnessWritesCommand(t *testing.T) {
	d, rec := record(t, nil)

	assert.NoError(t, d.SetBrightness(4))

	w := writes(rec)
	assert.Equal(t, []byte{0xE4}, w[len(w)-1])
}

func TestInvalidArgumentsPanic(t *testing.T) {
	d := New(&Opts{Simulate: true})
	assert.Panics(t, func() { _ = d.SetBrightness(16) })
	assert.Panics(t, func() { _ = d.SetBlink(Blink(0x01)) })
	assert.Panics(t, func() { _ = d.SetBlink(Blink(0x08)) })
}

func TestWordRoundTrip(t *testing.T) {
	d := New(&Opts{Simulate: true})

	for pos := 0; pos < 4; pos++ {
		d.SetWord(pos, 0xA5C3)
		assert.Equal(t, uint16(0xA5C3), d.Word(pos), "pos %d", pos)
	}
}

func TestSetWordIgnoresOutOfRangePositions(t *testing.T) {
	d := New(&Opts{Simulate: true})
	d.SetWord(0, 0x1111)

	d.SetWord(4, 0xFFFF)
	d.SetWord(-1, 0xFFFF)

	assert.Equal(t, uint16(0x1111), d.Word(0))
	for pos := 1; pos < 4; pos++ {
		assert.Zero(t, d.Word(pos))
	}
	assert.Zero(t, d.Word(4))
	assert.Zero(t, d.Word(-1))
}

func TestClearZeroesBuffer(t *testing.T) {
	d := New(&Opts{Simulate: true})
	for pos := 0; pos < 4; pos++ {
		d.SetWord(pos, 0xFFFF)
	}
	d.Clear()
	for pos := 0; pos < 4; pos++ {
		assert.Zero(t, d.Word(pos))
	}
}

func TestSimulationTouchesNoBus(t *testing.T) {
	// An injected recorder must stay untouched while simulating.
	d, rec := record(t, &Opts{Simulate: true})

	d.SetWord(2, 0x1234)
	assert.NoError(t, d.WriteDisplay())
	assert.NoError(t, d.SetBlink(Blink1Hz))
	assert.NoError(t, d.SetBrightness(3))

	assert.Empty(t, rec.Ops)
	assert.True(t, d.life.Done())
	assert.Equal(t, uint16(0x1234), d.Word(2))
	assert.Equal(t, Blink1Hz, d.blink)
	assert.Equal(t, uint8(3), d.level)
}

func TestCloseOnlyReleasesOwnedBus(t *testing.T) {
	d, _ := record(t, nil)
	// Injected bus: nothing to release.
	assert.NoError(t, d.Close())
	assert.Nil(t, d.closer)
}
