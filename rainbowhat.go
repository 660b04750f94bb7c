// Package rainbowhat assembles the drivers for every peripheral on the
// Rainbow HAT: the three single-color lights, the capacitive touch
// buttons, the piezo buzzer, the seven-pixel APA102 chain and the
// four-digit alphanumeric display.
//
// Each driver can also be used on its own; this package only wires them
// together with their board-default pins and bus addresses.
package rainbowhat

import (
	"time"

	"github.com/coreman2200/funtimes-rainbowhat/alphanum4"
	"github.com/coreman2200/funtimes-rainbowhat/apa102"
	"github.com/coreman2200/funtimes-rainbowhat/buzzer"
	"github.com/coreman2200/funtimes-rainbowhat/ht16k33"
	"github.com/coreman2200/funtimes-rainbowhat/lights"
	"github.com/coreman2200/funtimes-rainbowhat/touch"
)

// Opts configures the whole board.
type Opts struct {
	// Simulate keeps every driver away from the physical pins and buses
	// while preserving their buffered state.
	Simulate bool
}

// DefaultOpts drives the real hardware.
var DefaultOpts = Opts{}

// HAT bundles one driver per peripheral, all on their factory pinout.
type HAT struct {
	Lights  *lights.Set
	Buttons *touch.Buttons
	Buzzer  *buzzer.Buzzer
	Strip   *apa102.Dev
	Display *alphanum4.Dev
}

// New assembles the board. No hardware is touched until a peripheral is
// first used.
func New(opts *Opts) *HAT {
	if opts == nil {
		opts = &DefaultOpts
	}
	strip := apa102.DefaultOpts
	strip.Simulate = opts.Simulate
	display := ht16k33.DefaultOpts
	display.Simulate = opts.Simulate
	return &HAT{
		Lights:  lights.NewSet(&lights.Opts{Simulate: opts.Simulate}),
		Buttons: touch.NewButtons(&touch.Opts{Simulate: opts.Simulate}),
		Buzzer:  buzzer.New(&buzzer.Opts{Simulate: opts.Simulate}),
		Strip:   apa102.New(&strip),
		Display: alphanum4.Open(&display),
	}
}

// Halt silences and blanks every peripheral, then releases the display
// bus. The first failure is reported; shutdown still runs to the end.
func (h *HAT) Halt() error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	keep(h.Buzzer.Stop())
	keep(h.Strip.Halt())
	h.Display.Clear()
	keep(h.Display.WriteDisplay())
	keep(h.Display.Close())
	keep(h.Lights.All(false))
	return first
}

// Beep plays a short confirmation tone.
func (h *HAT) Beep() error {
	return h.Buzzer.MIDINote(69, 100*time.Millisecond)
}
