// Package buzzer plays notes on the board's piezo buzzer through hardware
// PWM on a single GPIO line.
package buzzer

import (
	"fmt"
	"math"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-rainbowhat/lifecycle"
)

// Pin is the BCM pin number of the buzzer.
const Pin = 13

// duty keeps the piezo driven hard without a pure square wave.
var duty = gpio.DutyMax / 10 * 9

// Opts configures the buzzer.
type Opts struct {
	// Simulate elides all pin I/O. Note still blocks for the duration.
	Simulate bool
}

// Buzzer is a handle to the piezo.
type Buzzer struct {
	pin  int
	out  gpio.PinOut
	life *lifecycle.State
}

// New returns a buzzer, claiming its pin lazily on the first note.
func New(opts *Opts) *Buzzer {
	var sim bool
	if opts != nil {
		sim = opts.Simulate
	}
	return &Buzzer{pin: Pin, life: lifecycle.New(sim)}
}

// NewFromPin returns a buzzer on a pre-claimed output pin.
func NewFromPin(p gpio.PinOut, opts *Opts) *Buzzer {
	b := New(opts)
	b.out = p
	return b
}

// Note plays a single note, blocking for its duration and then silencing
// the buzzer. A non-positive frequency is a programming error and panics.
func (b *Buzzer) Note(freq float64, d time.Duration) error {
	if freq <= 0 {
		panic(fmt.Sprintf("buzzer: non-positive frequency %v", freq))
	}
	if err := b.setup(); err != nil {
		return err
	}
	err := b.life.Hardware(func() error {
		f := physic.Frequency(freq * float64(physic.Hertz))
		if err := b.out.PWM(duty, f); err != nil {
			return fmt.Errorf("buzzer: start pwm at %v: %w", f, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	time.Sleep(d)
	return b.life.Hardware(func() error {
		if err := b.out.Halt(); err != nil {
			return fmt.Errorf("buzzer: stop pwm: %w", err)
		}
		return nil
	})
}

// MIDINote plays a note by MIDI number; A above middle C is 69. Zero and
// negative numbers are a programming error and panic.
func (b *Buzzer) MIDINote(note int, d time.Duration) error {
	return b.Note(midiFrequency(note), d)
}

// Stop silences the buzzer immediately.
func (b *Buzzer) Stop() error {
	if err := b.setup(); err != nil {
		return err
	}
	return b.life.Hardware(func() error {
		if err := b.out.Halt(); err != nil {
			return fmt.Errorf("buzzer: stop pwm: %w", err)
		}
		return nil
	})
}

// midiFrequency converts a MIDI note number to hertz: note 69 is 440 Hz
// and each semitone is a factor of 2^(1/12).
func midiFrequency(note int) float64 {
	if note <= 0 {
		panic(fmt.Sprintf("buzzer: invalid midi note %d", note))
	}
	return math.Pow(2, (float64(note)-69)/12) * 440
}

func (b *Buzzer) setup() error {
	return b.life.Ensure(func() error {
		if b.out != nil {
			return nil
		}
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("buzzer: host init: %w", err)
		}
		name := fmt.Sprintf("GPIO%d", b.pin)
		p := gpioreg.ByName(name)
		if p == nil {
			return fmt.Errorf("buzzer: gpio %s not found", name)
		}
		b.out = p
		return nil
	})
}
