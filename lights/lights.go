// Package lights drives the board's three status LEDs, one GPIO line each.
package lights

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-rainbowhat/lifecycle"
)

// BCM pin numbers of the status lights.
const (
	RedPin   = 6
	GreenPin = 19
	BluePin  = 26
)

// Opts configures a light.
type Opts struct {
	// Simulate elides all pin I/O while keeping the state bookkeeping.
	Simulate bool
}

// Light is a single on/off LED.
type Light struct {
	pin   int
	out   gpio.PinOut
	state bool
	life  *lifecycle.State
}

// New returns a light on the given BCM pin, claimed lazily on first write.
func New(pin int, opts *Opts) *Light {
	var sim bool
	if opts != nil {
		sim = opts.Simulate
	}
	return &Light{pin: pin, life: lifecycle.New(sim)}
}

// NewFromPin returns a light on a pre-claimed output pin.
func NewFromPin(p gpio.PinOut, opts *Opts) *Light {
	l := New(0, opts)
	l.out = p
	return l
}

// On turns the light on.
func (l *Light) On() error { return l.Write(true) }

// Off turns the light off.
func (l *Light) Off() error { return l.Write(false) }

// Toggle flips the light.
func (l *Light) Toggle() error { return l.Write(!l.state) }

// Write sets the light. The first call claims the pin; acquisition
// failures surface here, wrapped.
func (l *Light) Write(state bool) error {
	l.state = state
	if err := l.setup(); err != nil {
		return err
	}
	return l.life.Hardware(func() error {
		lvl := gpio.Low
		if state {
			lvl = gpio.High
		}
		if err := l.out.Out(lvl); err != nil {
			return fmt.Errorf("lights: write GPIO%d: %w", l.pin, err)
		}
		return nil
	})
}

// State reports the last written state.
func (l *Light) State() bool { return l.state }

func (l *Light) setup() error {
	return l.life.Ensure(func() error {
		if l.out != nil {
			return nil
		}
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("lights: host init: %w", err)
		}
		name := fmt.Sprintf("GPIO%d", l.pin)
		p := gpioreg.ByName(name)
		if p == nil {
			return fmt.Errorf("lights: gpio %s not found", name)
		}
		l.out = p
		return nil
	})
}

// Set groups the board's three lights.
type Set struct {
	Red   *Light
	Green *Light
	Blue  *Light
}

// NewSet returns the three lights on their board wiring.
func NewSet(opts *Opts) *Set {
	return &Set{
		Red:   New(RedPin, opts),
		Green: New(GreenPin, opts),
		Blue:  New(BluePin, opts),
	}
}

// All sets every light to the same state.
func (s *Set) All(state bool) error {
	for _, l := range []*Light{s.Red, s.Green, s.Blue} {
		if err := l.Write(state); err != nil {
			return err
		}
	}
	return nil
}

// RGB sets each light individually.
func (s *Set) RGB(r, g, b bool) error {
	if err := s.Red.Write(r); err != nil {
		return err
	}
	if err := s.Green.Write(g); err != nil {
		return err
	}
	return s.Blue.Write(b)
}
