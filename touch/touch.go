// Package touch reads the board's three capacitive buttons. A pressed
// button pulls its GPIO line low.
package touch

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-rainbowhat/lifecycle"
)

// BCM pin numbers of the touch buttons.
const (
	PinA = 21
	PinB = 20
	PinC = 16
)

// Opts configures a button.
type Opts struct {
	// Simulate elides all pin I/O; Pressed then reports the state set
	// through SetPressed.
	Simulate bool
}

// Button is a single capacitive button.
type Button struct {
	pin   int
	in    gpio.PinIn
	state bool
	life  *lifecycle.State
}

// New returns a button on the given BCM pin, claimed lazily on first read.
func New(pin int, opts *Opts) *Button {
	var sim bool
	if opts != nil {
		sim = opts.Simulate
	}
	return &Button{pin: pin, life: lifecycle.New(sim)}
}

// NewFromPin returns a button on a pre-claimed input pin.
func NewFromPin(p gpio.PinIn, opts *Opts) *Button {
	b := New(0, opts)
	b.in = p
	return b
}

// Pressed reads the button. The first call claims the pin; acquisition
// failures surface here, wrapped.
func (b *Button) Pressed() (bool, error) {
	if err := b.setup(); err != nil {
		return false, err
	}
	err := b.life.Hardware(func() error {
		b.state = b.in.Read() == gpio.Low
		return nil
	})
	return b.state, err
}

// SetPressed overrides the state in simulation mode, for exercising
// calling code without hardware.
func (b *Button) SetPressed(state bool) { b.state = state }

func (b *Button) setup() error {
	return b.life.Ensure(func() error {
		if b.in != nil {
			return nil
		}
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("touch: host init: %w", err)
		}
		name := fmt.Sprintf("GPIO%d", b.pin)
		p := gpioreg.ByName(name)
		if p == nil {
			return fmt.Errorf("touch: gpio %s not found", name)
		}
		if err := p.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return fmt.Errorf("touch: configure %s as input: %w", name, err)
		}
		b.in = p
		return nil
	})
}

// Buttons groups the board's three touch buttons.
type Buttons struct {
	A *Button
	B *Button
	C *Button
}

// NewButtons returns the three buttons on their board wiring.
func NewButtons(opts *Opts) *Buttons {
	return &Buttons{
		A: New(PinA, opts),
		B: New(PinB, opts),
		C: New(PinC, opts),
	}
}
