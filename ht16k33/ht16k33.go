// Package ht16k33 drives the Holtek HT16K33 LED controller behind the
// board's alphanumeric display.
//
// The controller speaks a register/command protocol over I2C: single
// command bytes for oscillator, blink and brightness control, and a block
// write of command byte 0 followed by the 8-byte display RAM.
package ht16k33

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-rainbowhat/lifecycle"
)

// DefaultAddr is the controller's I2C slave address.
const DefaultAddr uint16 = 0x70

// Register command opcodes.
const (
	cmdSystemSetup byte = 0x20
	oscillatorOn   byte = 0x01
	cmdBlink       byte = 0x80
	blinkDisplayOn byte = 0x01
	cmdBrightness  byte = 0xE0
)

// Blink is one of the controller's four legal blink frequencies.
type Blink byte

const (
	BlinkOff    Blink = 0x00
	Blink2Hz    Blink = 0x02
	Blink1Hz    Blink = 0x04
	BlinkHalfHz Blink = 0x06
)

// positions is the number of 16-bit display words in the 8-byte RAM.
const positions = 4

// Opts configures the driver.
type Opts struct {
	// Bus names the I2C bus for i2creg; empty selects the first available.
	Bus string
	// Addr is the slave address; zero falls back to DefaultAddr.
	Addr uint16
	// Simulate elides all bus I/O while keeping buffer updates intact.
	Simulate bool
}

// DefaultOpts matches the board wiring.
var DefaultOpts = Opts{Addr: DefaultAddr}

// Dev is a handle to the controller.
type Dev struct {
	opts   Opts
	life   *lifecycle.State
	bus    i2c.Bus
	closer i2c.BusCloser // set only when the driver opened the bus itself
	buffer [2 * positions]byte
	blink  Blink
	level  uint8
}

// New returns a driver that opens its I2C bus lazily on the first
// operation that writes the controller.
func New(opts *Opts) *Dev {
	o := fill(opts)
	return &Dev{
		opts:  o,
		life:  lifecycle.New(o.Simulate),
		blink: BlinkOff,
		level: 15,
	}
}

// NewFromBus returns a driver on an injected bus. The lazy init command
// sequence still runs on first use.
func NewFromBus(bus i2c.Bus, opts *Opts) *Dev {
	d := New(opts)
	d.bus = bus
	return d
}

func fill(opts *Opts) Opts {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = DefaultAddr
	}
	return o
}

// setup opens the bus if needed, enables the oscillator and restores the
// last-configured blink and brightness registers. Runs once.
func (d *Dev) setup() error {
	return d.life.Ensure(func() error {
		if d.bus == nil {
			if _, err := host.Init(); err != nil {
				return fmt.Errorf("ht16k33: host init: %w", err)
			}
			bus, err := i2creg.Open(d.opts.Bus)
			if err != nil {
				return fmt.Errorf("ht16k33: open i2c bus: %w", err)
			}
			d.bus = bus
			d.closer = bus
		}
		if err := d.command(cmdSystemSetup | oscillatorOn); err != nil {
			return err
		}
		if err := d.command(cmdBlink | blinkDisplayOn | byte(d.blink)); err != nil {
			return err
		}
		return d.command(cmdBrightness | d.level)
	})
}

// SetBlink blinks the display at the given frequency. Anything other than
// the four Blink constants is a programming error and panics.
func (d *Dev) SetBlink(f Blink) error {
	switch f {
	case BlinkOff, Blink2Hz, Blink1Hz, BlinkHalfHz:
	default:
		panic(fmt.Sprintf("ht16k33: invalid blink frequency %#02x", byte(f)))
	}
	d.blink = f
	if err := d.setup(); err != nil {
		return err
	}
	return d.blockWrite(cmdBlink | blinkDisplayOn | byte(f))
}

// SetBrightness dims the whole display. level is 0 to 15; anything above
// is a programming error and panics.
func (d *Dev) SetBrightness(level uint8) error {
	if level > 15 {
		panic(fmt.Sprintf("ht16k33: brightness %d out of range [0, 15]", level))
	}
	d.level = level
	if err := d.setup(); err != nil {
		return err
	}
	return d.blockWrite(cmdBrightness | level)
}

// SetWord stores a 16-bit display word, low byte first, at the given
// position. Positions outside 0-3 are ignored.
func (d *Dev) SetWord(pos int, mask uint16) {
	if pos < 0 || pos >= positions {
		return
	}
	d.buffer[pos*2] = byte(mask)
	d.buffer[pos*2+1] = byte(mask >> 8)
}

// Word returns the 16-bit display word at the given position, or zero for
// positions outside 0-3.
func (d *Dev) Word(pos int) uint16 {
	if pos < 0 || pos >= positions {
		return 0
	}
	return uint16(d.buffer[pos*2]) | uint16(d.buffer[pos*2+1])<<8
}

// Clear zeroes the display buffer. The hardware keeps showing the old
// frame until WriteDisplay.
func (d *Dev) Clear() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
}

// WriteDisplay flushes the buffer to the controller's display RAM. The
// first call performs the lazy init sequence; acquisition failures surface
// here, wrapped.
func (d *Dev) WriteDisplay() error {
	if err := d.setup(); err != nil {
		return err
	}
	return d.blockWrite(0x00, d.buffer[:]...)
}

// Close releases the bus if the driver opened it itself. Injected buses
// stay open; they belong to the caller.
func (d *Dev) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}

func (d *Dev) command(c byte) error { return d.blockWrite(c) }

// blockWrite sends a command byte plus payload in one transaction, unless
// simulating. Bus errors are wrapped and propagated, never retried.
func (d *Dev) blockWrite(cmd byte, payload ...byte) error {
	return d.life.Hardware(func() error {
		w := make([]byte, 0, 1+len(payload))
		w = append(w, cmd)
		w = append(w, payload...)
		if err := d.bus.Tx(d.opts.Addr, w, nil); err != nil {
			return fmt.Errorf("ht16k33: write command %#02x: %w", cmd, err)
		}
		return nil
	})
}
