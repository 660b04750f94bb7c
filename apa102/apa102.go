// Package apa102 drives the board's chain of seven APA102 pixels.
//
// The chain hangs off plain GPIO lines rather than a dedicated SPI
// peripheral, so the driver clocks the frame out itself: chip select low,
// a 32-pulse start frame, four bytes per pixel (brightness control, blue,
// green, red, most significant bit first), a 36-pulse end frame, chip
// select high.
package apa102

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-rainbowhat/lifecycle"
)

// BCM pin numbers of the chain's lines.
const (
	DatPin = 10
	ClkPin = 11
	CsPin  = 8
)

// NumPixels is the fixed length of the chain.
const NumPixels = 7

// Start/end frame sizing. The end frame latches the shifted bits down the
// chain; 36 pulses covers the fixed 7-pixel chain. If NumPixels ever
// becomes configurable this must be derived as NumPixels/2+1 bytes of
// clocking instead of kept constant.
const (
	sofPulses = 32
	eofPulses = 36
)

// Pixel is one chain element: raw 8-bit color channels and a 5-bit
// brightness level. Level is always stored already quantized to 0-31.
type Pixel struct {
	R, G, B uint8
	Level   uint8
}

// Opts configures the driver.
type Opts struct {
	// DAT, CLK and CS are BCM numbers of the data, clock and chip-select
	// lines. Zero values fall back to the board wiring.
	DAT int
	CLK int
	CS  int
	// Settle is the pause between clock phases. The lines tolerate being
	// driven as fast as the host can toggle them, so the default is zero.
	Settle time.Duration
	// Simulate elides all pin I/O while keeping buffer updates intact.
	Simulate bool
}

// DefaultOpts matches the board wiring.
var DefaultOpts = Opts{DAT: DatPin, CLK: ClkPin, CS: CsPin}

// Dev is a handle to the pixel chain.
type Dev struct {
	opts   Opts
	life   *lifecycle.State
	dat    gpio.PinOut
	clk    gpio.PinOut
	cs     gpio.PinOut
	pixels [NumPixels]Pixel
}

// New returns a driver that claims its GPIO lines lazily on the first call
// to Show.
func New(opts *Opts) *Dev {
	o := fill(opts)
	return &Dev{opts: o, life: lifecycle.New(o.Simulate)}
}

// NewFromPins returns a driver on pre-claimed output pins. Setup still runs
// lazily but only drives the lines to their idle levels.
func NewFromPins(dat, clk, cs gpio.PinOut, opts *Opts) *Dev {
	d := New(opts)
	d.dat, d.clk, d.cs = dat, clk, cs
	return d
}

func fill(opts *Opts) Opts {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.DAT == 0 {
		o.DAT = DatPin
	}
	if o.CLK == 0 {
		o.CLK = ClkPin
	}
	if o.CS == 0 {
		o.CS = CsPin
	}
	return o
}

// SetPixel sets the color and brightness of a single pixel. brightness is
// 0.0 to 1.0 and is quantized to the 5-bit level round(31*brightness);
// values outside that range are a programming error and panic. Indexes
// outside the chain are ignored.
func (d *Dev) SetPixel(x int, r, g, b uint8, brightness float64) {
	level := quantize(brightness)
	if x < 0 || x >= NumPixels {
		return
	}
	d.pixels[x] = Pixel{R: r, G: g, B: b, Level: level}
}

// SetAll sets every pixel to the same color and brightness.
func (d *Dev) SetAll(r, g, b uint8, brightness float64) {
	for i := range d.pixels {
		d.SetPixel(i, r, g, b, brightness)
	}
}

// SetBrightness overwrites the brightness level of every pixel, leaving
// the color channels untouched.
func (d *Dev) SetBrightness(brightness float64) {
	level := quantize(brightness)
	for i := range d.pixels {
		d.pixels[i].Level = level
	}
}

// Clear zeroes the color channels of every pixel. Brightness levels are
// left as they are: clearing turns the chain black without dimming it.
func (d *Dev) Clear() {
	for i := range d.pixels {
		d.pixels[i].R = 0
		d.pixels[i].G = 0
		d.pixels[i].B = 0
	}
}

// Pixels returns a copy of the buffer.
func (d *Dev) Pixels() [NumPixels]Pixel { return d.pixels }

// Show clocks the buffer out to the chain. The first call claims the GPIO
// lines; acquisition failures surface here, wrapped.
func (d *Dev) Show() error {
	if err := d.setup(); err != nil {
		return err
	}
	return d.life.Hardware(func() error {
		d.write(d.cs, gpio.Low)
		d.pulse(sofPulses)
		for _, p := range d.pixels {
			d.writeByte(0b11100000 | p.Level)
			d.writeByte(p.B)
			d.writeByte(p.G)
			d.writeByte(p.R)
		}
		d.pulse(eofPulses)
		d.write(d.cs, gpio.High)
		return nil
	})
}

// Halt blanks the chain: it clears the buffer and shows it. Call before
// dropping the driver so the pixels do not stay lit.
func (d *Dev) Halt() error {
	d.Clear()
	return d.Show()
}

func (d *Dev) setup() error {
	return d.life.Ensure(func() error {
		if d.dat != nil {
			// Pre-claimed pins: just drive them to idle.
			return d.idle()
		}
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("apa102: host init: %w", err)
		}
		var err error
		if d.dat, err = claimOut(d.opts.DAT); err != nil {
			return err
		}
		if d.clk, err = claimOut(d.opts.CLK); err != nil {
			return err
		}
		if d.cs, err = claimOut(d.opts.CS); err != nil {
			return err
		}
		return d.idle()
	})
}

func (d *Dev) idle() error {
	if err := d.dat.Out(gpio.Low); err != nil {
		return fmt.Errorf("apa102: drive DAT idle: %w", err)
	}
	if err := d.clk.Out(gpio.Low); err != nil {
		return fmt.Errorf("apa102: drive CLK idle: %w", err)
	}
	if err := d.cs.Out(gpio.High); err != nil {
		return fmt.Errorf("apa102: drive CS idle: %w", err)
	}
	return nil
}

func claimOut(num int) (gpio.PinOut, error) {
	name := fmt.Sprintf("GPIO%d", num)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("apa102: gpio %s not found", name)
	}
	return p, nil
}

// writeByte shifts one byte out, most significant bit first. Each bit sets
// the data line, then pulses the clock high and low with a settle delay
// between phases.
func (d *Dev) writeByte(b byte) {
	for i := 7; i >= 0; i-- {
		if b&(1<<uint(i)) != 0 {
			d.write(d.dat, gpio.High)
		} else {
			d.write(d.dat, gpio.Low)
		}
		d.tick()
	}
}

// pulse holds the data line low and emits n clock pulses. Used for both
// the start and end of frame.
func (d *Dev) pulse(n int) {
	d.write(d.dat, gpio.Low)
	for i := 0; i < n; i++ {
		d.tick()
	}
}

func (d *Dev) tick() {
	d.write(d.clk, gpio.High)
	d.settle()
	d.write(d.clk, gpio.Low)
	d.settle()
}

func (d *Dev) write(p gpio.PinOut, l gpio.Level) {
	// Out on a claimed memory-mapped line cannot fail in practice and the
	// frame has no recovery point mid-shift; an error here would leave the
	// chain desynchronized until the next Show anyway.
	_ = p.Out(l)
}

func (d *Dev) settle() {
	if d.opts.Settle > 0 {
		time.Sleep(d.opts.Settle)
	}
}

func quantize(brightness float64) uint8 {
	if brightness < 0 || brightness > 1 {
		panic("apa102: brightness out of range [0, 1]")
	}
	return uint8(brightness*31 + 0.5)
}

// Image renders the buffer as a 1x7 image with each pixel's brightness
// level folded into its color channels, for mirroring the chain onto
// another display.
func (d *Dev) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, NumPixels, 1))
	for i, p := range d.pixels {
		scale := uint16(p.Level)
		img.SetNRGBA(i, 0, color.NRGBA{
			R: uint8(uint16(p.R) * scale / 31),
			G: uint8(uint16(p.G) * scale / 31),
			B: uint8(uint16(p.B) * scale / 31),
			A: 255,
		})
	}
	return img
}
