// Package preview mirrors the pixel-chain buffer onto a secondary sink:
// an APA102 strip on the hardware SPI port when one exists (the chain's
// data and clock lines double as SPI0 on the board), otherwise an ANSI
// rendition on the console. Diagnostics plumbing only; the protocol
// drivers themselves never log.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/apa102"
	"periph.io/x/host/v3"
)

// Renderer pushes frames to whichever sink New found.
type Renderer struct {
	drawer display.Drawer
	hw     bool
}

// New probes for a hardware SPI port and falls back to the console.
func New(numPixels int) *Renderer {
	r := &Renderer{}
	if _, err := host.Init(); err != nil {
		log.Warn().Err(err).Msg("preview: host init failed, rendering to the console")
		r.drawer = newConsole(numPixels, os.Stdout)
		return r
	}
	port, err := spireg.Open("")
	if err != nil {
		log.Info().Err(err).Msg("preview: no SPI port, rendering to the console")
		r.drawer = newConsole(numPixels, os.Stdout)
		return r
	}
	opts := apa102.DefaultOpts
	opts.NumPixels = numPixels
	dev, err := apa102.New(port, &opts)
	if err != nil {
		log.Warn().Err(err).Msg("preview: apa102 over SPI failed, rendering to the console")
		_ = port.Close()
		r.drawer = newConsole(numPixels, os.Stdout)
		return r
	}
	_ = dev.Halt()
	r.drawer = dev
	r.hw = true
	return r
}

// Hardware reports whether frames go to a real strip.
func (r *Renderer) Hardware() bool { return r.hw }

// Render pushes one frame, typically the image returned by the chain
// driver's Image method.
func (r *Renderer) Render(img image.Image) error {
	return r.drawer.Draw(r.drawer.Bounds(), img, image.Point{})
}

// Halt blanks the sink.
func (r *Renderer) Halt() error {
	return r.drawer.Halt()
}

// console is a minimal display.Drawer painting one row of truecolor cells.
type console struct {
	n int
	w io.Writer
}

func newConsole(n int, w io.Writer) *console {
	return &console{n: n, w: w}
}

func (c *console) String() string { return fmt.Sprintf("console(%dpx)", c.n) }

func (c *console) Halt() error {
	return c.Draw(c.Bounds(), image.NewNRGBA(c.Bounds()), image.Point{})
}

func (c *console) ColorModel() color.Model { return color.NRGBAModel }

func (c *console) Bounds() image.Rectangle { return image.Rect(0, 0, c.n, 1) }

func (c *console) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	var b strings.Builder
	for x := r.Min.X; x < r.Max.X; x++ {
		px := color.NRGBAModel.Convert(src.At(sp.X+x-r.Min.X, sp.Y)).(color.NRGBA)
		fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm  ", px.R, px.G, px.B)
	}
	b.WriteString("\x1b[0m\n")
	_, err := io.WriteString(c.w, b.String())
	return err
}
