// Package alphanum4 renders text on the board's 4-digit 14-segment
// display. It encodes characters into segment bitmasks and leaves the
// register protocol to the embedded ht16k33 controller driver.
package alphanum4

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-rainbowhat/ht16k33"
)

// ErrUnsupportedChar is returned when a character has no glyph. Only
// printable ASCII (32-126) can be displayed.
var ErrUnsupportedChar = errors.New("alphanum4: unsupported character")

// digits is the number of display positions.
const digits = 4

// decimalBit is the decimal-point segment within a position's 16-bit word.
const decimalBit = uint16(1) << 14

// Dev is a handle to the display. The embedded controller driver exposes
// SetBlink, SetBrightness, WriteDisplay, Clear and Close directly.
type Dev struct {
	*ht16k33.Dev
}

// New wraps an HT16K33 controller driver.
func New(ctl *ht16k33.Dev) *Dev {
	return &Dev{Dev: ctl}
}

// Open is a convenience for New(ht16k33.New(opts)).
func Open(opts *ht16k33.Opts) *Dev {
	return New(ht16k33.New(opts))
}

// SetDigitRaw writes a precomputed segment bitmask at pos (0 is the
// leftmost digit). Positions outside the display are ignored.
func (d *Dev) SetDigitRaw(pos int, bitmask uint16) {
	d.SetWord(pos, bitmask)
}

// SetDecimal turns the decimal point at pos on or off without disturbing
// the glyph already there. Positions outside the display are ignored.
func (d *Dev) SetDecimal(pos int, decimal bool) {
	if pos < 0 || pos >= digits {
		return
	}
	w := d.Word(pos)
	if decimal {
		w |= decimalBit
	} else {
		w &^= decimalBit
	}
	d.SetWord(pos, w)
}

// SetDigit places a character at pos, optionally with its decimal point.
// Characters without a glyph fail with ErrUnsupportedChar.
func (d *Dev) SetDigit(pos int, c rune, decimal bool) error {
	mask, ok := Glyph(c)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedChar, c)
	}
	d.SetDigitRaw(pos, mask)
	d.SetDecimal(pos, decimal)
	return nil
}

// PrintString places up to four characters on the display, starting at the
// leftmost digit, or offset so the last character lands on the rightmost
// digit when justifyRight is set. Characters falling outside the display
// are dropped; short strings are not padded. Only the buffer changes;
// call WriteDisplay to flush.
func (d *Dev) PrintString(value string, justifyRight bool) error {
	chars := []rune(value)
	pos := 0
	if justifyRight {
		pos = digits - len(chars)
	}
	for _, c := range chars {
		if err := d.SetDigit(pos, c, false); err != nil {
			return err
		}
		pos++
	}
	return nil
}
