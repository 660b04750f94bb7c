package alphanum4

// glyphs maps printable ASCII (32-126) to 14-segment bitmasks, indexed by
// char-32. Built once at compile time; never mutated.
var glyphs = [95]uint16{
	' ' - 32:  0b0000000000000000,
	'!' - 32:  0b0000000000000110,
	'"' - 32:  0b0000001000100000,
	'#' - 32:  0b0001001011001110,
	'$' - 32:  0b0001001011101101,
	'%' - 32:  0b0000110000100100,
	'&' - 32:  0b0010001101011101,
	'\'' - 32: 0b0000010000000000,
	'(' - 32:  0b0010010000000000,
	')' - 32:  0b0000100100000000,
	'*' - 32:  0b0011111111000000,
	'+' - 32:  0b0001001011000000,
	',' - 32:  0b0000100000000000,
	'-' - 32:  0b0000000011000000,
	'.' - 32:  0b0000000000000000,
	'/' - 32:  0b0000110000000000,
	'0' - 32:  0b0000110000111111,
	'1' - 32:  0b0000000000000110,
	'2' - 32:  0b0000000011011011,
	'3' - 32:  0b0000000010001111,
	'4' - 32:  0b0000000011100110,
	'5' - 32:  0b0010000001101001,
	'6' - 32:  0b0000000011111101,
	'7' - 32:  0b0000000000000111,
	'8' - 32:  0b0000000011111111,
	'9' - 32:  0b0000000011101111,
	':' - 32:  0b0001001000000000,
	';' - 32:  0b0000101000000000,
	'<' - 32:  0b0010010000000000,
	'=' - 32:  0b0000000011001000,
	'>' - 32:  0b0000100100000000,
	'?' - 32:  0b0001000010000011,
	'@' - 32:  0b0000001010111011,
	'A' - 32:  0b0000000011110111,
	'B' - 32:  0b0001001010001111,
	'C' - 32:  0b0000000000111001,
	'D' - 32:  0b0001001000001111,
	'E' - 32:  0b0000000011111001,
	'F' - 32:  0b0000000001110001,
	'G' - 32:  0b0000000010111101,
	'H' - 32:  0b0000000011110110,
	'I' - 32:  0b0001001000000000,
	'J' - 32:  0b0000000000011110,
	'K' - 32:  0b0010010001110000,
	'L' - 32:  0b0000000000111000,
	'M' - 32:  0b0000010100110110,
	'N' - 32:  0b0010000100110110,
	'O' - 32:  0b0000000000111111,
	'P' - 32:  0b0000000011110011,
	'Q' - 32:  0b0010000000111111,
	'R' - 32:  0b0010000011110011,
	'S' - 32:  0b0000000011101101,
	'T' - 32:  0b0001001000000001,
	'U' - 32:  0b0000000000111110,
	'V' - 32:  0b0000110000110000,
	'W' - 32:  0b0010100000110110,
	'X' - 32:  0b0010110100000000,
	'Y' - 32:  0b0001010100000000,
	'Z' - 32:  0b0000110000001001,
	'[' - 32:  0b0000000000111001,
	'\\' - 32: 0b0010000100000000,
	']' - 32:  0b0000000000001111,
	'^' - 32:  0b0000110000000011,
	'_' - 32:  0b0000000000001000,
	'`' - 32:  0b0000000100000000,
	'a' - 32:  0b0001000001011000,
	'b' - 32:  0b0010000001111000,
	'c' - 32:  0b0000000011011000,
	'd' - 32:  0b0000100010001110,
	'e' - 32:  0b0000100001011000,
	'f' - 32:  0b0000000001110001,
	'g' - 32:  0b0000010010001110,
	'h' - 32:  0b0001000001110000,
	'i' - 32:  0b0001000000000000,
	'j' - 32:  0b0000000000001110,
	'k' - 32:  0b0011011000000000,
	'l' - 32:  0b0000000000110000,
	'm' - 32:  0b0001000011010100,
	'n' - 32:  0b0001000001010000,
	'o' - 32:  0b0000000011011100,
	'p' - 32:  0b0000000101110000,
	'q' - 32:  0b0000010010000110,
	'r' - 32:  0b0000000001010000,
	's' - 32:  0b0010000010001000,
	't' - 32:  0b0000000001111000,
	'u' - 32:  0b0000000000011100,
	'v' - 32:  0b0010000000000100,
	'w' - 32:  0b0010100000010100,
	'x' - 32:  0b0010100011000000,
	'y' - 32:  0b0010000000001100,
	'z' - 32:  0b0000100001001000,
	'{' - 32:  0b0000100101001001,
	'|' - 32:  0b0001001000000000,
	'}' - 32:  0b0010010010001001,
	'~' - 32:  0b0000010100100000,
}

// Glyph returns the 14-segment bitmask for a printable ASCII character.
// ok is false outside the 32-126 range.
func Glyph(c rune) (mask uint16, ok bool) {
	if c < ' ' || c > '~' {
		return 0, false
	}
	return glyphs[c-' '], true
}
