package brailleart

// Pattern represents an 8 dot braille cell as a bit mask. Bit indexes run in
// x,y coordinate space, top-bottom down the left column and then the right:
//   +------+
//   |(0)(4)|
//   |(1)(5)|
//   |(2)(6)|
//   |(3)(7)|
//   +------+
// The unicode braille block orders dots differently, so a pattern is permuted
// by StandardIndex before it is offset against U+2800.
type Pattern uint8

// Rune returns the unicode braille character for the pattern.
func (p Pattern) Rune() rune {
	return glyphs[p]
}

// String returns the pattern's character as a string. One of:
//  ⠀⠁⠂⠃⠄⠅⠆⠇⠈⠉⠊ ... ⣵⣶⣷⣸⣹⣺⣻⣼⣽⣾⣿
func (p Pattern) String() string {
	return string(p.Rune())
}

// DotBit returns the single-dot mask for dot i in the order above.
// i must be in [0, 7].
func DotBit(i int) Pattern {
	return Pattern(1) << uint(i)
}

// StandardIndex permutes a mask from the order above into the dot numbering
// the unicode braille block is arranged in:
//   +------+
//   |(0)(3)|
//   |(1)(4)|
//   |(2)(5)|
//   |(6)(7)|
//   +------+
// Dots 0-2 and 7 keep their bits, dots 4-6 shift down by one, and dot 3 lands
// on bit 6.
// See https://en.wikipedia.org/wiki/Braille_Patterns#Identifying,_naming_and_ordering
func StandardIndex(internal uint8) uint8 {
	return internal&0x87 | (internal&0x70)>>1 | (internal&0x08)<<3
}

// InternalIndex reverses StandardIndex.
func InternalIndex(standard uint8) uint8 {
	return standard&0x87 | (standard&0x38)<<1 | (standard&0x40)>>3
}

// glyphs holds the character for every possible pattern, computed once so
// that rendering is a table lookup.
var glyphs = func() [256]rune {
	var t [256]rune
	for i := range t {
		t[i] = '⠀' + rune(StandardIndex(uint8(i)))
	}
	return t
}()

// Cell is a braille cell as individual dot flags in x,y coordinate space:
//   +----------+
//   |(0,0)(1,0)|
//   |(0,1)(1,1)|
//   |(0,2)(1,2)|
//   |(0,3)(1,3)|
//   +----------+
// It is a convenience for building patterns dot by dot.
type Cell [2][4]bool

// Pattern packs the cell into its bit mask form.
func (c Cell) Pattern() Pattern {
	var p Pattern
	for x := 0; x < 2; x++ {
		for y := 0; y < 4; y++ {
			if c[x][y] {
				p |= DotBit(y + x*4)
			}
		}
	}
	return p
}
