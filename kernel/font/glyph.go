// This file is part of Pinkernel.
//
// Pinkernel is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pinkernel is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pinkernel.  If not, see <https://www.gnu.org/licenses/>.

package font

import (
	"strings"
	"sync/atomic"

	"github.com/pinmachine/pinkernel/kernel/rombank"
	"github.com/pinmachine/pinkernel/logger"
)

// Spacing is the number of blank dots between glyphs.
const Spacing = 1

// Reference is the character whose metrics are used for the space character
// and for characters missing from a font.
const Reference = 'I'

// Glyph is the bitmap of one character.
type Glyph struct {
	Width  int
	Height int

	// packed rows of ByteWidth() bytes. bit 0 of the first byte in each row
	// is the leftmost dot
	Data []byte
}

// NewGlyph creates a blank glyph of the given size.
func NewGlyph(width int, height int) *Glyph {
	g := &Glyph{
		Width:  width,
		Height: height,
	}
	g.Data = make([]byte, g.ByteWidth()*height)
	return g
}

// ByteWidth returns the number of bytes in each row of the glyph.
func (g *Glyph) ByteWidth() int {
	return (g.Width + 7) >> 3
}

// Set a dot in the glyph.
func (g *Glyph) Set(x, y int) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.Data[y*g.ByteWidth()+x/8] |= 1 << (x % 8)
}

// Dot returns true if the dot is set.
func (g *Glyph) Dot(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.Data[y*g.ByteWidth()+x/8]&(1<<(x%8)) != 0
}

// ParseGlyph creates a glyph from a picture. Rows are separated by spaces and
// any character other than '.' is a set dot.
//
//	".#. #.# ### #.# #.#"
func ParseGlyph(picture string) *Glyph {
	rows := strings.Fields(picture)
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	g := NewGlyph(w, len(rows))
	for y, r := range rows {
		for x, c := range r {
			if c != '.' {
				g.Set(x, y)
			}
		}
	}
	return g
}

// Font is a table of glyphs.
type Font struct {
	Name string

	// height of the tallest glyph
	Height int

	// the bank that must be selected while glyph data is read
	Bank rombank.Bank

	glyphs [256]*Glyph

	// characters that have been reported as missing
	missing [256]atomic.Bool
}

// NewFont is the preferred method of initialisation for the Font type.
func NewFont(name string, bank rombank.Bank) *Font {
	return &Font{
		Name: name,
		Bank: bank,
	}
}

// Set the glyph for a character. The font height grows to fit the glyph.
func (f *Font) Set(c byte, g *Glyph) {
	f.glyphs[c] = g
	if g != nil {
		f.Height = max(f.Height, g.Height)
	}
}

// Glyph returns the glyph for a character or nil if the font has none.
func (f *Font) Glyph(c byte) *Glyph {
	return f.glyphs[c]
}

// metrics of one character as used by the layout and blit passes
type metrics struct {
	// nil for characters that draw nothing
	glyph *Glyph

	// advance including spacing
	width int

	byteWidth int
	height    int
}

// lookup returns the metrics of a character. The space character and any
// character missing from the font draw nothing and take the metrics of the
// reference glyph.
func (f *Font) lookup(c byte) metrics {
	g := f.glyphs[c]
	if c == ' ' || g == nil {
		if c != ' ' && !f.missing[c].Swap(true) {
			logger.Logf(logger.Allow, "font", "%s: no glyph for %#02x", f.Name, c)
		}

		r := f.glyphs[Reference]
		if r == nil {
			return metrics{
				width:     f.Height/2 + Spacing,
				byteWidth: (f.Height/2 + 7) >> 3,
				height:    f.Height,
			}
		}
		return metrics{
			width:     r.Width + Spacing,
			byteWidth: r.ByteWidth(),
			height:    r.Height,
		}
	}

	return metrics{
		glyph:     g,
		width:     g.Width + Spacing,
		byteWidth: g.ByteWidth(),
		height:    g.Height,
	}
}
