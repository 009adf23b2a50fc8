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
	"image"

	"github.com/pinmachine/pinkernel/kernel/rombank"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Mono7x13 is built from the fixed width 7x13 face in x/image.
var Mono7x13 = FromFace("mono7x13", rombank.Fonts, basicfont.Face7x13)

// FromFace creates a font from the printable ASCII glyphs of a font face. Each
// glyph is the width of the glyph's advance and the height of the face. Dots
// are set where the glyph mask is more than half opaque.
func FromFace(name string, bank rombank.Bank, face font.Face) *Font {
	f := NewFont(name, bank)

	m := face.Metrics()
	height := m.Height.Ceil()
	dot := fixed.P(0, m.Ascent.Ceil())

	for c := byte(0x21); c < 0x7f; c++ {
		dr, mask, mp, advance, ok := face.Glyph(dot, rune(c))
		if !ok {
			continue
		}

		g := NewGlyph(advance.Ceil(), height)
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			for x := dr.Min.X; x < dr.Max.X; x++ {
				if opaque(mask, mp.X+x-dr.Min.X, mp.Y+y-dr.Min.Y) {
					g.Set(x, y)
				}
			}
		}
		f.Set(c, g)
	}

	// the face height may include space below the lowest glyph
	f.Height = max(f.Height, height)

	return f
}

func opaque(mask image.Image, x, y int) bool {
	_, _, _, a := mask.At(x, y).RGBA()
	return a >= 0x8000
}
