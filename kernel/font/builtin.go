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
	"github.com/pinmachine/pinkernel/kernel/rombank"
)

// Mono5 is a small font of upper case letters, digits and punctuation. Most
// glyphs are three dots wide and five high.
var Mono5 = fromPictures("mono5", rombank.Fonts, map[byte]string{
	'0':  "### #.# #.# #.# ###",
	'1':  ".#. ##. .#. .#. ###",
	'2':  "### ..# ### #.. ###",
	'3':  "### ..# .## ..# ###",
	'4':  "#.# #.# ### ..# ..#",
	'5':  "### #.. ### ..# ###",
	'6':  "### #.. ### #.# ###",
	'7':  "### ..# ..# .#. .#.",
	'8':  "### #.# ### #.# ###",
	'9':  "### #.# ### ..# ###",
	'A':  ".#. #.# ### #.# #.#",
	'B':  "##. #.# ##. #.# ##.",
	'C':  ".## #.. #.. #.. .##",
	'D':  "##. #.# #.# #.# ##.",
	'E':  "### #.. ##. #.. ###",
	'F':  "### #.. ##. #.. #..",
	'G':  ".## #.. #.# #.# .##",
	'H':  "#.# #.# ### #.# #.#",
	'I':  "### .#. .#. .#. ###",
	'J':  "..# ..# ..# #.# .#.",
	'K':  "#.# #.# ##. #.# #.#",
	'L':  "#.. #.. #.. #.. ###",
	'M':  "#...# ##.## #.#.# #...# #...#",
	'N':  "#..# ##.# #.## #..# #..#",
	'O':  ".#. #.# #.# #.# .#.",
	'P':  "##. #.# ##. #.. #..",
	'Q':  ".#.. #.#. #.#. #.#. .#.#",
	'R':  "##. #.# ##. #.# #.#",
	'S':  ".## #.. .#. ..# ##.",
	'T':  "### .#. .#. .#. .#.",
	'U':  "#.# #.# #.# #.# ###",
	'V':  "#.# #.# #.# #.# .#.",
	'W':  "#...# #...# #.#.# ##.## #...#",
	'X':  "#.# #.# .#. #.# #.#",
	'Y':  "#.# #.# .#. .#. .#.",
	'Z':  "### ..# .#. #.. ###",
	'.':  ". . . . #",
	',':  ". . . # #",
	':':  ". # . # .",
	'!':  "# # # . #",
	'?':  "### ..# .## ... .#.",
	'-':  "... ... ### ... ...",
	'+':  "... .#. ### .#. ...",
	'/':  "..# ..# .#. #.. #..",
	'\'': "# # . . .",
	'(':  ".# #. #. #. .#",
	')':  "#. .# .# .# #.",
	'=':  "... ### ... ### ...",
	'%':  "#.# ..# .#. #.. #.#",
	'*':  "... #.# .#. #.# ...",
	'#':  "#.# ### #.# ### #.#",
})

// Symbol codes in the Symbols font.
const (
	SymbolBox byte = iota
	SymbolArrowRight
	SymbolArrowLeft
	SymbolBall
	SymbolCheck
)

// Symbols is the bitmap font used by BitmapDraw(). Every symbol is eight dots
// square.
var Symbols = fromPictures("symbols", rombank.Images, map[byte]string{
	SymbolBox: "######## #......# #......# #......# " +
		"#......# #......# #......# ########",
	SymbolArrowRight: "...#.... ....#... .....#.. ######## " +
		"######## .....#.. ....#... ...#....",
	SymbolArrowLeft: "....#... ...#.... ..#..... ######## " +
		"######## ..#..... ...#.... ....#...",
	SymbolBall: "..####.. .######. ######## ######## " +
		"######## ######## .######. ..####..",
	SymbolCheck: "........ .......# ......## .....##. " +
		"#...##.. ##.##... .###.... ..#.....",
})

func fromPictures(name string, bank rombank.Bank, pictures map[byte]string) *Font {
	f := NewFont(name, bank)
	for c, p := range pictures {
		f.Set(c, ParseGlyph(p))
	}
	return f
}
