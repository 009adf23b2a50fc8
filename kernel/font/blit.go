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
	"github.com/pinmachine/pinkernel/kernel/dmd"
)

// Mode is the way glyph bytes are combined with the page.
type Mode int

// List of valid Mode values.
const (
	Xor Mode = iota
	Overwrite
)

func (m Mode) String() string {
	switch m {
	case Xor:
		return "xor"
	case Overwrite:
		return "overwrite"
	}
	return "unknown"
}

// Blit combines byte b into dst at bit offset o. The byte is shifted left by o
// into dst[0] and the bits that carry out are shifted into dst[1]. When o is
// zero, or dst has only one byte, dst[1] is not touched.
func Blit(dst []byte, b byte, o uint, mode Mode) {
	blit(dst, 0, b, 0xff, o, mode)
}

// blit combines the dots of b selected by mask into row at byte index xb and
// bit offset o. Bytes outside the row are not touched.
func blit(row []byte, xb int, b byte, mask byte, o uint, mode Mode) {
	o &= 7
	if xb >= 0 && xb < len(row) {
		combine(&row[xb], b<<o, mask<<o, mode)
	}
	if o != 0 && xb+1 >= 0 && xb+1 < len(row) {
		combine(&row[xb+1], b>>(8-o), mask>>(8-o), mode)
	}
}

func combine(d *byte, v byte, mask byte, mode Mode) {
	switch mode {
	case Overwrite:
		*d = (*d &^ mask) | (v & mask)
	default:
		*d ^= v
	}
}

// partial byte masks for Erase(). bit 0 is the leftmost dot

// mask for the partial byte at the left edge of a region that starts part
// way through a byte. indexed by 8 - x%8
var partialLeft = [8]byte{0x00, 0x7f, 0x3f, 0x1f, 0x0f, 0x07, 0x03, 0x01}

// mask for the partial byte at the right edge of a region that ends part way
// through a byte. indexed by the number of dots erased from the byte
var partialRight = [8]byte{0x00, 0xfe, 0xfc, 0xf8, 0xf0, 0xe0, 0xc0, 0x80}

// Erase clears a rectangle of the page. The rectangle does not need to be
// aligned to byte boundaries. Exactly height rows and width dots are cleared.
// Parts of the rectangle outside the page are ignored.
func Erase(p *dmd.Page, x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	for row := max(y, 0); row < min(y+height, dmd.Height); row++ {
		eraseRow(p.Row(row), x, width)
	}
}

func eraseRow(row []byte, x int, w int) {
	xb := x >> 3
	xr := x & 7

	if xr != 0 {
		// the region starts and ends inside the same byte
		if xr+w < 8 {
			and(row, xb, ^(byte(1<<w-1) << xr))
			return
		}
		and(row, xb, partialLeft[8-xr])
		w -= 8 - xr
		xb++
	}

	for w >= 16 {
		and(row, xb, 0)
		and(row, xb+1, 0)
		xb += 2
		w -= 16
	}

	if w >= 8 {
		and(row, xb, 0)
		xb++
		w -= 8
	}

	if w > 0 {
		and(row, xb, partialRight[w])
	}
}

func and(row []byte, i int, mask byte) {
	if i >= 0 && i < len(row) {
		row[i] &= mask
	}
}
