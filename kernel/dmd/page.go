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

package dmd

import (
	"encoding/binary"
)

// Geometry of the display and of a page.
const (
	Width       = 128
	Height      = 32
	BytesPerRow = Width / 8
	PageSize    = BytesPerRow * Height
)

// Page is the pixel payload of one page. Rows are stored top to bottom. Bit 0
// of each byte is the leftmost dot of the eight it covers.
type Page [PageSize]byte

// Clean zeroes the page.
func (p *Page) Clean() {
	*p = Page{}
}

// Invert every dot on the page.
func (p *Page) Invert() {
	for i := 0; i < PageSize; i += 8 {
		v := binary.LittleEndian.Uint64(p[i:])
		binary.LittleEndian.PutUint64(p[i:], ^v)
	}
}

// Copy the contents of src into the page.
func (p *Page) Copy(src *Page) {
	*p = *src
}

// Pixel returns the state of the dot at x, y. Coordinates outside the page
// return false.
func (p *Page) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return p[y*BytesPerRow+x/8]&(1<<(x%8)) != 0
}

// SetPixel sets or clears the dot at x, y. Coordinates outside the page are
// ignored.
func (p *Page) SetPixel(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	i := y*BytesPerRow + x/8
	if on {
		p[i] |= 1 << (x % 8)
	} else {
		p[i] &^= 1 << (x % 8)
	}
}

// Row returns the bytes of row y.
func (p *Page) Row(y int) []byte {
	return p[y*BytesPerRow : (y+1)*BytesPerRow]
}

// DrawBorder draws a frame around the edge of the page. The top and bottom
// bands are two rows deep and the side bands are two dots wide.
func (p *Page) DrawBorder() {
	for i := 0; i < 2*BytesPerRow; i++ {
		p[i] = 0xff
		p[PageSize-2*BytesPerRow+i] = 0xff
	}
	for y := 2; y < Height-2; y++ {
		p[y*BytesPerRow] = 0x03
		p[y*BytesPerRow+BytesPerRow-1] = 0xc0
	}
}

// DrawHorizontalLine sets every dot on row y.
func (p *Page) DrawHorizontalLine(y int) {
	if y < 0 || y >= Height {
		return
	}
	row := p.Row(y)
	binary.LittleEndian.PutUint64(row, ^uint64(0))
	binary.LittleEndian.PutUint64(row[8:], ^uint64(0))
}

// ShiftUp moves every row up by one. The bottom row is cleared.
func (p *Page) ShiftUp() {
	copy(p[:], p[BytesPerRow:])
	clear(p[PageSize-BytesPerRow:])
}

// ShiftDown moves every row down by one. The top row is cleared.
func (p *Page) ShiftDown() {
	copy(p[BytesPerRow:], p[:PageSize-BytesPerRow])
	clear(p[:BytesPerRow])
}
