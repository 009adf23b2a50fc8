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

package font_test

import (
	"testing"

	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/kernel/font"
	"github.com/pinmachine/pinkernel/test"
)

func TestBlitCarry(t *testing.T) {
	for o := uint(0); o < 8; o++ {
		for v := 0; v < 256; v++ {
			b := byte(v)

			dst := []byte{0x00, 0x00}
			font.Blit(dst, b, o, font.Xor)
			test.ExpectEquality(t, dst[0], b<<o, o, b)
			if o == 0 {
				test.ExpectEquality(t, dst[1], uint8(0x00), o, b)
			} else {
				test.ExpectEquality(t, dst[1], b>>(8-o), o, b)
			}

			// xor composition with existing contents
			dst = []byte{0x5a, 0xa5}
			font.Blit(dst, b, o, font.Xor)
			test.ExpectEquality(t, dst[0], 0x5a^(b<<o), o, b)
			if o == 0 {
				test.ExpectEquality(t, dst[1], uint8(0xa5), o, b)
			} else {
				test.ExpectEquality(t, dst[1], 0xa5^(b>>(8-o)), o, b)
			}
		}
	}
}

func TestBlitEdge(t *testing.T) {
	// only one byte available. the carry is dropped
	dst := []byte{0x00}
	font.Blit(dst, 0xff, 4, font.Xor)
	test.ExpectEquality(t, dst[0], uint8(0xf0))
}

func TestBlitOverwrite(t *testing.T) {
	dst := []byte{0xff, 0xff}
	font.Blit(dst, 0x0f, 4, font.Overwrite)
	test.ExpectEquality(t, dst[0], uint8(0xf0))
	test.ExpectEquality(t, dst[1], uint8(0x00))

	dst = []byte{0x00, 0x00}
	font.Blit(dst, 0x81, 0, font.Overwrite)
	test.ExpectEquality(t, dst[0], uint8(0x81))
	test.ExpectEquality(t, dst[1], uint8(0x00))
}

func filled() *dmd.Page {
	p := &dmd.Page{}
	p.Invert()
	return p
}

func TestEraseRegions(t *testing.T) {
	for x := 0; x < 20; x++ {
		for w := 0; w < 24; w++ {
			p := filled()
			font.Erase(p, x, 1, w, 2)

			for y := 0; y < 4; y++ {
				for px := 0; px < 48; px++ {
					inside := y >= 1 && y < 3 && px >= x && px < x+w
					test.ExpectEquality(t, p.Pixel(px, y), !inside, x, w, px, y)
				}
			}
		}
	}
}

func TestErasePartialMasks(t *testing.T) {
	// left edge part way through a byte
	for xr := 1; xr < 8; xr++ {
		p := filled()
		font.Erase(p, xr, 0, 8-xr, 1)
		test.ExpectEquality(t, p.Row(0)[0], byte(1<<xr-1), xr)
		test.ExpectEquality(t, p.Row(0)[1], uint8(0xff), xr)
	}

	// right edge part way through a byte
	for w := 1; w < 8; w++ {
		p := filled()
		font.Erase(p, 8, 0, w, 1)
		test.ExpectEquality(t, p.Row(0)[1], byte(0xff<<w), w)
		test.ExpectEquality(t, p.Row(0)[0], uint8(0xff), w)
	}

	p := filled()
	font.Erase(p, 1, 0, 7, 1)
	test.ExpectEquality(t, p.Row(0)[0], uint8(0x01))
	p = filled()
	font.Erase(p, 0, 0, 3, 1)
	test.ExpectEquality(t, p.Row(0)[0], uint8(0xf8))
}

func TestEraseHeight(t *testing.T) {
	p := filled()
	font.Erase(p, 0, 10, dmd.Width, 3)
	test.ExpectSuccess(t, p.Pixel(0, 9))
	test.ExpectFailure(t, p.Pixel(0, 10))
	test.ExpectFailure(t, p.Pixel(127, 12))
	test.ExpectSuccess(t, p.Pixel(0, 13))
}

func TestEraseClipped(t *testing.T) {
	p := filled()
	font.Erase(p, 120, 30, 20, 10)
	test.ExpectFailure(t, p.Pixel(127, 31))
	test.ExpectSuccess(t, p.Pixel(119, 31))
	test.ExpectSuccess(t, p.Pixel(127, 29))

	p = filled()
	font.Erase(p, -3, -2, 5, 3)
	test.ExpectFailure(t, p.Pixel(0, 0))
	test.ExpectFailure(t, p.Pixel(1, 0))
	test.ExpectSuccess(t, p.Pixel(2, 0))
	test.ExpectSuccess(t, p.Pixel(0, 1))
}

// every dot inside the rectangle is cleared and every dot outside is kept.
// the rectangle is exactly width dots by height rows
func TestEraseGeometry(t *testing.T) {
	const y, height = 5, 3

	for x := -10; x < dmd.Width+12; x++ {
		for w := 0; w < 40; w++ {
			p := filled()
			font.Erase(p, x, y, w, height)

			wrong := 0
			for py := y - 1; py <= y+height; py++ {
				for px := range dmd.Width {
					inside := px >= x && px < x+w && py >= y && py < y+height
					if p.Pixel(px, py) == inside {
						wrong++
					}
				}
			}
			test.ExpectEquality(t, wrong, 0, x, w)
		}
	}
}
