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

// Justify is the way the anchor of a string is resolved.
type Justify int

// List of valid Justify values.
const (
	Left Justify = iota
	Center
	Right
)

func (j Justify) String() string {
	switch j {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	}
	return "unknown"
}

// Heartbeater is implemented by the scheduler's tasks and by the watchdog.
type Heartbeater interface {
	Heartbeat()
}

// Measure returns the width and height of the string when rendered in the
// font. The width of an empty string is -Spacing.
func Measure(f *Font, s string) (int, int) {
	return measure(f, []byte(s))
}

func measure(f *Font, s []byte) (int, int) {
	w := 0
	h := 0
	for _, c := range s {
		m := f.lookup(c)
		w += m.width
		h = max(h, m.height)
	}
	return w - Spacing, h
}

// Anchor returns the top left corner of a string with the given measurements.
func Anchor(x, y int, width, height int, j Justify) (int, int) {
	switch j {
	case Center:
		return x - width/2, y - height/2
	case Right:
		return x - width, y
	}
	return x, y
}

// Render draws a string onto the page with XOR composition.
func Render(p *dmd.Page, f *Font, x, y int, j Justify, s string) {
	w, h := Measure(f, s)
	x, y = Anchor(x, y, w, h, j)
	draw(p, f, x, y, []byte(s), Xor, nil)
}

// draw blits every glyph in the string with the top left corner of the string
// at x, y. The heartbeat is called once per glyph row.
func draw(p *dmd.Page, f *Font, x, y int, s []byte, mode Mode, hb Heartbeater) {
	for _, c := range s {
		m := f.lookup(c)

		if g := m.glyph; g != nil {
			top := y
			if g.Height < f.Height {
				top += f.Height - g.Height
			}

			bw := m.byteWidth
			xb := x >> 3
			o := uint(x & 7)

			for r := 0; r < g.Height; r++ {
				if hb != nil {
					hb.Heartbeat()
				}

				row := top + r
				if row < 0 || row >= dmd.Height {
					continue
				}

				dst := p.Row(row)
				src := g.Data[r*bw : (r+1)*bw]
				for i, b := range src {
					blit(dst, xb+i, b, widthMask(g.Width, i), o, mode)
				}
			}
		}

		x += m.width
	}
}

// widthMask returns the mask of dots in byte i of a glyph row that are inside
// the glyph's width.
func widthMask(width int, i int) byte {
	n := width - i*8
	if n >= 8 {
		return 0xff
	}
	if n <= 0 {
		return 0x00
	}
	return byte(1<<n - 1)
}
