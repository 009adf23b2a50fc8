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

// Shade is the apparent brightness of a dot produced by the dark/bright flip
// cycle.
type Shade uint8

// List of valid Shade values.
const (
	Off Shade = iota

	// set only in the dark page
	Dim

	// set only in the bright page. not used by well behaved drawing code
	// because it is shown for two ticks in three and appears to flicker
	Flicker

	// set in both pages
	Full
)

func (s Shade) String() string {
	switch s {
	case Off:
		return "off"
	case Dim:
		return "dim"
	case Flicker:
		return "flicker"
	case Full:
		return "full"
	}
	return "unknown"
}

// Frame is a composed image of the display.
type Frame [Height][Width]Shade

// Compose combines the dark and bright pages into a Frame.
func (d *Display) Compose() *Frame {
	f := &Frame{}
	dark := d.Page(d.dark)
	bright := d.Page(d.bright)

	for y := 0; y < Height; y++ {
		dr := dark.Row(y)
		br := bright.Row(y)
		for i := 0; i < BytesPerRow; i++ {
			a := dr[i]
			b := br[i]
			if a|b == 0 {
				continue
			}
			for bit := 0; bit < 8; bit++ {
				var s Shade
				if a&(1<<bit) != 0 {
					s |= Dim
				}
				if b&(1<<bit) != 0 {
					s |= Flicker
				}
				f[y][i*8+bit] = s
			}
		}
	}

	return f
}

// Level returns the time averaged brightness of the shade for a flip cadence
// of dark:bright ticks, in the range 0 to 255.
func Level(s Shade, dark int, bright int) uint8 {
	total := dark + bright
	if total <= 0 {
		return 0
	}
	var on int
	if s&Dim != 0 {
		on += dark
	}
	if s&Flicker != 0 {
		on += bright
	}
	return uint8(on * 255 / total)
}

// Cadence returns the number of ticks the dark and bright pages are shown for
// in each flip cycle.
func (d *Display) Cadence() (int, int) {
	return d.flipDark, d.flipBright
}

// Amber returns the colour of a lit dot at the given level, in the range 0 to
// 255, as red, green and blue components. The colour is that of a neon plasma
// display.
func Amber(level uint8) (uint8, uint8, uint8) {
	l := int(level)
	return level, uint8(l * 140 / 255), uint8(l * 20 / 255)
}
