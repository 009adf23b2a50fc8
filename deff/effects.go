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

package deff

import (
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/kernel/font"
	"github.com/pinmachine/pinkernel/kernel/task"
)

// Lines returns the vertical centre of each of n lines spread evenly over the
// height of the display.
func Lines(n int) []int {
	if n <= 0 {
		return nil
	}
	y := make([]int, n)
	for i := range y {
		y[i] = dmd.Height * (2*i + 1) / (2 * n)
	}
	return y
}

// Message shows one or more lines of text, centred, for the given number of
// ticks.
func Message(f *font.Font, ticks task.Ticks, lines ...string) Effect {
	return Effect{
		Name: "message",
		Run: func(t *task.Task, r *Runner) {
			d := r.Display()
			d.AllocLowClean()
			for i, y := range Lines(len(lines)) {
				r.Engine().Render(f, dmd.Width/2, y, font.Center, lines[i])
			}
			d.Show(dmd.Low)
			t.Sleep(ticks)
		},
	}
}

// Flash shows text and blank in turn. The text is shown for the given number
// of ticks and then the blank, count times over.
func Flash(f *font.Font, period task.Ticks, count int, text string) Effect {
	return Effect{
		Name: "flash",
		Run: func(t *task.Task, r *Runner) {
			d := r.Display()
			d.AllocLowClean()
			d.AllocHighClean()
			r.Engine().Render(f, dmd.Width/2, dmd.Height/2, font.Center, text)
			d.Show(dmd.Low)
			for range count {
				t.Sleep(period)
				d.ShowOther()
				t.Sleep(period)
				d.ShowOther()
			}
		},
	}
}

// ScrollUp brings text onto the display from the bottom, one row every step
// ticks, and then holds it for the given number of ticks.
func ScrollUp(f *font.Font, step task.Ticks, hold task.Ticks, text string) Effect {
	return Effect{
		Name: "scroll up",
		Run: func(t *task.Task, r *Runner) {
			d := r.Display()

			// draw the finished image into high and scroll it into low
			d.AllocLowClean()
			r.Engine().Render(f, dmd.Width/2, dmd.Height/2, font.Center, text)
			d.FlipLowHigh()
			d.AllocLowClean()
			d.Show(dmd.Low)

			for y := range dmd.Height {
				t.Sleep(step)
				d.Low().ShiftUp()
				copy(d.Low().Row(dmd.Height-1), d.High().Row(y))
			}
			t.Sleep(hold)
		},
	}
}

// Grayscale shows the four shades side by side: off, dim, flicker and full.
// Held for the given number of ticks.
func Grayscale(ticks task.Ticks) Effect {
	return Effect{
		Name: "grayscale",
		Run: func(t *task.Task, r *Runner) {
			d := r.Display()
			d.AllocLowClean()
			d.AllocHighClean()

			const band = dmd.Width / 4 / 8
			bits := make([]byte, band*dmd.Height)
			for i := range bits {
				bits[i] = 0xff
			}

			// low is the dark page and high the bright page
			check(d.DrawBitmap(bits, 1*band*8, 0, band*8, dmd.Height))
			check(d.DrawBitmap(bits, 3*band*8, 0, band*8, dmd.Height))
			d.FlipLowHigh()
			check(d.DrawBitmap(bits, 2*band*8, 0, band*8, dmd.Height))
			check(d.DrawBitmap(bits, 3*band*8, 0, band*8, dmd.Height))
			d.FlipLowHigh()

			d.ShowGrayscale()
			t.Sleep(ticks)
		},
	}
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
