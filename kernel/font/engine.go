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
	"fmt"

	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/kernel/rombank"
	"github.com/pinmachine/pinkernel/logger"
)

// ScratchSize is the capacity of the buffer that text is formatted into.
// Longer text is truncated.
const ScratchSize = 48

// Args are the resolved arguments of the most recent render.
type Args struct {
	Font *Font
	X    int
	Y    int
}

// Engine draws text into the display's low page.
type Engine struct {
	display *dmd.Display
	banks   *rombank.Banks
	hb      Heartbeater
	symbols *Font
	mode    Mode

	args Args

	scratch [ScratchSize]byte
	n       int

	// truncation of text is reported once
	truncated bool

	// measured size of the most recently measured or rendered string
	StringWidth  int
	StringHeight int
}

// NewEngine is the preferred method of initialisation for the Engine type.
// The banks argument can be nil if font data is not banked.
func NewEngine(display *dmd.Display, banks *rombank.Banks) *Engine {
	if banks == nil {
		banks = rombank.NewBanks(0)
	}
	return &Engine{
		display: display,
		banks:   banks,
		symbols: Symbols,
	}
}

// SetHeartbeat sets the heartbeat called during long layout and blit loops.
func (e *Engine) SetHeartbeat(hb Heartbeater) {
	e.hb = hb
}

// SetMode sets the composition mode for subsequent renders.
func (e *Engine) SetMode(mode Mode) {
	e.mode = mode
}

// Mode returns the current composition mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// SetSymbols sets the bitmap font used by BitmapDraw().
func (e *Engine) SetSymbols(f *Font) {
	e.symbols = f
}

// Args returns the resolved arguments of the most recent render.
func (e *Engine) Args() Args {
	return e.args
}

// Sprintf formats text into the scratch buffer and returns it.
func (e *Engine) Sprintf(format string, a ...any) string {
	e.fill(fmt.Sprintf(format, a...))
	return e.Scratch()
}

// Scratch returns the contents of the scratch buffer.
func (e *Engine) Scratch() string {
	return string(e.scratch[:e.n])
}

func (e *Engine) fill(s string) {
	e.n = copy(e.scratch[:], s)
	if e.n < len(s) && !e.truncated {
		e.truncated = true
		logger.Logf(logger.Allow, "font", "text truncated to %d characters: %q", ScratchSize, s[:e.n])
	}
}

// Measure the string and record the result in the StringWidth and
// StringHeight fields. The string is copied into the scratch buffer.
func (e *Engine) Measure(f *Font, s string) (int, int) {
	e.fill(s)
	e.measure(f)
	return e.StringWidth, e.StringHeight
}

func (e *Engine) measure(f *Font) {
	defer e.banks.Push(f.Bank)()
	e.StringWidth, e.StringHeight = measure(f, e.scratch[:e.n])
	e.heartbeat()
}

func (e *Engine) heartbeat() {
	if e.hb != nil {
		e.hb.Heartbeat()
	}
}

// prep measures the string and resolves the anchor.
func (e *Engine) prep(f *Font, x, y int, j Justify, s string) {
	e.fill(s)
	e.measure(f)
	x, y = Anchor(x, y, e.StringWidth, e.StringHeight, j)
	e.args = Args{Font: f, X: x, Y: y}
}

// render draws the scratch buffer using the resolved arguments.
func (e *Engine) render() {
	defer e.banks.Push(e.args.Font.Bank)()
	e.banks.Require(e.args.Font.Bank)
	draw(e.display.Low(), e.args.Font, e.args.X, e.args.Y, e.scratch[:e.n], e.mode, e.hb)
}

// Render draws a string into the low page.
func (e *Engine) Render(f *Font, x, y int, j Justify, s string) {
	e.prep(f, x, y, j, s)
	e.render()
}

// Render2 draws a string into both the low and the high pages.
func (e *Engine) Render2(f *Font, x, y int, j Justify, s string) {
	e.prep(f, x, y, j, s)
	e.render()
	e.display.FlipLowHigh()
	e.render()
	e.display.FlipLowHigh()
}

// Erase clears a rectangle of the low page.
func (e *Engine) Erase(x, y, width, height int) {
	Erase(e.display.Low(), x, y, width, height)
}

// BitmapDraw draws one symbol from the bitmap font into the low page with its
// top left corner at x, y.
func (e *Engine) BitmapDraw(x, y int, c byte) {
	e.scratch[0] = c
	e.n = 1
	e.args = Args{Font: e.symbols, X: x, Y: y}
	e.render()
}
