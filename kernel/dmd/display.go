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
	"fmt"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/logger"
)

// Misaligned is the pattern for errors returned by drawing functions that
// require byte aligned geometry.
const Misaligned = "dmd: misaligned region (x=%d y=%d w=%d h=%d)"

// Default configuration.
const (
	DefaultPages      = 16
	DefaultFlipDark   = 1
	DefaultFlipBright = 2
)

// PageNum identifies a page in the pool.
type PageNum uint8

// Role names one of the two drawing pages.
type Role int

// List of valid Role values.
const (
	Low Role = iota
	High
)

func (r Role) String() string {
	switch r {
	case Low:
		return "low"
	case High:
		return "high"
	}
	return "unknown"
}

// Display is the page pool and the state of the display driver.
type Display struct {
	pages []Page

	// next page to be handed out by Alloc()
	free PageNum

	low    PageNum
	high   PageNum
	dark   PageNum
	bright PageNum

	// the page currently mapped to the display by Tick()
	visible PageNum

	// number of ticks in each half of the flip cycle and the position in the
	// cycle
	flipDark   int
	flipBright int
	flipCount  int

	ticks uint64

	// tick on which each page was last visible. only updated when tracking
	tracking  bool
	lastShown []uint64
}

// NewDisplay is the preferred method of initialisation for the Display type.
// A value of zero or less gives the default number of pages.
func NewDisplay(numPages int) *Display {
	if numPages <= 0 {
		numPages = DefaultPages
	}
	if numPages > 256 {
		numPages = 256
	}

	d := &Display{
		pages:      make([]Page, numPages),
		lastShown:  make([]uint64, numPages),
		flipDark:   DefaultFlipDark,
		flipBright: DefaultFlipBright,
	}
	d.Reset()
	return d
}

// Reset puts the driver into its power-on state. The contents of the pages are
// not changed.
func (d *Display) Reset() {
	d.low = 0
	d.high = 0
	d.dark = 0
	d.bright = 0
	d.visible = 0
	d.free = 1 % PageNum(len(d.pages))
	d.flipCount = d.flipDark + d.flipBright
}

// SetCadence sets the number of ticks the dark and bright pages are shown for
// in each flip cycle.
func (d *Display) SetCadence(dark int, bright int) error {
	if dark < 1 || bright < 1 {
		return curated.Errorf("dmd: invalid flip cadence %d:%d", dark, bright)
	}
	d.flipDark = dark
	d.flipBright = bright
	d.flipCount = dark + bright
	return nil
}

// TrackPages turns on logging of pages that are allocated while still on
// screen.
func (d *Display) TrackPages(on bool) {
	d.tracking = on
}

func (d *Display) logf(detail string, args ...any) {
	logger.Logf(logger.Allow, "dmd", detail, args...)
}

// NumPages returns the capacity of the pool.
func (d *Display) NumPages() int {
	return len(d.pages)
}

// Page returns the page with the given number.
func (d *Display) Page(n PageNum) *Page {
	return &d.pages[int(n)%len(d.pages)]
}

// Alloc returns the next page number. Numbers are handed out in order and wrap
// around at the end of the pool. Pages are never freed.
func (d *Display) Alloc() PageNum {
	n := d.free
	d.free = PageNum((int(d.free) + 1) % len(d.pages))

	if d.tracking && (n == d.dark || n == d.bright) {
		d.logf("page %d allocated while visible (last shown on tick %d)", n, d.lastShown[n])
	}

	return n
}

// AllocLow allocates a page for the low role.
func (d *Display) AllocLow() {
	d.low = d.Alloc()
}

// AllocHigh allocates a page for the high role.
func (d *Display) AllocHigh() {
	d.high = d.Alloc()
}

// AllocPair allocates pages for both the low and the high roles.
func (d *Display) AllocPair() (PageNum, PageNum) {
	d.AllocLow()
	d.AllocHigh()
	return d.low, d.high
}

// AllocLowClean allocates a page for the low role and zeroes it.
func (d *Display) AllocLowClean() {
	d.AllocLow()
	d.CleanLow()
}

// AllocHighClean allocates a page for the high role and zeroes it.
func (d *Display) AllocHighClean() {
	d.AllocHigh()
	d.CleanHigh()
}

// LowPage returns the page number in the low role.
func (d *Display) LowPage() PageNum {
	return d.low
}

// HighPage returns the page number in the high role.
func (d *Display) HighPage() PageNum {
	return d.high
}

// DarkPage returns the page number in the dark role.
func (d *Display) DarkPage() PageNum {
	return d.dark
}

// BrightPage returns the page number in the bright role.
func (d *Display) BrightPage() PageNum {
	return d.bright
}

// VisiblePage returns the page currently mapped to the display.
func (d *Display) VisiblePage() PageNum {
	return d.visible
}

// Low returns the page in the low role.
func (d *Display) Low() *Page {
	return d.Page(d.low)
}

// High returns the page in the high role.
func (d *Display) High() *Page {
	return d.Page(d.high)
}

// Role returns the page in the given role.
func (d *Display) Role(r Role) *Page {
	if r == High {
		return d.High()
	}
	return d.Low()
}

// Show puts the page in the given role on screen as a two shade image.
func (d *Display) Show(r Role) {
	if r == High {
		d.dark = d.high
	} else {
		d.dark = d.low
	}
	d.bright = d.dark
	d.remap()
}

// ShowOther shows low if high is on screen, otherwise shows high.
func (d *Display) ShowOther() {
	if d.dark == d.low {
		d.Show(High)
	} else {
		d.Show(Low)
	}
}

// ShowGrayscale puts the low page in the dark role and the high page in the
// bright role. Dots set only in low are dim and dots set in both are bright.
func (d *Display) ShowGrayscale() {
	d.dark = d.low
	d.bright = d.high
	d.remap()
}

// FlipLowHigh exchanges the low and high roles. What is on screen does not
// change.
func (d *Display) FlipLowHigh() {
	d.low, d.high = d.high, d.low
}

// SwapLowHigh is the same as FlipLowHigh().
func (d *Display) SwapLowHigh() {
	d.FlipLowHigh()
}

// CleanLow zeroes the low page.
func (d *Display) CleanLow() {
	d.Low().Clean()
}

// CleanHigh zeroes the high page.
func (d *Display) CleanHigh() {
	d.High().Clean()
}

// CopyLowToHigh copies the low page into the high page.
func (d *Display) CopyLowToHigh() {
	d.High().Copy(d.Low())
}

// DrawImage copies a decoded full screen image into the low page.
func (d *Display) DrawImage(img *Page) {
	d.Low().Copy(img)
}

// DrawBitmap copies a bitmap into the low page. The bitmap is stored row by
// row with w/8 bytes per row. The position and size must be multiples of
// eight and the bitmap must fit on the page.
func (d *Display) DrawBitmap(bits []byte, x, y, w, h int) error {
	if x%8 != 0 || y%8 != 0 || w%8 != 0 || h%8 != 0 ||
		x < 0 || y < 0 || w < 0 || h < 0 ||
		x+w > Width || y+h > Height {
		return curated.Errorf(Misaligned, x, y, w, h)
	}

	stride := w / 8
	if len(bits) < stride*h {
		return curated.Errorf("dmd: bitmap too short (%d bytes for %dx%d)", len(bits), w, h)
	}

	p := d.Low()
	for j := 0; j < h; j++ {
		copy(p.Row(y + j)[x/8:], bits[j*stride:(j+1)*stride])
	}

	return nil
}

// Tick advances the flip cycle by one tick and maps either the dark or the
// bright page to the display.
func (d *Display) Tick() {
	d.ticks++
	d.flipCount--
	if d.flipCount <= 0 {
		d.flipCount = d.flipDark + d.flipBright
	}
	d.remap()
}

// remap sets the visible page from the position in the flip cycle. The dark
// page is shown at the start of each cycle.
func (d *Display) remap() {
	if d.flipCount > d.flipBright {
		d.visible = d.dark
	} else {
		d.visible = d.bright
	}
	if d.tracking {
		d.lastShown[d.dark] = d.ticks
		d.lastShown[d.bright] = d.ticks
	}
}

func (d *Display) String() string {
	return fmt.Sprintf("low=%d high=%d dark=%d bright=%d visible=%d free=%d",
		d.low, d.high, d.dark, d.bright, d.visible, d.free)
}
