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

// Package dmd is the page pool and display driver for a 128x32 dot matrix
// display.
//
// The pool is a fixed array of pages, each holding one bit per dot. Pages are
// identified by number and handed out by a wraparound cursor. Nothing records
// which pages are in use. A caller that allocates faster than pages leave the
// screen will be given a page that is still visible. TrackPages() can be used
// to log when that happens but the allocator itself never refuses a request.
//
// Drawing code works with two pages, low and high. The display hardware shows
// two other roles, dark and bright, and the driver switches between them on
// every tick. The dark page is shown for one tick in three and the bright page
// for two ticks in three. A dot set in both pages is at full brightness. A dot
// set only in the dark page is dim.
//
//	Show(Low)       dark = bright = low
//	Show(High)      dark = bright = high
//	ShowOther()     toggle between low and high
//	ShowGrayscale() dark = low, bright = high
//
// The Display type is not safe for concurrent use. It is intended to be used
// from scheduler tasks, which never run in parallel, and from the goroutine
// that calls Tick(). Compose() returns a copy of what is on screen that can be
// passed to other goroutines.
package dmd
