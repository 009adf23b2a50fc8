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

// Package font renders text onto display pages.
//
// A Font is a table of 256 glyphs indexed by character code. Each Glyph has a
// width, a height and packed bitmap rows. The space character is never stored
// in a font. It is drawn as nothing but takes the metrics of the font's
// capital I. Characters with no glyph are treated the same way.
//
// Layout is done in two passes. Measure() walks the string summing the glyph
// widths plus one dot of spacing between glyphs and records the tallest glyph.
// The measured box is used to resolve the anchor for centered and right
// justified text, after which the glyphs are blitted left to right. Glyphs
// shorter than the font's height are padded at the top so that a string of
// mixed height glyphs shares a common baseline.
//
// Glyph bytes are combined with the page by XOR. Rendering the same text at
// the same place twice restores the page. Overwrite mode is available for
// callers that want to replace what is underneath.
//
// The Engine type holds the state shared by all text drawing: the last
// resolved font arguments, the scratch buffer that text is formatted into and
// the measured string width and height. Only one render can be in progress at
// a time.
package font
