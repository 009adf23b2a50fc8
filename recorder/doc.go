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

// Package recorder records switch events to a file and plays them back. Each
// event is stored with the tick on which it happened and a digest of every
// frame drawn before it. During playback the digest is checked before the
// event is applied, so any difference in the output of the kernel is found at
// the first event after the difference.
//
// A recording is a text file. The first lines are a header and the remaining
// lines are events, one per line:
//
//	pinkernel recording
//	60
//	120, enter, true, 9a2e...
//	128, enter, false, 03c1...
//
// The second header line is the tick rate of the kernel that made the
// recording. Playback fails if the rate is not the same.
package recorder
