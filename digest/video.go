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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/pinmachine/pinkernel/kernel/dmd"
)

// Video implements the sink interface used by the display loop. Every frame
// drawn is added to the digest.
type Video struct {
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	// the first bytes of pixels hold the previous digest value
	return &Video{
		pixels: make([]byte, sha1.Size+dmd.Width*dmd.Height),
	}
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frameNum = 0
}

// Frames returns the number of frames added since the last reset.
func (dig *Video) Frames() int {
	return dig.frameNum
}

// Draw adds the frame to the digest. The shade of every dot is converted to
// the level seen by the viewer so two frames that look the same have the same
// digest regardless of the cadence.
func (dig *Video) Draw(f *dmd.Frame, dark int, bright int) error {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the video data
	copy(dig.pixels, dig.digest[:])

	i := sha1.Size
	for y := range dmd.Height {
		for x := range dmd.Width {
			dig.pixels[i] = dmd.Level(f[y][x], dark, bright)
			i++
		}
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum++
	return nil
}
