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

package snapshot_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/kernel/dmd"
	"github.com/pinmachine/pinkernel/snapshot"
	"github.com/pinmachine/pinkernel/test"
)

func frame() *dmd.Frame {
	f := &dmd.Frame{}
	f[0][0] = dmd.Full
	f[0][1] = dmd.Dim
	f[31][127] = dmd.Flicker
	return f
}

func TestImage(t *testing.T) {
	img := snapshot.Image(frame(), 1, 2)
	test.ExpectEquality(t, img.Bounds().Dx(), dmd.Width)
	test.ExpectEquality(t, img.Bounds().Dy(), dmd.Height)
	test.ExpectEquality(t, img.GrayAt(0, 0).Y, uint8(255))
	test.ExpectEquality(t, img.GrayAt(1, 0).Y, uint8(85))
	test.ExpectEquality(t, img.GrayAt(127, 31).Y, uint8(170))
	test.ExpectEquality(t, img.GrayAt(2, 0).Y, uint8(0))
}

func TestPNG(t *testing.T) {
	var b bytes.Buffer
	test.DemandSuccess(t, snapshot.PNG(&b, frame(), 1, 2, 3))

	img, err := png.Decode(&b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), dmd.Width*3)
	test.ExpectEquality(t, img.Bounds().Dy(), dmd.Height*3)

	// every pixel in the block for dot 0,0 is bright
	for y := range 3 {
		for x := range 3 {
			r, _, _, _ := img.At(x, y).RGBA()
			test.ExpectEquality(t, r>>8, uint32(255))
		}
	}
	r, _, _, _ := img.At(6, 0).RGBA()
	test.ExpectEquality(t, r>>8, uint32(0))

	err = snapshot.PNG(&b, frame(), 1, 2, 0)
	test.ExpectSuccess(t, curated.Is(err, snapshot.BadScale))
}
