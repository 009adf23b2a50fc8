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

// Package snapshot saves a composed display frame as an image.
package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/pinmachine/pinkernel/curated"
	"github.com/pinmachine/pinkernel/kernel/dmd"
)

// Sentinel error patterns.
const (
	BadScale = "snapshot: scale of %d is not valid"
	Failed   = "snapshot: %v"
)

// Image returns the frame as a grayscale image, one pixel per dot, with the
// brightness of each dot averaged over the flip cycle.
func Image(f *dmd.Frame, dark int, bright int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, dmd.Width, dmd.Height))
	for y := range dmd.Height {
		for x := range dmd.Width {
			img.SetGray(x, y, color.Gray{Y: dmd.Level(f[y][x], dark, bright)})
		}
	}
	return img
}

// Scale returns the image scaled by an integer factor with no smoothing, so
// that each dot is a square block.
func Scale(img *image.Gray, scale int) (*image.Gray, error) {
	if scale < 1 {
		return nil, curated.Errorf(BadScale, scale)
	}
	if scale == 1 {
		return img, nil
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

// PNG writes the frame to w as a PNG image.
func PNG(w io.Writer, f *dmd.Frame, dark int, bright int, scale int) error {
	img, err := Scale(Image(f, dark, bright), scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return curated.Errorf(Failed, err)
	}
	return nil
}

// Save the frame to a PNG file.
func Save(path string, f *dmd.Frame, dark int, bright int, scale int) error {
	fh, err := os.Create(path)
	if err != nil {
		return curated.Errorf(Failed, err)
	}
	defer fh.Close()
	return PNG(fh, f, dark, bright, scale)
}
