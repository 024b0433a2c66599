// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package photomosaic

import (
	"fmt"
	"image"
)

// AverageColor computes the dominant color of an image, that is the mean of
// each component over all pixels.
// Means are rounded to the nearest integer, halves are rounded up (away from
// zero).
//
// An error wrapping ErrInvalidRegion is returned for empty images.
func AverageColor(img image.Image) (RGB, error) {
	return AverageColorRect(img, img.Bounds())
}

// AverageColorRect computes the dominant color of the area r of img.
// r must be contained in the bounds of img.
func AverageColorRect(img image.Image, r image.Rectangle) (RGB, error) {
	if r.Empty() {
		return RGB{}, fmt.Errorf("Can't compute average color of %v: %w", r, ErrInvalidRegion)
	}
	if !r.In(img.Bounds()) {
		return RGB{}, fmt.Errorf("Region %v not inside image bounds %v: %w",
			r, img.Bounds(), ErrInvalidRegion)
	}
	// use big integers, large regions of bright pixels overflow uint32
	var rSum, gSum, bSum uint64
	if rgba, ok := img.(*image.RGBA); ok {
		rSum, gSum, bSum = sumRGBA(rgba, r)
	} else {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := ConvertRGB(img.At(x, y))
				rSum += uint64(c.R)
				gSum += uint64(c.G)
				bSum += uint64(c.B)
			}
		}
	}
	numPixels := uint64(r.Dx()) * uint64(r.Dy())
	return RGB{
		R: roundMean(rSum, numPixels),
		G: roundMean(gSum, numPixels),
		B: roundMean(bSum, numPixels),
	}, nil
}

// sumRGBA sums up the components directly on the pixel buffer.
func sumRGBA(img *image.RGBA, r image.Rectangle) (rSum, gSum, bSum uint64) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		offset := img.PixOffset(r.Min.X, y)
		row := img.Pix[offset : offset+4*r.Dx()]
		for i := 0; i < len(row); i += 4 {
			rSum += uint64(row[i])
			gSum += uint64(row[i+1])
			bSum += uint64(row[i+2])
		}
	}
	return
}

// roundMean returns sum / n rounded half up, clamped to 255.
func roundMean(sum, n uint64) uint8 {
	mean := (2*sum + n) / (2 * n)
	if mean > 255 {
		mean = 255
	}
	return uint8(mean)
}
