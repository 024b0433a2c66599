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
	"image"
	"image/color"
)

// DefaultGridColor is the color of the lines drawn by GridImage.
var DefaultGridColor = RGB{R: 255, G: 255, B: 255}

// GridImage returns a copy of img with one pixel wide lines at the cell
// boundaries, that is at each x that is a multiple of cellWidth and each y
// that is a multiple of cellHeight (including 0).
// If c is nil DefaultGridColor is used.
func GridImage(img image.Image, cellWidth, cellHeight int, c color.Color) *image.RGBA {
	if c == nil {
		c = DefaultGridColor
	}
	res := ToRGBA(img)
	bounds := res.Bounds()
	if cellWidth > 0 {
		for x := 0; x < bounds.Dx(); x += cellWidth {
			for y := 0; y < bounds.Dy(); y++ {
				res.Set(x, y, c)
			}
		}
	}
	if cellHeight > 0 {
		for y := 0; y < bounds.Dy(); y += cellHeight {
			for x := 0; x < bounds.Dx(); x++ {
				res.Set(x, y, c)
			}
		}
	}
	return res
}
