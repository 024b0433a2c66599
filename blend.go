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
	"math"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/parallel"
)

// BlendPair contains the weights of the two images of a blend.
type BlendPair struct {
	Alpha, Beta float64
}

func (p BlendPair) String() string {
	return fmt.Sprintf("%g:%g", p.Alpha, p.Beta)
}

// DefaultBlendPairs are the weights (dominant color image, mosaic) used when
// nothing else is configured.
var DefaultBlendPairs = []BlendPair{
	{0.5, 0.5},
	{0.4, 0.6},
	{0.3, 0.7},
	{0.2, 0.8},
	{0.1, 0.9},
}

// ParseBlendPair parses a pair of the form "alpha:beta", for example
// "0.4:0.6".
func ParseBlendPair(s string) (BlendPair, error) {
	split := strings.Split(s, ":")
	if len(split) != 2 {
		return BlendPair{}, fmt.Errorf("Invalid blend format: %s. Expect \"alpha:beta\"", s)
	}
	alpha, alphaErr := strconv.ParseFloat(strings.TrimSpace(split[0]), 64)
	if alphaErr != nil {
		return BlendPair{}, alphaErr
	}
	beta, betaErr := strconv.ParseFloat(strings.TrimSpace(split[1]), 64)
	if betaErr != nil {
		return BlendPair{}, betaErr
	}
	return BlendPair{Alpha: alpha, Beta: beta}, nil
}

// Blend returns the weighted sum alpha * a + beta * b of two images of the
// same size. Each component is rounded and clamped to [0, 255]. The weights
// are not normalized, a sum > 1 brightens the result.
//
// The result has its origin at (0, 0) and is always opaque.
func Blend(a, b image.Image, alpha, beta float64) (*image.RGBA, error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return nil, fmt.Errorf("Can't blend images of size %v and %v: %w",
			a.Bounds().Size(), b.Bounds().Size(), ErrDimensionMismatch)
	}
	srcA, srcB := ToRGBA(a), ToRGBA(b)
	bounds := srcA.Bounds()
	res := image.NewRGBA(bounds)
	width := bounds.Dx()
	parallel.Line(bounds.Dy(), func(start, end int) {
		for y := start; y < end; y++ {
			offset := res.PixOffset(0, y)
			for i := offset; i < offset+4*width; i += 4 {
				res.Pix[i] = weighted(srcA.Pix[i], srcB.Pix[i], alpha, beta)
				res.Pix[i+1] = weighted(srcA.Pix[i+1], srcB.Pix[i+1], alpha, beta)
				res.Pix[i+2] = weighted(srcA.Pix[i+2], srcB.Pix[i+2], alpha, beta)
				res.Pix[i+3] = 0xff
			}
		}
	})
	return res, nil
}

func weighted(x, y uint8, alpha, beta float64) uint8 {
	v := math.Round(alpha*float64(x) + beta*float64(y))
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
