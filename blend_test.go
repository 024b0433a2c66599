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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendSame(t *testing.T) {
	img := gradientImage(31, 17)
	res, err := Blend(img, img, 0.5, 0.5)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, res.Pix)
}

func TestBlendWeights(t *testing.T) {
	a := solidImage(3, 2, color.RGBA{R: 100, G: 0, B: 255, A: 255})
	b := solidImage(3, 2, color.RGBA{R: 200, G: 50, B: 0, A: 255})
	res, err := Blend(a, b, 0.4, 0.6)
	require.NoError(t, err)
	assertSolid(t, res, color.RGBA{R: 160, G: 30, B: 102, A: 255})
}

func TestBlendClamp(t *testing.T) {
	a := solidImage(2, 2, color.RGBA{R: 200, G: 100, B: 10, A: 255})
	res, err := Blend(a, a, 1, 1)
	require.NoError(t, err)
	assertSolid(t, res, color.RGBA{R: 255, G: 200, B: 20, A: 255})

	res, err = Blend(a, a, -1, 0.5)
	require.NoError(t, err)
	assertSolid(t, res, color.RGBA{A: 255})
}

func TestBlendSizes(t *testing.T) {
	_, err := Blend(solidImage(4, 4, red), solidImage(4, 5, red), 0.5, 0.5)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	// only the size matters, not the origin
	img := gradientImage(10, 10)
	sub, err := SubImage(img, image.Rect(5, 5, 10, 10))
	require.NoError(t, err)
	res, err := Blend(sub, solidImage(5, 5, black), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 5), res.Bounds())
	assert.Equal(t, img.RGBAAt(5, 5), res.RGBAAt(0, 0))
}

func TestParseBlendPair(t *testing.T) {
	pair, err := ParseBlendPair("0.4:0.6")
	require.NoError(t, err)
	assert.Equal(t, BlendPair{Alpha: 0.4, Beta: 0.6}, pair)
	assert.Equal(t, "0.4:0.6", pair.String())

	pair, err = ParseBlendPair(" 1 : 1.5 ")
	require.NoError(t, err)
	assert.Equal(t, BlendPair{Alpha: 1, Beta: 1.5}, pair)

	for _, s := range []string{"", "0.5", "a:b", "0.1:0.2:0.3"} {
		_, err = ParseBlendPair(s)
		assert.Error(t, err, s)
	}
}
