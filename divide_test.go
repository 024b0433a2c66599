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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridDivision(t *testing.T) {
	div, err := NewGridDivision(image.Rect(0, 0, 6, 4), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, div.Columns)
	assert.Equal(t, 2, div.Rows)
	assert.Equal(t, 6, div.NumCells())
	assert.Equal(t, 5, div.Index(1, 2))
	assert.Equal(t, image.Rect(4, 2, 6, 4), div.Cell(1, 2))
	assert.Equal(t, image.Rect(0, 0, 6, 4), div.Bounds())

	_, err = NewGridDivision(image.Rect(0, 0, 5, 4), 2, 2)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewGridDivision(image.Rect(0, 0, 4, 4), 0, 2)
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = NewGridDivision(image.Rectangle{}, 2, 2)
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestTrimmedSize(t *testing.T) {
	w, h := TrimmedSize(99, 55, 10, 10)
	assert.Equal(t, 90, w)
	assert.Equal(t, 50, h)

	w, h = TrimmedSize(40, 30, 20, 15)
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)
}

func TestTrimCrop(t *testing.T) {
	img := gradientImage(99, 55)
	res, err := Trim(img, 10, 10, TrimCrop, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 90, 50), res.Bounds())
	assert.Equal(t, img.RGBAAt(0, 0), res.RGBAAt(0, 0))
	assert.Equal(t, img.RGBAAt(89, 49), res.RGBAAt(89, 49))
	assert.Equal(t, image.Rect(0, 0, 99, 55), img.Bounds())
}

func TestTrimCropSubImage(t *testing.T) {
	img := gradientImage(30, 30)
	sub, err := SubImage(img, image.Rect(5, 5, 29, 27))
	require.NoError(t, err)
	res, err := Trim(sub, 10, 10, TrimCrop, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 20), res.Bounds())
	assert.Equal(t, img.RGBAAt(5, 5), res.RGBAAt(0, 0))
	assert.Equal(t, img.RGBAAt(24, 24), res.RGBAAt(19, 19))
}

func TestTrimResize(t *testing.T) {
	img := solidImage(99, 55, green)
	res, err := Trim(img, 10, 10, TrimResize, AreaResizer{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 90, 50), res.Bounds())
	assertSolid(t, res, green)
}

func TestTrimExact(t *testing.T) {
	img := gradientImage(20, 10)
	for _, mode := range []TrimMode{TrimCrop, TrimResize} {
		res, err := Trim(img, 10, 10, mode, nil)
		require.NoError(t, err)
		assert.Equal(t, img.Pix, res.Pix, mode.String())
	}
}

func TestTrimTooSmall(t *testing.T) {
	_, err := Trim(solidImage(9, 20, red), 10, 10, TrimCrop, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Trim(solidImage(20, 20, red), 10, -1, TrimCrop, nil)
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestParseTrimMode(t *testing.T) {
	mode, err := ParseTrimMode("crop")
	require.NoError(t, err)
	assert.Equal(t, TrimCrop, mode)

	mode, err = ParseTrimMode(" Resize ")
	require.NoError(t, err)
	assert.Equal(t, TrimResize, mode)

	_, err = ParseTrimMode("pad")
	assert.Error(t, err)
	assert.Equal(t, "TrimMode(7)", TrimMode(7).String())
}
