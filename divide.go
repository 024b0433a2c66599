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
	"strings"

	"golang.org/x/image/draw"
)

// TrimMode is used to describe in which way to handle remaining pixels
// before an image is divided into cells.
// As an example consider an image with 99 pixels width and cells with 10
// pixels. This leads to 9 cells, but 9 pixels are left. TrimCrop discards the
// remaining 9 pixels, TrimResize scales the whole image down to 90 pixels.
// Padding is never done.
type TrimMode int

const (
	// TrimCrop is the mode in which remaining pixels at the right and bottom
	// border are discarded.
	TrimCrop TrimMode = iota
	// TrimResize is the mode in which the image is scaled (area interpolation)
	// to the largest dimensions that are multiples of the cell size.
	TrimResize
)

func (mode TrimMode) String() string {
	switch mode {
	case TrimCrop:
		return "crop"
	case TrimResize:
		return "resize"
	default:
		return fmt.Sprintf("TrimMode(%d)", mode)
	}
}

// ParseTrimMode parses "crop" or "resize".
func ParseTrimMode(s string) (TrimMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crop":
		return TrimCrop, nil
	case "resize":
		return TrimResize, nil
	default:
		return -1, fmt.Errorf("Unknown trim mode %q, expected \"crop\" or \"resize\"", s)
	}
}

// GridDivision describes the division of an image into Rows x Columns cells
// of equal size. The grid always starts at (0, 0).
type GridDivision struct {
	Columns, Rows         int
	CellWidth, CellHeight int
}

// NewGridDivision returns the division of bounds into cells of the given size.
// The dimensions of bounds must be multiples of the cell size, otherwise an
// error wrapping ErrDimensionMismatch is returned.
func NewGridDivision(bounds image.Rectangle, cellWidth, cellHeight int) (GridDivision, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return GridDivision{}, fmt.Errorf("Cell size must be positive, got %dx%d: %w",
			cellWidth, cellHeight, ErrInvalidRegion)
	}
	if bounds.Empty() {
		return GridDivision{}, fmt.Errorf("Can't divide empty image: %w", ErrInvalidRegion)
	}
	width, height := bounds.Dx(), bounds.Dy()
	if width%cellWidth != 0 || height%cellHeight != 0 {
		return GridDivision{}, fmt.Errorf("Image size %dx%d is not a multiple of cell size %dx%d: %w",
			width, height, cellWidth, cellHeight, ErrDimensionMismatch)
	}
	return GridDivision{
		Columns:    width / cellWidth,
		Rows:       height / cellHeight,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
	}, nil
}

// NumCells returns Rows * Columns.
func (div GridDivision) NumCells() int {
	return div.Rows * div.Columns
}

// Index returns the row-major index of the cell.
func (div GridDivision) Index(row, col int) int {
	return row*div.Columns + col
}

// Cell returns the pixel rectangle of the cell in row and column col.
func (div GridDivision) Cell(row, col int) image.Rectangle {
	x0 := col * div.CellWidth
	y0 := row * div.CellHeight
	return image.Rect(x0, y0, x0+div.CellWidth, y0+div.CellHeight)
}

// Bounds returns the rectangle covered by all cells.
func (div GridDivision) Bounds() image.Rectangle {
	return image.Rect(0, 0, div.Columns*div.CellWidth, div.Rows*div.CellHeight)
}

// TrimmedSize returns the largest width and height not greater than the
// original width and height that are multiples of the cell size.
func TrimmedSize(width, height, cellWidth, cellHeight int) (int, int) {
	return width - width%cellWidth, height - height%cellHeight
}

// Trim returns an image that can be divided into cells of the given size.
// The result is always a new *image.RGBA with origin (0, 0), img is not
// changed.
// If img is smaller than a single cell an error wrapping ErrDimensionMismatch
// is returned.
func Trim(img image.Image, cellWidth, cellHeight int, mode TrimMode, resizer ImageResizer) (*image.RGBA, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("Cell size must be positive, got %dx%d: %w",
			cellWidth, cellHeight, ErrInvalidRegion)
	}
	bounds := img.Bounds()
	width, height := TrimmedSize(bounds.Dx(), bounds.Dy(), cellWidth, cellHeight)
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("Image of size %dx%d is smaller than a cell of size %dx%d: %w",
			bounds.Dx(), bounds.Dy(), cellWidth, cellHeight, ErrDimensionMismatch)
	}
	switch mode {
	case TrimCrop:
		sub := image.Rect(0, 0, width, height).Add(bounds.Min)
		res := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(res, res.Bounds(), img, sub.Min, draw.Src)
		return res, nil
	case TrimResize:
		if resizer == nil {
			resizer = DefaultResizer
		}
		return resizeRGBA(resizer, width, height, img), nil
	default:
		return nil, fmt.Errorf("Unknown trim mode %v", mode)
	}
}
