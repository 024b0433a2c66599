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
	"context"
	"fmt"
	"image"

	log "github.com/sirupsen/logrus"
)

// ColorSequence contains the dominant color of each cell of a grid in
// row-major order, starting with index 0.
type ColorSequence []RGB

// At returns the color of the cell in row and column col of a grid with the
// given number of columns.
func (seq ColorSequence) At(row, col, columns int) RGB {
	return seq[row*columns+col]
}

// Partition divides img into cells of size cellWidth x cellHeight, computes
// the dominant color of each cell and returns the flattened image (each cell
// painted with its dominant color) together with the colors of all cells.
//
// The dimensions of img must be multiples of the cell size, use Trim to
// prepare an image. img is not modified.
//
// Rows are processed by numRoutines go routines. The result does not depend
// on numRoutines.
func Partition(ctx context.Context, img image.Image, cellWidth, cellHeight, numRoutines int) (*image.RGBA, ColorSequence, error) {
	div, divErr := NewGridDivision(img.Bounds(), cellWidth, cellHeight)
	if divErr != nil {
		return nil, nil, divErr
	}
	if numRoutines <= 0 {
		numRoutines = 1
	}
	flat := ToRGBA(img)
	colors := make(ColorSequence, div.NumCells())

	jobs := make(chan int, BufferSize)
	errorChan := make(chan error, BufferSize)

	for w := 0; w < numRoutines; w++ {
		go func() {
			for row := range jobs {
				errorChan <- partitionRow(ctx, flat, div, row, colors)
			}
		}()
	}

	go func() {
		for row := 0; row < div.Rows; row++ {
			jobs <- row
		}
		close(jobs)
	}()

	// any error that occurs sets this variable (first error)
	var err error
	for row := 0; row < div.Rows; row++ {
		if nextErr := <-errorChan; nextErr != nil && err == nil {
			err = nextErr
		}
	}
	if err != nil {
		return nil, nil, err
	}
	log.WithFields(log.Fields{
		"columns": div.Columns,
		"rows":    div.Rows,
		"cell":    fmt.Sprintf("%dx%d", cellWidth, cellHeight),
	}).Debug("Partitioned image")
	return flat, colors, nil
}

// partitionRow computes and paints all cells of one row. Each row writes only
// to its own cells, so rows can be processed concurrently.
func partitionRow(ctx context.Context, flat *image.RGBA, div GridDivision, row int, colors ColorSequence) error {
	for col := 0; col < div.Columns; col++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		cell := div.Cell(row, col)
		c, avgErr := AverageColorRect(flat, cell)
		if avgErr != nil {
			return avgErr
		}
		fillRect(flat, cell, c)
		colors[div.Index(row, col)] = c
	}
	return nil
}

// fillRect paints r in img with c.
func fillRect(img *image.RGBA, r image.Rectangle, c RGB) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		offset := img.PixOffset(r.Min.X, y)
		row := img.Pix[offset : offset+4*r.Dx()]
		for i := 0; i < len(row); i += 4 {
			row[i] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = 0xff
		}
	}
}
