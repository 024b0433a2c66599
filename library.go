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
	"time"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

// SquareRect returns the centered square of bounds that keeps as many pixels
// as possible. If the width is greater than the height the columns are cut
// symmetrically, otherwise the rows.
//
// The offset is rounded down on both sides, so for an odd difference the
// retained side is one pixel longer than the short side (a 5x2 image keeps
// the columns [1, 4)).
func SquareRect(bounds image.Rectangle) image.Rectangle {
	width, height := bounds.Dx(), bounds.Dy()
	if width > height {
		offset := (width - height) / 2
		return image.Rect(offset, 0, width-offset, height).Add(bounds.Min)
	}
	offset := (height - width) / 2
	return image.Rect(0, offset, width, height-offset).Add(bounds.Min)
}

// SquareImage crops img to SquareRect(img.Bounds()). The result has its
// origin at (0, 0).
func SquareImage(img image.Image) *image.RGBA {
	return ToRGBA(imaging.Crop(img, SquareRect(img.Bounds())))
}

// TileRecord is an entry of a TileLibrary: the square cropped tile and its
// dominant color.
type TileRecord struct {
	ID    TileID
	Color RGB
	Image *image.RGBA
}

// TileLibrary maps the tile ids 1, ..., N to their records.
//
// A library is not changed after BuildTileLibrary returns and can be used
// concurrently.
type TileLibrary struct {
	records []TileRecord
}

// NewTileLibrary returns a library containing the records. The id of
// records[i] must be i + 1.
func NewTileLibrary(records []TileRecord) (*TileLibrary, error) {
	for i, rec := range records {
		if rec.ID != TileID(i+1) {
			return nil, fmt.Errorf("Invalid tile id at position %d: Expected %d, got %d",
				i, i+1, rec.ID)
		}
	}
	return &TileLibrary{records: records}, nil
}

// Len returns the number of tiles in the library.
func (lib *TileLibrary) Len() int {
	return len(lib.records)
}

// Record returns the record of a tile. ok is false if the id is not valid.
func (lib *TileLibrary) Record(id TileID) (rec TileRecord, ok bool) {
	if id < 1 || int(id) > len(lib.records) {
		return TileRecord{}, false
	}
	return lib.records[id-1], true
}

// Records returns all records ordered by id. The slice must not be modified.
func (lib *TileLibrary) Records() []TileRecord {
	return lib.records
}

// BuildTileLibrary loads each tile of the storage once, crops it to a square
// and computes its dominant color.
// It runs the loading concurrently (how many go routines run concurrently can
// be controlled by numRoutines). progress is called after each tile, it may
// be nil.
//
// If a tile can't be loaded the first error (a *MissingTileError for the
// storages in this package) is returned. An empty storage yields
// ErrEmptyLibrary.
func BuildTileLibrary(ctx context.Context, storage TileStorage, numRoutines int, progress ProgressFunc) (*TileLibrary, error) {
	if numRoutines <= 0 {
		numRoutines = 1
	}
	numTiles := storage.NumTiles()
	if numTiles == 0 {
		return nil, ErrEmptyLibrary
	}
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan TileID, BufferSize)
	errorChan := make(chan error, BufferSize)
	records := make([]TileRecord, numTiles)

	for w := 0; w < numRoutines; w++ {
		go func() {
			for id := range jobs {
				if ctxErr := ctx.Err(); ctxErr != nil {
					errorChan <- ctxErr
					continue
				}
				rec, recErr := loadTileRecord(storage, id)
				if recErr == nil {
					records[id-1] = rec
				}
				errorChan <- recErr
			}
		}()
	}

	go func() {
		for _, id := range TileIDs(storage) {
			jobs <- id
		}
		close(jobs)
	}()

	// any error that occurs sets this variable (first error)
	var err error
	for i := 0; i < numTiles; i++ {
		nextErr := <-errorChan
		if nextErr != nil && err == nil {
			err = nextErr
			// no need to load the remaining tiles
			cancel()
		}
		if progress != nil {
			progress(i + 1)
		}
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"tiles":    numTiles,
		"duration": time.Since(start),
	}).Debug("Built tile library")
	return &TileLibrary{records: records}, nil
}

func loadTileRecord(storage TileStorage, id TileID) (TileRecord, error) {
	img, loadErr := storage.LoadTile(id)
	if loadErr != nil {
		return TileRecord{}, loadErr
	}
	if img.Bounds().Empty() {
		return TileRecord{}, &MissingTileError{ID: id, Err: fmt.Errorf("Empty image: %w", ErrInvalidRegion)}
	}
	square := SquareImage(img)
	c, avgErr := AverageColor(square)
	if avgErr != nil {
		return TileRecord{}, &MissingTileError{ID: id, Err: avgErr}
	}
	return TileRecord{ID: id, Color: c, Image: square}, nil
}
