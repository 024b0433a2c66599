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
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

var (
	// ImageCacheSize is the default size of image caches. Composing a mosaic is
	// much faster if resized tiles are cached, the same tile usually appears
	// many times (or in the same area).
	ImageCacheSize = 60
)

type cacheKey struct {
	id            TileID
	width, height int
}

// ImageCache is used to cache resized versions of tiles during mosaic
// composition. If the cache is full the oldest entry is removed.
//
// Caches are safe for concurrent use.
type ImageCache struct {
	m           *sync.Mutex
	size        int
	content     map[cacheKey]*image.RGBA
	insertOrder []cacheKey
}

// NewImageCache returns an empty image cache. size is the number of images that
// will be cached. size must be ≥ 1.
func NewImageCache(size int) *ImageCache {
	if size <= 0 {
		size = 1
	}
	var m sync.Mutex
	return &ImageCache{
		m:           &m,
		size:        size,
		content:     make(map[cacheKey]*image.RGBA, size),
		insertOrder: make([]cacheKey, 0, size),
	}
}

// Len returns the number of cached images.
func (cache *ImageCache) Len() int {
	cache.m.Lock()
	defer cache.m.Unlock()
	return len(cache.content)
}

// Put adds an image to the cache. Usually Put is called after Get: If the
// image was not found in the cache it is scaled and then added to the cache via
// Put.
func (cache *ImageCache) Put(id TileID, width, height int, img *image.RGBA) {
	cache.m.Lock()
	defer cache.m.Unlock()
	key := cacheKey{id: id, width: width, height: height}
	if _, has := cache.content[key]; has {
		return
	}
	if len(cache.insertOrder) >= cache.size {
		// cache full, remove first element
		fst := cache.insertOrder[0]
		cache.insertOrder = cache.insertOrder[1:]
		delete(cache.content, fst)
	}
	cache.insertOrder = append(cache.insertOrder, key)
	cache.content[key] = img
}

// Get returns the image from the cache. If the return value is nil the image
// was not found in the cache and should be added to the cache by Put.
func (cache *ImageCache) Get(id TileID, width, height int) *image.RGBA {
	cache.m.Lock()
	defer cache.m.Unlock()
	return cache.content[cacheKey{id: id, width: width, height: height}]
}

// AssembleOptions are the parameters of Assemble.
type AssembleOptions struct {
	// Columns and Rows of the grid, len(colors) must be Columns * Rows.
	Columns, Rows int

	// CellWidth and CellHeight are the size of a tile in the mosaic. They're
	// independent of the cell size used for sampling the colors.
	CellWidth, CellHeight int

	// Resizer scales the tiles, defaults to DefaultResizer.
	Resizer ImageResizer

	// NumRoutines is the number of rows composed concurrently.
	NumRoutines int

	// CacheSize is the size of the tile cache, ImageCacheSize if ≤ 0.
	CacheSize int

	// Progress is called with the number of finished rows, may be nil.
	Progress ProgressFunc
}

// Assemble composes the mosaic: For each cell (row-major) the tile matching
// its color is selected, scaled to CellWidth x CellHeight and copied to
// (col * CellWidth, row * CellHeight).
//
// The result has the size (Columns * CellWidth) x (Rows * CellHeight).
// ctx is checked between two cells, if it is cancelled ctx.Err() is returned.
func Assemble(ctx context.Context, colors ColorSequence, lib *TileLibrary, matcher TileMatcher, opts AssembleOptions) (*image.RGBA, error) {
	if opts.Columns <= 0 || opts.Rows <= 0 || opts.CellWidth <= 0 || opts.CellHeight <= 0 {
		return nil, fmt.Errorf("Grid %dx%d with cells %dx%d: %w",
			opts.Columns, opts.Rows, opts.CellWidth, opts.CellHeight, ErrInvalidRegion)
	}
	if len(colors) != opts.Columns*opts.Rows {
		return nil, fmt.Errorf("Got %d colors for a grid of %dx%d cells: %w",
			len(colors), opts.Columns, opts.Rows, ErrDimensionMismatch)
	}
	if lib == nil || lib.Len() == 0 {
		return nil, ErrEmptyLibrary
	}
	if opts.Resizer == nil {
		opts.Resizer = DefaultResizer
	}
	if opts.NumRoutines <= 0 {
		opts.NumRoutines = 1
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = ImageCacheSize
	}
	start := time.Now()
	div := GridDivision{
		Columns:    opts.Columns,
		Rows:       opts.Rows,
		CellWidth:  opts.CellWidth,
		CellHeight: opts.CellHeight,
	}
	res := image.NewRGBA(div.Bounds())
	cache := NewImageCache(opts.CacheSize)

	jobs := make(chan int, BufferSize)
	errorChan := make(chan error, BufferSize)

	for w := 0; w < opts.NumRoutines; w++ {
		go func() {
			for row := range jobs {
				errorChan <- assembleRow(ctx, res, div, row, colors, lib, matcher, opts.Resizer, cache)
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
	for done := 1; done <= div.Rows; done++ {
		if nextErr := <-errorChan; nextErr != nil && err == nil {
			err = nextErr
		}
		if opts.Progress != nil {
			opts.Progress(done)
		}
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"size":     fmt.Sprintf("%dx%d", res.Rect.Dx(), res.Rect.Dy()),
		"duration": time.Since(start),
	}).Debug("Assembled mosaic")
	return res, nil
}

func assembleRow(ctx context.Context, into *image.RGBA, div GridDivision, row int,
	colors ColorSequence, lib *TileLibrary, matcher TileMatcher, resizer ImageResizer,
	cache *ImageCache) error {
	for col := 0; col < div.Columns; col++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c := colors.At(row, col, div.Columns)
		id, matchErr := matcher.Select(c)
		if matchErr != nil {
			return matchErr
		}
		if err := insertTile(into, div.Cell(row, col), lib, id, resizer, cache); err != nil {
			return err
		}
	}
	return nil
}

func insertTile(into *image.RGBA, area image.Rectangle, lib *TileLibrary, id TileID,
	resizer ImageResizer, cache *ImageCache) error {
	tileWidth, tileHeight := area.Dx(), area.Dy()
	// first try to lookup the image in the cache
	img := cache.Get(id, tileWidth, tileHeight)
	if img == nil {
		rec, ok := lib.Record(id)
		if !ok {
			return &MissingTileError{ID: id, Err: fmt.Errorf("Tile not in library")}
		}
		img = resizeRGBA(resizer, tileWidth, tileHeight, rec.Image)
		cache.Put(id, tileWidth, tileHeight, img)
	}
	draw.Copy(into, area.Min, img, img.Bounds(), draw.Src, nil)
	return nil
}
