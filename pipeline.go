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
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Result contains all images created by a run.
type Result struct {
	// Resized is the trimmed target.
	Resized *image.RGBA

	// Flattened is Resized with each cell painted in its dominant color.
	Flattened *image.RGBA

	// FlattenedScaled is Flattened scaled to the size of Mosaic.
	FlattenedScaled *image.RGBA

	// Colors are the dominant colors of the cells (row-major).
	Colors ColorSequence

	// Mosaic is the composed mosaic.
	Mosaic *image.RGBA

	// Blends contains one image for each configured blend pair.
	Blends []*image.RGBA

	// Grid is Resized with grid lines, nil if not configured.
	Grid *image.RGBA

	Columns, Rows int
}

// Pipeline creates mosaics for a configuration and a tile storage.
type Pipeline struct {
	Config  Config
	Storage TileStorage

	// Progress is called with the number of finished mosaic rows, may be nil.
	Progress ProgressFunc

	// NewProgress is called with the number of mosaic rows once the target is
	// trimmed. If set, the returned function replaces Progress.
	NewProgress ProgressFactory
}

// NewPipeline returns a new pipeline. The configuration is validated by Run.
func NewPipeline(cfg Config, storage TileStorage) *Pipeline {
	return &Pipeline{Config: cfg, Storage: storage}
}

// Run creates the mosaic for target.
//
// The steps are: Trim the target, partition it into cells, load the tile
// library, compose the mosaic, scale the flattened image to the mosaic size
// and blend both images for each blend pair.
// The library is loaded after all cell colors are known and before the first
// tile is selected.
func (p *Pipeline) Run(ctx context.Context, target image.Image) (*Result, error) {
	cfg := p.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	resizer := cfg.Resizer
	if resizer == nil {
		resizer = DefaultResizer
	}
	logger := log.WithField("run", uuid.New().String())
	start := time.Now()

	resized, trimErr := Trim(target, cfg.CellWidth, cfg.CellHeight, cfg.Trim, resizer)
	if trimErr != nil {
		return nil, trimErr
	}
	flattened, colors, partErr := Partition(ctx, resized, cfg.CellWidth, cfg.CellHeight, cfg.NumRoutines)
	if partErr != nil {
		return nil, partErr
	}
	div, _ := NewGridDivision(resized.Bounds(), cfg.CellWidth, cfg.CellHeight)
	progress := p.Progress
	if p.NewProgress != nil {
		progress = p.NewProgress(div.Rows)
	}
	logger.WithFields(log.Fields{
		"columns": div.Columns,
		"rows":    div.Rows,
		"images":  div.NumCells(),
	}).Info("Computed dominant colors")

	lib, libErr := BuildTileLibrary(ctx, p.Storage, cfg.NumRoutines, nil)
	if libErr != nil {
		return nil, libErr
	}
	logger.WithField("tiles", lib.Len()).Info("Loaded tile library")

	matcher, matchErr := NewMatcher(lib, cfg.Matcher)
	if matchErr != nil {
		return nil, matchErr
	}
	mosaic, mosaicErr := Assemble(ctx, colors, lib, matcher, AssembleOptions{
		Columns:     div.Columns,
		Rows:        div.Rows,
		CellWidth:   cfg.OutCellWidth,
		CellHeight:  cfg.OutCellHeight,
		Resizer:     resizer,
		NumRoutines: cfg.NumRoutines,
		CacheSize:   cfg.CacheSize,
		Progress:    progress,
	})
	if mosaicErr != nil {
		return nil, mosaicErr
	}

	mosaicBounds := mosaic.Bounds()
	flatScaled := resizeRGBA(resizer, mosaicBounds.Dx(), mosaicBounds.Dy(), flattened)
	blends := make([]*image.RGBA, 0, len(cfg.BlendPairs))
	for _, pair := range cfg.BlendPairs {
		blended, blendErr := Blend(flatScaled, mosaic, pair.Alpha, pair.Beta)
		if blendErr != nil {
			return nil, blendErr
		}
		blends = append(blends, blended)
	}

	res := &Result{
		Resized:         resized,
		Flattened:       flattened,
		FlattenedScaled: flatScaled,
		Colors:          colors,
		Mosaic:          mosaic,
		Blends:          blends,
		Columns:         div.Columns,
		Rows:            div.Rows,
	}
	if cfg.Grid {
		res.Grid = GridImage(resized, cfg.CellWidth, cfg.CellHeight, cfg.GridColor)
	}
	logger.WithFields(log.Fields{
		"size":     fmt.Sprintf("%dx%d", mosaicBounds.Dx(), mosaicBounds.Dy()),
		"duration": time.Since(start),
	}).Info("Mosaic complete")
	return res, nil
}

// NewTileStorage returns the tile storage described by the configuration:
// NumTiles files named by TilePattern or all images in TileDir.
func NewTileStorage(cfg Config) (TileStorage, error) {
	dir, dirErr := ExpandPath(cfg.TileDir)
	if dirErr != nil {
		return nil, dirErr
	}
	if cfg.NumTiles > 0 {
		pattern := cfg.TilePattern
		if pattern == "" {
			pattern = DefaultTilePattern
		}
		return PatternTileStorage(dir, pattern, cfg.NumTiles), nil
	}
	return GenFSTileStorage(dir, cfg.Recursive, JPGAndPNG)
}

// OutputNames returns the base names (without extension) of the written
// images in the order resized, dominant color, mosaic, blends, grid.
func OutputNames(numBlends int, grid bool) []string {
	res := []string{"resized", "dominantColor", "mosaic"}
	for i := 0; i < numBlends; i++ {
		if i == 0 {
			res = append(res, "overlapImg")
		} else {
			res = append(res, fmt.Sprintf("overlapImg%d", i+1))
		}
	}
	if grid {
		res = append(res, "gridImage")
	}
	return res
}

// RunFiles reads the target, runs the pipeline and writes all result images
// to cfg.OutputDir. It returns the paths of the written files.
// progress creates the ProgressFunc for the mosaic rows, it may be nil.
func RunFiles(ctx context.Context, cfg Config, progress ProgressFactory) ([]string, error) {
	if cfg.TargetPath == "" {
		return nil, errNoTarget
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateOutput(); err != nil {
		return nil, err
	}
	targetPath, pathErr := ExpandPath(cfg.TargetPath)
	if pathErr != nil {
		return nil, pathErr
	}
	outDir, outErr := ExpandPath(cfg.OutputDir)
	if outErr != nil {
		return nil, outErr
	}
	target, openErr := imaging.Open(targetPath, imaging.AutoOrientation(true))
	if openErr != nil {
		return nil, fmt.Errorf("Can't read target image: %w", openErr)
	}
	storage, storageErr := NewTileStorage(cfg)
	if storageErr != nil {
		return nil, storageErr
	}
	p := NewPipeline(cfg, storage)
	p.NewProgress = progress
	res, runErr := p.Run(ctx, target)
	if runErr != nil {
		return nil, runErr
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}
	images := []image.Image{res.Resized, res.FlattenedScaled, res.Mosaic}
	for _, blended := range res.Blends {
		images = append(images, blended)
	}
	if res.Grid != nil {
		images = append(images, res.Grid)
	}
	names := OutputNames(len(res.Blends), res.Grid != nil)
	paths := make([]string, 0, len(images))
	for i, img := range images {
		path := filepath.Join(outDir, names[i]+cfg.Ext)
		if err := imaging.Save(img, path, imaging.JPEGQuality(cfg.JPGQuality)); err != nil {
			return nil, fmt.Errorf("Can't write %s: %w", path, err)
		}
		log.WithField("file", path).Debug("Wrote image")
		paths = append(paths, path)
	}
	return paths, nil
}
