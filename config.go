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
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const (
	// MaxBlendPairs is the maximal number of blended images of a run.
	MaxBlendPairs = 5

	// DefaultTilePattern is the file name pattern of the tiles if they're
	// addressed by number.
	DefaultTilePattern = "r_m_%d.jpg"
)

// Config contains all parameters of a mosaic run. There is no global state,
// each run gets its own configuration.
type Config struct {
	// TargetPath is the image the mosaic is created for.
	TargetPath string

	// TileDir is the directory of the tile images.
	TileDir string

	// TilePattern is the file name pattern of tile i (fmt syntax, e.g.
	// "r_m_%d.jpg"). Only used if NumTiles > 0.
	TilePattern string

	// NumTiles is the number of tiles named by TilePattern. If it is 0 all jpg
	// and png files in TileDir are used.
	NumTiles int

	// Recursive describes whether TileDir is scanned recursively (only if
	// NumTiles is 0).
	Recursive bool

	// CellWidth and CellHeight describe the cells of the target image that
	// are sampled.
	CellWidth, CellHeight int

	// OutCellWidth and OutCellHeight describe the size of a tile in the mosaic.
	// The mosaic can have a much higher resolution than the sampling grid.
	OutCellWidth, OutCellHeight int

	// Trim describes how the target is prepared if its size is not a multiple
	// of the cell size.
	Trim TrimMode

	// Resizer is used for all scaling operations.
	Resizer ImageResizer

	// Matcher selects the TileMatcher implementation.
	Matcher MatcherKind

	// BlendPairs are the weights of the blended images (dominant color image,
	// mosaic), at most MaxBlendPairs.
	BlendPairs []BlendPair

	// NumRoutines is the number of go routines used for different tasks.
	NumRoutines int

	// CacheSize is the size of the tile cache during composition.
	CacheSize int

	// OutputDir is the directory all images are written to.
	OutputDir string

	// JPGQuality is the quality between 1 and 100 used when storing jpg
	// images.
	JPGQuality int

	// Ext is the extension (".jpg" or ".png") of the written images.
	Ext string

	// Grid describes whether the debug grid image is created.
	Grid bool

	// GridColor is the color of the grid lines.
	GridColor RGB
}

// DefaultNumRoutines returns the number of go routines used by default.
func DefaultNumRoutines() int {
	// seems reasonable
	res := runtime.NumCPU() * 2
	if res <= 0 {
		res = 4
	}
	return res
}

// DefaultConfig returns the configuration with all defaults set. TargetPath
// and TileDir must be set by the caller.
func DefaultConfig() Config {
	pairs := make([]BlendPair, len(DefaultBlendPairs))
	copy(pairs, DefaultBlendPairs)
	return Config{
		TilePattern:   DefaultTilePattern,
		CellWidth:     70,
		CellHeight:    70,
		OutCellWidth:  200,
		OutCellHeight: 200,
		Trim:          TrimCrop,
		Resizer:       DefaultResizer,
		Matcher:       LinearMatch,
		BlendPairs:    pairs,
		NumRoutines:   DefaultNumRoutines(),
		CacheSize:     ImageCacheSize,
		OutputDir:     ".",
		JPGQuality:    95,
		Ext:           ".jpg",
		Grid:          true,
		GridColor:     DefaultGridColor,
	}
}

// Validate checks the parameters that are required for Pipeline.Run.
// Paths and the output parameters are not checked, see ValidateOutput.
func (cfg *Config) Validate() error {
	if cfg.CellWidth <= 0 || cfg.CellHeight <= 0 {
		return fmt.Errorf("Cell size must be positive, got %dx%d: %w",
			cfg.CellWidth, cfg.CellHeight, ErrInvalidRegion)
	}
	if cfg.OutCellWidth <= 0 || cfg.OutCellHeight <= 0 {
		return fmt.Errorf("Output cell size must be positive, got %dx%d: %w",
			cfg.OutCellWidth, cfg.OutCellHeight, ErrInvalidRegion)
	}
	if cfg.NumTiles < 0 {
		return fmt.Errorf("Number of tiles must be ≥ 0, got %d", cfg.NumTiles)
	}
	if cfg.NumTiles > 0 && cfg.TilePattern != "" {
		if err := checkTilePattern(cfg.TilePattern); err != nil {
			return err
		}
	}
	if len(cfg.BlendPairs) > MaxBlendPairs {
		return fmt.Errorf("At most %d blend pairs are supported, got %d",
			MaxBlendPairs, len(cfg.BlendPairs))
	}
	switch cfg.Trim {
	case TrimCrop, TrimResize:
	default:
		return fmt.Errorf("Unknown trim mode %v", cfg.Trim)
	}
	switch cfg.Matcher {
	case LinearMatch, SortedMatch:
	default:
		return fmt.Errorf("Unknown matcher kind %v", cfg.Matcher)
	}
	return nil
}

// ValidateOutput checks the parameters used when the images are written by
// RunFiles.
func (cfg *Config) ValidateOutput() error {
	if cfg.JPGQuality < 1 || cfg.JPGQuality > 100 {
		return fmt.Errorf("Invalid value for jpeg quality (must be int between 1 and 100): %d",
			cfg.JPGQuality)
	}
	switch cfg.Ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return fmt.Errorf("Unsupported file type: %s, expected .jpg or .png", cfg.Ext)
	}
	return nil
}

// checkTilePattern makes sure that pattern contains exactly one integer verb
// and yields a different name for each tile.
func checkTilePattern(pattern string) error {
	first, second := fmt.Sprintf(pattern, 1), fmt.Sprintf(pattern, 2)
	if strings.Contains(first, "%!") || first == second {
		return fmt.Errorf("Invalid tile pattern %q: Expected exactly one integer verb like \"r_m_%%d.jpg\"", pattern)
	}
	return nil
}

// errNoTarget is returned by RunFiles if no target is configured.
var errNoTarget = errors.New("No target image given")
