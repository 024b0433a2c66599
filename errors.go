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
)

var (
	// ErrInvalidRegion is returned if a region to sample has no pixels or if a
	// cell size is not positive.
	ErrInvalidRegion = errors.New("Invalid region")

	// ErrDimensionMismatch is returned if an image can't be divided into cells
	// of the requested size or if two images that must be of the same size
	// differ.
	ErrDimensionMismatch = errors.New("Dimension mismatch")

	// ErrMissingTile is returned (wrapped in a MissingTileError) if a tile of
	// the library can't be loaded.
	ErrMissingTile = errors.New("Missing tile")

	// ErrEmptyLibrary is returned if a tile is requested from a library without
	// tiles.
	ErrEmptyLibrary = errors.New("Empty tile library")
)

// MissingTileError describes a tile that could not be read or decoded.
// errors.Is(err, ErrMissingTile) holds for each MissingTileError.
type MissingTileError struct {
	ID   TileID
	Path string
	Err  error
}

func (e *MissingTileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("Missing tile %d: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("Missing tile %d (%s): %v", e.ID, e.Path, e.Err)
}

// Unwrap returns the underlying load error.
func (e *MissingTileError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMissingTile.
func (e *MissingTileError) Is(target error) bool {
	return target == ErrMissingTile
}
