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
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
)

// TileStorage is used to administrate the collection of tile images.
// Tiles are identified by the ids 1, ..., NumTiles().
// LoadTile must return an error if the id is not associated with any image
// data or if there is an error reading the image (e.g. from the filesystem).
//
// Implementations must be safe for concurrent use.
type TileStorage interface {
	// NumTiles returns the number of tiles in the storage.
	NumTiles() int

	// LoadTile loads a tile into memory.
	LoadTile(id TileID) (image.Image, error)
}

// TileIDs returns the list [1, 2, ..., storage.NumTiles()].
func TileIDs(storage TileStorage) []TileID {
	numTiles := storage.NumTiles()
	res := make([]TileID, numTiles)
	for i := range res {
		res[i] = TileID(i + 1)
	}
	return res
}

// FSTileStorage implements TileStorage. It uses images stored on the
// filesystem and opens them on demand.
// The paths are stored relative to a Root directory, Paths[0] is the file of
// the tile with id 1.
type FSTileStorage struct {
	Root  string
	Paths []string
}

// NewFSTileStorage returns an empty storage for the given root directory.
func NewFSTileStorage(root string) *FSTileStorage {
	return &FSTileStorage{Root: root, Paths: nil}
}

// PatternTileStorage returns a storage with numTiles tiles where the file of
// tile i is fmt.Sprintf(pattern, i), for example "r_m_%d.jpg".
// The files are not checked, missing files are reported during loading.
func PatternTileStorage(root, pattern string, numTiles int) *FSTileStorage {
	res := NewFSTileStorage(root)
	res.Paths = make([]string, numTiles)
	for i := range res.Paths {
		res.Paths[i] = fmt.Sprintf(pattern, i+1)
	}
	return res
}

// GetPath returns the absolute path of the tile file.
func (db *FSTileStorage) GetPath(id TileID) string {
	return filepath.Join(db.Root, db.Paths[id-1])
}

// NumTiles returns the number of paths.
func (db *FSTileStorage) NumTiles() int {
	return len(db.Paths)
}

// LoadTile opens and decodes the file of the tile.
// All errors are reported as *MissingTileError.
func (db *FSTileStorage) LoadTile(id TileID) (image.Image, error) {
	if id < 1 || int(id) > db.NumTiles() {
		return nil, &MissingTileError{ID: id,
			Err: fmt.Errorf("Invalid tile id: Not associated with an image %d", id)}
	}
	file := db.GetPath(id)
	img, err := imaging.Open(file)
	if err != nil {
		return nil, &MissingTileError{ID: id, Path: file, Err: err}
	}
	return img, nil
}

// GenFSTileStorage collects all files in root accepted by filter. If
// recursive is true subdirectories are scanned as well.
// Paths are sorted, so ids are stable between runs on the same directory.
func GenFSTileStorage(root string, recursive bool, filter SupportedImageFunc) (*FSTileStorage, error) {
	root, absErr := filepath.Abs(root)
	if absErr != nil {
		return nil, absErr
	}
	if filter == nil {
		filter = JPGAndPNG
	}
	var res *FSTileStorage
	var err error
	if recursive {
		res, err = genFSRecursive(root, filter)
	} else {
		res, err = genFSNonRecursive(root, filter)
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(res.Paths)
	return res, nil
}

func genFSRecursive(root string, filter SupportedImageFunc) (*FSTileStorage, error) {
	result := NewFSTileStorage(root)
	walkFunc := func(path string, info os.FileInfo, err error) error {
		switch {
		case err != nil:
			return err
		case !info.IsDir() && filter(filepath.Ext(path)):
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			result.Paths = append(result.Paths, rel)
			return nil
		default:
			return nil
		}
	}
	if err := filepath.Walk(root, walkFunc); err != nil {
		return nil, err
	}
	return result, nil
}

func genFSNonRecursive(root string, filter SupportedImageFunc) (*FSTileStorage, error) {
	result := NewFSTileStorage(root)
	files, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if !file.IsDir() && filter(filepath.Ext(file.Name())) {
			result.Paths = append(result.Paths, file.Name())
		}
	}
	return result, nil
}

// MemoryTileStorage is a TileStorage for images that are already in memory.
// Images[0] is the tile with id 1.
type MemoryTileStorage struct {
	Images []image.Image
}

// NewMemoryTileStorage returns a storage containing the images.
func NewMemoryTileStorage(images ...image.Image) *MemoryTileStorage {
	return &MemoryTileStorage{Images: images}
}

// NumTiles returns the number of images.
func (s *MemoryTileStorage) NumTiles() int {
	return len(s.Images)
}

// LoadTile returns the image, nil images are reported as missing.
func (s *MemoryTileStorage) LoadTile(id TileID) (image.Image, error) {
	if id < 1 || int(id) > len(s.Images) {
		return nil, &MissingTileError{ID: id,
			Err: fmt.Errorf("Invalid tile id: Not associated with an image %d", id)}
	}
	img := s.Images[id-1]
	if img == nil {
		return nil, &MissingTileError{ID: id, Err: fmt.Errorf("No image data")}
	}
	return img, nil
}
