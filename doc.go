// Package photomosaic creates mosaic images from a target image and a library
// of tile images.
//
// The target is divided into a regular grid, the dominant (mean) color of
// each cell is computed and each cell is replaced by the tile whose dominant
// color is closest. Colors are compared by their packed value
// (r * 256² + g * 256 + b), see RGB.Pack. Finally the flattened target (each
// cell painted in its dominant color) is blended over the mosaic to restore
// the shading of the target.
//
// The size of the tiles in the mosaic is independent of the size of the
// sampled cells, so the mosaic usually has a much higher resolution than the
// target.
//
// It ships with an executable program (cmd/mosaic) to generate mosaic images
// from images on the filesystem.
package photomosaic
