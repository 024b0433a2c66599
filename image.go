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
	"image/color"
	"reflect"
	"strings"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// SupportedImageFunc is a function that takes a file extension and decides if
// this file extension is supported.
//
// The extension passed to this function could be for example ".txt" or ".jpg".
type SupportedImageFunc func(ext string) bool

// JPGAndPNG is an implementation of SupportedImageFunc accepting jpg and png
// file extensions.
func JPGAndPNG(ext string) bool {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// RGB is a color containing r, g and b components.
type RGB struct {
	R, G, B uint8
}

// NewRGB returns a new RGB color.
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// ConvertRGB converts a generic color into the internal RGB representation.
// Alpha is dropped.
func ConvertRGB(c color.Color) RGB {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return RGB{R: rgba.R, G: rgba.G, B: rgba.B}
}

// Pack encodes the color as a single base-256 number, red being the most
// significant component. Packed values are ordered the same way as the
// six-digit hex notation of the color.
func (c RGB) Pack() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// UnpackRGB is the inverse of Pack. Bits above the lowest 24 are ignored.
func UnpackRGB(packed uint32) RGB {
	return RGB{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
	}
}

// PackedDistance returns |c.Pack() - other.Pack()|.
func (c RGB) PackedDistance(other RGB) uint32 {
	a, b := c.Pack(), other.Pack()
	if a < b {
		return b - a
	}
	return a - b
}

// RGBA implements color.Color, the color is always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the color in "#rrggbb" notation. It is meant for output only.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

func (c RGB) String() string {
	return c.Hex()
}

// ParseHexColor parses a color in "#rrggbb" notation.
func ParseHexColor(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("Invalid color %q: %v", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// SubImager is a type that can produce a sub image from an original image.
type SubImager interface {
	SubImage(r image.Rectangle) image.Image
}

// SubImage returns a subimage of img given the boundaries r.
// The rectangle should be a valid area in the image. If the image type does
// not have a sub image method an error is returned.
func SubImage(img image.Image, r image.Rectangle) (image.Image, error) {
	imager, ok := img.(SubImager)
	if !ok {
		return nil, fmt.Errorf("Can't create sub image from type %v", reflect.TypeOf(img))
	}
	return imager.SubImage(r), nil
}

// ToRGBA returns a copy of img as an *image.RGBA with its origin moved to
// (0, 0). The original image is never modified.
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	res := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(res, res.Bounds(), img, bounds.Min, draw.Src)
	return res
}

// ImageResizer resizes an image to the given width and height.
type ImageResizer interface {
	Resize(width, height uint, img image.Image) image.Image
}

// AreaResizer resizes with a box filter. When shrinking images this averages
// all source pixels covered by a destination pixel (area interpolation).
type AreaResizer struct{}

// Resize calls imaging.Resize with the box filter.
func (AreaResizer) Resize(width, height uint, img image.Image) image.Image {
	return imaging.Resize(img, int(width), int(height), imaging.Box)
}

// NfntResizer uses the nfnt/resize package to resize an image.
type NfntResizer struct {
	// InterP is the interpolation function to use.
	InterP resize.InterpolationFunction
}

// NewNfntResizer returns a new resizer given the interpolation function.
func NewNfntResizer(interP resize.InterpolationFunction) NfntResizer {
	return NfntResizer{interP}
}

// Resize calls nfnt/resize methods.
func (resizer NfntResizer) Resize(width, height uint, img image.Image) image.Image {
	return resize.Resize(width, height, img, resizer.InterP)
}

// GetInterP returns an interpolation function given a desired quality.
// The higher the quality the better the interpolation should be, but execution
// time is higher. Currently supported are values between 0 and 4, each
// selecting a different interpolation function. Values greater than 4 are
// treated as 5 (Lanczos3).
func GetInterP(quality uint) resize.InterpolationFunction {
	switch quality {
	case 0:
		return resize.NearestNeighbor
	case 1:
		return resize.Bilinear
	case 2:
		return resize.Bicubic
	case 3:
		return resize.MitchellNetravali
	case 4:
		return resize.Lanczos2
	default:
		return resize.Lanczos3
	}
}

var (
	// DefaultResizer is the resizer that is used by default. Area interpolation
	// avoids aliasing when large tiles are shrunk to small cells.
	DefaultResizer ImageResizer = AreaResizer{}
)

var resizerNames = map[string]ImageResizer{
	"area":     AreaResizer{},
	"nearest":  NewNfntResizer(GetInterP(0)),
	"bilinear": NewNfntResizer(GetInterP(1)),
	"bicubic":  NewNfntResizer(GetInterP(2)),
	"mitchell": NewNfntResizer(GetInterP(3)),
	"lanczos2": NewNfntResizer(GetInterP(4)),
	"lanczos3": NewNfntResizer(GetInterP(5)),
}

// ParseResizer returns the resizer registered under name (case insensitive).
// Known names are area, nearest, bilinear, bicubic, mitchell, lanczos2 and
// lanczos3.
func ParseResizer(name string) (ImageResizer, error) {
	if r, has := resizerNames[strings.ToLower(strings.TrimSpace(name))]; has {
		return r, nil
	}
	return nil, fmt.Errorf("Unknown resize method %q", name)
}

// resizeRGBA resizes img and converts the result to *image.RGBA.
func resizeRGBA(resizer ImageResizer, width, height int, img image.Image) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return ToRGBA(img)
	}
	scaled := resizer.Resize(uint(width), uint(height), img)
	if rgba, ok := scaled.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	return ToRGBA(scaled)
}

// TileID is used to unambiguously identify a tile of the library.
// Valid ids start at 1.
type TileID int

const (
	// NoTileID is returned together with errors.
	NoTileID TileID = 0
)
