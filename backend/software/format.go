// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/gldevice"
	"github.com/gogpu/gputypes"
)

// formatInfo contains metadata about a supported surface format.
type formatInfo struct {
	// bytesPerPixel is the number of bytes per texel.
	bytesPerPixel int

	// swapRB indicates the red and blue channels are stored swapped.
	swapRB bool

	// gray indicates a single-channel format.
	gray bool
}

// formats lists the surface formats the software device can store.
var formats = map[gldevice.SurfaceFormat]formatInfo{
	gputypes.TextureFormatRGBA8Unorm: {bytesPerPixel: 4},
	gputypes.TextureFormatBGRA8Unorm: {bytesPerPixel: 4, swapRB: true},
	gputypes.TextureFormatR8Unorm:    {bytesPerPixel: 1, gray: true},
}

// lookupFormat returns the format info or an ErrUnsupported error.
func lookupFormat(f gldevice.SurfaceFormat) (formatInfo, error) {
	info, ok := formats[f]
	if !ok {
		return formatInfo{}, unsupported("surface format %v", f)
	}
	return info, nil
}

// newPlane allocates a zeroed w x h image in the given format.
func (f formatInfo) newPlane(w, h int) draw.Image {
	r := image.Rect(0, 0, w, h)
	if f.gray {
		return image.NewGray(r)
	}
	return image.NewRGBA(r)
}

// wrap views data as a tightly packed w x h image without copying.
func (f formatInfo) wrap(data []byte, w, h int) draw.Image {
	r := image.Rect(0, 0, w, h)
	if f.gray {
		return &image.Gray{Pix: data, Stride: w, Rect: r}
	}
	return &image.RGBA{Pix: data, Stride: w * 4, Rect: r}
}

// rowBytes returns the size of w texels.
func (f formatInfo) rowBytes(w int) int {
	return w * f.bytesPerPixel
}

// color converts a normalized color to the stored representation.
func (f formatInfo) color(c gputypes.Color) color.Color {
	r, g, b, a := unorm8(float64(c.R)), unorm8(float64(c.G)), unorm8(float64(c.B)), unorm8(float64(c.A))
	if f.gray {
		return color.Gray{Y: r}
	}
	if f.swapRB {
		r, b = b, r
	}
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// unorm8 maps [0, 1] to [0, 255], clamping out-of-range values.
func unorm8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
