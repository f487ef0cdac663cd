// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Filter specifies the interpolation used when scaling a source image
// onto the surface.
type Filter uint8

const (
	// FilterCatmullRom uses a Catmull-Rom kernel. Slowest, but the
	// right default for photographic content that will be re-encoded.
	FilterCatmullRom Filter = iota

	// FilterBilinear uses approximate bilinear interpolation.
	FilterBilinear

	// FilterNearest uses nearest-neighbor interpolation.
	FilterNearest
)

// interpolator maps the filter to its x/image implementation.
func (f Filter) interpolator() xdraw.Interpolator {
	switch f {
	case FilterBilinear:
		return xdraw.ApproxBiLinear
	case FilterNearest:
		return xdraw.NearestNeighbor
	default:
		return xdraw.CatmullRom
	}
}

// DrawOptions defines options for compositing an image onto a surface.
type DrawOptions struct {
	// SrcRect is the source rectangle within the image.
	// If nil, the entire image is used.
	SrcRect *image.Rectangle

	// DstRect is the destination rectangle on the surface.
	// If nil, the source fills the whole surface.
	DstRect *image.Rectangle

	// Filter is the interpolation mode for scaling.
	Filter Filter
}

// Options configures surface creation through the registry.
type Options struct {
	// Width is the surface width in pixels.
	Width int

	// Height is the surface height in pixels.
	Height int

	// Background is the initial fill color.
	// nil leaves the surface transparent.
	Background color.Color
}
