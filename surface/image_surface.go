// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"
)

// ImageSurface is a CPU-based surface backed by an *image.RGBA.
//
// It is the default surface implementation and the one the registry
// falls back to when no accelerated backend is registered.
//
// Example:
//
//	s := surface.NewImageSurface(640, 480)
//	defer s.Close()
//
//	_ = s.Draw(decoded, &surface.DrawOptions{Filter: surface.FilterCatmullRom})
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface composites into the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	bounds := img.Bounds()

	return &ImageSurface{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		img:    img,
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}

	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Draw composites src onto the surface, scaled to fill the destination
// rectangle.
func (s *ImageSurface) Draw(src image.Image, opts *DrawOptions) error {
	if s.closed {
		return ErrClosed
	}
	if src == nil {
		return nil
	}

	sr := src.Bounds()
	dr := s.img.Bounds()
	filter := FilterCatmullRom
	if opts != nil {
		if opts.SrcRect != nil {
			sr = *opts.SrcRect
		}
		if opts.DstRect != nil {
			dr = *opts.DstRect
		}
		filter = opts.Filter
	}
	if sr.Empty() || dr.Empty() {
		return nil
	}

	filter.interpolator().Scale(s.img, dr, src, sr, draw.Over, nil)
	return nil
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}

	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(result.Pix, s.img.Pix)
	return result
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	return nil
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy; it is nil after Close.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Verify ImageSurface implements Surface interface.
var _ Surface = (*ImageSurface)(nil)
