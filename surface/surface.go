// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
)

// ErrClosed is returned when drawing on a surface after Close.
var ErrClosed = errors.New("surface: closed")

// Surface is an off-screen target that decoded images are composited
// onto before re-encoding.
//
// Surfaces are NOT thread-safe. Each surface should be used from a
// single goroutine, or external synchronization must be used.
//
// Example usage:
//
//	s := surface.NewImageSurface(640, 480)
//	defer s.Close()
//
//	if err := s.Draw(decoded, nil); err != nil { ... }
//	img := s.Snapshot()
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear fills the entire surface with the given color.
	Clear(c color.Color)

	// Draw composites src onto the surface, scaled to fill the
	// destination rectangle. If opts is nil, src fills the whole
	// surface using the default filter.
	Draw(src image.Image, opts *DrawOptions) error

	// Snapshot returns the current surface contents as an RGBA image.
	// The returned image is a copy; modifications to it do not affect
	// the surface.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// After Close, the surface must not be drawn on.
	// Close is idempotent; multiple calls are safe.
	Close() error
}
