// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"fmt"
	"image"
	"math"

	"github.com/gopix/bitmap/internal/codec"
)

// scaleStep is how much each compression attempt shrinks the scale
// when the encoded output exceeds the size limit.
const scaleStep = 0.1

// Compress re-encodes the ready representation at the given quality
// and format, optionally scaled, and returns an owned blob the caller
// releases when done.
//
// quality ranges over [0, 1]. format must be JPEG, PNG, or WebP. With
// WithSizeLimit set, the scale steps down by 0.1 per attempt until the
// encoded output fits; the loop terminates with
// ErrInvalidCompressionParameter when the scale reaches zero first, so
// at most ten attempts run from the default scale of 1.0.
//
// Each attempt renders onto a per-call surface that is released before
// Compress returns, on every exit path.
func (a *Asset) Compress(quality float64, format MIMEType, opts ...CompressOption) (*Blob, error) {
	o := defaultCompressOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a.mu.Lock()
	disposed, loaded := a.disposed, a.loaded
	a.mu.Unlock()
	if disposed {
		return nil, ErrDisposed
	}
	if !loaded {
		return nil, ErrNotReady
	}

	if quality < 0 || quality > 1 || math.IsNaN(quality) {
		return nil, fmt.Errorf("%w: quality %v outside [0, 1]", ErrInvalidCompressionParameter, quality)
	}
	switch format {
	case MIMEJPEG, MIMEPNG, MIMEWEBP:
	default:
		return nil, fmt.Errorf("%w: unsupported format %s", ErrInvalidCompressionParameter, format)
	}
	if o.scale <= 0 || o.scale > 1 || math.IsNaN(o.scale) {
		return nil, fmt.Errorf("%w: scale %v outside (0, 1]", ErrInvalidCompressionParameter, o.scale)
	}

	src := a.decodedImage()
	if src == nil {
		return nil, ErrNotReady
	}
	bounds := src.Bounds()

	// Bounded iterative loop over decreasing scale. The epsilon keeps
	// accumulated float error from granting an eleventh attempt.
	for scale := o.scale; scale > 1e-9; scale -= scaleStep {
		encoded, err := a.renderScaled(src, bounds, scale, format, quality)
		if err != nil {
			return nil, err
		}
		if o.sizeLimit > 0 && int64(len(encoded)) > o.sizeLimit {
			Logger().Debug("bitmap: compressed output over limit",
				"scale", scale, "size", len(encoded), "limit", o.sizeLimit)
			continue
		}
		return newBlob(encoded, format), nil
	}
	return nil, fmt.Errorf("%w: scale reached zero before output fit %d bytes",
		ErrInvalidCompressionParameter, o.sizeLimit)
}

// renderScaled draws src scaled onto a freshly sized surface, encodes
// the result, and releases the surface before returning.
func (a *Asset) renderScaled(src image.Image, bounds image.Rectangle, scale float64, format MIMEType, quality float64) ([]byte, error) {
	width := int(math.Round(float64(bounds.Dx()) * scale))
	height := int(math.Round(float64(bounds.Dy()) * scale))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	surf, err := a.allocSurface(width, height)
	if err != nil {
		return nil, err
	}
	defer surf.Close()

	if err := surf.Draw(src, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	encoded, err := codec.EncodeBytes(surf.Snapshot(), format, quality)
	if err != nil {
		return nil, fmt.Errorf("bitmap: compress encode: %w", err)
	}
	return encoded, nil
}
