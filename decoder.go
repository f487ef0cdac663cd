// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"context"
	"image"

	"github.com/gopix/bitmap/internal/codec"
)

// Decoder turns an encoded payload into in-memory pixels. It is the
// injection point for host platforms with native decode primitives;
// StdDecoder is the pure-Go default.
type Decoder interface {
	// Decode decodes data as the given format. Vector documents are
	// rasterized at their intrinsic bounds.
	Decode(ctx context.Context, data []byte, mime MIMEType) (image.Image, error)

	// CanDecode reports whether Decode supports the given format.
	CanDecode(mime MIMEType) bool
}

// StdDecoder decodes PNG, JPEG, GIF, BMP, WebP, and SVG using pure-Go
// codecs. The zero value is ready to use.
type StdDecoder struct{}

// Decode decodes data as the given format.
func (StdDecoder) Decode(ctx context.Context, data []byte, mime MIMEType) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mime.IsVector() {
		return codec.DecodeVectorIntrinsic(data)
	}
	return codec.Decode(data, mime)
}

// CanDecode reports whether Decode supports the given format.
func (StdDecoder) CanDecode(mime MIMEType) bool {
	switch mime {
	case MIMEPNG, MIMEJPEG, MIMEGIF, MIMEBMP, MIMEWEBP, MIMESVG:
		return true
	default:
		return false
	}
}

// Verify StdDecoder implements Decoder.
var _ Decoder = StdDecoder{}
