// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package codec converts between encoded image payloads and in-memory
// pixels for every format the sniffer can report.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/chai2010/webp"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	xwebp "golang.org/x/image/webp"

	"github.com/gopix/bitmap/internal/sniff"
)

// Codec errors.
var (
	// ErrUnsupportedFormat is returned when no decoder or encoder
	// exists for the requested format.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")

	// ErrEmptyData is returned when the payload is empty.
	ErrEmptyData = errors.New("codec: empty data")
)

// Decode decodes an encoded raster payload of the given format.
func Decode(data []byte, mime sniff.MIMEType) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	r := bytes.NewReader(data)
	var (
		img image.Image
		err error
	)
	switch mime {
	case sniff.PNG:
		img, err = png.Decode(r)
	case sniff.JPEG:
		img, err = jpeg.Decode(r)
	case sniff.GIF:
		img, err = gif.Decode(r)
	case sniff.BMP:
		img, err = bmp.Decode(r)
	case sniff.WEBP:
		img, err = xwebp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
	if err != nil {
		return nil, fmt.Errorf("codec: decode %s: %w", mime, err)
	}
	return img, nil
}

// DecodeVector rasterizes an SVG document onto a width x height canvas.
// The document is drawn to fill the canvas exactly, so callers that
// want the intrinsic size pass the document's own bounds.
func DecodeVector(data []byte, width, height int) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("codec: rasterize vector: invalid canvas %dx%d", width, height)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: parse vector: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}

// DecodeVectorIntrinsic rasterizes an SVG document at its own declared
// bounds, taken from the parsed viewBox.
func DecodeVectorIntrinsic(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: parse vector: %w", err)
	}
	width := int(math.Round(icon.ViewBox.W))
	height := int(math.Round(icon.ViewBox.H))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("codec: rasterize vector: invalid intrinsic bounds %dx%d", width, height)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}

// Encode encodes img in the given format. quality ranges over [0, 1]
// and applies to lossy formats; lossless formats ignore it.
func Encode(w io.Writer, img image.Image, mime sniff.MIMEType, quality float64) error {
	var err error
	switch mime {
	case sniff.PNG:
		err = png.Encode(w, img)
	case sniff.JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: percent(quality)})
	case sniff.GIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256})
	case sniff.BMP:
		err = bmp.Encode(w, img)
	case sniff.WEBP:
		err = webp.Encode(w, img, &webp.Options{Quality: float32(percent(quality))})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
	if err != nil {
		return fmt.Errorf("codec: encode %s: %w", mime, err)
	}
	return nil
}

// EncodeBytes encodes img in the given format and returns the payload.
func EncodeBytes(img image.Image, mime sniff.MIMEType, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, mime, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CanEncode reports whether Encode supports the given format.
func CanEncode(mime sniff.MIMEType) bool {
	switch mime {
	case sniff.PNG, sniff.JPEG, sniff.GIF, sniff.BMP, sniff.WEBP:
		return true
	default:
		return false
	}
}

// percent maps a [0, 1] quality to the 1-100 scale the encoders use.
func percent(quality float64) int {
	q := int(math.Round(quality * 100))
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	return q
}
