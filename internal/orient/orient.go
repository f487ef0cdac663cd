// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package orient resolves EXIF orientation metadata.
//
// Cameras record the sensor's physical rotation in an orientation tag
// instead of rotating the pixels. Read extracts that tag from an
// encoded payload and Apply rewrites the pixels so the image displays
// upright everywhere. Reading is best-effort: any absent or unreadable
// tag resolves to Upright, with unreadable tags reported back for the
// caller to log rather than fail on.
package orient

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Code is an EXIF orientation value, 1 through 8.
type Code int

// Orientation codes per the EXIF enumeration.
const (
	Upright    Code = 1
	FlipH      Code = 2
	Rotate180  Code = 3
	FlipV      Code = 4
	Transpose  Code = 5
	Rotate270  Code = 6
	Transverse Code = 7
	Rotate90   Code = 8
)

// Valid reports whether c is within the EXIF enumeration.
func (c Code) Valid() bool {
	return c >= Upright && c <= Rotate90
}

// Rotation returns the rotation, in degrees, that normalizes an image
// carrying this orientation: 180 for codes 3-4, 270 for codes 5-6, 90
// for codes 7-8, and 0 otherwise.
func (c Code) Rotation() int {
	switch c {
	case Rotate180, FlipV:
		return 180
	case Transpose, Rotate270:
		return 270
	case Transverse, Rotate90:
		return 90
	default:
		return 0
	}
}

// Read extracts the orientation code from an encoded image payload
// (JPEG or TIFF). Payloads without metadata or without an orientation
// tag resolve to Upright silently. A tag that is present but
// unreadable, or whose value falls outside the enumeration, also
// resolves to Upright but reports the swallowed error so callers can
// log it.
func Read(data []byte) (Code, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return Upright, nil
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return Upright, nil
	}
	v, err := tag.Int(0)
	if err != nil {
		return Upright, fmt.Errorf("orient: unreadable orientation tag: %w", err)
	}
	c := Code(v)
	if !c.Valid() {
		return Upright, fmt.Errorf("orient: orientation %d outside 1..8", v)
	}
	return c, nil
}

// Apply transforms img so that a viewer ignoring orientation metadata
// sees it upright. Upright input is returned unchanged.
func Apply(img image.Image, c Code) image.Image {
	switch c {
	case FlipH:
		return imaging.FlipH(img)
	case Rotate180:
		return imaging.Rotate180(img)
	case FlipV:
		return imaging.FlipV(img)
	case Transpose:
		return imaging.Transpose(img)
	case Rotate270:
		return imaging.Rotate270(img)
	case Transverse:
		return imaging.Transverse(img)
	case Rotate90:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
