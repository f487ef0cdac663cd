// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sniff identifies image payloads by their leading byte
// signatures.
//
// Servers routinely mislabel image responses (generic octet-stream
// types, re-hosted files with stale extensions), so the sniffed type
// always wins over the declared one; the declared type is only a
// fallback for payloads with no recognizable signature, such as SVG
// documents, which are plain XML text.
package sniff

import "bytes"

// MIMEType is a media type string as produced by signature detection.
type MIMEType string

// Media types the sniffer can produce, plus the vector and unknown
// types used elsewhere in the pipeline.
const (
	Unknown MIMEType = "unknown"
	PNG     MIMEType = "image/png"
	GIF     MIMEType = "image/gif"
	BMP     MIMEType = "image/bmp"
	JPEG    MIMEType = "image/jpeg"
	WEBP    MIMEType = "image/webp"
	HEIC    MIMEType = "image/heic"
	PDF     MIMEType = "application/pdf"
	SVG     MIMEType = "image/svg+xml"
)

// IsVector reports whether the type is a vector-graphics document that
// goes through rehydration rather than direct rasterization.
func (m MIMEType) IsVector() bool { return m == SVG }

// Ext returns the conventional file extension for the type, including
// the leading dot, or "" when none is known.
func (m MIMEType) Ext() string {
	switch m {
	case PNG:
		return ".png"
	case GIF:
		return ".gif"
	case BMP:
		return ".bmp"
	case JPEG:
		return ".jpg"
	case WEBP:
		return ".webp"
	case HEIC:
		return ".heic"
	case PDF:
		return ".pdf"
	case SVG:
		return ".svg"
	}
	return ""
}

// signature is one exact-equality row of the 4-byte header table.
type signature struct {
	header [4]byte
	mime   MIMEType
}

// Exact 4-byte signatures, first match wins.
var signatures = []signature{
	{[4]byte{0x89, 0x50, 0x4e, 0x47}, PNG},
	{[4]byte{0x47, 0x49, 0x46, 0x38}, GIF},
	{[4]byte{0x42, 0x4d, 0x00, 0x00}, BMP},
	{[4]byte{0xff, 0xd8, 0xff, 0xe0}, JPEG},
	{[4]byte{0xff, 0xd8, 0xff, 0xe1}, JPEG},
	{[4]byte{0xff, 0xd8, 0xff, 0xe2}, JPEG},
	{[4]byte{0xff, 0xd8, 0xff, 0xe3}, JPEG},
	{[4]byte{0xff, 0xd8, 0xff, 0xe8}, JPEG},
	{[4]byte{0x75, 0xab, 0x5a, 0x6a}, PDF},
	{[4]byte{0x25, 0x50, 0x44, 0x46}, PDF},
	{[4]byte{0x45, 0xe7, 0x1e, 0x8a}, PDF},
}

// Extended signatures living past the first four bytes. The HEIC brand
// sits at offset 4; WEBP is a RIFF container disambiguated by bytes
// 8..12. HEIC is checked first since both probes overlap byte ranges.
var (
	heicBrand  = []byte("ftypheic")
	riffHeader = []byte{0x52, 0x49, 0x46, 0x46}
	webpFourCC = []byte("WEBP")
)

// Detect returns the media type for the payload's byte signature, or
// fallback when no signature matches. Payloads shorter than four bytes
// never match.
func Detect(data []byte, fallback MIMEType) MIMEType {
	if len(data) < 4 {
		return fallback
	}

	var header [4]byte
	copy(header[:], data)
	for _, s := range signatures {
		if s.header == header {
			return s.mime
		}
	}

	if len(data) >= 12 {
		if bytes.Equal(data[4:12], heicBrand) {
			return HEIC
		}
		if bytes.Equal(data[0:4], riffHeader) && bytes.Equal(data[8:12], webpFourCC) {
			return WEBP
		}
	}

	return fallback
}
