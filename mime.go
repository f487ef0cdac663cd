// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import "github.com/gopix/bitmap/internal/sniff"

// MIMEType is a media type string as produced by signature detection.
// The zero-value convention is MIMEUnknown, not "".
type MIMEType = sniff.MIMEType

// Media types the sniffer can produce.
const (
	MIMEUnknown = sniff.Unknown
	MIMEPNG     = sniff.PNG
	MIMEGIF     = sniff.GIF
	MIMEBMP     = sniff.BMP
	MIMEJPEG    = sniff.JPEG
	MIMEWEBP    = sniff.WEBP
	MIMEHEIC    = sniff.HEIC
	MIMEPDF     = sniff.PDF
	MIMESVG     = sniff.SVG
)

// DetectMIMEType returns the media type for the payload's leading byte
// signature, or fallback when no signature matches. The declared
// (server/container-reported) type belongs in fallback; the sniffed
// signature always wins over it.
func DetectMIMEType(data []byte, fallback MIMEType) MIMEType {
	return sniff.Detect(data, fallback)
}
