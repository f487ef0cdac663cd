// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// EncodeDataURL packs data into a base64 data: URI carrying the given
// media type. The result round-trips through DecodeDataURL exactly.
func EncodeDataURL(data []byte, mime MIMEType) string {
	return "data:" + string(mime) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL extracts the raw bytes from a data: URI. Both base64
// and percent-encoded payloads are supported.
func DecodeDataURL(s string) ([]byte, error) {
	data, _, err := parseDataURL(s)
	return data, err
}

// parseDataURL splits a data: URI into its payload bytes and declared
// media type. An absent media type reports MIMEUnknown.
func parseDataURL(s string) ([]byte, MIMEType, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, MIMEUnknown, fmt.Errorf("bitmap: not a data URI: %q", truncate(s, 32))
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, MIMEUnknown, fmt.Errorf("bitmap: data URI has no payload separator")
	}

	base64Encoded := false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		meta = m
		base64Encoded = true
	}
	mime := MIMEUnknown
	if mt, _, _ := strings.Cut(meta, ";"); mt != "" {
		mime = MIMEType(mt)
	}

	var (
		data []byte
		err  error
	)
	if base64Encoded {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var decoded string
		decoded, err = url.PathUnescape(payload)
		data = []byte(decoded)
	}
	if err != nil {
		return nil, mime, fmt.Errorf("bitmap: decode data URI payload: %w", err)
	}
	return data, mime, nil
}

// truncate shortens s for inclusion in error messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
