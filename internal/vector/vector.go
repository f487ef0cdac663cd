// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vector rewrites SVG documents so they rasterize at their
// intended bounds.
//
// SVG sources frequently omit explicit width/height attributes or pin
// them to relative units, which makes the rasterized output collapse or
// letterbox inside its target. Rehydration derives pixel dimensions
// from the document's viewBox, forces them onto the root element, and
// disables aspect-ratio preservation so the graphic always fills the
// bounds the caller asked for.
//
// Only the opening <svg> tag is rewritten; the rest of the document is
// passed through byte-for-byte.
package vector

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformedBounds is returned when the document's bounding box is
// absent, malformed, non-finite, or has a non-positive width or height.
var ErrMalformedBounds = errors.New("vector: malformed bounding box")

// ViewBox is the parsed bounding box of an SVG document.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// ParseViewBox parses a viewBox attribute value: exactly four finite
// numeric components separated by whitespace and/or commas, with a
// positive width and height.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("%w: want 4 components, got %d", ErrMalformedBounds, len(fields))
	}

	var nums [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("%w: component %q is not numeric", ErrMalformedBounds, f)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ViewBox{}, fmt.Errorf("%w: component %q is not finite", ErrMalformedBounds, f)
		}
		nums[i] = v
	}

	vb := ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}, fmt.Errorf("%w: non-positive size %gx%g", ErrMalformedBounds, vb.Width, vb.Height)
	}
	return vb, nil
}

// Rehydrate rewrites the document's root element with explicit width
// and height attributes taken from its viewBox and forces
// preserveAspectRatio="none", returning the rewritten document and the
// parsed bounds. The input is not modified.
func Rehydrate(data []byte) ([]byte, ViewBox, error) {
	start, end, err := rootTagSpan(data)
	if err != nil {
		return nil, ViewBox{}, err
	}

	tag := data[start:end]
	attrs, selfClosing, err := scanAttrs(tag)
	if err != nil {
		return nil, ViewBox{}, err
	}

	var vb ViewBox
	found := false
	for _, a := range attrs {
		if a.name == "viewBox" {
			vb, err = ParseViewBox(a.value)
			if err != nil {
				return nil, ViewBox{}, err
			}
			found = true
			break
		}
	}
	if !found {
		return nil, ViewBox{}, fmt.Errorf("%w: no viewBox attribute", ErrMalformedBounds)
	}

	var rebuilt bytes.Buffer
	rebuilt.Grow(len(tag) + 64)
	rebuilt.WriteString("<svg")
	for _, a := range attrs {
		switch a.name {
		case "width", "height", "preserveAspectRatio":
			// Forced below.
			continue
		}
		fmt.Fprintf(&rebuilt, ` %s="%s"`, a.name, a.value)
	}
	fmt.Fprintf(&rebuilt, ` width="%s" height="%s" preserveAspectRatio="none"`,
		formatNumber(vb.Width), formatNumber(vb.Height))
	if selfClosing {
		rebuilt.WriteString("/>")
	} else {
		rebuilt.WriteString(">")
	}

	out := make([]byte, 0, len(data)+rebuilt.Len()-len(tag))
	out = append(out, data[:start]...)
	out = append(out, rebuilt.Bytes()...)
	out = append(out, data[end:]...)
	return out, vb, nil
}

// rootTagSpan locates the byte range of the document's opening <svg>
// tag, skipping XML prologue, comments, and doctype declarations.
func rootTagSpan(data []byte) (start, end int64, err error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		start = dec.InputOffset()
		tok, terr := dec.Token()
		if terr != nil {
			return 0, 0, fmt.Errorf("%w: no svg root element", ErrMalformedBounds)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return 0, 0, fmt.Errorf("%w: root element is <%s>, not <svg>", ErrMalformedBounds, se.Name.Local)
		}
		// InputOffset now sits just past the '>' of the opening tag
		// (past "/>" for a self-closing root).
		return start, dec.InputOffset(), nil
	}
}

// attr is one raw attribute of the opening tag. Values are kept exactly
// as written, entities included, so re-serialization is byte-faithful.
type attr struct {
	name  string
	value string
}

// scanAttrs parses the raw opening-tag text into its attribute list.
func scanAttrs(tag []byte) ([]attr, bool, error) {
	s := string(tag)
	selfClosing := strings.HasSuffix(s, "/>")

	body := strings.TrimPrefix(s, "<svg")
	body = strings.TrimSuffix(body, ">")
	body = strings.TrimSuffix(body, "/")

	var attrs []attr
	i := 0
	for i < len(body) {
		for i < len(body) && isSpace(body[i]) {
			i++
		}
		if i >= len(body) {
			break
		}
		nameStart := i
		for i < len(body) && body[i] != '=' && !isSpace(body[i]) {
			i++
		}
		name := body[nameStart:i]
		for i < len(body) && isSpace(body[i]) {
			i++
		}
		if i >= len(body) || body[i] != '=' {
			return nil, false, fmt.Errorf("%w: attribute %q has no value", ErrMalformedBounds, name)
		}
		i++
		for i < len(body) && isSpace(body[i]) {
			i++
		}
		if i >= len(body) || (body[i] != '"' && body[i] != '\'') {
			return nil, false, fmt.Errorf("%w: attribute %q is not quoted", ErrMalformedBounds, name)
		}
		quote := body[i]
		i++
		valStart := i
		for i < len(body) && body[i] != quote {
			i++
		}
		if i >= len(body) {
			return nil, false, fmt.Errorf("%w: attribute %q is unterminated", ErrMalformedBounds, name)
		}
		attrs = append(attrs, attr{name: name, value: body[valStart:i]})
		i++
	}
	return attrs, selfClosing, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// formatNumber renders a dimension without a trailing fraction when it
// is integral, matching how hand-written SVG states its sizes.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
