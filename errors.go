// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import "errors"

// Errors returned by Asset operations. Match with errors.Is; returned
// errors wrap these sentinels with stage-specific context.
var (
	// ErrEmptySource is returned by Load when the asset was constructed
	// with an empty source locator.
	ErrEmptySource = errors.New("bitmap: empty source")

	// ErrNetworkFailure is returned by Load when the fetch stage fails.
	ErrNetworkFailure = errors.New("bitmap: network failure")

	// ErrUndecodable is returned by Load when the fetched payload
	// cannot be decoded as an image.
	ErrUndecodable = errors.New("bitmap: undecodable resource")

	// ErrSurfaceUnavailable is returned when no off-screen rendering
	// surface can be allocated.
	ErrSurfaceUnavailable = errors.New("bitmap: rendering surface unavailable")

	// ErrMalformedVectorBounds is returned by the vector path when the
	// document's bounding box is absent, malformed, non-finite, or has
	// a non-positive width or height.
	ErrMalformedVectorBounds = errors.New("bitmap: malformed vector bounds")

	// ErrInvalidCompressionParameter is returned by Compress for a
	// quality outside [0, 1], an unsupported target format, or a scale
	// that reaches zero before the size limit is met.
	ErrInvalidCompressionParameter = errors.New("bitmap: invalid compression parameter")

	// ErrNotReady is returned when an operation requires a loaded
	// asset and the load has not completed.
	ErrNotReady = errors.New("bitmap: not ready")

	// ErrDisposed is returned when an operation is attempted on a
	// destroyed asset.
	ErrDisposed = errors.New("bitmap: disposed")
)
