// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"github.com/gopix/bitmap/clock"
	"github.com/gopix/bitmap/surface"
)

// SurfaceFactory allocates the off-screen surface decoded images are
// composited onto. Injected so host platforms can supply accelerated
// render targets.
type SurfaceFactory func(width, height int) (surface.Surface, error)

// Option configures an Asset during construction.
//
// Example:
//
//	// Default capabilities (net/http fetch, pure-Go decode)
//	a := bitmap.New(src, "", 0, 0)
//
//	// Injected test capabilities
//	a := bitmap.New(src, "", 0, 0,
//	    bitmap.WithFetcher(fakeFetcher),
//	    bitmap.WithClock(fakeClock))
type Option func(*assetOptions)

// assetOptions holds optional configuration for Asset construction.
type assetOptions struct {
	fetcher           Fetcher
	decoder           Decoder
	clk               clock.Clock
	newSurface        SurfaceFactory
	nativeOrientation bool
	autoOrient        bool
}

// defaultAssetOptions returns the production defaults.
func defaultAssetOptions() assetOptions {
	return assetOptions{
		fetcher:    &HTTPFetcher{},
		decoder:    StdDecoder{},
		clk:        clock.Real(),
		newSurface: surface.NewSurface,
	}
}

// WithFetcher sets the fetch capability for the asset.
func WithFetcher(f Fetcher) Option {
	return func(o *assetOptions) {
		if f != nil {
			o.fetcher = f
		}
	}
}

// WithDecoder sets the decode capability for the asset.
func WithDecoder(d Decoder) Option {
	return func(o *assetOptions) {
		if d != nil {
			o.decoder = d
		}
	}
}

// WithClock sets the time source for expiration and life accounting.
// Tests pass clock.Fake to drive the expiration timer deterministically.
func WithClock(c clock.Clock) Option {
	return func(o *assetOptions) {
		if c != nil {
			o.clk = c
		}
	}
}

// WithSurfaceFactory sets the off-screen surface allocator. The default
// uses the best available registered surface backend.
func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(o *assetOptions) {
		if f != nil {
			o.newSurface = f
		}
	}
}

// WithNativeOrientation declares that the host already applies
// metadata-driven rotation natively. Rotation then reports 0 degrees
// for every orientation code, so the collaborator never double-rotates.
//
// The flag is resolved once by the collaborator (from its platform
// knowledge) and injected here, never sniffed from ambient state.
func WithNativeOrientation(native bool) Option {
	return func(o *assetOptions) {
		o.nativeOrientation = native
	}
}

// WithAutoOrient rewrites the decoded pixels during Load so the ready
// surface is upright regardless of the orientation code, flips
// included. Once normalized, the reported rotation is 0.
func WithAutoOrient(auto bool) Option {
	return func(o *assetOptions) {
		o.autoOrient = auto
	}
}

// LoadOption configures a single Load call.
type LoadOption func(*loadOptions)

type loadOptions struct {
	anonymous bool
	rehydrate bool
}

func defaultLoadOptions() loadOptions {
	return loadOptions{anonymous: true, rehydrate: true}
}

// WithAnonymousFetch selects credential-free fetching (the default).
// Pass false to attach the fetcher's credentials; the payload is then
// tainted and the pipeline skips re-encoding, operating on the
// original resource bytes.
func WithAnonymousFetch(anonymous bool) LoadOption {
	return func(o *loadOptions) { o.anonymous = anonymous }
}

// WithVectorRehydration controls whether vector-graphics payloads go
// through bounds rehydration (the default). Pass false to rasterize
// the document as fetched.
func WithVectorRehydration(rehydrate bool) LoadOption {
	return func(o *loadOptions) { o.rehydrate = rehydrate }
}

// CompressOption configures a single Compress call.
type CompressOption func(*compressOptions)

type compressOptions struct {
	scale     float64
	sizeLimit int64
}

func defaultCompressOptions() compressOptions {
	return compressOptions{scale: 1.0}
}

// WithScale sets the initial scale factor for Compress. The default
// is 1.0 (natural size).
func WithScale(scale float64) CompressOption {
	return func(o *compressOptions) { o.scale = scale }
}

// WithSizeLimit caps the encoded output size in bytes. Compress steps
// the scale down by 0.1 per attempt until the output fits, and fails
// with ErrInvalidCompressionParameter when the scale reaches zero
// first.
func WithSizeLimit(limit int64) CompressOption {
	return func(o *compressOptions) { o.sizeLimit = limit }
}

// SaveOption configures a single SaveFile call.
type SaveOption func(*saveOptions)

type saveOptions struct {
	blob         *Blob
	mimeOverride MIMEType
}

// WithBlob saves the given blob instead of the asset's own rendered
// object, typically one returned by Compress.
func WithBlob(b *Blob) SaveOption {
	return func(o *saveOptions) { o.blob = b }
}

// WithMIMEOverride forces the media type used to derive the saved
// file's extension.
func WithMIMEOverride(mime MIMEType) SaveOption {
	return func(o *saveOptions) { o.mimeOverride = mime }
}
