// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gopix/bitmap/clock"
	"github.com/gopix/bitmap/internal/orient"
	"github.com/gopix/bitmap/surface"
)

// Orientation is an EXIF orientation code, 1 through 8. Code 1 is
// upright; Rotation maps each code to the degrees that normalize it.
type Orientation = orient.Code

// OrientationUpright is the default orientation: pixels already
// display upright.
const OrientationUpright = orient.Upright

// Asset is a single-entity state machine governing one logical image
// resource at one resolution and revision.
//
// source, resolution, and revision form the asset's immutable cache
// identity; changing any of them means constructing a new Asset.
//
// Pipeline stages within one asset never overlap: exactly one stage of
// one Load is outstanding at a time, and concurrent Load calls on the
// same asset are the caller's responsibility to serialize. The
// expiration timer is the only background work; Destroy is safe to
// call from the timer goroutine or any other.
type Asset struct {
	// Immutable identity, set at construction.
	source     string
	resolution string
	revision   uint

	// Injected capabilities.
	fetcher           Fetcher
	decoder           Decoder
	clk               clock.Clock
	newSurface        SurfaceFactory
	nativeOrientation bool
	autoOrient        bool

	// mu guards all mutable state below. Pipeline stages run without
	// holding it; they take it only to read configuration snapshots
	// and to commit results, so a Destroy arriving mid-load wins.
	mu          sync.Mutex
	state       State
	loaded      bool
	disposed    bool
	pixelCount  int
	surf        surface.Surface
	blob        *Blob
	mime        MIMEType
	fileSize    int64
	orientation Orientation
	ttl         time.Duration
	loadedAt    time.Time
	fetchedURL  string
	timer       *clock.Timer

	lifecycle chan Notice
}

// New constructs an asset for the given source locator.
//
// resolution is an optional size-variant suffix appended to the source
// path on fetch (replacing any existing suffix). revision is appended
// as a cache-busting query token on every fetch. ttl of zero means the
// asset never expires; a positive ttl destroys the asset that long
// after a successful load.
func New(source, resolution string, revision uint, ttl time.Duration, opts ...Option) *Asset {
	o := defaultAssetOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Asset{
		source:            source,
		resolution:        resolution,
		revision:          revision,
		ttl:               ttl,
		fetcher:           o.fetcher,
		decoder:           o.decoder,
		clk:               o.clk,
		newSurface:        o.newSurface,
		nativeOrientation: o.nativeOrientation,
		autoOrient:        o.autoOrient,
		mime:              MIMEUnknown,
		orientation:       OrientationUpright,
		lifecycle:         make(chan Notice, 1),
	}
}

// Source returns the asset's source locator.
func (a *Asset) Source() string { return a.source }

// Resolution returns the asset's size-variant suffix, or "".
func (a *Asset) Resolution() string { return a.resolution }

// Revision returns the asset's cache-busting revision.
func (a *Asset) Revision() uint { return a.revision }

// State returns the asset's current pipeline state.
func (a *Asset) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Loaded reports whether a decoded, ready representation exists.
func (a *Asset) Loaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded
}

// PixelCount returns width times height of the ready representation,
// or 0 before the asset is ready.
func (a *Asset) PixelCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pixelCount
}

// Blob returns the asset's rendered object handle, or nil before the
// asset is ready. The asset retains ownership; Destroy releases it.
func (a *Asset) Blob() *Blob {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blob
}

// MIMEType returns the sniffed media type, or MIMEUnknown before
// detection completes.
func (a *Asset) MIMEType() MIMEType {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mime
}

// FileSize returns the byte length of the encoded representation.
func (a *Asset) FileSize() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fileSize
}

// Orientation returns the resolved EXIF orientation code. It defaults
// to upright until a load resolves metadata.
func (a *Asset) Orientation() Orientation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.orientation
}

// Rotation returns the degrees of rotation that normalize the asset's
// orientation: 180 for codes 3-4, 270 for codes 5-6, 90 for codes 7-8,
// and 0 otherwise. When the host applies metadata-driven rotation
// natively (WithNativeOrientation), Rotation is 0 for every code.
func (a *Asset) Rotation() int {
	if a.nativeOrientation {
		return 0
	}
	return a.Orientation().Rotation()
}

// TTL returns the asset's time-to-live. Zero means never expires.
func (a *Asset) TTL() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ttl
}

// Life returns the time elapsed since the last successful load, or 0
// if the asset was never loaded (or has been destroyed).
func (a *Asset) Life() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loadedAt.IsZero() {
		return 0
	}
	return a.clk.Since(a.loadedAt)
}

// FetchedURL returns the URL the last Load fetched from, with the
// resolution variant and revision token applied. Empty before the
// first Load.
func (a *Asset) FetchedURL() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fetchedURL
}

// Surface returns the asset's decoded surface, or nil before the asset
// is ready. The asset retains exclusive ownership; Destroy invalidates
// the handle.
func (a *Asset) Surface() surface.Surface {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.surf
}

// buildFetchURL derives the URL a load fetches from: the source path
// with any existing resolution suffix stripped, the configured variant
// appended, and the revision query token added. data: sources pass
// through untouched, since neither variants nor cache busting mean
// anything there.
func buildFetchURL(source, resolution string, revision uint) string {
	if strings.HasPrefix(source, "data:") {
		return source
	}

	path := source
	query := ""
	if p, q, ok := strings.Cut(source, "?"); ok {
		path, query = p, q
	}

	if resolution != "" {
		path = stripResolutionSuffix(path) + resolution
	}

	u := path
	sep := "?"
	if query != "" {
		u = path + "?" + query
		sep = "&"
	}
	return u + sep + "rev=" + strconv.FormatUint(uint64(revision), 10)
}

// stripResolutionSuffix removes an existing _variant segment from the
// path's file stem: "img_thumb.png" becomes "img.png". Paths without
// an underscore in the stem are returned unchanged.
func stripResolutionSuffix(path string) string {
	slash := strings.LastIndexByte(path, '/')
	base := path[slash+1:]

	stem := base
	ext := ""
	if dot := strings.LastIndexByte(base, '.'); dot >= 0 {
		stem, ext = base[:dot], base[dot:]
	}
	under := strings.LastIndexByte(stem, '_')
	if under < 0 {
		return path
	}
	return path[:slash+1] + stem[:under] + ext
}
