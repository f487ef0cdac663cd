// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/gopix/bitmap/internal/codec"
	"github.com/gopix/bitmap/internal/orient"
	"github.com/gopix/bitmap/internal/sniff"
	"github.com/gopix/bitmap/internal/vector"
	"github.com/gopix/bitmap/surface"
)

// Load drives the full pipeline: fetch the source, sniff its true
// format from leading bytes, decode through the raster or
// vector-rehydration path, resolve orientation metadata, and render
// onto an off-screen surface. A successful load arms the expiration
// timer with the current TTL exactly once, immediately before
// returning.
//
// On failure the asset lands in StateFailed with any pending
// expiration timer cleared, and the returned error wraps the matching
// sentinel. The asset remains inspectable either way.
//
// Load on a destroyed asset returns ErrDisposed. Concurrent Load calls
// on the same asset are not coordinated; the caller serializes them.
func (a *Asset) Load(ctx context.Context, opts ...LoadOption) error {
	o := defaultLoadOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return ErrDisposed
	}
	if a.source == "" {
		a.state = StateFailed
		a.cancelTimerLocked()
		a.mu.Unlock()
		return ErrEmptySource
	}
	a.state = StateFetching
	url := buildFetchURL(a.source, a.resolution, a.revision)
	a.fetchedURL = url
	a.mu.Unlock()

	Logger().Debug("bitmap: fetching", "url", url, "anonymous", o.anonymous)
	payload, err := a.fetcher.Fetch(ctx, url, o.anonymous)
	if err != nil {
		return a.fail(fmt.Errorf("%w: %v", ErrNetworkFailure, err))
	}

	a.setState(StateDetecting)
	mime := sniff.Detect(payload.Data, payload.DeclaredType)
	a.mu.Lock()
	a.mime = mime
	a.mu.Unlock()
	Logger().Debug("bitmap: sniffed", "mime", string(mime), "bytes", len(payload.Data))

	if mime.IsVector() && o.rehydrate {
		return a.loadVector(ctx, payload)
	}
	return a.loadRaster(ctx, payload, mime)
}

// loadRaster decodes the payload, composites it onto a surface sized
// to its natural dimensions, and re-encodes it into the rendered
// object. Tainted (non-anonymous) payloads and formats with no in-tree
// encoder keep the original payload bytes as the rendered object.
func (a *Asset) loadRaster(ctx context.Context, payload *Payload, mime MIMEType) error {
	a.setState(StateDecoding)
	img, err := a.decoder.Decode(ctx, payload.Data, mime)
	if err != nil {
		return a.fail(fmt.Errorf("%w: %v", ErrUndecodable, err))
	}

	code, orientErr := orient.Read(payload.Data)
	if orientErr != nil {
		// Best-effort: the load proceeds upright.
		Logger().Warn("bitmap: orientation read failed", "err", orientErr)
	}
	if a.autoOrient && code != orient.Upright {
		img = orient.Apply(img, code)
		code = orient.Upright
	}

	a.setState(StateRasterizing)
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	surf, err := a.allocSurface(width, height)
	if err != nil {
		return a.fail(err)
	}
	if err := surf.Draw(img, nil); err != nil {
		surf.Close()
		return a.fail(fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err))
	}

	var blob *Blob
	if !payload.Tainted && codec.CanEncode(mime) {
		encoded, err := codec.EncodeBytes(surf.Snapshot(), mime, 1.0)
		if err != nil {
			surf.Close()
			return a.fail(fmt.Errorf("%w: %v", ErrUndecodable, err))
		}
		blob = newBlob(encoded, mime)
	} else {
		// Tainted surfaces must not be read back; un-encodable
		// formats have nothing to re-encode with. Either way the
		// original resource is the rendered object.
		blob = newBlob(payload.Data, mime)
	}

	return a.commit(surf, blob, width*height, code)
}

// loadVector rehydrates the vector document's bounds, rasterizes the
// rewritten document at those bounds, and keeps the rewritten document
// itself as the rendered object.
func (a *Asset) loadVector(ctx context.Context, payload *Payload) error {
	a.setState(StateRehydrating)
	rewritten, vb, err := vector.Rehydrate(payload.Data)
	if err != nil {
		return a.fail(fmt.Errorf("%w: %v", ErrMalformedVectorBounds, err))
	}
	Logger().Debug("bitmap: rehydrated vector", "width", vb.Width, "height", vb.Height)

	a.setState(StateDecoding)
	img, err := a.decoder.Decode(ctx, rewritten, MIMESVG)
	if err != nil {
		return a.fail(fmt.Errorf("%w: %v", ErrUndecodable, err))
	}

	a.setState(StateRasterizing)
	// Rounded, matching the intrinsic decode canvas, so fractional
	// bounds composite onto a surface of the same size they drew at.
	width, height := int(math.Round(vb.Width)), int(math.Round(vb.Height))
	surf, err := a.allocSurface(width, height)
	if err != nil {
		return a.fail(err)
	}
	if err := surf.Draw(img, nil); err != nil {
		surf.Close()
		return a.fail(fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err))
	}

	return a.commit(surf, newBlob(rewritten, MIMESVG), width*height, orient.Upright)
}

// commit installs the load results, resolves orientation, and arms the
// expiration timer. A Destroy that raced the pipeline wins: commit
// releases the fresh resources and reports ErrDisposed instead of
// resurrecting the asset.
func (a *Asset) commit(surf surface.Surface, blob *Blob, pixels int, code Orientation) error {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		surf.Close()
		blob.Release()
		return ErrDisposed
	}

	// A reload replaces the previous representation.
	if a.surf != nil {
		a.surf.Close()
	}
	a.blob.Release()

	a.state = StateNormalizing
	a.surf = surf
	a.blob = blob
	a.fileSize = blob.Size()
	a.pixelCount = pixels
	a.loaded = true
	a.loadedAt = a.clk.Now()
	a.orientation = code
	a.state = StateReady
	a.armLocked(a.ttl)
	a.mu.Unlock()

	Logger().Debug("bitmap: ready",
		"pixels", pixels, "size", blob.Size(), "orientation", int(code))
	return nil
}

// allocSurface allocates the off-screen surface through the injected
// factory.
func (a *Asset) allocSurface(width, height int) (surface.Surface, error) {
	surf, err := a.newSurface(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	if surf == nil {
		return nil, ErrSurfaceUnavailable
	}
	return surf, nil
}

// fail records a failed load: StateFailed, timer cleared, error
// returned for the caller to match with errors.Is.
func (a *Asset) fail(err error) error {
	a.mu.Lock()
	if !a.disposed {
		a.state = StateFailed
		a.cancelTimerLocked()
	}
	a.mu.Unlock()
	Logger().Debug("bitmap: load failed", "source", a.source, "err", err)
	return err
}

// setState records a pipeline stage transition. Disposed assets stay
// disposed; an in-flight load that lost to Destroy must not flip the
// state back.
func (a *Asset) setState(s State) {
	a.mu.Lock()
	if !a.disposed {
		a.state = s
	}
	a.mu.Unlock()
}

// decodedImage returns a snapshot of the ready surface for consumers
// that re-render it (Compress). nil when not ready.
func (a *Asset) decodedImage() image.Image {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded || a.surf == nil {
		return nil
	}
	return a.surf.Snapshot()
}
