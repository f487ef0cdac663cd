// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package bitmap manages the lifecycle of a single fetched image asset.
//
// # Overview
//
// An Asset governs exactly one logical image resource at one
// resolution/revision. Load drives the full pipeline: fetch the
// payload, sniff its true format from leading bytes (the declared
// content type is only a fallback), decode through the raster or
// vector-rehydration path, resolve embedded orientation metadata, and
// render onto an off-screen surface. A successful load arms a
// per-asset expiration timer; when the time-to-live elapses the asset
// destroys itself and publishes a single lifecycle notice.
//
// # Quick start
//
//	a := bitmap.New("https://example.com/img_thumb.png", "_lg", 3, 5*time.Minute)
//	if err := a.Load(ctx); err != nil { ... }
//
//	blob, err := a.Compress(0.8, bitmap.MIMEJPEG, bitmap.WithSizeLimit(256<<10))
//	if err != nil { ... }
//
//	go func() {
//	    notice := <-a.Lifecycle() // fires once, on destruction
//	    log.Println("asset gone:", notice.Source)
//	}()
//
// # Capability injection
//
// The network fetch, the image decoder, the off-screen surface, and the
// clock are all injectable through constructor options (WithFetcher,
// WithDecoder, WithSurfaceFactory, WithClock), so the state machine is
// isolated from any concrete rendering backend and fully deterministic
// under test.
package bitmap
