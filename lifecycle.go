// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import "time"

// Notice is the snapshot published when an asset is destroyed. The
// fields capture the asset's identity and standing at the moment of
// destruction, before any state is torn down.
type Notice struct {
	Source     string
	Revision   uint
	Resolution string
	Loaded     bool
	PixelCount int
}

// Lifecycle returns the asset's single-shot disposal channel. Exactly
// one Notice is delivered, when the asset is destroyed, and then the
// channel is closed. The channel is buffered, so a subscriber that
// starts listening after destruction still observes the notice before
// the close.
func (a *Asset) Lifecycle() <-chan Notice {
	return a.lifecycle
}

// Destroy tears the asset down: it publishes the lifecycle notice
// (snapshotted before any mutation), cancels the expiration timer and
// zeroes the ttl, clears the loaded state, releases the decoded
// surface and rendered object, resets the size fields, and closes the
// lifecycle channel.
//
// Destroy is idempotent: subsequent calls are no-ops. It is invoked
// explicitly by the collaborator, by the expiration timer, or by a
// competing load attempt tearing down a stale instance; an in-flight
// Load losing the race fails gracefully instead of resurrecting the
// asset.
func (a *Asset) Destroy() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.disposed = true

	notice := Notice{
		Source:     a.source,
		Revision:   a.revision,
		Resolution: a.resolution,
		Loaded:     a.loaded,
		PixelCount: a.pixelCount,
	}
	// Buffered to one and published exactly once, so this never blocks.
	a.lifecycle <- notice

	a.ttl = 0
	a.cancelTimerLocked()
	a.loaded = false
	a.loadedAt = time.Time{}
	if a.surf != nil {
		a.surf.Close()
		a.surf = nil
	}
	a.blob.Release()
	a.blob = nil
	a.fileSize = 0
	a.pixelCount = 0
	a.state = StateDisposed
	a.mu.Unlock()

	close(a.lifecycle)
	Logger().Debug("bitmap: destroyed",
		"source", notice.Source, "revision", notice.Revision, "loaded", notice.Loaded)
}
