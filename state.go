// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

// State is the asset's position in the load pipeline.
type State uint8

// Pipeline states. Load drives Idle through Ready in order, branching
// to Rehydrating for vector payloads and Rasterizing for raster ones;
// any stage failure lands in Failed. Destroy moves any state to
// Disposed.
const (
	StateIdle State = iota
	StateFetching
	StateDetecting
	StateDecoding
	StateRehydrating
	StateRasterizing
	StateNormalizing
	StateReady
	StateFailed
	StateDisposed
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateDetecting:
		return "detecting"
	case StateDecoding:
		return "decoding"
	case StateRehydrating:
		return "rehydrating"
	case StateRasterizing:
		return "rasterizing"
	case StateNormalizing:
		return "normalizing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}
