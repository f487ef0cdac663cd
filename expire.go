// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import "time"

// SetTTL reassigns the asset's time-to-live and re-arms the expiration
// timer relative to now, not the original load time. A ttl of zero
// cancels any pending expiration: the asset then never expires.
func (a *Asset) SetTTL(ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	a.ttl = ttl
	a.armLocked(ttl)
}

// armLocked installs the single-slot expiration timer: any existing
// timer is canceled first, so at most one is pending per asset. A ttl
// of zero only cancels. Callers hold a.mu.
func (a *Asset) armLocked(ttl time.Duration) {
	a.cancelTimerLocked()
	if ttl <= 0 {
		return
	}
	a.timer = a.clk.AfterFunc(ttl, a.expire)
}

// cancelTimerLocked stops any pending expiration timer. Callers hold
// a.mu.
func (a *Asset) cancelTimerLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// expire fires when the time-to-live elapses. A fire against an asset
// that is not loaded is a stale timer from before a load completed and
// is silently ignored.
func (a *Asset) expire() {
	a.mu.Lock()
	loaded := a.loaded
	a.mu.Unlock()
	if !loaded {
		return
	}
	Logger().Debug("bitmap: ttl elapsed", "source", a.source)
	a.Destroy()
}
