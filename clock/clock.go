// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clock provides an injectable time source for the expiration
// scheduler.
//
// Production code receives Real(); tests receive Fake() and drive timer
// firing deterministically with Advance, eliminating sleep-based races
// from time-to-live tests.
package clock

import "time"

// Clock abstracts the time operations the asset lifecycle depends on:
// reading the current time, measuring elapsed life, and scheduling the
// expiration callback.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the time elapsed since t.
	Since(t time.Time) time.Duration

	// AfterFunc waits for duration d, then calls f in its own goroutine.
	// The returned Timer cancels the pending call with Stop. If d <= 0,
	// f runs immediately.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a scheduled callback that can be canceled before it fires.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the timer from firing. It reports whether the call
// stopped the timer; false means the timer already fired or was stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time                  { return time.Now() }
func (realClock) Since(t time.Time) time.Duration { return time.Since(t) }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stopFunc: timer.Stop}
}
