// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNow_AdvancesOnlyExplicitly(t *testing.T) {
	c := Fake(epoch)
	if got := c.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	c.Advance(90 * time.Second)
	if got := c.Now(); !got.Equal(epoch.Add(90 * time.Second)) {
		t.Fatalf("Now() after Advance = %v, want %v", got, epoch.Add(90*time.Second))
	}
}

func TestFakeSince_UsesFakeTime(t *testing.T) {
	c := Fake(epoch)
	start := c.Now()
	c.Advance(5 * time.Second)
	if got := c.Since(start); got != 5*time.Second {
		t.Errorf("Since = %v, want 5s", got)
	}
}

func TestFakeAfterFunc_FiresAtDeadline(t *testing.T) {
	c := Fake(epoch)
	var fired atomic.Int32
	c.AfterFunc(10*time.Second, func() { fired.Add(1) })

	c.Advance(9 * time.Second)
	if fired.Load() != 0 {
		t.Fatal("callback fired before deadline")
	}
	c.Advance(1 * time.Second)
	if fired.Load() != 1 {
		t.Fatalf("fired = %d, want 1", fired.Load())
	}
	// One-shot: advancing further never re-fires.
	c.Advance(time.Hour)
	if fired.Load() != 1 {
		t.Fatalf("fired = %d after extra advance, want 1", fired.Load())
	}
}

func TestFakeAfterFunc_ZeroDurationRunsImmediately(t *testing.T) {
	c := Fake(epoch)
	ran := false
	c.AfterFunc(0, func() { ran = true })
	if !ran {
		t.Error("zero-duration callback did not run synchronously")
	}
}

func TestFakeAfterFunc_StopPreventsFiring(t *testing.T) {
	c := Fake(epoch)
	var fired atomic.Int32
	timer := c.AfterFunc(time.Second, func() { fired.Add(1) })

	if !timer.Stop() {
		t.Fatal("Stop() = false for an active timer")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}
	c.Advance(time.Minute)
	if fired.Load() != 0 {
		t.Error("stopped timer fired anyway")
	}
	if c.PendingCount() != 0 {
		t.Errorf("PendingCount = %d, want 0", c.PendingCount())
	}
}

func TestFakeAdvance_FiresInDeadlineOrder(t *testing.T) {
	c := Fake(epoch)
	var order []int
	c.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	c.AfterFunc(1*time.Second, func() { order = append(order, 1) })
	c.AfterFunc(2*time.Second, func() { order = append(order, 2) })

	c.Advance(5 * time.Second)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("fire order = %v, want [1 2 3]", order)
	}
}

func TestFakeAdvance_CallbackSchedulingWithinWindowFires(t *testing.T) {
	c := Fake(epoch)
	var secondFired bool
	c.AfterFunc(time.Second, func() {
		c.AfterFunc(time.Second, func() { secondFired = true })
	})

	// The chained timer's deadline (t+2s) is inside the advanced window.
	c.Advance(5 * time.Second)
	if !secondFired {
		t.Error("timer scheduled during Advance did not fire within the window")
	}
}

func TestFakeWaitForTimers_BlocksUntilRegistered(t *testing.T) {
	c := Fake(epoch)
	done := make(chan struct{})
	go func() {
		c.WaitForTimers(1)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("WaitForTimers returned with no timer pending")
	case <-time.After(10 * time.Millisecond):
	}

	c.AfterFunc(time.Second, func() {})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForTimers did not observe the registered timer")
	}
}
