// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"testing"
)

func TestDestroy_PublishesSnapshotThenCloses(t *testing.T) {
	a, _ := loadedAsset(t, 0)
	pixels := a.PixelCount()

	a.Destroy()

	notice, ok := <-a.Lifecycle()
	if !ok {
		t.Fatal("lifecycle closed without delivering the notice")
	}
	if notice.Source != a.Source() {
		t.Errorf("notice.Source = %q, want %q", notice.Source, a.Source())
	}
	if notice.Revision != a.Revision() {
		t.Errorf("notice.Revision = %d, want %d", notice.Revision, a.Revision())
	}
	if !notice.Loaded {
		t.Error("notice.Loaded = false, want snapshot taken before teardown")
	}
	if notice.PixelCount != pixels {
		t.Errorf("notice.PixelCount = %d, want %d", notice.PixelCount, pixels)
	}

	// The channel closes after the single notice.
	if _, ok := <-a.Lifecycle(); ok {
		t.Error("lifecycle delivered a second value")
	}
}

func TestDestroy_ClearsState(t *testing.T) {
	a, _ := loadedAsset(t, 0)
	a.Destroy()

	if a.Loaded() {
		t.Error("Loaded = true after destroy")
	}
	if a.State() != StateDisposed {
		t.Errorf("State = %v, want disposed", a.State())
	}
	if a.Surface() != nil {
		t.Error("surface still attached after destroy")
	}
	if a.Blob() != nil {
		t.Error("blob still attached after destroy")
	}
	if a.PixelCount() != 0 || a.FileSize() != 0 {
		t.Errorf("PixelCount/FileSize = %d/%d after destroy, want 0/0",
			a.PixelCount(), a.FileSize())
	}
	if a.TTL() != 0 {
		t.Errorf("TTL = %v after destroy, want 0", a.TTL())
	}
	if a.Life() != 0 {
		t.Errorf("Life = %v after destroy, want 0", a.Life())
	}
}

func TestDestroy_Idempotent(t *testing.T) {
	a, _ := loadedAsset(t, 0)
	a.Destroy()
	a.Destroy() // must not panic or publish again

	n := 0
	for range a.Lifecycle() {
		n++
	}
	if n != 1 {
		t.Errorf("notices delivered = %d, want exactly 1", n)
	}
}

func TestDestroy_NeverLoadedIsNoOpBeyondTimers(t *testing.T) {
	a := New("http://example.com/pic.png", "", 4, 0)
	a.Destroy()

	notice, ok := <-a.Lifecycle()
	if !ok {
		t.Fatal("lifecycle closed without a notice")
	}
	if notice.Loaded {
		t.Error("notice.Loaded = true for a never-loaded asset")
	}
	if notice.Revision != 4 {
		t.Errorf("notice.Revision = %d, want 4", notice.Revision)
	}
}

func TestLifecycle_LateSubscriberStillObservesNotice(t *testing.T) {
	a, _ := loadedAsset(t, 0)
	a.Destroy()

	// Subscribing only after destruction: the buffered channel still
	// holds the notice.
	select {
	case notice, ok := <-a.Lifecycle():
		if !ok {
			t.Fatal("lifecycle closed before delivering the notice")
		}
		if notice.Source == "" {
			t.Error("notice carries no source")
		}
	default:
		t.Fatal("no notice buffered for late subscriber")
	}
}
