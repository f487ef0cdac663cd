// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// quadImage builds a 2x2 image with four distinct quadrant colors.
func quadImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})
	return img
}

func TestNewImageSurface(t *testing.T) {
	s := NewImageSurface(640, 480)
	defer s.Close()

	if s.Width() != 640 || s.Height() != 480 {
		t.Errorf("size = %dx%d, want 640x480", s.Width(), s.Height())
	}
}

func TestNewImageSurface_ClampsDimensions(t *testing.T) {
	s := NewImageSurface(0, -5)
	defer s.Close()

	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", s.Width(), s.Height())
	}
}

func TestClear(t *testing.T) {
	s := NewImageSurface(4, 4)
	defer s.Close()

	s.Clear(color.RGBA{10, 20, 30, 255})

	got := s.Image().RGBAAt(2, 2)
	if got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("pixel after Clear = %v, want {10 20 30 255}", got)
	}
}

func TestDraw_ScalesToFill(t *testing.T) {
	s := NewImageSurface(4, 4)
	defer s.Close()

	err := s.Draw(quadImage(), &DrawOptions{Filter: FilterNearest})
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	img := s.Image()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("top-left = %v, want red", got)
	}
	if got := img.RGBAAt(3, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("top-right = %v, want green", got)
	}
	if got := img.RGBAAt(0, 3); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("bottom-left = %v, want blue", got)
	}
	if got := img.RGBAAt(3, 3); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("bottom-right = %v, want white", got)
	}
}

func TestDraw_DstRect(t *testing.T) {
	s := NewImageSurface(8, 8)
	defer s.Close()

	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})

	dst := image.Rect(2, 2, 4, 4)
	if err := s.Draw(src, &DrawOptions{DstRect: &dst, Filter: FilterNearest}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	img := s.Image()
	if got := img.RGBAAt(3, 3); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel inside DstRect = %v, want red", got)
	}
	if got := img.RGBAAt(6, 6); got.A != 0 {
		t.Errorf("pixel outside DstRect = %v, want transparent", got)
	}
}

func TestDraw_SrcRect(t *testing.T) {
	s := NewImageSurface(4, 4)
	defer s.Close()

	sr := image.Rect(1, 0, 2, 2)
	if err := s.Draw(quadImage(), &DrawOptions{SrcRect: &sr, Filter: FilterNearest}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// Only the right column of the source should appear.
	img := s.Image()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("top = %v, want green", got)
	}
	if got := img.RGBAAt(0, 3); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("bottom = %v, want white", got)
	}
}

func TestDraw_NilSource(t *testing.T) {
	s := NewImageSurface(4, 4)
	defer s.Close()

	if err := s.Draw(nil, nil); err != nil {
		t.Errorf("Draw(nil) = %v, want nil", err)
	}
}

func TestDraw_AfterClose(t *testing.T) {
	s := NewImageSurface(4, 4)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := s.Draw(quadImage(), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Draw after Close = %v, want ErrClosed", err)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewImageSurface(2, 2)
	defer s.Close()

	s.Clear(color.RGBA{1, 2, 3, 255})

	snap := s.Snapshot()
	snap.SetRGBA(0, 0, color.RGBA{99, 99, 99, 255})

	if got := s.Image().RGBAAt(0, 0); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("mutating the snapshot changed the surface: %v", got)
	}
}

func TestSnapshot_AfterClose(t *testing.T) {
	s := NewImageSurface(2, 2)
	_ = s.Close()

	if snap := s.Snapshot(); snap != nil {
		t.Error("Snapshot after Close should be nil")
	}
}

func TestClose_Idempotent(t *testing.T) {
	s := NewImageSurface(2, 2)

	if err := s.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if s.Image() != nil {
		t.Error("Image after Close should be nil")
	}
}

func TestNewImageSurfaceFromImage(t *testing.T) {
	backing := image.NewRGBA(image.Rect(0, 0, 3, 5))
	s := NewImageSurfaceFromImage(backing)
	defer s.Close()

	if s.Width() != 3 || s.Height() != 5 {
		t.Errorf("size = %dx%d, want 3x5", s.Width(), s.Height())
	}

	s.Clear(color.RGBA{7, 7, 7, 255})
	if got := backing.RGBAAt(1, 1); got != (color.RGBA{7, 7, 7, 255}) {
		t.Error("surface does not composite into the backing image")
	}
}
