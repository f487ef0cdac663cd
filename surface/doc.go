// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the off-screen rendering target decoded
// assets are composited onto.
//
// Surface decouples the load and compress pipelines from how pixels
// are actually stored. The same pipeline code works with:
//
//   - CPU-based compositing (ImageSurface)
//   - Third-party targets via the registry
//
// # Surface Types
//
//   - ImageSurface: compositing into an *image.RGBA with x/image
//     scaling kernels
//
// # Registry
//
// Alternative backends can register themselves and are picked by
// priority:
//
//	surface.Register("metal", 100, metalFactory, metalAvailable)
//
//	// Later:
//	s, err := surface.NewSurfaceByName("metal", 640, 480)
//	// or auto-select best available:
//	s, err := surface.NewSurface(640, 480)
//
// # Usage
//
//	s, err := surface.NewSurface(img.Bounds().Dx(), img.Bounds().Dy())
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Draw(img, nil); err != nil {
//	    return err
//	}
//	out := s.Snapshot()
package surface
