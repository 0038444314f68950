// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides raster layer surfaces for the paint pipeline.
//
// ImageSurface implements paint.Surface on top of a gg.Context. Each draw
// call is rasterized by gg into a scratch pixmap and composited onto the
// retained layer pixels through the current clip, so pixels outside the
// clip survive from earlier frames. That retention is what makes
// incremental repaint work.
//
// # Registry
//
// Surface backends are looked up by name, highest priority first:
//
//	surface.Register("image", 10, surface.NewSurface)
//
//	factory, err := surface.FactoryByName("image")
//	painter, err := paint.NewPainter(factory)
//
// The "image" backend is registered by this package.
//
// # Usage
//
//	s, err := surface.NewImageSurface(200, 100)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.ClipRect(paint.XYWH(0, 0, 50, 50))
//	s.DrawRect(paint.XYWH(0, 0, 200, 100), paint.Style{Color: gg.Red})
//	img := s.Snapshot()
package surface
