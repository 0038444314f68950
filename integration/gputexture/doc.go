// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gputexture presents painted frames in gogpu windows.
//
// A Target owns the CPU surface the paint.Painter composites onto and the
// GPU texture mirroring it. After each frame only the pixels that changed
// are uploaded:
//
//	paint.PaintTree -> Painter -> ImageSurface (CPU) -> dirty rects -> GPU Texture -> Window
//
// # Usage
//
//	target, _ := gputexture.New(800, 600)
//	defer target.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    tree.Rebuild(root)
//	    painter.Resync(tree)
//	    target.Paint(painter, tree.BuildPaintTree(viewport))
//	    target.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Dirty Tracking
//
// The target remembers where each layer was composited last frame, keyed
// by paint.RenderLayerKey. A layer that kept its transform contributes its
// damage rects; a layer that moved, appeared or was evicted contributes
// its whole clip box. So does a layer the painter skipped because its
// surface could not be allocated. Textures implementing UpdateRegion receive just
// those rects, others get a full UpdateData.
//
// # Thread Safety
//
// Target is NOT safe for concurrent use.
package gputexture
