// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package paint is an incremental render/paint pipeline for retained
// element trees.
//
// # Overview
//
// Each frame, a tree of already laid-out [Element] boxes is turned into a
// retained tree of compositing layers. Every layer tracks which of its
// pixels changed since it was last painted, so a frame repaints only the
// damaged part of each surface and composites the rest from the previous
// frame's pixels.
//
// # Quick Start
//
//	tree := paint.NewRenderTree()
//	painter, _ := paint.NewPainter(surface.NewSurface)
//	painter.SetViewport(1, paint.XYWH(0, 0, 800, 600))
//
//	tree.Rebuild(root)                        // layers and damage carry-over
//	painter.Resync(tree)                      // re-damage lost surfaces
//	snap := tree.BuildPaintTree(viewport)     // immutable snapshot
//	evicted, err := painter.Paint(dst, snap)  // draw calls on dst
//
// # Frame Pipeline
//
// A frame runs in three synchronous steps:
//   - [RenderTree.Rebuild] builds a fresh [LayoutTree] from the element
//     tree and merges the previous one into it with
//     [LayoutTree.SyncInvalidArea]: removed layers damage their parent, and
//     surviving layers keep their damage and surface placement.
//   - [RenderTree.BuildPaintTree] resolves each layer's damage into
//     [InvalidRects] for the visible part of the layer and produces a
//     [PaintTree] snapshot of [ElementPaintObject] and [LayerPaintObject]
//     values.
//   - [Painter.Paint] repaints damaged regions into retained layer
//     surfaces and composites them onto a destination [Canvas].
//
// A surface that is recreated at a new scale, or that cannot be allocated,
// holds less than earlier frames painted. [Painter.Resync] hands such
// layers back to the tree as full damage before the next build.
//
// A [PaintTree] is never mutated after it is returned and may be painted
// on another goroutine while the next frame is built.
//
// # Layers
//
// Which elements start a layer is decided by a [LayerPolicy] mapping
// [LayerTrigger] flags to root layers (the element and its subtree) or
// children layers (scrolled content). Layers are identified across frames
// by [RenderLayerKey].
//
// # Coordinate System
//
// Origin at top-left, y increases down. Element bounds are relative to the
// parent element; layer content is in layer space, mapped to the root by
// the layer's total matrix.
package paint
