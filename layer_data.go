// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import "github.com/gogpu/gg"

// LayerObjectData is the per-frame bookkeeping of one layer.
type LayerObjectData struct {
	Key RenderLayerKey

	// Matrix maps layer space into the parent layer's space.
	Matrix gg.Matrix
	// TotalMatrix maps layer space into root space.
	TotalMatrix gg.Matrix

	Width, Height float64

	// OriginAbsolutePos is the layer origin in root space before
	// transforms and scrolling.
	OriginAbsolutePos gg.Point

	ScrollLeft, ScrollTop float64

	// ClipRect restricts compositing, in layer space. Nil clips to the
	// layer box.
	ClipRect *Rect

	InvalidArea InvalidArea

	// SurfaceBounds is the part of the layer backed by pixels.
	SurfaceBounds Rect
	// VisibleBounds is the part of the layer inside the viewport.
	VisibleBounds Rect
}

// Bounds returns the layer box in layer space.
func (l *LayerObjectData) Bounds() Rect {
	return XYWH(0, 0, l.Width, l.Height)
}

// Invalidate adds r, in layer space, to the layer's damage.
func (l *LayerObjectData) Invalidate(r Rect) UniqueRect {
	return l.InvalidArea.AddRect(r)
}
