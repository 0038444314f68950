// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/paint/border"
)

// ElementPaintObject is the drawable state of one element for one frame.
// Its paths are shared with the element's border cache and must not be
// modified.
type ElementPaintObject struct {
	ElementID uint32

	// Coord is the element origin relative to its parent paint object.
	Coord         gg.Point
	Width, Height float64

	BorderPaths   [4]*gg.Path
	BorderBoxPath *gg.Path
	BorderWidths  [4]float64
	BorderColors  [4]gg.RGBA

	BackgroundColor gg.RGBA
	BackgroundImage image.Image

	// Render is set only when NeedPaint is.
	Render *RenderFn

	// NeedPaint reports whether the element touches the layer's damage.
	NeedPaint bool
	Focused   bool

	Children []*ElementPaintObject
}

// ContentBox returns the box inside the borders.
func (e *ElementPaintObject) ContentBox() Rect {
	b := e.BorderWidths
	return LTRB(b[border.Left], b[border.Top], e.Width-b[border.Right], e.Height-b[border.Bottom])
}

// DrawBackground draws the background image at the origin or, without
// one, fills the content box with a non-transparent background color.
func (e *ElementPaintObject) DrawBackground(c Canvas) {
	if e.BackgroundImage != nil {
		c.DrawImage(e.BackgroundImage, 0, 0)
		return
	}
	if e.BackgroundColor.A > 0 {
		c.DrawRect(e.ContentBox(), Style{Color: e.BackgroundColor, Mode: Fill})
	}
}

// DrawBorder fills each non-empty border path with its edge color.
func (e *ElementPaintObject) DrawBorder(c Canvas) {
	for i, p := range e.BorderPaths {
		if border.IsEmpty(p) {
			continue
		}
		c.DrawPath(p, Style{Color: e.BorderColors[i], Mode: Fill, AntiAlias: true})
	}
}

// DrawFocusHint strokes a marker just inside the element box.
func (e *ElementPaintObject) DrawFocusHint(c Canvas) {
	c.DrawRect(XYWH(1, 1, e.Width-2, e.Height-2), Style{Color: gg.Red, Mode: Stroke, StrokeWidth: 2})
}

// Draw paints background, border and content. The content callback runs
// with the origin moved past the top and left borders.
func (e *ElementPaintObject) Draw(c Canvas) {
	c.Save()
	defer c.Restore()
	e.DrawBackground(c)
	e.DrawBorder(c)
	if e.Width > 0 && e.Height > 0 && e.Render != nil {
		c.Save()
		c.Translate(e.BorderWidths[border.Left], e.BorderWidths[border.Top])
		e.Render.Run(c)
		c.Restore()
	}
}

// LayerPaintObject is the compositing state of one layer for one frame.
type LayerPaintObject struct {
	Key RenderLayerKey

	Matrix      gg.Matrix
	TotalMatrix gg.Matrix

	Width, Height     float64
	OriginAbsolutePos gg.Point

	InvalidRects  InvalidRects
	SurfaceBounds Rect
	VisibleBounds Rect
	ClipRect      *Rect

	NormalNodes []*ElementPaintObject
	LayerNodes  []*LayerPaintObject
}

// Bounds returns the layer box in layer space.
func (l *LayerPaintObject) Bounds() Rect {
	return XYWH(0, 0, l.Width, l.Height)
}

// ClipBounds returns the rect the layer is clipped to when composited.
func (l *LayerPaintObject) ClipBounds() Rect {
	if l.ClipRect != nil {
		return *l.ClipRect
	}
	return l.Bounds()
}

// Compose recomputes TotalMatrix as parent × Matrix for l and every
// nested layer.
func (l *LayerPaintObject) Compose(parent gg.Matrix) {
	l.TotalMatrix = parent.Multiply(l.Matrix)
	for _, c := range l.LayerNodes {
		c.Compose(l.TotalMatrix)
	}
}

// Walk calls fn for every layer in the subtree, children before their
// parent. This is the order in which layer surfaces must be up to date
// before the parent composites them.
func (l *LayerPaintObject) Walk(fn func(*LayerPaintObject)) {
	for _, c := range l.LayerNodes {
		c.Walk(fn)
	}
	fn(l)
}

// PaintTree is an immutable per-frame snapshot ready to paint.
type PaintTree struct {
	Root *LayerPaintObject
	// LayerKeys is the live layer set of the frame, in registration order.
	LayerKeys []RenderLayerKey
	Frame     uint64
	Viewport  Rect
}

// Layers returns all layers in paint order.
func (t *PaintTree) Layers() []*LayerPaintObject {
	var out []*LayerPaintObject
	var walk func(*LayerPaintObject)
	walk = func(l *LayerPaintObject) {
		out = append(out, l)
		for _, c := range l.LayerNodes {
			walk(c)
		}
	}
	if t != nil && t.Root != nil {
		walk(t.Root)
	}
	return out
}
