// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"math"
)

// BuildPaintTree resolves every layer's damage for viewport and returns
// the frame snapshot. Render callbacks are captured only for elements that
// touch damage. Layer damage is consumed. It returns nil for an empty
// tree.
func (t *RenderTree) BuildPaintTree(viewport Rect) *PaintTree {
	if t.layout.LayerRoot == nil {
		return nil
	}
	t.frame++
	return &PaintTree{
		Root:      t.buildPaintLayer(t.layout.LayerRoot, viewport),
		LayerKeys: t.layout.LayerKeys(),
		Frame:     t.frame,
		Viewport:  viewport,
	}
}

// visibleBounds returns the part of lo inside viewport, in layer space,
// rounded out to whole pixels.
func visibleBounds(lo *LayerObjectData, viewport Rect) Rect {
	inv, ok := invert(lo.TotalMatrix)
	if !ok {
		return Rect{}
	}
	v := TransformRect(inv, viewport).Intersect(lo.Bounds())
	if v.IsEmpty() {
		return Rect{}
	}
	return v.RoundOut()
}

// updateSurface places lo's surface for this frame and adds the damage the
// move causes to area.
func updateSurface(lo *LayerObjectData, visible, viewport Rect, area *InvalidArea) {
	maxLen := math.Ceil(math.Hypot(viewport.Width, viewport.Height))
	sw := math.Ceil(math.Min(lo.Width, maxLen))
	sh := math.Ceil(math.Min(lo.Height, maxLen))

	if lo.SurfaceBounds.Width != sw || lo.SurfaceBounds.Height != sh {
		area.MarkFull()
		lo.SurfaceBounds = XYWH(visible.X, visible.Y, sw, sh)
		return
	}

	// Newly visible strips.
	if common := visible.Intersect(lo.VisibleBounds); !common.IsEmpty() {
		if common.Left() > visible.Left() {
			area.AddRect(LTRB(visible.Left(), visible.Top(), common.Left(), visible.Bottom()))
		}
		if common.Top() > visible.Top() {
			area.AddRect(LTRB(visible.Left(), visible.Top(), visible.Right(), common.Top()))
		}
		if common.Right() < visible.Right() {
			area.AddRect(LTRB(common.Right(), visible.Top(), visible.Right(), visible.Bottom()))
		}
		if common.Bottom() < visible.Bottom() {
			area.AddRect(LTRB(visible.Left(), common.Bottom(), visible.Right(), visible.Bottom()))
		}
	} else if !visible.IsEmpty() {
		area.AddRect(visible)
	}

	// Slide the surface so it keeps covering the visible part.
	sb := lo.SurfaceBounds
	if sb.Left() > visible.Left() {
		area.AddRect(LTRB(visible.Left(), sb.Top(), sb.Left(), sb.Bottom()))
		sb = sb.Offset(visible.Left()-sb.Left(), 0)
	} else if sb.Right() < visible.Right() {
		area.AddRect(LTRB(sb.Right(), sb.Top(), visible.Right(), sb.Bottom()))
		sb = sb.Offset(visible.Right()-sb.Right(), 0)
	}
	if sb.Top() > visible.Top() {
		area.AddRect(LTRB(sb.Left(), visible.Top(), sb.Right(), sb.Top()))
		sb = sb.Offset(0, visible.Top()-sb.Top())
	} else if sb.Bottom() < visible.Bottom() {
		area.AddRect(LTRB(sb.Left(), sb.Bottom(), sb.Right(), visible.Bottom()))
		sb = sb.Offset(0, visible.Bottom()-sb.Bottom())
	}
	lo.SurfaceBounds = sb
}

func (t *RenderTree) buildPaintLayer(n *LayerNode, viewport Rect) *LayerPaintObject {
	lo := t.layout.Layers[n.Layer]
	area := lo.InvalidArea.Clone()
	visible := visibleBounds(lo, viewport)
	updateSurface(lo, visible, viewport, &area)
	lo.VisibleBounds = visible
	rects := area.Build(visible)

	lpo := &LayerPaintObject{
		Key:               lo.Key,
		Matrix:            lo.Matrix,
		TotalMatrix:       lo.TotalMatrix,
		Width:             lo.Width,
		Height:            lo.Height,
		OriginAbsolutePos: lo.OriginAbsolutePos,
		InvalidRects:      rects,
		SurfaceBounds:     lo.SurfaceBounds,
		VisibleBounds:     visible,
		NormalNodes:       t.buildPaintNormals(n.NormalNodes, rects),
	}
	if lo.ClipRect != nil {
		clip := *lo.ClipRect
		lpo.ClipRect = &clip
	}
	for _, c := range n.LayerNodes {
		lpo.LayerNodes = append(lpo.LayerNodes, t.buildPaintLayer(c, viewport))
	}
	lo.InvalidArea.Reset()
	return lpo
}

func (t *RenderTree) buildPaintNormals(nodes []NormalNode, rects InvalidRects) []*ElementPaintObject {
	out := make([]*ElementPaintObject, 0, len(nodes))
	for i := range nodes {
		out = append(out, t.buildPaintNormal(&nodes[i], rects))
	}
	return out
}

func (t *RenderTree) buildPaintNormal(n *NormalNode, rects InvalidRects) *ElementPaintObject {
	eo := &t.elements[n.Element]
	e := eo.element
	bp := e.BorderPath()
	needPaint := rects.Intersects(eo.layerBounds())

	epo := &ElementPaintObject{
		ElementID:       e.ID,
		Coord:           eo.coord,
		Width:           eo.width,
		Height:          eo.height,
		BorderPaths:     bp.Paths(),
		BorderBoxPath:   bp.BoxPath(),
		BorderWidths:    e.BorderWidths,
		BorderColors:    e.BorderColors,
		BackgroundColor: e.BackgroundColor,
		BackgroundImage: e.BackgroundImage,
		NeedPaint:       needPaint,
		Focused:         e.Focused,
		Children:        t.buildPaintNormals(n.Children, rects),
	}
	if needPaint && e.Render != nil {
		epo.Render = NewRenderFn(e.Render)
	}
	return epo
}
