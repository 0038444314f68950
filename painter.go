// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/paint/border"
)

// DebugFlags selects debug overlays drawn while compositing.
type DebugFlags uint8

const (
	// DebugRepaintArea outlines each layer's damage rects.
	DebugRepaintArea DebugFlags = 1 << iota
	// DebugLayerHint outlines each layer box.
	DebugLayerHint
	// DebugFocusHint marks focused elements.
	DebugFocusHint
)

var repaintAreaColor = gg.RGB(200.0/255, 0, 0)

// layerState is the retained surface of one layer.
type layerState struct {
	surface       Surface
	width, height int
	scale         float64
	surfaceBounds Rect
	matrix        gg.Matrix
	totalMatrix   gg.Matrix
	invalidRects  InvalidRects
}

// Painter paints PaintTree snapshots. It keeps one surface per layer
// across frames, repaints only damaged pixels and composites every layer
// onto the destination canvas.
//
// A layer whose surface is recreated or lost while its damage covers only
// part of it cannot be completed from the snapshot alone. Such layers are
// remembered and handed back to the RenderTree by Resync.
//
// A Painter is not safe for concurrent use, except that Resync may run
// alongside Paint.
type Painter struct {
	newSurface SurfaceFactory
	scale      float64
	viewport   Rect
	debug      DebugFlags
	layers     map[RenderLayerKey]*layerState

	staleMu sync.Mutex
	stale   map[RenderLayerKey]struct{}
}

// NewPainter returns a Painter allocating layer surfaces with factory.
func NewPainter(factory SurfaceFactory, opts ...PainterOption) (*Painter, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	o := defaultPainterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Painter{
		newSurface: factory,
		scale:      o.scale,
		viewport:   o.viewport,
		debug:      o.debug,
		layers:     make(map[RenderLayerKey]*layerState),
		stale:      make(map[RenderLayerKey]struct{}),
	}, nil
}

// SetViewport sets the device pixel ratio and the viewport. A new ratio
// makes every retained surface stale; call Resync before the next
// BuildPaintTree.
func (p *Painter) SetViewport(scale float64, viewport Rect) {
	if scale > 0 && scale != p.scale {
		p.scale = scale
		for k := range p.layers {
			p.markStale(k)
		}
	}
	p.viewport = viewport
}

// Resync fully damages, in t, every layer whose retained surface no longer
// matches what earlier frames painted into it, and returns their keys
// sorted. Call it before BuildPaintTree. Keys t does not hold are dropped.
func (p *Painter) Resync(t *RenderTree) []RenderLayerKey {
	p.staleMu.Lock()
	defer p.staleMu.Unlock()
	if len(p.stale) == 0 {
		return nil
	}
	keys := make([]RenderLayerKey, 0, len(p.stale))
	for k := range p.stale {
		if t.InvalidateLayer(k) {
			keys = append(keys, k)
		}
	}
	clear(p.stale)
	slices.SortFunc(keys, RenderLayerKey.Compare)
	Logger().Debug("paint: resynced stale layers", "count", len(keys))
	return keys
}

func (p *Painter) markStale(k RenderLayerKey) {
	p.staleMu.Lock()
	p.stale[k] = struct{}{}
	p.staleMu.Unlock()
}

// Viewport returns the current viewport.
func (p *Painter) Viewport() Rect { return p.viewport }

// SetDebug replaces the debug overlay flags.
func (p *Painter) SetDebug(flags DebugFlags) { p.debug = flags }

// Surface returns the retained surface of layer k and its placement in
// layer space.
func (p *Painter) Surface(k RenderLayerKey) (Surface, Rect, bool) {
	st, ok := p.layers[k]
	if !ok {
		return nil, Rect{}, false
	}
	return st.surface, st.surfaceBounds, true
}

// Paint repaints the damaged parts of tree's layers and composites them
// onto dst. Surfaces of layers not painted this frame are closed; their
// keys are returned sorted. Layers whose surface cannot be allocated are
// skipped and reported in the joined error.
func (p *Painter) Paint(dst Canvas, tree *PaintTree) ([]RenderLayerKey, error) {
	if dst == nil {
		return nil, ErrNilCanvas
	}
	prev := p.layers
	p.layers = make(map[RenderLayerKey]*layerState, len(prev))

	var errs []error
	if tree != nil && tree.Root != nil {
		p.drawLayer(dst, tree.Root, prev, &errs)
	}

	evicted := make([]RenderLayerKey, 0, len(prev))
	for k, st := range prev {
		if err := st.surface.Close(); err != nil {
			errs = append(errs, fmt.Errorf("paint: close surface %s: %w", k, err))
		}
		evicted = append(evicted, k)
	}
	slices.SortFunc(evicted, RenderLayerKey.Compare)
	if len(evicted) > 0 {
		Logger().Debug("paint: evicted layer surfaces", "count", len(evicted))
	}
	return evicted, errors.Join(errs...)
}

// Close releases every retained surface.
func (p *Painter) Close() error {
	var errs []error
	for k, st := range p.layers {
		if err := st.surface.Close(); err != nil {
			errs = append(errs, fmt.Errorf("paint: close surface %s: %w", k, err))
		}
	}
	clear(p.layers)
	return errors.Join(errs...)
}

// acquire returns the surface state for l, reusing last frame's surface
// when its size and scale still fit. fresh reports a new, blank surface.
func (p *Painter) acquire(l *LayerPaintObject, width, height int, prev map[RenderLayerKey]*layerState) (st *layerState, fresh bool, err error) {
	if st, ok := prev[l.Key]; ok {
		delete(prev, l.Key)
		if st.width == width && st.height == height && st.scale == p.scale {
			dx := l.SurfaceBounds.X - st.surfaceBounds.X
			dy := l.SurfaceBounds.Y - st.surfaceBounds.Y
			if dx != 0 || dy != 0 {
				st.surface.Shift(int(math.Round(-dx*p.scale)), int(math.Round(-dy*p.scale)))
				Logger().Debug("paint: shifted layer surface", "key", l.Key.String(), "dx", dx, "dy", dy)
			}
			st.surfaceBounds = l.SurfaceBounds
			return st, false, nil
		}
		if err := st.surface.Close(); err != nil {
			Logger().Warn("paint: close resized surface", "key", l.Key.String(), "err", err)
		}
	}

	s, err := p.newSurface(width, height)
	if err != nil {
		return nil, false, err
	}
	if s == nil {
		return nil, false, ErrNilSurface
	}
	s.Scale(p.scale, p.scale)
	Logger().Debug("paint: new layer surface", "key", l.Key.String(), "width", width, "height", height)
	return &layerState{
		surface:       s,
		width:         width,
		height:        height,
		scale:         p.scale,
		surfaceBounds: l.SurfaceBounds,
	}, true, nil
}

// covers reports whether the damage of l spans everything visible of it.
func covers(l *LayerPaintObject) bool {
	v := l.VisibleBounds.Intersect(l.Bounds())
	if v.IsEmpty() {
		return true
	}
	for _, r := range l.InvalidRects.Rects() {
		if r.Intersect(v) == v {
			return true
		}
	}
	return false
}

func (p *Painter) drawLayer(dst Canvas, l *LayerPaintObject, prev map[RenderLayerKey]*layerState, errs *[]error) {
	width := int(l.SurfaceBounds.Width * p.scale)
	height := int(l.SurfaceBounds.Height * p.scale)
	if width <= 0 || height <= 0 {
		return
	}
	st, fresh, err := p.acquire(l, width, height, prev)
	switch {
	case err != nil:
		// Child layers are still composited.
		Logger().Warn("paint: layer surface unavailable", "key", l.Key.String(), "err", err)
		p.markStale(l.Key)
		*errs = append(*errs, &LayerError{Key: l.Key, Err: err})
	default:
		if fresh && !covers(l) {
			Logger().Debug("paint: new surface with partial damage", "key", l.Key.String())
			p.markStale(l.Key)
		}
		st.matrix = l.Matrix
		st.totalMatrix = l.TotalMatrix
		st.invalidRects = l.InvalidRects
		p.layers[l.Key] = st
		p.repaint(l, st)
	}

	dst.Save()
	old := dst.Transform()
	dst.Concat(l.TotalMatrix)
	dst.ClipRect(l.ClipBounds())
	if st != nil {
		p.submitLayer(dst, l, st)
	}
	dst.SetTransform(old)
	for _, c := range l.LayerNodes {
		p.drawLayer(dst, c, prev, errs)
	}
	dst.Restore()
}

// repaint redraws the damaged part of l into its surface.
func (p *Painter) repaint(l *LayerPaintObject, st *layerState) {
	s := st.surface
	s.Save()
	s.Translate(-st.surfaceBounds.X, -st.surfaceBounds.Y)
	if !l.InvalidRects.IsEmpty() {
		s.ClipPath(l.InvalidRects.Path())
		s.ClipRect(l.Bounds())
		for _, r := range l.InvalidRects.Rects() {
			if r = r.Intersect(l.Bounds()); !r.IsEmpty() {
				s.ClearRect(r)
			}
		}
	}
	for _, e := range l.NormalNodes {
		p.drawElement(s, e)
	}
	s.Restore()
}

// submitLayer draws the layer surface in layer space.
func (p *Painter) submitLayer(dst Canvas, l *LayerPaintObject, st *layerState) {
	dst.Save()
	dst.Translate(st.surfaceBounds.X, st.surfaceBounds.Y)
	dst.Scale(1/p.scale, 1/p.scale)
	dst.DrawImage(st.surface.Snapshot(), 0, 0)
	dst.Restore()

	if p.debug&DebugRepaintArea != 0 && !st.invalidRects.IsEmpty() {
		dst.DrawPath(st.invalidRects.Path(), Style{Color: repaintAreaColor, Mode: Stroke, StrokeWidth: 1})
	}
	if p.debug&DebugLayerHint != 0 {
		dst.DrawRect(XYWH(0.5, 0.5, l.Width-1, l.Height-1), Style{Color: gg.Red, Mode: Stroke, StrokeWidth: 1})
	}
}

func (p *Painter) drawElement(c Canvas, e *ElementPaintObject) {
	if !e.NeedPaint && len(e.Children) == 0 {
		return
	}
	c.Save()
	c.Translate(e.Coord.X, e.Coord.Y)
	if !border.IsEmpty(e.BorderBoxPath) {
		c.ClipPath(e.BorderBoxPath)
	}
	if e.NeedPaint {
		e.Draw(c)
		if p.debug&DebugFocusHint != 0 && e.Focused {
			e.DrawFocusHint(c)
		}
	}
	for _, child := range e.Children {
		p.drawElement(c, child)
	}
	c.Restore()
}
