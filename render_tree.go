// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"cmp"
	"slices"

	"github.com/gogpu/gg"
)

// elementObject is the per-frame record of one element.
type elementObject struct {
	element *Element
	// coord is relative to the parent element, or zero for the element
	// that owns its layer.
	coord gg.Point
	// layerCoord is the element origin in its layer's space.
	layerCoord    gg.Point
	layer         int
	width, height float64
}

func (eo *elementObject) layerBounds() Rect {
	return XYWH(eo.layerCoord.X, eo.layerCoord.Y, eo.width, eo.height)
}

// RenderTree turns an element tree into a LayoutTree each frame and keeps
// the damage state that links consecutive frames.
//
// A RenderTree is not safe for concurrent use. The PaintTree snapshots it
// returns are.
type RenderTree struct {
	id       TreeID
	opts     treeOptions
	layout   *LayoutTree
	elements []elementObject
	frame    uint64
}

// NewRenderTree returns an empty render tree.
func NewRenderTree(opts ...TreeOption) *RenderTree {
	o := defaultTreeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RenderTree{
		id:     newTreeID(),
		opts:   o,
		layout: NewLayoutTree(),
	}
}

// ID returns the tree identity used in layer keys.
func (t *RenderTree) ID() TreeID { return t.id }

// Layout returns the current layout tree.
func (t *RenderTree) Layout() *LayoutTree { return t.layout }

// LayerKeys returns the keys of the current layers.
func (t *RenderTree) LayerKeys() []RenderLayerKey { return t.layout.LayerKeys() }

// Rebuild replaces the layout tree with one built from root and merges the
// previous tree's damage into it. A nil root yields an empty tree.
func (t *RenderTree) Rebuild(root *Element) {
	old := t.layout
	t.layout = NewLayoutTree()
	t.elements = t.elements[:0]

	if root != nil {
		ms := newMatrixStack()
		ms.translate(root.Bounds.X, root.Bounds.Y)
		origin := gg.Pt(root.Bounds.X, root.Bounds.Y)
		t.layout.Root = t.buildRenderObject(root, origin, -1, ms, origin, true)
		if lo, ok := t.layout.Root.(*LayerObject); ok {
			t.layout.LayerRoot = t.buildLayerTree(lo)
		}
	}

	if t.opts.layerCache && old != nil {
		old.SyncInvalidArea(t.layout)
	}
	Logger().Debug("paint: rebuilt render tree",
		"tree", uint64(t.id), "layers", t.layout.Len(), "elements", len(t.elements))
}

func (t *RenderTree) key(id uint32, kind LayerKind) RenderLayerKey {
	return RenderLayerKey{Tree: t.id, Element: id, Kind: kind}
}

// buildRenderObject builds e, whose origin in root space is origin and in
// its enclosing layer is layerCoord. ms holds the transform to e's origin.
func (t *RenderTree) buildRenderObject(e *Element, origin gg.Point, layer int, ms *matrixStack, layerCoord gg.Point, isRoot bool) RenderObject {
	if !isRoot && t.opts.policy.Root&e.Triggers == 0 {
		return t.createNormalObject(e, gg.Pt(e.Bounds.X, e.Bounds.Y), origin, layer, ms, layerCoord)
	}

	ms.save()
	defer ms.restore()
	local := gg.Translate(layerCoord.X, layerCoord.Y)
	if e.Transform != nil {
		ms.concat(*e.Transform)
		local = local.Multiply(*e.Transform)
	}
	idx := t.layout.AddLayer(&LayerObjectData{
		Key:               t.key(e.ID, LayerRoot),
		Matrix:            local,
		TotalMatrix:       ms.total(),
		Width:             e.Bounds.Width,
		Height:            e.Bounds.Height,
		OriginAbsolutePos: origin,
		InvalidArea:       FullInvalidArea(),
	})
	obj := t.createNormalObject(e, gg.Point{}, origin, idx, ms, gg.Point{})
	return &LayerObject{Layer: idx, Objects: []RenderObject{obj}}
}

func (t *RenderTree) createNormalObject(e *Element, coord, origin gg.Point, layer int, ms *matrixStack, layerCoord gg.Point) RenderObject {
	idx := len(t.elements)
	t.elements = append(t.elements, elementObject{
		element:    e,
		coord:      coord,
		layerCoord: layerCoord,
		layer:      layer,
		width:      e.Bounds.Width,
		height:     e.Bounds.Height,
	})
	e.tree = t.id
	e.slot = idx + 1
	children := t.buildRenderObjectChildren(e, origin, layer, ms, layerCoord)
	return &NormalObject{Element: idx, Children: children}
}

// buildRenderObjectChildren builds e's children, inside a children layer
// when the policy asks for one.
func (t *RenderTree) buildRenderObjectChildren(e *Element, origin gg.Point, layer int, ms *matrixStack, layerCoord gg.Point) []RenderObject {
	if t.opts.policy.Children&e.Triggers == 0 {
		return t.buildChildrenObjects(e, origin, layer, ms, layerCoord)
	}

	ms.save()
	defer ms.restore()
	sl, st := e.ScrollLeft, e.ScrollTop
	ms.translate(-sl, -st)
	clip := XYWH(sl, st, e.Bounds.Width, e.Bounds.Height)
	w, h := e.contentSize()
	idx := t.layout.AddLayer(&LayerObjectData{
		Key:               t.key(e.ID, LayerChildren),
		Matrix:            gg.Translate(layerCoord.X-sl, layerCoord.Y-st),
		TotalMatrix:       ms.total(),
		Width:             w,
		Height:            h,
		OriginAbsolutePos: origin,
		ScrollLeft:        sl,
		ScrollTop:         st,
		ClipRect:          &clip,
		InvalidArea:       FullInvalidArea(),
	})
	objs := t.buildChildrenObjects(e, origin, idx, ms, gg.Point{})
	return []RenderObject{&LayerObject{Layer: idx, Objects: objs}}
}

func (t *RenderTree) buildChildrenObjects(e *Element, origin gg.Point, layer int, ms *matrixStack, layerCoord gg.Point) []RenderObject {
	out := make([]RenderObject, 0, len(e.Children))
	for _, c := range e.Children {
		ms.save()
		ms.translate(c.Bounds.X, c.Bounds.Y)
		out = append(out, t.buildRenderObject(c,
			gg.Pt(origin.X+c.Bounds.X, origin.Y+c.Bounds.Y),
			layer, ms,
			gg.Pt(layerCoord.X+c.Bounds.X, layerCoord.Y+c.Bounds.Y),
			false))
		ms.restore()
	}
	return out
}

// buildLayerTree splits lo's objects into its own elements and nested
// layers. Children layers paint below root layers; ties keep build order.
func (t *RenderTree) buildLayerTree(lo *LayerObject) *LayerNode {
	node := &LayerNode{Layer: lo.Layer}
	var nested []*LayerObject
	for _, o := range lo.Objects {
		if n, ok := collectNormalNode(o, &nested); ok {
			node.NormalNodes = append(node.NormalNodes, n)
		}
	}
	slices.SortStableFunc(nested, func(a, b *LayerObject) int {
		return cmp.Compare(paintRank(t.layout.Layers[a.Layer].Key.Kind), paintRank(t.layout.Layers[b.Layer].Key.Kind))
	})
	for _, l := range nested {
		node.LayerNodes = append(node.LayerNodes, t.buildLayerTree(l))
	}
	return node
}

func paintRank(k LayerKind) int {
	if k == LayerChildren {
		return 0
	}
	return 1
}

func collectNormalNode(o RenderObject, nested *[]*LayerObject) (NormalNode, bool) {
	switch v := o.(type) {
	case *LayerObject:
		*nested = append(*nested, v)
	case *NormalObject:
		n := NormalNode{Element: v.Element}
		for _, c := range v.Children {
			if cn, ok := collectNormalNode(c, nested); ok {
				n.Children = append(n.Children, cn)
			}
		}
		return n, true
	}
	return NormalNode{}, false
}

// elementObject returns the current record of e.
func (t *RenderTree) elementObject(e *Element) (*elementObject, bool) {
	if e == nil || e.tree != t.id || e.slot <= 0 || e.slot > len(t.elements) {
		return nil, false
	}
	eo := &t.elements[e.slot-1]
	if eo.element != e {
		return nil, false
	}
	return eo, true
}

// InvalidateElement damages e's box in its layer. To repaint a moved
// element, call it before Rebuild for the old box and after for the new.
func (t *RenderTree) InvalidateElement(e *Element) bool {
	eo, ok := t.elementObject(e)
	if !ok {
		return false
	}
	t.layout.Layers[eo.layer].Invalidate(eo.layerBounds())
	return true
}

// InvalidateRect damages r, in layer space, in the layer with key k.
func (t *RenderTree) InvalidateRect(k RenderLayerKey, r Rect) bool {
	lo, ok := t.layout.LayerByKey(k)
	if !ok {
		return false
	}
	lo.Invalidate(r)
	return true
}

// InvalidateLayer damages the whole surface of the layer with key k.
func (t *RenderTree) InvalidateLayer(k RenderLayerKey) bool {
	lo, ok := t.layout.LayerByKey(k)
	if !ok {
		return false
	}
	lo.InvalidArea.MarkFull()
	return true
}

// InvalidateAll damages every layer surface, for example after the
// surfaces were lost.
func (t *RenderTree) InvalidateAll() {
	for _, lo := range t.layout.Layers {
		lo.InvalidArea.MarkFull()
	}
}

// ElementTotalMatrix returns the transform from e's space to root space.
func (t *RenderTree) ElementTotalMatrix(e *Element) (gg.Matrix, bool) {
	eo, ok := t.elementObject(e)
	if !ok {
		return gg.Matrix{}, false
	}
	lo := t.layout.Layers[eo.layer]
	return lo.TotalMatrix.Multiply(gg.Translate(eo.layerCoord.X, eo.layerCoord.Y)), true
}

// HitTest returns the topmost element under the root-space point (x, y)
// and the point in that element's space.
func (t *RenderTree) HitTest(x, y float64) (*Element, gg.Point, bool) {
	if t.layout.LayerRoot == nil {
		return nil, gg.Point{}, false
	}
	return t.hitLayer(t.layout.LayerRoot, gg.Pt(x, y))
}

func (t *RenderTree) hitLayer(n *LayerNode, p gg.Point) (*Element, gg.Point, bool) {
	for i := len(n.LayerNodes) - 1; i >= 0; i-- {
		if e, lp, ok := t.hitLayer(n.LayerNodes[i], p); ok {
			return e, lp, true
		}
	}
	lo := t.layout.Layers[n.Layer]
	inv, ok := invert(lo.TotalMatrix)
	if !ok {
		return nil, gg.Point{}, false
	}
	lp := inv.TransformPoint(p)
	clip := lo.Bounds()
	if lo.ClipRect != nil {
		clip = *lo.ClipRect
	}
	if !clip.Contains(lp.X, lp.Y) {
		return nil, gg.Point{}, false
	}
	return t.hitNormal(n.NormalNodes, lp)
}

func (t *RenderTree) hitNormal(nodes []NormalNode, p gg.Point) (*Element, gg.Point, bool) {
	for i := len(nodes) - 1; i >= 0; i-- {
		if e, lp, ok := t.hitNormal(nodes[i].Children, p); ok {
			return e, lp, true
		}
		eo := &t.elements[nodes[i].Element]
		if eo.layerBounds().Contains(p.X, p.Y) {
			return eo.element, gg.Pt(p.X-eo.layerCoord.X, p.Y-eo.layerCoord.Y), true
		}
	}
	return nil, gg.Point{}, false
}
