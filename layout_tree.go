// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

// LayoutTree is the structural skeleton of one frame: render objects plus
// a flat registry of layers indexed by key.
type LayoutTree struct {
	// Root is nil for an empty tree.
	Root RenderObject
	// Layers holds every layer in registration order.
	Layers []*LayerObjectData
	// LayerRoot is the layer tree derived from Root.
	LayerRoot *LayerNode

	index map[RenderLayerKey]int
}

// NewLayoutTree returns an empty tree.
func NewLayoutTree() *LayoutTree {
	return &LayoutTree{index: make(map[RenderLayerKey]int)}
}

// AddLayer registers l and returns its index. Keys must be unique within
// a tree; a repeated key keeps resolving to the first registration.
func (t *LayoutTree) AddLayer(l *LayerObjectData) int {
	idx := len(t.Layers)
	t.Layers = append(t.Layers, l)
	if _, dup := t.index[l.Key]; dup {
		Logger().Warn("paint: duplicate layer key", "key", l.Key.String())
		return idx
	}
	t.index[l.Key] = idx
	return idx
}

// Len returns the number of layers.
func (t *LayoutTree) Len() int { return len(t.Layers) }

// LayerByKey returns the layer registered under k.
func (t *LayoutTree) LayerByKey(k RenderLayerKey) (*LayerObjectData, bool) {
	idx, ok := t.index[k]
	if !ok {
		return nil, false
	}
	return t.Layers[idx], true
}

// HasLayer reports whether k is registered.
func (t *LayoutTree) HasLayer(k RenderLayerKey) bool {
	_, ok := t.index[k]
	return ok
}

// LayerKeys returns the keys of all layers in registration order.
func (t *LayoutTree) LayerKeys() []RenderLayerKey {
	keys := make([]RenderLayerKey, len(t.Layers))
	for i, l := range t.Layers {
		keys[i] = l.Key
	}
	return keys
}

// SyncInvalidArea merges t, the previous frame's tree, into newTree.
//
// Layers that disappeared damage their former box in their parent layer.
// Layers present in both trees carry their damage, surface bounds and
// visible bounds over to newTree. t must not be used afterwards.
func (t *LayoutTree) SyncInvalidArea(newTree *LayoutTree) {
	t.mergeInvalidArea(newTree)
	for _, old := range t.Layers {
		nl, ok := newTree.LayerByKey(old.Key)
		if !ok {
			continue
		}
		nl.InvalidArea = old.InvalidArea.Clone()
		nl.SurfaceBounds = old.SurfaceBounds
		nl.VisibleBounds = old.VisibleBounds
	}
}

func (t *LayoutTree) mergeInvalidArea(newTree *LayoutTree) {
	if t.Root == nil {
		return
	}
	t.mergeObjectInvalidArea(t.Root, -1, newTree)
}

func (t *LayoutTree) mergeObjectInvalidArea(ro RenderObject, parent int, newTree *LayoutTree) {
	switch o := ro.(type) {
	case *NormalObject:
		for _, c := range o.Children {
			t.mergeObjectInvalidArea(c, parent, newTree)
		}
	case *LayerObject:
		lo := t.Layers[o.Layer]
		if parent >= 0 && !newTree.HasLayer(lo.Key) {
			p := t.Layers[parent]
			p.InvalidArea.AddRect(XYWH(
				lo.OriginAbsolutePos.X-p.OriginAbsolutePos.X,
				lo.OriginAbsolutePos.Y-p.OriginAbsolutePos.Y,
				lo.Width, lo.Height,
			))
		}
		for _, c := range o.Objects {
			t.mergeObjectInvalidArea(c, o.Layer, newTree)
		}
	}
}

