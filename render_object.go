// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

// RenderObject is a node of a LayoutTree: a *NormalObject drawn into the
// surface of its enclosing layer, or a *LayerObject starting a new one.
// No other implementations exist.
type RenderObject interface {
	renderObject()
}

// NormalObject is an element drawn into its enclosing layer.
type NormalObject struct {
	// Element indexes the owning RenderTree's per-frame element records.
	Element  int
	Children []RenderObject
}

// LayerObject begins a new surface.
type LayerObject struct {
	// Layer indexes LayoutTree.Layers.
	Layer   int
	Objects []RenderObject
}

func (*NormalObject) renderObject() {}
func (*LayerObject) renderObject()  {}

// NormalNode is a NormalObject with nested layers split off.
type NormalNode struct {
	Element  int
	Children []NormalNode
}

// LayerNode groups a layer's own elements and its child layers in paint
// order.
type LayerNode struct {
	Layer       int
	NormalNodes []NormalNode
	LayerNodes  []*LayerNode
}
