// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"cmp"
	"fmt"
	"sync/atomic"
)

// TreeID identifies a RenderTree for the lifetime of the process.
type TreeID uint64

var nextTreeID atomic.Uint64

func newTreeID() TreeID {
	return TreeID(nextTreeID.Add(1))
}

// LayerKind distinguishes the two layers an element can own.
type LayerKind uint8

const (
	// LayerRoot holds the element itself and its descendants.
	LayerRoot LayerKind = iota
	// LayerChildren holds an element's scrolled content.
	LayerChildren
)

var layerKindNames = [...]string{
	LayerRoot:     "Root",
	LayerChildren: "Children",
}

// String returns the kind name.
func (k LayerKind) String() string {
	if int(k) < len(layerKindNames) {
		return layerKindNames[k]
	}
	return fmt.Sprintf("LayerKind(%d)", k)
}

// RenderLayerKey is the cross-frame identity of a layer surface.
type RenderLayerKey struct {
	Tree    TreeID
	Element uint32
	Kind    LayerKind
}

// String returns a compact form for logs.
func (k RenderLayerKey) String() string {
	return fmt.Sprintf("%d/%d/%s", k.Tree, k.Element, k.Kind)
}

// Compare orders keys by tree, element, then kind.
func (k RenderLayerKey) Compare(o RenderLayerKey) int {
	if c := cmp.Compare(k.Tree, o.Tree); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Element, o.Element); c != 0 {
		return c
	}
	return cmp.Compare(k.Kind, o.Kind)
}
