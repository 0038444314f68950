// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/paint/border"
)

// LayerTrigger is a set of element properties that may require a layer.
type LayerTrigger uint8

const (
	// TriggerTransform marks an element with a transform.
	TriggerTransform LayerTrigger = 1 << iota
	// TriggerPositioned marks an absolutely or relatively positioned element.
	TriggerPositioned
	// TriggerOpacity marks an element with opacity below one.
	TriggerOpacity
	// TriggerClip marks an element that clips its overflow.
	TriggerClip
	// TriggerScroll marks an element with scrollable overflow.
	TriggerScroll
)

// LayerPolicy maps triggers to the layers they create. An element gets a
// root layer when any of its triggers is in Root, and a children layer
// for its content when any is in Children.
type LayerPolicy struct {
	Root     LayerTrigger
	Children LayerTrigger
}

// DefaultLayerPolicy gives transformed, positioned and translucent
// elements their own layer, and scrolled or clipped content a children
// layer.
func DefaultLayerPolicy() LayerPolicy {
	return LayerPolicy{
		Root:     TriggerTransform | TriggerPositioned | TriggerOpacity,
		Children: TriggerScroll | TriggerClip,
	}
}

// Element is the laid-out, styled box the pipeline consumes. Elements are
// retained across frames; the caller mutates them between frames and
// reports damage through RenderTree.InvalidateElement.
type Element struct {
	// ID identifies the element across frames. It must be unique within
	// a tree.
	ID uint32

	// Bounds is the border box relative to the parent element.
	Bounds Rect

	// BorderWidths are [top, right, bottom, left].
	BorderWidths [4]float64
	// BorderRadius are [top-left, top-right, bottom-right, bottom-left].
	BorderRadius [4]float64
	// BorderColors are [top, right, bottom, left].
	BorderColors [4]gg.RGBA

	BackgroundColor gg.RGBA
	BackgroundImage image.Image

	// Transform applies in element space when TriggerTransform creates a
	// layer. Nil means identity.
	Transform *gg.Matrix
	Triggers  LayerTrigger

	ScrollLeft, ScrollTop float64
	// ContentWidth and ContentHeight size the scrolled content; zero or
	// smaller than Bounds means the content fits the box.
	ContentWidth, ContentHeight float64

	Focused bool

	// Render draws the element's content, translated to the padding box.
	Render func(Canvas)

	Children []*Element

	border *border.Path

	tree TreeID
	slot int // index+1 into the owning tree's element records
}

// BorderPath returns the element's cached border geometry, rebuilding it
// only when size, radii or widths changed since the last call.
func (e *Element) BorderPath() *border.Path {
	next := border.NewPath(e.Bounds.Width, e.Bounds.Height, e.BorderRadius, e.BorderWidths)
	e.border = border.Retain(e.border, next)
	return e.border
}

// contentSize returns the size of the scrolled content.
func (e *Element) contentSize() (w, h float64) {
	return math.Max(e.ContentWidth, e.Bounds.Width), math.Max(e.ContentHeight, e.Bounds.Height)
}
