// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

// TreeOption configures a RenderTree during creation.
//
// Example:
//
//	tree := paint.NewRenderTree(
//		paint.WithLayerPolicy(paint.LayerPolicy{Root: paint.TriggerTransform}),
//	)
type TreeOption func(*treeOptions)

type treeOptions struct {
	policy     LayerPolicy
	layerCache bool
}

func defaultTreeOptions() treeOptions {
	return treeOptions{
		policy:     DefaultLayerPolicy(),
		layerCache: true,
	}
}

// WithLayerPolicy sets which element triggers create layers.
func WithLayerPolicy(p LayerPolicy) TreeOption {
	return func(o *treeOptions) {
		o.policy = p
	}
}

// WithLayerCache enables or disables carrying damage and surface state
// from one frame's layout tree to the next. With the cache disabled every
// layer is repainted in full each frame.
func WithLayerCache(enabled bool) TreeOption {
	return func(o *treeOptions) {
		o.layerCache = enabled
	}
}

// PainterOption configures a Painter during creation.
type PainterOption func(*painterOptions)

type painterOptions struct {
	scale    float64
	viewport Rect
	debug    DebugFlags
}

func defaultPainterOptions() painterOptions {
	return painterOptions{scale: 1}
}

// WithScale sets the device pixel ratio of layer surfaces.
// Non-positive values are ignored.
func WithScale(scale float64) PainterOption {
	return func(o *painterOptions) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// WithViewport sets the initial viewport.
func WithViewport(r Rect) PainterOption {
	return func(o *painterOptions) {
		o.viewport = r
	}
}

// WithDebug enables debug overlays.
func WithDebug(flags DebugFlags) PainterOption {
	return func(o *painterOptions) {
		o.debug = flags
	}
}
