// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"image"

	"github.com/gogpu/gg"
)

// StyleMode selects how a shape is painted.
type StyleMode uint8

const (
	// Fill paints the interior.
	Fill StyleMode = iota
	// Stroke paints the outline.
	Stroke
)

// Style describes how DrawRect and DrawPath paint a shape.
type Style struct {
	Color       gg.RGBA
	Mode        StyleMode
	StrokeWidth float64
	AntiAlias   bool
}

// Canvas is the 2D drawing surface the pipeline issues draw calls to.
//
// Coordinates are in user space, mapped by the current transform. Save
// and Restore bracket changes to the transform and clip.
type Canvas interface {
	Save()
	Restore()

	Translate(x, y float64)
	Scale(sx, sy float64)
	// Concat post-multiplies the current transform by m.
	Concat(m gg.Matrix)
	Transform() gg.Matrix
	SetTransform(m gg.Matrix)

	ClipRect(r Rect)
	ClipPath(p *gg.Path)

	// ClearRect resets the pixels under r to transparent, ignoring the clip.
	ClearRect(r Rect)
	DrawRect(r Rect, s Style)
	DrawPath(p *gg.Path, s Style)
	DrawImage(img image.Image, x, y float64)
}

// Surface is a retained raster target backing one layer.
type Surface interface {
	Canvas

	Width() int
	Height() int

	// Snapshot returns the current pixels.
	Snapshot() image.Image

	// Shift moves the pixels by (dx, dy) device pixels. Uncovered pixels
	// become transparent.
	Shift(dx, dy int)

	Close() error
}

// SurfaceFactory allocates a layer surface of the given pixel size.
type SurfaceFactory func(width, height int) (Surface, error)
