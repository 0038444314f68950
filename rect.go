// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned box in floating point coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// XYWH returns a Rect from its origin and size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// LTRB returns a Rect from its edges.
func LTRB(left, top, right, bottom float64) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// FromGG converts a gg bounding box.
func FromGG(r gg.Rect) Rect {
	return LTRB(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// Left returns the minimum x.
func (r Rect) Left() float64 { return r.X }

// Top returns the minimum y.
func (r Rect) Top() float64 { return r.Y }

// Right returns the maximum x.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the maximum y.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return !(r.Width > 0 && r.Height > 0)
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	left := math.Max(r.Left(), o.Left())
	top := math.Max(r.Top(), o.Top())
	right := math.Min(r.Right(), o.Right())
	bottom := math.Min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rect{}
	}
	return LTRB(left, top, right, bottom)
}

// Intersects reports whether r and o touch or overlap. Shared edges count.
func (r Rect) Intersects(o Rect) bool {
	return r.Left() <= o.Right() && o.Left() <= r.Right() &&
		r.Top() <= o.Bottom() && o.Top() <= r.Bottom()
}

// Union returns the smallest Rect containing r and o. Empty operands are
// ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return LTRB(
		math.Min(r.Left(), o.Left()),
		math.Min(r.Top(), o.Top()),
		math.Max(r.Right(), o.Right()),
		math.Max(r.Bottom(), o.Bottom()),
	)
}

// Contains reports whether the point lies inside r, right and bottom
// edges excluded.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left() && x < r.Right() && y >= r.Top() && y < r.Bottom()
}

// RoundOut returns the smallest integer-aligned Rect containing r.
func (r Rect) RoundOut() Rect {
	return LTRB(math.Floor(r.Left()), math.Floor(r.Top()), math.Ceil(r.Right()), math.Ceil(r.Bottom()))
}

// Image returns the rounded-out pixel rectangle of r.
func (r Rect) Image() image.Rectangle {
	o := r.RoundOut()
	return image.Rect(int(o.Left()), int(o.Top()), int(o.Right()), int(o.Bottom()))
}

// Path returns r as a closed path.
func (r Rect) Path() *gg.Path {
	p := gg.NewPath()
	p.Rectangle(r.X, r.Y, r.Width, r.Height)
	return p
}

// TransformRect returns the bounding box of r mapped through m.
func TransformRect(m gg.Matrix, r Rect) Rect {
	pts := [4]gg.Point{
		m.TransformPoint(gg.Pt(r.Left(), r.Top())),
		m.TransformPoint(gg.Pt(r.Right(), r.Top())),
		m.TransformPoint(gg.Pt(r.Right(), r.Bottom())),
		m.TransformPoint(gg.Pt(r.Left(), r.Bottom())),
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return LTRB(minX, minY, maxX, maxY)
}
