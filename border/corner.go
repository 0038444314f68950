// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package border

import (
	"math"

	"github.com/gogpu/gg"
)

// Corner geometry is solved in the frame of the top edge's left corner:
// the box corner sits at the origin, x runs along the edge and y points
// into the box. widths[0] is the adjacent edge width (measured along x),
// widths[1] is the edge's own width (measured along y). The corner is
// split between the two edges by the line y = k*x through the origin and
// the inner corner (widths[0], widths[1]).

// resolveX returns the smaller root of a*x^2 + b*x + c = 0.
func resolveX(a, b, c float64) float64 {
	if a == 0 {
		return c / b
	}
	d := b*b/(4*a*a) - c/a
	if d < 0 {
		// Tangent line; rounding may push the discriminant below zero.
		d = 0
	}
	return -b/(2*a) - math.Sqrt(d)
}

// computeOutCross intersects y = k*x with the outer arc, a circle of
// radius r centred at (r, r).
func computeOutCross(k, r float64) (x, y float64) {
	a := k*k + 1
	b := -2 * (k + 1) * r
	c := r * r
	x = resolveX(a, b, c)
	return x, k * x
}

// computeInnerCross intersects y = k*x with the inner boundary, an
// ellipse centred at (r, r) with semi-axes r-widths[0] and r-widths[1].
func computeInnerCross(k, r float64, widths [2]float64) (x, y float64) {
	m := r - widths[0]
	n := r - widths[1]
	a := n*n + k*k*m*m
	b := -2 * (n*n*r + r*k*m*m)
	c := r*r*n*n + r*r*m*m - m*m*n*n
	x = resolveX(a, b, c)
	return x, k * x
}

// crossPoints returns where the split line meets the outer arc and the
// inner boundary. With no adjacent width the split line is the y axis.
func crossPoints(widths [2]float64, r float64) (ox, oy, ix, iy float64) {
	if widths[0] <= 0 {
		return 0, r, 0, r
	}
	k := widths[1] / widths[0]
	ox, oy = computeOutCross(k, r)
	if r > widths[0] && r > widths[1] {
		ix, iy = computeInnerCross(k, r, widths)
	} else {
		ix, iy = widths[0], widths[1]
	}
	return ox, oy, ix, iy
}

// cornerAngle returns the ellipse parameter of (px, py) on the ellipse
// centred at (cx, cy) with radii rx, ry, clamped to the top-left quadrant.
func cornerAngle(px, py, cx, cy, rx, ry float64) float64 {
	t := math.Atan2((py-cy)/ry, (px-cx)/rx)
	if t < 0 {
		t += 2 * math.Pi
	}
	return math.Min(math.Max(t, math.Pi), 1.5*math.Pi)
}

// buildCorner builds the edge's share of one corner and maps it through m.
// It returns nil when the edge has no width.
func buildCorner(widths [2]float64, radius float64, m gg.Matrix) *gg.Path {
	if widths[1] <= 0 {
		return nil
	}
	ox, oy, ix, iy := crossPoints(widths, radius)
	top := 1.5 * math.Pi

	p := gg.NewPath()
	p.MoveTo(ox, oy)
	if radius > 0 {
		ellipseArc(p, radius, radius, radius, radius,
			cornerAngle(ox, oy, radius, radius, radius, radius), top, false)
	}
	if radius > widths[0] && radius > widths[1] {
		rx, ry := radius-widths[0], radius-widths[1]
		p.LineTo(radius, widths[1])
		ellipseArc(p, radius, radius, rx, ry,
			top, cornerAngle(ix, iy, radius, radius, rx, ry), true)
	} else {
		// Mitred inner join.
		edge := math.Max(radius, widths[0])
		p.LineTo(edge, 0)
		p.LineTo(edge, widths[1])
		p.LineTo(widths[0], widths[1])
	}
	p.LineTo(ox, oy)
	p.Close()
	return p.Transform(m)
}
