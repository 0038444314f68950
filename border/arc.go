// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package border

import (
	"math"

	"github.com/gogpu/gg"
)

// maxArcSegment is the largest sweep approximated by a single cubic.
const maxArcSegment = math.Pi / 4

// ellipseArc appends an elliptical arc centred at (cx, cy) with radii a, b
// from angle start to end (radians, y-down). When clockwise is set the
// sweep is made negative, otherwise positive, by adding or subtracting a
// full turn. The current point of p is expected to be the arc start; the
// arc is emitted as cubic segments only.
func ellipseArc(p *gg.Path, cx, cy, a, b, start, end float64, clockwise bool) {
	sweep := end - start
	if clockwise {
		if sweep > 0 {
			sweep -= 2 * math.Pi
		}
	} else if sweep < 0 {
		sweep += 2 * math.Pi
	}

	// The epsilon keeps an exact quarter turn at two segments despite
	// rounding in end-start.
	segments := math.Ceil(math.Abs(sweep)/maxArcSegment - 1e-9)
	if segments == 0 || math.IsNaN(segments) || math.IsInf(segments, 0) {
		return
	}
	step := sweep / segments
	k := 4.0 / 3.0 * math.Tan(step/4)

	cur := start
	for i := 0; i < int(segments); i++ {
		next := cur + step
		if i == int(segments)-1 {
			next = start + sweep
		}
		sinCur, cosCur := math.Sincos(cur)
		sinNext, cosNext := math.Sincos(next)

		x0 := cx + a*cosCur
		y0 := cy + b*sinCur
		x3 := cx + a*cosNext
		y3 := cy + b*sinNext

		x1 := x0 - k*a*sinCur
		y1 := y0 + k*b*cosCur
		x2 := x3 + k*a*sinNext
		y2 := y3 - k*b*cosNext

		p.CubicTo(x1, y1, x2, y2, x3, y3)
		cur = next
	}
}

// degrees converts an angle in degrees to radians.
func degrees(d float64) float64 {
	return d * math.Pi / 180
}
