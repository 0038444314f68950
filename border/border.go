// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package border

import (
	"math"

	"github.com/gogpu/gg"
)

// Edge indices into a widths array and side indices of BuildBorderPaths.
const (
	Top = iota
	Right
	Bottom
	Left
)

// Corner indices into a radius array.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// side describes one edge in the frame of the top edge.
type side struct {
	edge        int  // own width
	startEdge   int  // adjacent edge at local x = 0
	endEdge     int  // adjacent edge at local x = length
	startCorner int  // radius at local x = 0
	endCorner   int  // radius at local x = length
	vertical    bool // length runs along the box height
}

var sides = [4]side{
	{edge: Top, startEdge: Left, endEdge: Right, startCorner: TopLeft, endCorner: TopRight},
	{edge: Right, startEdge: Top, endEdge: Bottom, startCorner: TopRight, endCorner: BottomRight, vertical: true},
	{edge: Bottom, startEdge: Right, endEdge: Left, startCorner: BottomRight, endCorner: BottomLeft},
	{edge: Left, startEdge: Bottom, endEdge: Top, startCorner: BottomLeft, endCorner: TopLeft, vertical: true},
}

// sideFrame maps the top-edge frame onto edge i of a width x height box.
// Quarter turns are spelled out so that no trigonometric rounding leaks
// into the coordinates.
func sideFrame(i int, width, height float64) gg.Matrix {
	switch i {
	case Right:
		return gg.Matrix{A: 0, B: -1, C: width, D: 1, E: 0, F: 0}
	case Bottom:
		return gg.Matrix{A: -1, B: 0, C: width, D: 0, E: -1, F: height}
	case Left:
		return gg.Matrix{A: 0, B: 1, C: 0, D: -1, E: 0, F: height}
	default:
		return gg.Identity()
	}
}

// IsEmpty reports whether p carries no geometry.
func IsEmpty(p *gg.Path) bool {
	return p == nil || p.NumVerbs() == 0
}

// BuildRectWithRadius returns the outer outline of a width x height box
// with per-corner radii, clockwise from (0, radius[TopLeft]). A box with
// no radius is a plain rectangle; a zero-area box gives an empty path.
func BuildRectWithRadius(radius [4]float64, width, height float64) *gg.Path {
	p := gg.NewPath()
	if width <= 0 || height <= 0 {
		return p
	}
	if radius == [4]float64{} {
		p.Rectangle(0, 0, width, height)
		return p
	}

	r := radius
	p.MoveTo(0, r[TopLeft])
	roundCorner(p, r[TopLeft], r[TopLeft], r[TopLeft], 180)
	p.LineTo(width-r[TopRight], 0)
	roundCorner(p, width-r[TopRight], r[TopRight], r[TopRight], 270)
	p.LineTo(width, height-r[BottomRight])
	roundCorner(p, width-r[BottomRight], height-r[BottomRight], r[BottomRight], 0)
	p.LineTo(r[BottomLeft], height)
	roundCorner(p, r[BottomLeft], height-r[BottomLeft], r[BottomLeft], 90)
	p.Close()
	return p
}

// roundCorner appends a quarter arc of radius r starting at angle from
// (degrees) and sweeping 90 degrees clockwise on screen.
func roundCorner(p *gg.Path, cx, cy, r, from float64) {
	if r <= 0 {
		return
	}
	ellipseArc(p, cx, cy, r, r, degrees(from), degrees(from+90), false)
}

// BuildBorderPaths returns the fill paths of the four border edges in
// top, right, bottom, left order. Sides without width are empty paths.
func BuildBorderPaths(widths, radius [4]float64, width, height float64) [4]*gg.Path {
	var out [4]*gg.Path
	for i := range sides {
		out[i] = buildSide(i, widths, radius, width, height)
	}
	return out
}

// buildSide builds edge i in the top-edge frame and maps it into place.
func buildSide(i int, widths, radius [4]float64, width, height float64) *gg.Path {
	s := sides[i]
	p := gg.NewPath()
	if width <= 0 || height <= 0 || widths[s.edge] <= 0 {
		return p
	}

	length := width
	if s.vertical {
		length = height
	}
	frame := sideFrame(i, width, height)
	mirror := frame.Multiply(gg.Translate(length, 0).Multiply(gg.Scale(-1, 1)))

	own := widths[s.edge]
	start := buildCorner([2]float64{widths[s.startEdge], own}, radius[s.startCorner], frame)
	end := buildCorner([2]float64{widths[s.endEdge], own}, radius[s.endCorner], mirror)
	line := buildLine(
		math.Max(radius[s.startCorner], widths[s.startEdge]),
		length-math.Max(radius[s.endCorner], widths[s.endEdge]),
		own, frame)

	for _, part := range []*gg.Path{start, line, end} {
		if part != nil {
			p.Append(part)
		}
	}
	return p
}

// buildLine returns the straight strip between the two corners, or nil
// when the corners leave no room for it.
func buildLine(from, to, thickness float64, m gg.Matrix) *gg.Path {
	if to <= from || thickness <= 0 {
		return nil
	}
	p := gg.NewPath()
	p.Rectangle(from, 0, to-from, thickness)
	return p.Transform(m)
}
