// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package border

import "github.com/gogpu/gg"

// Path memoises the outline and border-edge geometry of one box.
//
// The key is the box size, the corner radii and the edge widths. Geometry
// is built on first use and reused until the owner swaps in a Path with a
// different key (see Retain). A Path is owned by a single element and is
// not safe for concurrent use; paint snapshots copy the built paths out.
type Path struct {
	width, height float64
	radius        [4]float64
	widths        [4]float64

	paths   *[4]*gg.Path
	boxPath *gg.Path
}

// NewPath returns an unbuilt cache for a width x height box.
func NewPath(width, height float64, radius, widths [4]float64) *Path {
	return &Path{
		width:  width,
		height: height,
		radius: radius,
		widths: widths,
	}
}

// IsSame reports whether p and other have the same key.
func (p *Path) IsSame(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.width == other.width &&
		p.height == other.height &&
		p.radius == other.radius &&
		p.widths == other.widths
}

// Retain returns prev when it has the same key as next, keeping prev's
// built geometry, and next otherwise.
func Retain(prev, next *Path) *Path {
	if prev != nil && prev.IsSame(next) {
		return prev
	}
	return next
}

// Size returns the box size.
func (p *Path) Size() (width, height float64) { return p.width, p.height }

// Radius returns the corner radii.
func (p *Path) Radius() [4]float64 { return p.radius }

// Widths returns the edge widths.
func (p *Path) Widths() [4]float64 { return p.widths }

// HasBorder reports whether any edge has a positive width.
func (p *Path) HasBorder() bool {
	for _, w := range p.widths {
		if w > 0 {
			return true
		}
	}
	return false
}

// BoxPath returns the outer outline, building it on first use.
func (p *Path) BoxPath() *gg.Path {
	if p.boxPath == nil {
		p.boxPath = BuildRectWithRadius(p.radius, p.width, p.height)
	}
	return p.boxPath
}

// Paths returns the border-edge fill paths in top, right, bottom, left
// order, building them on first use.
func (p *Path) Paths() [4]*gg.Path {
	if p.paths == nil {
		paths := BuildBorderPaths(p.widths, p.radius, p.width, p.height)
		p.paths = &paths
	}
	return *p.paths
}

// Built reports whether the geometry has been computed.
func (p *Path) Built() (box, edges bool) {
	return p.boxPath != nil, p.paths != nil
}
