// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"slices"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// MaxInvalidRects is the number of damage rects above which a partial
// invalid area is repainted as a whole.
const MaxInvalidRects = 100

var nextRectID atomic.Uint64

// UniqueRect is a damage rect with an identity, so a caller can withdraw
// exactly the rect it added.
type UniqueRect struct {
	ID   uint64
	Rect Rect
}

// NewUniqueRect tags r with a fresh identity.
func NewUniqueRect(r Rect) UniqueRect {
	return UniqueRect{ID: nextRectID.Add(1), Rect: r}
}

type areaKind uint8

const (
	areaNone areaKind = iota
	areaPartial
	areaFull
)

// InvalidArea is the accumulated damage of one layer surface: nothing,
// a set of rects in layer coordinates, or the whole surface.
//
// The zero value is an empty area. Rects keep insertion order so that
// building the same area twice yields the same rect list.
type InvalidArea struct {
	kind  areaKind
	rects []UniqueRect
}

// FullInvalidArea returns an area covering the whole surface.
func FullInvalidArea() InvalidArea {
	return InvalidArea{kind: areaFull}
}

// IsEmpty reports whether there is no damage.
func (a *InvalidArea) IsEmpty() bool { return a.kind == areaNone }

// IsFull reports whether the whole surface is damaged.
func (a *InvalidArea) IsFull() bool { return a.kind == areaFull }

// Len returns the number of partial rects.
func (a *InvalidArea) Len() int { return len(a.rects) }

// Rects returns a copy of the partial rects in insertion order.
func (a *InvalidArea) Rects() []Rect {
	out := make([]Rect, len(a.rects))
	for i, u := range a.rects {
		out[i] = u.Rect
	}
	return out
}

// MarkFull damages the whole surface.
func (a *InvalidArea) MarkFull() {
	a.kind = areaFull
	a.rects = nil
}

// Reset clears all damage.
func (a *InvalidArea) Reset() {
	a.kind = areaNone
	a.rects = nil
}

// AddRect adds r as a new damage rect and returns its identity.
func (a *InvalidArea) AddRect(r Rect) UniqueRect {
	u := NewUniqueRect(r)
	a.AddUniqueRect(u)
	return u
}

// AddUniqueRect adds u, replacing a rect with the same identity.
// It has no effect on a full area.
func (a *InvalidArea) AddUniqueRect(u UniqueRect) {
	switch a.kind {
	case areaFull:
		return
	case areaNone:
		a.kind = areaPartial
	}
	if i := a.index(u.ID); i >= 0 {
		a.rects[i] = u
		return
	}
	a.rects = append(a.rects, u)
}

// RemoveUniqueRect withdraws the rect with the given identity. Removing
// the last rect leaves the area empty.
func (a *InvalidArea) RemoveUniqueRect(id uint64) {
	if a.kind != areaPartial {
		return
	}
	if i := a.index(id); i >= 0 {
		a.rects = slices.Delete(a.rects, i, i+1)
	}
	if len(a.rects) == 0 {
		a.Reset()
	}
}

func (a *InvalidArea) index(id uint64) int {
	return slices.IndexFunc(a.rects, func(u UniqueRect) bool { return u.ID == id })
}

// Merge adds other's damage to a. Merged rects get fresh identities.
func (a *InvalidArea) Merge(other InvalidArea) {
	switch {
	case a.kind == areaFull || other.kind == areaNone:
		return
	case other.kind == areaFull:
		a.MarkFull()
	default:
		for _, u := range other.rects {
			a.AddRect(u.Rect)
		}
	}
}

// Offset moves every partial rect by (dx, dy).
func (a *InvalidArea) Offset(dx, dy float64) {
	for i := range a.rects {
		a.rects[i].Rect = a.rects[i].Rect.Offset(dx, dy)
	}
}

// Clone returns a deep copy of a.
func (a *InvalidArea) Clone() InvalidArea {
	c := *a
	c.rects = slices.Clone(a.rects)
	return c
}

// Build resolves a into concrete rects. A full area, or one with more than
// MaxInvalidRects rects, becomes the single rect viewport.
func (a *InvalidArea) Build(viewport Rect) InvalidRects {
	switch {
	case a.kind == areaFull:
		return InvalidRects{rects: []Rect{viewport}}
	case a.kind == areaPartial && len(a.rects) > MaxInvalidRects:
		Logger().Debug("paint: collapsing invalid area", "rects", len(a.rects))
		return InvalidRects{rects: []Rect{viewport}}
	default:
		return InvalidRects{rects: a.Rects()}
	}
}

// InvalidRects is the resolved damage of one layer for one frame.
type InvalidRects struct {
	rects []Rect
}

// NewInvalidRects returns an InvalidRects holding rs.
func NewInvalidRects(rs ...Rect) InvalidRects {
	return InvalidRects{rects: slices.Clone(rs)}
}

// IsEmpty reports whether nothing needs repainting.
func (r InvalidRects) IsEmpty() bool { return len(r.rects) == 0 }

// Rects returns the damage rects.
func (r InvalidRects) Rects() []Rect { return slices.Clone(r.rects) }

// Intersects reports whether rect touches any damage rect. Shared edges
// count as touching.
func (r InvalidRects) Intersects(rect Rect) bool {
	for _, d := range r.rects {
		if d.Intersects(rect) {
			return true
		}
	}
	return false
}

// Bounds returns the union of all damage rects.
func (r InvalidRects) Bounds() Rect {
	var u Rect
	for _, d := range r.rects {
		u = u.Union(d)
	}
	return u
}

// Path returns the damage as one path with a subpath per rect.
func (r InvalidRects) Path() *gg.Path {
	p := gg.NewPath()
	for _, d := range r.rects {
		p.Rectangle(d.X, d.Y, d.Width, d.Height)
	}
	return p
}
