// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package border builds box outline and border-edge fill geometry.
//
// Radii are given as [top-left, top-right, bottom-right, bottom-left] and
// edge widths as [top, right, bottom, left]. Each side is constructed once
// in a "top" frame and mapped onto the other edges by exact quarter-turn
// and mirror matrices, so the four sides of a symmetric box are congruent
// to the last bit.
//
// Degenerate input never fails: a zero-area box yields an empty path, a
// corner whose radius does not exceed an adjacent edge width gets a
// straight mitred inner join, and no construction produces NaN
// coordinates.
//
// The [Path] type memoises the geometry for one element and recomputes it
// only when the box size, radii or widths change:
//
//	bp := border.NewPath(100, 40, radius, widths)
//	for i, p := range bp.Paths() {
//		if !border.IsEmpty(p) {
//			dc.FillPath(p) // edge i
//		}
//	}
package border
