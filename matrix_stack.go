// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import "github.com/gogpu/gg"

// matrixStack accumulates the transform from the root to the element
// being built.
type matrixStack struct {
	cur   gg.Matrix
	saved []gg.Matrix
}

func newMatrixStack() *matrixStack {
	return &matrixStack{cur: gg.Identity()}
}

func (s *matrixStack) save() {
	s.saved = append(s.saved, s.cur)
}

func (s *matrixStack) restore() {
	if n := len(s.saved); n > 0 {
		s.cur = s.saved[n-1]
		s.saved = s.saved[:n-1]
	}
}

func (s *matrixStack) translate(x, y float64) {
	s.cur = s.cur.Multiply(gg.Translate(x, y))
}

func (s *matrixStack) concat(m gg.Matrix) {
	s.cur = s.cur.Multiply(m)
}

func (s *matrixStack) total() gg.Matrix {
	return s.cur
}

// invert returns the inverse of m and false when m is singular.
func invert(m gg.Matrix) (gg.Matrix, bool) {
	if m.A*m.E-m.B*m.D == 0 {
		return gg.Matrix{}, false
	}
	return m.Invert(), true
}
