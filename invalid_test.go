// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInvalidAreaZeroValue(t *testing.T) {
	var a InvalidArea
	if !a.IsEmpty() || a.IsFull() || a.Len() != 0 {
		t.Errorf("zero InvalidArea: empty=%v full=%v len=%d", a.IsEmpty(), a.IsFull(), a.Len())
	}
	if got := a.Build(XYWH(0, 0, 10, 10)); !got.IsEmpty() {
		t.Errorf("Build() of empty area = %v, want no rects", got.Rects())
	}
}

func TestInvalidAreaAddKeepsOrder(t *testing.T) {
	var a InvalidArea
	a.AddRect(XYWH(5, 5, 1, 1))
	a.AddRect(XYWH(0, 0, 2, 2))
	a.AddRect(XYWH(3, 3, 1, 1))

	want := []Rect{XYWH(5, 5, 1, 1), XYWH(0, 0, 2, 2), XYWH(3, 3, 1, 1)}
	if diff := cmp.Diff(want, a.Rects()); diff != "" {
		t.Errorf("Rects() mismatch (-want +got):\n%s", diff)
	}
	if a.IsEmpty() || a.IsFull() {
		t.Error("area with rects should be partial")
	}
}

func TestInvalidAreaUniqueRects(t *testing.T) {
	var a InvalidArea
	u := a.AddRect(XYWH(0, 0, 1, 1))
	v := a.AddRect(XYWH(0, 0, 1, 1))
	if u.ID == v.ID {
		t.Fatal("AddRect returned duplicate identities")
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (equal rects stay distinct)", a.Len())
	}

	a.AddUniqueRect(UniqueRect{ID: u.ID, Rect: XYWH(9, 9, 1, 1)})
	if a.Len() != 2 || a.Rects()[0] != XYWH(9, 9, 1, 1) {
		t.Errorf("AddUniqueRect with existing id should replace: %v", a.Rects())
	}

	a.RemoveUniqueRect(u.ID)
	if a.Len() != 1 {
		t.Errorf("Len() after remove = %d, want 1", a.Len())
	}
	a.RemoveUniqueRect(12345)
	if a.Len() != 1 {
		t.Errorf("removing unknown id changed the area: %v", a.Rects())
	}
	a.RemoveUniqueRect(v.ID)
	if !a.IsEmpty() {
		t.Error("removing the last rect should leave the area empty")
	}
}

func TestInvalidAreaFullAbsorbs(t *testing.T) {
	a := FullInvalidArea()
	a.AddRect(XYWH(0, 0, 1, 1))
	if !a.IsFull() || a.Len() != 0 {
		t.Errorf("full area after AddRect: full=%v len=%d", a.IsFull(), a.Len())
	}
	a.RemoveUniqueRect(1)
	if !a.IsFull() {
		t.Error("RemoveUniqueRect should not affect a full area")
	}
}

func TestInvalidAreaMerge(t *testing.T) {
	var a, b InvalidArea
	a.AddRect(XYWH(0, 0, 1, 1))
	ub := b.AddRect(XYWH(2, 2, 1, 1))

	a.Merge(b)
	if diff := cmp.Diff([]Rect{XYWH(0, 0, 1, 1), XYWH(2, 2, 1, 1)}, a.Rects()); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
	a.RemoveUniqueRect(ub.ID)
	if a.Len() != 2 {
		t.Error("merged rects should carry fresh identities")
	}

	a.Merge(InvalidArea{})
	if a.Len() != 2 {
		t.Errorf("merging an empty area changed Len() to %d", a.Len())
	}

	a.Merge(FullInvalidArea())
	if !a.IsFull() {
		t.Error("merging a full area should make the area full")
	}
}

func TestInvalidAreaOffsetAndClone(t *testing.T) {
	var a InvalidArea
	a.AddRect(XYWH(1, 1, 2, 2))
	c := a.Clone()
	a.Offset(10, -1)

	if got := a.Rects()[0]; got != XYWH(11, 0, 2, 2) {
		t.Errorf("Offset() rect = %v, want (11, 0, 2, 2)", got)
	}
	if got := c.Rects()[0]; got != XYWH(1, 1, 2, 2) {
		t.Errorf("clone changed with original: %v", got)
	}
}

func TestInvalidAreaBuild(t *testing.T) {
	viewport := XYWH(0, 0, 50, 50)

	full := FullInvalidArea()
	if diff := cmp.Diff([]Rect{viewport}, full.Build(viewport).Rects()); diff != "" {
		t.Errorf("Build(full) mismatch (-want +got):\n%s", diff)
	}

	var at InvalidArea
	for i := 0; i < MaxInvalidRects; i++ {
		at.AddRect(XYWH(float64(i), 0, 1, 1))
	}
	if got := len(at.Build(viewport).Rects()); got != MaxInvalidRects {
		t.Errorf("Build() with %d rects = %d rects, want all kept", MaxInvalidRects, got)
	}

	at.AddRect(XYWH(0, 1, 1, 1))
	if diff := cmp.Diff([]Rect{viewport}, at.Build(viewport).Rects()); diff != "" {
		t.Errorf("Build() above the limit mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidRects(t *testing.T) {
	r := NewInvalidRects(XYWH(0, 0, 10, 10), XYWH(20, 0, 5, 5))

	if !r.Intersects(XYWH(10, 10, 5, 5)) {
		t.Error("touching the corner should count as intersecting")
	}
	if r.Intersects(XYWH(11, 11, 2, 2)) {
		t.Error("rect between damage rects should not intersect")
	}
	if got := r.Bounds(); got != XYWH(0, 0, 25, 10) {
		t.Errorf("Bounds() = %v, want (0, 0, 25, 10)", got)
	}
	if got := r.Path().NumVerbs(); got != 10 {
		t.Errorf("Path() has %d verbs, want 10 (two closed rectangles)", got)
	}

	var empty InvalidRects
	if !empty.IsEmpty() || empty.Intersects(XYWH(0, 0, 1e6, 1e6)) {
		t.Error("zero InvalidRects should be empty and intersect nothing")
	}
}
