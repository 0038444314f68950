// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
)

func TestRenderTreeIDsAreUnique(t *testing.T) {
	a, b := NewRenderTree(), NewRenderTree()
	if a.ID() == b.ID() {
		t.Errorf("two trees share id %d", a.ID())
	}
}

func TestRenderTreeLayersFollowPolicy(t *testing.T) {
	tr := gg.Rotate(0.1)
	mk := func() *Element {
		return &Element{ID: 1, Bounds: viewport100, Children: []*Element{
			{ID: 2, Bounds: XYWH(0, 0, 10, 10), Transform: &tr, Triggers: TriggerTransform},
			{ID: 3, Bounds: XYWH(10, 0, 10, 10), Triggers: TriggerOpacity},
			{ID: 4, Bounds: XYWH(20, 0, 10, 10), Triggers: TriggerScroll},
			{ID: 5, Bounds: XYWH(30, 0, 10, 10)},
		}}
	}

	tests := []struct {
		name   string
		policy LayerPolicy
		want   []RenderLayerKey
	}{
		{
			name:   "default",
			policy: DefaultLayerPolicy(),
			want: []RenderLayerKey{
				{Element: 1, Kind: LayerRoot},
				{Element: 2, Kind: LayerRoot},
				{Element: 3, Kind: LayerRoot},
				{Element: 4, Kind: LayerChildren},
			},
		},
		{
			name:   "transform only",
			policy: LayerPolicy{Root: TriggerTransform},
			want: []RenderLayerKey{
				{Element: 1, Kind: LayerRoot},
				{Element: 2, Kind: LayerRoot},
			},
		},
		{
			name:   "none",
			policy: LayerPolicy{},
			want:   []RenderLayerKey{{Element: 1, Kind: LayerRoot}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewRenderTree(WithLayerPolicy(tt.policy))
			tree.Rebuild(mk())
			for i := range tt.want {
				tt.want[i].Tree = tree.ID()
			}
			if diff := cmp.Diff(tt.want, tree.LayerKeys()); diff != "" {
				t.Errorf("LayerKeys() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderTreeLayerMatrices(t *testing.T) {
	scale := gg.Scale(2, 2)
	child := &Element{ID: 2, Bounds: XYWH(10, 20, 30, 30), Transform: &scale, Triggers: TriggerTransform}
	root := &Element{ID: 1, Bounds: XYWH(5, 5, 100, 100), Children: []*Element{child}}

	tree := NewRenderTree()
	tree.Rebuild(root)

	rl, _ := tree.Layout().LayerByKey(tree.key(1, LayerRoot))
	if rl.TotalMatrix != gg.Translate(5, 5) || rl.Matrix != gg.Translate(5, 5) {
		t.Errorf("root matrices = %v %v, want translate(5, 5)", rl.Matrix, rl.TotalMatrix)
	}
	cl, _ := tree.Layout().LayerByKey(tree.key(2, LayerRoot))
	if want := gg.Translate(10, 20).Multiply(scale); cl.Matrix != want {
		t.Errorf("child Matrix = %v, want %v", cl.Matrix, want)
	}
	if want := gg.Translate(15, 25).Multiply(scale); cl.TotalMatrix != want {
		t.Errorf("child TotalMatrix = %v, want %v", cl.TotalMatrix, want)
	}
	if cl.OriginAbsolutePos != gg.Pt(15, 25) {
		t.Errorf("OriginAbsolutePos = %v, want (15, 25)", cl.OriginAbsolutePos)
	}
}

func TestRenderTreeScrollLayer(t *testing.T) {
	inner := &Element{ID: 3, Bounds: XYWH(0, 300, 100, 20)}
	scroller := &Element{
		ID: 2, Bounds: XYWH(0, 0, 100, 100),
		Triggers:      TriggerScroll,
		ContentHeight: 400,
		ScrollTop:     50,
		Children:      []*Element{inner},
	}
	tree := NewRenderTree()
	tree.Rebuild(&Element{ID: 1, Bounds: viewport100, Children: []*Element{scroller}})

	l, ok := tree.Layout().LayerByKey(tree.key(2, LayerChildren))
	if !ok {
		t.Fatal("children layer missing")
	}
	if l.Width != 100 || l.Height != 400 {
		t.Errorf("content size = %vx%v, want 100x400", l.Width, l.Height)
	}
	if l.ClipRect == nil || *l.ClipRect != XYWH(0, 50, 100, 100) {
		t.Errorf("ClipRect = %v, want (0, 50, 100, 100)", l.ClipRect)
	}
	if l.TotalMatrix != gg.Translate(0, -50) {
		t.Errorf("TotalMatrix = %v, want translate(0, -50)", l.TotalMatrix)
	}

	m, ok := tree.ElementTotalMatrix(inner)
	if !ok || m != gg.Translate(0, 250) {
		t.Errorf("ElementTotalMatrix(inner) = %v, %v, want translate(0, 250)", m, ok)
	}
}

func TestRenderTreeChildrenLayersPaintFirst(t *testing.T) {
	root := &Element{ID: 1, Bounds: viewport100, Children: []*Element{
		{ID: 2, Bounds: XYWH(0, 0, 10, 10), Triggers: TriggerPositioned},
		{ID: 3, Bounds: XYWH(0, 0, 50, 50), Triggers: TriggerScroll, Children: []*Element{
			{ID: 4, Bounds: XYWH(0, 0, 10, 10)},
		}},
	}}
	tree := NewRenderTree()
	tree.Rebuild(root)

	nodes := tree.Layout().LayerRoot.LayerNodes
	if len(nodes) != 2 {
		t.Fatalf("LayerNodes = %d, want 2", len(nodes))
	}
	got := []RenderLayerKey{
		tree.Layout().Layers[nodes[0].Layer].Key,
		tree.Layout().Layers[nodes[1].Layer].Key,
	}
	want := []RenderLayerKey{tree.key(3, LayerChildren), tree.key(2, LayerRoot)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("layer paint order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTreeHitTest(t *testing.T) {
	b := &Element{ID: 3, Bounds: XYWH(60, 60, 20, 20)}
	a := &Element{ID: 2, Bounds: XYWH(10, 10, 20, 20), Triggers: TriggerPositioned}
	root := &Element{ID: 1, Bounds: viewport100, Children: []*Element{a, b}}
	tree := NewRenderTree()
	tree.Rebuild(root)

	tests := []struct {
		name   string
		x, y   float64
		want   *Element
		wantPt gg.Point
	}{
		{"layer child", 15, 15, a, gg.Pt(5, 5)},
		{"normal child", 65, 70, b, gg.Pt(5, 10)},
		{"root", 50, 50, root, gg.Pt(50, 50)},
		{"outside", 200, 200, nil, gg.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, p, ok := tree.HitTest(tt.x, tt.y)
			if ok != (tt.want != nil) || e != tt.want {
				t.Fatalf("HitTest(%v, %v) = %v, %v", tt.x, tt.y, e, ok)
			}
			if p != tt.wantPt {
				t.Errorf("HitTest point = %v, want %v", p, tt.wantPt)
			}
		})
	}

	if _, _, ok := NewRenderTree().HitTest(0, 0); ok {
		t.Error("HitTest on an empty tree should miss")
	}
}

func TestRenderTreeHitTestScrolled(t *testing.T) {
	inner := &Element{ID: 3, Bounds: XYWH(0, 100, 50, 50)}
	scroller := &Element{ID: 2, Bounds: XYWH(0, 0, 50, 50), Triggers: TriggerScroll,
		ContentHeight: 200, ScrollTop: 100, Children: []*Element{inner}}
	root := &Element{ID: 1, Bounds: viewport100, Children: []*Element{scroller}}
	tree := NewRenderTree()
	tree.Rebuild(root)

	e, p, ok := tree.HitTest(10, 10)
	if !ok || e != inner || p != gg.Pt(10, 10) {
		t.Errorf("HitTest(10, 10) = %v, %v, %v, want inner at (10, 10)", e, p, ok)
	}
	// Below the scroll box the content is clipped away.
	if e, _, _ := tree.HitTest(10, 60); e != root {
		t.Errorf("HitTest(10, 60) = %v, want root", e)
	}
}

func TestRenderTreeInvalidate(t *testing.T) {
	b := &Element{ID: 3, Bounds: XYWH(30, 40, 10, 10)}
	a := &Element{ID: 2, Bounds: XYWH(10, 10, 20, 20), Triggers: TriggerPositioned}
	root := &Element{ID: 1, Bounds: viewport100, Children: []*Element{a, b}}
	tree := NewRenderTree()
	tree.Rebuild(root)
	tree.BuildPaintTree(viewport100)

	if !tree.InvalidateElement(b) {
		t.Fatal("InvalidateElement(b) = false")
	}
	rl, _ := tree.Layout().LayerByKey(tree.key(1, LayerRoot))
	if diff := cmp.Diff([]Rect{XYWH(30, 40, 10, 10)}, rl.InvalidArea.Rects()); diff != "" {
		t.Errorf("root damage mismatch (-want +got):\n%s", diff)
	}

	if !tree.InvalidateElement(a) {
		t.Fatal("InvalidateElement(a) = false")
	}
	al, _ := tree.Layout().LayerByKey(tree.key(2, LayerRoot))
	if diff := cmp.Diff([]Rect{XYWH(0, 0, 20, 20)}, al.InvalidArea.Rects()); diff != "" {
		t.Errorf("layer-owning element damage mismatch (-want +got):\n%s", diff)
	}

	if tree.InvalidateElement(&Element{ID: 9}) {
		t.Error("InvalidateElement on a foreign element = true")
	}
	if tree.InvalidateElement(nil) {
		t.Error("InvalidateElement(nil) = true")
	}
	if tree.InvalidateRect(tree.key(9, LayerRoot), viewport100) {
		t.Error("InvalidateRect on an unknown key = true")
	}
	if _, ok := NewRenderTree().ElementTotalMatrix(b); ok {
		t.Error("ElementTotalMatrix on another tree = true")
	}
}

func TestRenderTreeInvalidateLayer(t *testing.T) {
	a := &Element{ID: 2, Bounds: XYWH(10, 10, 20, 20), Triggers: TriggerPositioned}
	root := &Element{ID: 1, Bounds: viewport100, Children: []*Element{a}}
	tree := NewRenderTree()
	tree.Rebuild(root)
	tree.BuildPaintTree(viewport100)

	rl, _ := tree.Layout().LayerByKey(tree.key(1, LayerRoot))
	al, _ := tree.Layout().LayerByKey(tree.key(2, LayerRoot))
	if !rl.InvalidArea.IsEmpty() || !al.InvalidArea.IsEmpty() {
		t.Fatal("damage not consumed by BuildPaintTree")
	}

	if !tree.InvalidateLayer(tree.key(2, LayerRoot)) {
		t.Fatal("InvalidateLayer(2) = false")
	}
	if !al.InvalidArea.IsFull() || !rl.InvalidArea.IsEmpty() {
		t.Errorf("after InvalidateLayer(2): layer full = %v, root empty = %v", al.InvalidArea.IsFull(), rl.InvalidArea.IsEmpty())
	}
	if tree.InvalidateLayer(tree.key(9, LayerRoot)) {
		t.Error("InvalidateLayer on an unknown key = true")
	}

	pt := tree.BuildPaintTree(viewport100)
	if got := pt.Root.LayerNodes[0].InvalidRects.Rects(); len(got) != 1 || got[0] != XYWH(0, 0, 20, 20) {
		t.Errorf("layer 2 damage = %v, want its whole box", got)
	}

	tree.InvalidateAll()
	if !rl.InvalidArea.IsFull() || !al.InvalidArea.IsFull() {
		t.Error("InvalidateAll left a layer undamaged")
	}
}

func TestRenderTreeElementTotalMatrix(t *testing.T) {
	b := &Element{ID: 3, Bounds: XYWH(5, 6, 10, 10)}
	a := &Element{ID: 2, Bounds: XYWH(10, 10, 50, 50), Triggers: TriggerPositioned, Children: []*Element{b}}
	root := &Element{ID: 1, Bounds: XYWH(1, 2, 100, 100), Children: []*Element{a}}
	tree := NewRenderTree()
	tree.Rebuild(root)

	m, ok := tree.ElementTotalMatrix(b)
	if !ok {
		t.Fatal("ElementTotalMatrix(b) not found")
	}
	if got := m.TransformPoint(gg.Pt(0, 0)); got != gg.Pt(16, 18) {
		t.Errorf("b origin in root space = %v, want (16, 18)", got)
	}
}

func TestInvert(t *testing.T) {
	m := gg.Translate(3, 4).Multiply(gg.Scale(2, 5))
	inv, ok := invert(m)
	if !ok {
		t.Fatal("invert() failed on an invertible matrix")
	}
	p := inv.TransformPoint(m.TransformPoint(gg.Pt(7, -2)))
	if math.Abs(p.X-7) > 1e-9 || math.Abs(p.Y+2) > 1e-9 {
		t.Errorf("round trip = %v, want (7, -2)", p)
	}
	if _, ok := invert(gg.Scale(0, 1)); ok {
		t.Error("invert() of a singular matrix should fail")
	}
}

func TestMatrixStack(t *testing.T) {
	ms := newMatrixStack()
	ms.translate(10, 0)
	ms.save()
	ms.concat(gg.Scale(2, 2))
	if got := ms.total().TransformPoint(gg.Pt(1, 1)); got != gg.Pt(12, 2) {
		t.Errorf("total() maps (1, 1) to %v, want (12, 2)", got)
	}
	ms.restore()
	if ms.total() != gg.Translate(10, 0) {
		t.Errorf("total() after restore = %v", ms.total())
	}
	ms.restore()
	if ms.total() != gg.Translate(10, 0) {
		t.Error("unbalanced restore changed the matrix")
	}
}
