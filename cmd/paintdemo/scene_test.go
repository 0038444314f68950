// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/paint"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSceneBuild(t *testing.T) {
	s, err := LoadScene(filepath.Join("testdata", "scroll.yaml"))
	if err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if s.Width != 120 || s.Height != 90 {
		t.Errorf("size = %dx%d, want 120x90", s.Width, s.Height)
	}
	root, anim, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}

	scroll := root.Children[0]
	if scroll.Bounds != paint.XYWH(10, 10, 60, 70) {
		t.Errorf("Bounds = %v", scroll.Bounds)
	}
	if scroll.BorderWidths != [4]float64{2, 2, 2, 2} || scroll.BorderRadius != [4]float64{6, 6, 6, 6} {
		t.Errorf("border = %v radius = %v, want one value expanded", scroll.BorderWidths, scroll.BorderRadius)
	}
	if scroll.Triggers != paint.TriggerScroll {
		t.Errorf("Triggers = %v, want scroll", scroll.Triggers)
	}
	if scroll.Render == nil {
		t.Error("stripes did not set Render")
	}

	badge := root.Children[1]
	if badge.BorderColors[1] != gg.Hex("#ff0000") || badge.BorderColors[0] != gg.Hex("#000000") {
		t.Errorf("BorderColors = %v", badge.BorderColors)
	}
	if badge.Transform == nil || *badge.Transform != gg.Translate(0, 4) {
		t.Errorf("Transform = %v, want translate(0,4)", badge.Transform)
	}
	if !badge.Focused {
		t.Error("Focused = false")
	}

	anim.Step()
	anim.Step()
	if scroll.ScrollTop != 16 {
		t.Errorf("ScrollTop after two steps = %v, want 16", scroll.ScrollTop)
	}
	// Clamped at ContentHeight - Bounds.Height.
	scroll.ScrollTop = 126
	anim.Step()
	if scroll.ScrollTop != 130 {
		t.Errorf("ScrollTop = %v, want 130", scroll.ScrollTop)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "duplicate id",
			body: "width: 10\nheight: 10\nroot:\n  id: 1\n  children:\n    - id: 1\n",
			want: errDuplicateID,
		},
		{
			name: "bad trigger",
			body: "width: 10\nheight: 10\nroot:\n  id: 1\n  triggers: [float]\n",
			want: errBadTrigger,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "scene.yaml", tt.body)
			s, err := LoadScene(path)
			if err != nil {
				t.Fatalf("LoadScene() error = %v", err)
			}
			if _, _, err := s.Build(); !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadSceneErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadScene(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadScene(missing) error = nil")
	}
	path := writeFile(t, dir, "empty.yaml", "root:\n  id: 1\n")
	if _, err := LoadScene(path); !errors.Is(err, errBadSize) {
		t.Errorf("LoadScene(no size) error = %v, want errBadSize", err)
	}
}

func TestBackgroundImageScaled(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	f, err := os.Create(filepath.Join(dir, "bg.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	path := writeFile(t, dir, "scene.yaml",
		"width: 50\nheight: 50\nroot:\n  id: 1\n  bounds: [0, 0, 40, 20]\n  image: bg.png\n")
	s, err := LoadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	root, _, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if root.BackgroundImage == nil {
		t.Fatal("BackgroundImage = nil")
	}
	if got := root.BackgroundImage.Bounds(); got != image.Rect(0, 0, 40, 20) {
		t.Errorf("image bounds = %v, want 40x20", got)
	}
	if got := color.RGBAModel.Convert(root.BackgroundImage.At(20, 10)).(color.RGBA); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("scaled pixel = %v, want white", got)
	}
}

func TestCSSMatrix(t *testing.T) {
	tests := []struct {
		name string
		in   [6]float64
		want gg.Matrix
	}{
		{"identity", [6]float64{1, 0, 0, 1, 0, 0}, gg.Identity()},
		{"translate", [6]float64{1, 0, 0, 1, 5, 7}, gg.Translate(5, 7)},
		{"scale", [6]float64{2, 0, 0, 3, 5, 7}, gg.Matrix{A: 2, B: 0, C: 5, D: 0, E: 3, F: 7}},
		{"skew", [6]float64{1, 0.5, 0.25, 1, 0, 0}, gg.Matrix{A: 1, B: 0.25, C: 0, D: 0.5, E: 1, F: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			if got := cssMatrix(in[0], in[1], in[2], in[3], in[4], in[5]); got != tt.want {
				t.Errorf("cssMatrix(%v) = %+v, want %+v", in, got, tt.want)
			}
		})
	}

	// matrix(1, 0.5, 0, 1, 0, 0) moves (2, 0) down by one unit.
	m := cssMatrix(1, 0.5, 0, 1, 0, 0)
	if got := m.TransformPoint(gg.Pt(2, 0)); got != gg.Pt(2, 1) {
		t.Errorf("TransformPoint(2, 0) = %v, want (2, 1)", got)
	}
}

func TestFour(t *testing.T) {
	tests := []struct {
		in   []float64
		want [4]float64
	}{
		{nil, [4]float64{}},
		{[]float64{3}, [4]float64{3, 3, 3, 3}},
		{[]float64{1, 2}, [4]float64{1, 2, 0, 0}},
		{[]float64{1, 2, 3, 4, 5}, [4]float64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		if got := four(tt.in); got != tt.want {
			t.Errorf("four(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
