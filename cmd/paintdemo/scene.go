// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // background images
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/gogpu/paint"
	"github.com/spf13/viper"
	xdraw "golang.org/x/image/draw"
)

var (
	errDuplicateID = errors.New("paintdemo: duplicate element id")
	errBadTrigger  = errors.New("paintdemo: unknown layer trigger")
	errBadSize     = errors.New("paintdemo: scene needs a positive size")
)

var triggerNames = map[string]paint.LayerTrigger{
	"transform":  paint.TriggerTransform,
	"positioned": paint.TriggerPositioned,
	"opacity":    paint.TriggerOpacity,
	"clip":       paint.TriggerClip,
	"scroll":     paint.TriggerScroll,
}

// Scene is the YAML description of an element tree.
type Scene struct {
	Width  int         `mapstructure:"width"`
	Height int         `mapstructure:"height"`
	Root   ElementSpec `mapstructure:"root"`

	dir string
}

// ElementSpec describes one element. Four-valued fields accept one value
// for all sides.
type ElementSpec struct {
	ID uint32 `mapstructure:"id"`
	// Bounds is x, y, width, height relative to the parent.
	Bounds      []float64 `mapstructure:"bounds"`
	Border      []float64 `mapstructure:"border"`
	Radius      []float64 `mapstructure:"radius"`
	BorderColor []string  `mapstructure:"border_color"`
	Background  string    `mapstructure:"background"`
	Image       string    `mapstructure:"image"`
	// Transform is the CSS matrix(a, b, c, d, e, f): x' = a*x + c*y + e
	// and y' = b*x + d*y + f.
	Transform     []float64 `mapstructure:"transform"`
	Triggers      []string  `mapstructure:"triggers"`
	ContentWidth  float64   `mapstructure:"content_width"`
	ContentHeight float64   `mapstructure:"content_height"`
	ScrollTop     float64   `mapstructure:"scroll_top"`
	// ScrollStep is added to ScrollTop every frame after the first.
	ScrollStep float64 `mapstructure:"scroll_step"`
	// Stripes draws bands of this color across the content, every other
	// 20 units, so scrolling is visible.
	Stripes  string        `mapstructure:"stripes"`
	Focused  bool          `mapstructure:"focused"`
	Children []ElementSpec `mapstructure:"children"`
}

// LoadScene reads a scene file. Relative image paths resolve against the
// file's directory.
func LoadScene(path string) (*Scene, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("paintdemo: read scene: %w", err)
	}
	var s Scene
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("paintdemo: decode scene: %w", err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", errBadSize, s.Width, s.Height)
	}
	s.dir = filepath.Dir(path)
	return &s, nil
}

// scroller advances one element's scroll offset per frame.
type scroller struct {
	el   *paint.Element
	step float64
}

// Animation holds the per-frame changes of a scene.
type Animation struct {
	scrollers []scroller
}

// Step advances every animated element by one frame.
func (a *Animation) Step() {
	for _, s := range a.scrollers {
		limit := math.Max(0, s.el.ContentHeight-s.el.Bounds.Height)
		s.el.ScrollTop = math.Min(limit, math.Max(0, s.el.ScrollTop+s.step))
	}
}

// Build turns the scene into an element tree.
func (s *Scene) Build() (*paint.Element, *Animation, error) {
	b := builder{dir: s.dir, seen: make(map[uint32]bool), anim: &Animation{}}
	root, err := b.element(s.Root)
	if err != nil {
		return nil, nil, err
	}
	return root, b.anim, nil
}

type builder struct {
	dir  string
	seen map[uint32]bool
	anim *Animation
}

func (b *builder) element(in ElementSpec) (*paint.Element, error) {
	if b.seen[in.ID] {
		return nil, fmt.Errorf("%w: %d", errDuplicateID, in.ID)
	}
	b.seen[in.ID] = true

	e := &paint.Element{
		ID:            in.ID,
		Bounds:        rectOf(in.Bounds),
		BorderWidths:  four(in.Border),
		BorderRadius:  four(in.Radius),
		ContentWidth:  in.ContentWidth,
		ContentHeight: in.ContentHeight,
		ScrollTop:     in.ScrollTop,
		Focused:       in.Focused,
	}
	if in.Background != "" {
		e.BackgroundColor = gg.Hex(in.Background)
	}
	colors := in.BorderColor
	if len(colors) == 1 {
		colors = []string{colors[0], colors[0], colors[0], colors[0]}
	}
	for i := 0; i < len(colors) && i < 4; i++ {
		e.BorderColors[i] = gg.Hex(colors[i])
	}
	if len(in.Transform) == 6 {
		t := in.Transform
		m := cssMatrix(t[0], t[1], t[2], t[3], t[4], t[5])
		e.Transform = &m
	}
	for _, name := range in.Triggers {
		tr, ok := triggerNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q on element %d", errBadTrigger, name, in.ID)
		}
		e.Triggers |= tr
	}
	if in.Image != "" {
		img, err := b.loadImage(in.Image, e.Bounds)
		if err != nil {
			return nil, err
		}
		e.BackgroundImage = img
	}
	if in.Stripes != "" {
		e.Render = stripes(gg.Hex(in.Stripes), e)
	}
	if in.ScrollStep != 0 {
		b.anim.scrollers = append(b.anim.scrollers, scroller{el: e, step: in.ScrollStep})
	}

	for _, c := range in.Children {
		child, err := b.element(c)
		if err != nil {
			return nil, err
		}
		e.Children = append(e.Children, child)
	}
	return e, nil
}

// loadImage decodes path and scales it to the element box.
func (b *builder) loadImage(path string, box paint.Rect) (image.Image, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("paintdemo: open image: %w", err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("paintdemo: decode %s: %w", path, err)
	}
	w, h := int(math.Ceil(box.Width)), int(math.Ceil(box.Height))
	if w <= 0 || h <= 0 {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// stripes paints bands over the content height. Sizes are read when the
// element is built so the callback never touches the live element.
func stripes(c gg.RGBA, e *paint.Element) func(paint.Canvas) {
	w := e.Bounds.Width
	h := math.Max(e.ContentHeight, e.Bounds.Height)
	return func(cv paint.Canvas) {
		for y := 0.0; y < h; y += 40 {
			cv.DrawRect(paint.XYWH(0, y, w, 20), paint.Style{Color: c})
		}
	}
}

// cssMatrix maps CSS matrix(a, b, c, d, e, f) onto gg's row-major form.
func cssMatrix(a, b, c, d, e, f float64) gg.Matrix {
	return gg.Matrix{A: a, B: c, C: e, D: b, E: d, F: f}
}

func rectOf(v []float64) paint.Rect {
	var b [4]float64
	copy(b[:], v)
	return paint.XYWH(b[0], b[1], b[2], b[3])
}

func four(v []float64) [4]float64 {
	switch len(v) {
	case 0:
		return [4]float64{}
	case 1:
		return [4]float64{v[0], v[0], v[0], v[0]}
	}
	var out [4]float64
	copy(out[:], v)
	return out
}
