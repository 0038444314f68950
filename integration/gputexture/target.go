// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gputexture

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/paint"
	"github.com/gogpu/paint/surface"
)

// Common errors returned by Target operations.
var (
	// ErrClosed is returned when operations are attempted on a closed target.
	ErrClosed = errors.New("gputexture: target is closed")

	// ErrNilPainter is returned by Paint without a painter.
	ErrNilPainter = errors.New("gputexture: nil painter")

	// ErrInvalidRenderer is returned when no texture creator is available
	// for the first upload.
	ErrInvalidRenderer = errors.New("gputexture: draw context has no texture creator")

	// ErrInvalidTexture is returned when the created texture cannot be drawn.
	ErrInvalidTexture = errors.New("gputexture: texture does not implement gpucontext.Texture")
)

// regionUpdater is implemented by textures that accept partial uploads.
// data holds w*h tightly packed RGBA pixels.
type regionUpdater interface {
	UpdateRegion(x, y, w, h int, data []byte) error
}

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// placement is where a layer landed on the target last frame.
type placement struct {
	matrix gg.Matrix
	bounds paint.Rect
}

// Stats counts uploads since the target was created.
type Stats struct {
	Creates       int
	FullUploads   int
	RegionUploads int
	Bytes         int
}

// Target is a paint destination backed by a GPU texture.
type Target struct {
	surface    *surface.ImageSurface
	scale      float64
	width      int
	height     int
	texture    any
	oldTexture any // previous texture awaiting deferred destruction

	dirty  []image.Rectangle
	full   bool
	layers map[paint.RenderLayerKey]placement

	stats  Stats
	closed bool
}

// Option configures a Target during creation.
type Option func(*Target)

// WithScale sets the device pixel ratio. The target allocates
// width*scale x height*scale pixels and draws in logical units.
func WithScale(scale float64) Option {
	return func(t *Target) {
		if scale > 0 {
			t.scale = scale
		}
	}
}

// New creates a Target of the given logical size.
func New(width, height int, opts ...Option) (*Target, error) {
	t := &Target{scale: 1, layers: make(map[paint.RenderLayerKey]placement)}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.allocate(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Target) allocate(width, height int) error {
	dw, dh := int(float64(width)*t.scale), int(float64(height)*t.scale)
	s, err := surface.NewImageSurface(dw, dh)
	if err != nil {
		return fmt.Errorf("gputexture: %w", err)
	}
	s.Scale(t.scale, t.scale)
	if t.surface != nil {
		_ = t.surface.Close()
	}
	t.surface = s
	t.width, t.height = dw, dh
	t.full = true
	t.dirty = t.dirty[:0]
	clear(t.layers)
	return nil
}

// Surface returns the CPU surface frames are composited onto.
func (t *Target) Surface() *surface.ImageSurface {
	return t.surface
}

// Size returns the device size in pixels.
func (t *Target) Size() (width, height int) {
	return t.width, t.height
}

// Stats returns upload counters.
func (t *Target) Stats() Stats {
	return t.stats
}

// Resize reallocates the surface for a new logical size. The texture is
// recreated on the next Flush.
func (t *Target) Resize(width, height int) error {
	if t.closed {
		return ErrClosed
	}
	if err := t.allocate(width, height); err != nil {
		return err
	}
	if t.texture != nil {
		t.destroyOld()
		t.oldTexture = t.texture
		t.texture = nil
	}
	return nil
}

// Paint clears the surface, lets p composite tree onto it and records
// which pixels changed. It returns the layer keys p evicted. Layers p
// skipped are reported in the error and dirty their whole box.
func (t *Target) Paint(p *paint.Painter, tree *paint.PaintTree) ([]paint.RenderLayerKey, error) {
	if t.closed {
		return nil, ErrClosed
	}
	if p == nil {
		return nil, ErrNilPainter
	}

	s := t.surface
	s.Save()
	s.SetTransform(gg.Identity())
	s.ClearRect(paint.XYWH(0, 0, float64(t.width), float64(t.height)))
	s.Restore()

	evicted, err := p.Paint(s, tree)
	t.track(tree, paint.FailedLayers(err))
	return evicted, err
}

// track compares the frame's layers with last frame's placements. Failed
// layers are forgotten so they count as new once they paint again.
func (t *Target) track(tree *paint.PaintTree, failed []paint.RenderLayerKey) {
	seen := make(map[paint.RenderLayerKey]placement, len(t.layers))
	for _, l := range tree.Layers() {
		clip := l.ClipBounds()
		cur := placement{matrix: l.TotalMatrix, bounds: paint.TransformRect(l.TotalMatrix, clip)}
		prev, ok := t.layers[l.Key]
		if slices.Contains(failed, l.Key) {
			if ok {
				t.addDirty(prev.bounds)
			}
			t.addDirty(cur.bounds)
			continue
		}
		switch {
		case !ok:
			t.addDirty(cur.bounds)
		case prev.matrix != cur.matrix:
			t.addDirty(prev.bounds)
			t.addDirty(cur.bounds)
		default:
			for _, r := range l.InvalidRects.Rects() {
				if r = r.Intersect(clip); !r.IsEmpty() {
					t.addDirty(paint.TransformRect(l.TotalMatrix, r))
				}
			}
		}
		seen[l.Key] = cur
	}
	for k, prev := range t.layers {
		if _, ok := seen[k]; !ok {
			t.addDirty(prev.bounds)
		}
	}
	t.layers = seen
}

// addDirty adds r, in logical units, to the pending upload.
func (t *Target) addDirty(r paint.Rect) {
	if t.full {
		return
	}
	dev := paint.TransformRect(gg.Scale(t.scale, t.scale), r).Image().Intersect(image.Rect(0, 0, t.width, t.height))
	if dev.Empty() {
		return
	}
	if len(t.dirty) >= paint.MaxInvalidRects {
		t.full = true
		t.dirty = t.dirty[:0]
		return
	}
	t.dirty = append(t.dirty, dev)
}

// Dirty returns the device rects awaiting upload.
func (t *Target) Dirty() []image.Rectangle {
	if t.full {
		return []image.Rectangle{image.Rect(0, 0, t.width, t.height)}
	}
	out := make([]image.Rectangle, len(t.dirty))
	copy(out, t.dirty)
	return out
}

// Flush uploads pending changes and returns the texture. The texture is
// created with creator on first use and after Resize.
func (t *Target) Flush(creator gpucontext.TextureCreator) (any, error) {
	if t.closed {
		return nil, ErrClosed
	}
	pix := t.surface.Pixels()

	if t.texture == nil {
		if creator == nil {
			return nil, ErrInvalidRenderer
		}
		tex, err := creator.NewTextureFromRGBA(t.width, t.height, pix.Pix)
		if err != nil {
			return nil, fmt.Errorf("gputexture: NewTextureFromRGBA failed: %w", err)
		}
		// Pixmap data is premultiplied alpha.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		t.texture = tex
		t.destroyOld()
		t.stats.Creates++
		t.stats.Bytes += len(pix.Pix)
		t.resetDirty()
		return t.texture, nil
	}

	if !t.full && len(t.dirty) == 0 {
		return t.texture, nil
	}
	if err := t.upload(pix); err != nil {
		return nil, err
	}
	t.resetDirty()
	return t.texture, nil
}

func (t *Target) upload(pix *image.RGBA) error {
	if ru, ok := t.texture.(regionUpdater); ok && !t.full {
		for _, r := range t.dirty {
			data := packRegion(pix, r)
			if err := ru.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), data); err != nil {
				return fmt.Errorf("gputexture: region update failed: %w", err)
			}
			t.stats.RegionUploads++
			t.stats.Bytes += len(data)
		}
		return nil
	}
	updater, ok := t.texture.(gpucontext.TextureUpdater)
	if !ok {
		paint.Logger().Warn("gputexture: texture cannot be updated")
		return nil
	}
	if err := updater.UpdateData(pix.Pix); err != nil {
		return fmt.Errorf("gputexture: texture update failed: %w", err)
	}
	t.stats.FullUploads++
	t.stats.Bytes += len(pix.Pix)
	return nil
}

func (t *Target) resetDirty() {
	t.full = false
	t.dirty = t.dirty[:0]
}

func (t *Target) destroyOld() {
	if d, ok := t.oldTexture.(textureDestroyer); ok {
		d.Destroy()
	}
	t.oldTexture = nil
}

// packRegion copies r out of img as tightly packed rows.
func packRegion(img *image.RGBA, r image.Rectangle) []byte {
	rowLen := r.Dx() * 4
	out := make([]byte, 0, rowLen*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		out = append(out, img.Pix[off:off+rowLen]...)
	}
	return out
}

// RenderTo flushes and draws the texture at the origin.
func (t *Target) RenderTo(dc gpucontext.TextureDrawer) error {
	return t.RenderToPosition(dc, 0, 0)
}

// RenderToPosition flushes and draws the texture at (x, y).
func (t *Target) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if t.closed {
		return ErrClosed
	}
	tex, err := t.Flush(dc.TextureCreator())
	if err != nil {
		return err
	}
	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// Close releases the surface and textures. Close is idempotent.
func (t *Target) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.destroyOld()
	if d, ok := t.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	t.texture = nil
	clear(t.layers)
	return t.surface.Close()
}
