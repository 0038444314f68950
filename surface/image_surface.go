// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/paint"
	xdraw "golang.org/x/image/draw"
)

// surfaceState is the part of the surface restored by Restore.
type surfaceState struct {
	matrix gg.Matrix
	clip   *gg.Mask
}

// ImageSurface is a CPU layer surface backed by a gg.Pixmap.
//
// Shapes are rasterized by a gg.Context into a scratch pixmap, then
// composited source-over onto the layer pixels through the clip mask.
// ClearRect ignores the clip.
//
// Example:
//
//	s, _ := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.DrawRect(paint.XYWH(10, 10, 100, 50), paint.Style{Color: gg.Red})
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int

	pixmap *gg.Pixmap
	pixels *image.RGBA // view over pixmap

	scratch       *gg.Context
	scratchPixels *image.RGBA // view over the scratch pixmap

	matrix gg.Matrix
	clip   *gg.Mask // nil means unclipped
	stack  []surfaceState

	closed bool
}

var _ paint.Surface = (*ImageSurface)(nil)

// NewImageSurface creates a transparent surface of the given size.
func NewImageSurface(width, height int) (*ImageSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	pm := gg.NewPixmap(width, height)
	scratch := gg.NewPixmap(width, height)
	return &ImageSurface{
		width:         width,
		height:        height,
		pixmap:        pm,
		pixels:        rgbaView(pm),
		scratch:       gg.NewContext(width, height, gg.WithPixmap(scratch)),
		scratchPixels: rgbaView(scratch),
		matrix:        gg.Identity(),
		stack:         make([]surfaceState, 0, 8),
	}, nil
}

// NewSurface is a paint.SurfaceFactory producing ImageSurfaces.
func NewSurface(width, height int) (paint.Surface, error) {
	s, err := NewImageSurface(width, height)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// rgbaView wraps the pixmap bytes without copying.
func rgbaView(pm *gg.Pixmap) *image.RGBA {
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: 4 * pm.Width(),
		Rect:   image.Rect(0, 0, pm.Width(), pm.Height()),
	}
}

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() int {
	return s.height
}

// Format returns the pixel layout of Pixels, matching the GPU texture
// format used to upload it.
func (s *ImageSurface) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns the layer pixels. This is a direct reference, not a copy;
// it is nil after Close.
func (s *ImageSurface) Pixels() *image.RGBA {
	return s.pixels
}

// Pixmap returns the backing gg pixmap.
func (s *ImageSurface) Pixmap() *gg.Pixmap {
	return s.pixmap
}

func (s *ImageSurface) bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Save pushes the transform and clip.
func (s *ImageSurface) Save() {
	s.stack = append(s.stack, surfaceState{matrix: s.matrix, clip: s.clip})
}

// Restore pops the transform and clip. An unbalanced Restore is ignored.
func (s *ImageSurface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	st := s.stack[n-1]
	s.stack = s.stack[:n-1]
	s.matrix, s.clip = st.matrix, st.clip
}

// Translate applies a translation to the transform.
func (s *ImageSurface) Translate(x, y float64) {
	s.matrix = s.matrix.Multiply(gg.Translate(x, y))
}

// Scale applies a scale to the transform.
func (s *ImageSurface) Scale(sx, sy float64) {
	s.matrix = s.matrix.Multiply(gg.Scale(sx, sy))
}

// Concat post-multiplies the transform by m.
func (s *ImageSurface) Concat(m gg.Matrix) {
	s.matrix = s.matrix.Multiply(m)
}

// Transform returns the current transform.
func (s *ImageSurface) Transform() gg.Matrix {
	return s.matrix
}

// SetTransform replaces the current transform.
func (s *ImageSurface) SetTransform(m gg.Matrix) {
	s.matrix = m
}

// ClipRect intersects the clip with r. Axis-aligned rectangles clip to
// whole pixels, rounded out.
func (s *ImageSurface) ClipRect(r paint.Rect) {
	if s.closed {
		return
	}
	if s.matrix.B != 0 || s.matrix.D != 0 {
		s.ClipPath(r.Path())
		return
	}

	dev := paint.TransformRect(s.matrix, r).Image().Intersect(s.bounds())
	m := gg.NewMask(s.width, s.height)
	data := m.Data()
	for y := dev.Min.Y; y < dev.Max.Y; y++ {
		row := data[y*s.width+dev.Min.X : y*s.width+dev.Max.X]
		for i := range row {
			row[i] = 255
		}
	}
	s.intersectClip(m)
}

// ClipPath intersects the clip with the anti-aliased coverage of p.
// A nil or empty path clips everything.
func (s *ImageSurface) ClipPath(p *gg.Path) {
	if s.closed {
		return
	}
	m := gg.NewMask(s.width, s.height)
	if p != nil {
		dev := s.deviceBounds(p, 0)
		if !dev.Empty() {
			s.rasterize(dev, func(c *gg.Context) error {
				appendPath(c, p)
				c.SetRGBA(1, 1, 1, 1)
				return c.Fill()
			})
			data := m.Data()
			for y := dev.Min.Y; y < dev.Max.Y; y++ {
				for x := dev.Min.X; x < dev.Max.X; x++ {
					data[y*s.width+x] = s.scratchPixels.Pix[s.scratchPixels.PixOffset(x, y)+3]
				}
			}
		}
	}
	s.intersectClip(m)
}

// intersectClip multiplies m by the current clip and installs it. m must
// be freshly allocated since saved states share clip masks.
func (s *ImageSurface) intersectClip(m *gg.Mask) {
	if s.clip != nil {
		dst, src := m.Data(), s.clip.Data()
		for i := range dst {
			dst[i] = uint8(uint16(dst[i]) * uint16(src[i]) / 255)
		}
	}
	s.clip = m
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// ClearRect resets the pixels under r to transparent, ignoring the clip.
func (s *ImageSurface) ClearRect(r paint.Rect) {
	if s.closed {
		return
	}
	dev := paint.TransformRect(s.matrix, r).Image().Intersect(s.bounds())
	clearRGBA(s.pixels, dev)
}

// DrawRect paints r with style st.
func (s *ImageSurface) DrawRect(r paint.Rect, st paint.Style) {
	s.DrawPath(r.Path(), st)
}

// DrawPath fills or strokes p with style st.
func (s *ImageSurface) DrawPath(p *gg.Path, st paint.Style) {
	if s.closed || p == nil {
		return
	}
	pad := 1.0
	if st.Mode == paint.Stroke {
		pad += st.StrokeWidth * scaleFactor(s.matrix)
	}
	dev := s.deviceBounds(p, pad)
	if dev.Empty() {
		return
	}

	err := s.rasterize(dev, func(c *gg.Context) error {
		appendPath(c, p)
		c.SetRGBA(st.Color.R, st.Color.G, st.Color.B, st.Color.A)
		if st.Mode == paint.Stroke {
			c.SetLineWidth(st.StrokeWidth)
			return c.Stroke()
		}
		return c.Fill()
	})
	if err != nil {
		paint.Logger().Debug("surface: rasterize failed", "err", err)
		return
	}
	s.composite(dev)
}

// DrawImage draws img with its top-left corner at (x, y) in user space.
func (s *ImageSurface) DrawImage(img image.Image, x, y float64) {
	if s.closed || img == nil {
		return
	}
	b := img.Bounds()
	area := paint.XYWH(x, y, float64(b.Dx()), float64(b.Dy()))
	dev := paint.TransformRect(s.matrix, area).Image().Intersect(s.bounds())
	if dev.Empty() {
		return
	}

	buf := gg.ImageBufFromImage(img)
	_ = s.rasterize(dev, func(c *gg.Context) error {
		c.DrawImage(buf, x, y)
		return nil
	})
	s.composite(dev)
}

// rasterize clears dev in the scratch pixmap and runs draw on the scratch
// context under the current transform.
func (s *ImageSurface) rasterize(dev image.Rectangle, draw func(c *gg.Context) error) error {
	clearRGBA(s.scratchPixels, dev)
	s.scratch.ClearPath()
	s.scratch.SetTransform(s.matrix)
	return draw(s.scratch)
}

// composite blends the scratch pixels in dev onto the layer through the
// clip.
func (s *ImageSurface) composite(dev image.Rectangle) {
	if s.clip == nil {
		xdraw.Draw(s.pixels, dev, s.scratchPixels, dev.Min, xdraw.Over)
		return
	}
	mask := &image.Alpha{Pix: s.clip.Data(), Stride: s.width, Rect: s.clip.Bounds()}
	xdraw.DrawMask(s.pixels, dev, s.scratchPixels, dev.Min, mask, dev.Min, xdraw.Over)
}

// deviceBounds returns the pixel bounds of p under the current transform,
// grown by pad and clipped to the surface.
func (s *ImageSurface) deviceBounds(p *gg.Path, pad float64) image.Rectangle {
	if p.NumVerbs() == 0 {
		return image.Rectangle{}
	}
	r := paint.FromGG(p.Transform(s.matrix).BoundingBox())
	r = paint.LTRB(r.Left()-pad, r.Top()-pad, r.Right()+pad, r.Bottom()+pad)
	return r.Image().Intersect(s.bounds())
}

// --------------------------------------------------------------------------
// Retained pixels
// --------------------------------------------------------------------------

// Snapshot returns a copy of the layer pixels, or nil after Close.
func (s *ImageSurface) Snapshot() image.Image {
	if s.closed {
		return nil
	}
	return s.pixmap.ToImage()
}

// Shift moves the pixels by (dx, dy). Pixels shifted in from outside the
// surface are transparent.
func (s *ImageSurface) Shift(dx, dy int) {
	if s.closed || (dx == 0 && dy == 0) {
		return
	}
	src := s.pixmap.ToImage()
	clearRGBA(s.pixels, s.bounds())
	if abs(dx) >= s.width || abs(dy) >= s.height {
		return
	}
	xdraw.Copy(s.pixels, image.Pt(dx, dy), src, src.Bounds(), xdraw.Src, nil)
	paint.Logger().Debug("surface: shifted", "dx", dx, "dy", dy)
}

// Close releases the pixel buffers. Close is idempotent.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.scratch.Close()
	s.pixmap = nil
	s.pixels = nil
	s.scratch = nil
	s.scratchPixels = nil
	s.clip = nil
	s.stack = nil
	return err
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// clearRGBA zeroes the pixels of img inside r.
func clearRGBA(img *image.RGBA, r image.Rectangle) {
	r = r.Intersect(img.Rect)
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		start := img.PixOffset(r.Min.X, y)
		clear(img.Pix[start : start+4*r.Dx()])
	}
}

// appendPath replays p onto the context path. Context path methods apply
// the context transform.
func appendPath(c *gg.Context, p *gg.Path) {
	p.Iterate(func(verb gg.PathVerb, pts []float64) {
		switch verb {
		case gg.MoveTo:
			c.MoveTo(pts[0], pts[1])
		case gg.LineTo:
			c.LineTo(pts[0], pts[1])
		case gg.QuadTo:
			c.QuadraticTo(pts[0], pts[1], pts[2], pts[3])
		case gg.CubicTo:
			c.CubicTo(pts[0], pts[1], pts[2], pts[3], pts[4], pts[5])
		case gg.Close:
			c.ClosePath()
		}
	})
}

// scaleFactor is the geometric mean scale of m.
func scaleFactor(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
