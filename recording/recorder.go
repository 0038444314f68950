// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/paint"
)

// Recorder captures canvas calls as commands.
// It implements paint.Canvas and keeps the current transform so that
// callers reading Transform see the same value a raster canvas would.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int

	commands  []Command
	resources *ResourcePool

	matrix gg.Matrix
	stack  []gg.Matrix
}

var _ paint.Canvas = (*Recorder)(nil)

// NewRecorder creates a recorder for a canvas of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:     width,
		height:    height,
		commands:  make([]Command, 0, 64),
		resources: NewResourcePool(),
		matrix:    gg.Identity(),
		stack:     make([]gg.Matrix, 0, 8),
	}
}

// Width returns the canvas width.
func (r *Recorder) Width() int {
	return r.width
}

// Height returns the canvas height.
func (r *Recorder) Height() int {
	return r.height
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// FinishRecording hands the recorded commands over to a Recording and
// resets the recorder to an empty state with an identity transform.
func (r *Recorder) FinishRecording() *Recording {
	rec := &Recording{
		width:     r.width,
		height:    r.height,
		commands:  r.commands,
		resources: r.resources,
	}
	r.commands = make([]Command, 0, 64)
	r.resources = NewResourcePool()
	r.matrix = gg.Identity()
	r.stack = r.stack[:0]
	return rec
}

func (r *Recorder) record(cmd Command) {
	r.commands = append(r.commands, cmd)
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Save records a state save.
func (r *Recorder) Save() {
	r.stack = append(r.stack, r.matrix)
	r.record(SaveCommand{})
}

// Restore records a state restore. An unbalanced Restore is recorded but
// leaves the transform unchanged.
func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.matrix = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.record(RestoreCommand{})
}

// Translate records a translation.
func (r *Recorder) Translate(x, y float64) {
	r.matrix = r.matrix.Multiply(gg.Translate(x, y))
	r.record(TranslateCommand{X: x, Y: y})
}

// Scale records a scale.
func (r *Recorder) Scale(sx, sy float64) {
	r.matrix = r.matrix.Multiply(gg.Scale(sx, sy))
	r.record(ScaleCommand{X: sx, Y: sy})
}

// Concat records a post-multiplication of the transform.
func (r *Recorder) Concat(m gg.Matrix) {
	r.matrix = r.matrix.Multiply(m)
	r.record(ConcatCommand{Matrix: m})
}

// Transform returns the current transform.
func (r *Recorder) Transform() gg.Matrix {
	return r.matrix
}

// SetTransform records a transform replacement.
func (r *Recorder) SetTransform(m gg.Matrix) {
	r.matrix = m
	r.record(SetTransformCommand{Matrix: m})
}

// ClipRect records a rectangular clip.
func (r *Recorder) ClipRect(rect paint.Rect) {
	r.record(ClipRectCommand{Rect: rect})
}

// ClipPath records a path clip.
func (r *Recorder) ClipPath(p *gg.Path) {
	r.record(ClipPathCommand{Path: r.resources.AddPath(p)})
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// ClearRect records a clear.
func (r *Recorder) ClearRect(rect paint.Rect) {
	r.record(ClearRectCommand{Rect: rect})
}

// DrawRect records a rectangle draw.
func (r *Recorder) DrawRect(rect paint.Rect, s paint.Style) {
	r.record(DrawRectCommand{Rect: rect, Style: s})
}

// DrawPath records a path draw.
func (r *Recorder) DrawPath(p *gg.Path, s paint.Style) {
	r.record(DrawPathCommand{Path: r.resources.AddPath(p), Style: s})
}

// DrawImage records an image draw.
func (r *Recorder) DrawImage(img image.Image, x, y float64) {
	r.record(DrawImageCommand{Image: r.resources.AddImage(img), X: x, Y: y})
}

// --------------------------------------------------------------------------
// Recording
// --------------------------------------------------------------------------

// Recording is an immutable container for recorded commands.
type Recording struct {
	width, height int
	commands      []Command
	resources     *ResourcePool
}

// Width returns the width of the recorded canvas.
func (r *Recording) Width() int {
	return r.width
}

// Height returns the height of the recorded canvas.
func (r *Recording) Height() int {
	return r.height
}

// Commands returns the recorded commands in issue order.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool {
	return r.resources
}

// Types returns the command types in issue order.
func (r *Recording) Types() []CommandType {
	out := make([]CommandType, len(r.commands))
	for i, cmd := range r.commands {
		out[i] = cmd.Type()
	}
	return out
}

// Count returns how many commands of type t were recorded.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			n++
		}
	}
	return n
}

// Path returns the pooled path referenced by ref.
func (r *Recording) Path(ref PathRef) *gg.Path {
	return r.resources.GetPath(ref)
}

// Playback replays the recording onto dst in issue order.
func (r *Recording) Playback(dst paint.Canvas) {
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			dst.Save()
		case RestoreCommand:
			dst.Restore()
		case TranslateCommand:
			dst.Translate(c.X, c.Y)
		case ScaleCommand:
			dst.Scale(c.X, c.Y)
		case ConcatCommand:
			dst.Concat(c.Matrix)
		case SetTransformCommand:
			dst.SetTransform(c.Matrix)
		case ClipRectCommand:
			dst.ClipRect(c.Rect)
		case ClipPathCommand:
			dst.ClipPath(r.resources.GetPath(c.Path))
		case ClearRectCommand:
			dst.ClearRect(c.Rect)
		case DrawRectCommand:
			dst.DrawRect(c.Rect, c.Style)
		case DrawPathCommand:
			if p := r.resources.GetPath(c.Path); p != nil {
				dst.DrawPath(p, c.Style)
			}
		case DrawImageCommand:
			if img := r.resources.GetImage(c.Image); img != nil {
				dst.DrawImage(img, c.X, c.Y)
			}
		}
	}
}
