// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package present runs painting off the UI goroutine.
//
// A Pipeline takes PaintTree snapshots from the goroutine that owns the
// RenderTree, paints them onto a surface on a paint goroutine and hands
// each finished frame to a Sink on a third goroutine. Each stage holds at
// most one frame, so a slow sink slows painting down and a slow painter
// blocks Submit instead of dropping damage.
package present

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/paint"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrClosed is returned by Submit after Close or once Run returned.
	ErrClosed = errors.New("present: pipeline closed")

	// ErrRunning is returned by a second concurrent Run.
	ErrRunning = errors.New("present: pipeline already running")

	// ErrNilPainter is returned by New without a painter.
	ErrNilPainter = errors.New("present: nil painter")

	// ErrNilSurface is returned by New without a destination surface.
	ErrNilSurface = errors.New("present: nil destination surface")

	// ErrNilSink is returned by New without a sink.
	ErrNilSink = errors.New("present: nil sink")
)

// Frame is one painted frame.
type Frame struct {
	// Seq is the PaintTree frame number, zero for a nil tree.
	Seq uint64
	// Image is a copy of the destination after painting.
	Image     image.Image
	Evicted   []paint.RenderLayerKey
	PaintTime time.Duration
}

// Sink consumes painted frames in order.
type Sink func(ctx context.Context, f Frame) error

// Pipeline paints submitted trees onto one surface.
type Pipeline struct {
	painter *paint.Painter
	dst     paint.Surface
	sink    Sink

	trees  chan *paint.PaintTree
	frames chan Frame

	// submitMu is held for reading by Submit and for writing by Close, so
	// sealed closes only once no Submit can still enqueue.
	submitMu  sync.RWMutex
	done      chan struct{}
	sealed    chan struct{}
	closeOnce sync.Once
	running   atomic.Bool
}

// New returns a pipeline painting with p onto dst and delivering to sink.
// The pipeline owns p and dst while Run is active.
func New(p *paint.Painter, dst paint.Surface, sink Sink) (*Pipeline, error) {
	switch {
	case p == nil:
		return nil, ErrNilPainter
	case dst == nil:
		return nil, ErrNilSurface
	case sink == nil:
		return nil, ErrNilSink
	}
	return &Pipeline{
		painter: p,
		dst:     dst,
		sink:    sink,
		trees:   make(chan *paint.PaintTree, 1),
		frames:  make(chan Frame, 1),
		done:    make(chan struct{}),
		sealed:  make(chan struct{}),
	}, nil
}

// Submit queues tree for painting. It blocks while a frame is already
// queued, until ctx is done or the pipeline closes.
func (p *Pipeline) Submit(ctx context.Context, tree *paint.PaintTree) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()
	select {
	case <-p.done:
		return ErrClosed
	default:
	}
	select {
	case p.trees <- tree:
		return nil
	case <-p.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting frames. Every frame whose Submit returned nil is
// still painted and delivered before Run returns nil. Close is idempotent.
func (p *Pipeline) Close() {
	p.closeOnce.Do(func() {
		// Wakes Submits blocked on a full queue before waiting for them.
		close(p.done)
		p.submitMu.Lock()
		close(p.sealed)
		p.submitMu.Unlock()
	})
}

// Run paints and delivers frames until Close, ctx cancellation or a sink
// error. It returns nil after Close.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer p.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.paintLoop(gctx) })
	g.Go(func() error { return p.presentLoop(gctx) })
	return g.Wait()
}

func (p *Pipeline) paintLoop(ctx context.Context) error {
	defer close(p.frames)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tree := <-p.trees:
			if err := p.paint(ctx, tree); err != nil {
				return err
			}
		case <-p.done:
			return p.drain(ctx)
		}
	}
}

// drain paints what was queued before Close sealed the queue.
func (p *Pipeline) drain(ctx context.Context) error {
	select {
	case <-p.sealed:
	case <-ctx.Done():
		return ctx.Err()
	}
	for {
		select {
		case tree := <-p.trees:
			if err := p.paint(ctx, tree); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *Pipeline) paint(ctx context.Context, tree *paint.PaintTree) error {
	start := time.Now()
	p.dst.Save()
	p.dst.SetTransform(gg.Identity())
	p.dst.ClearRect(paint.XYWH(0, 0, float64(p.dst.Width()), float64(p.dst.Height())))
	p.dst.Restore()

	evicted, err := p.painter.Paint(p.dst, tree)
	if err != nil {
		// Layers that failed are missing from this frame only.
		paint.Logger().Warn("present: frame painted partially", "err", err)
	}
	f := Frame{
		Image:     p.dst.Snapshot(),
		Evicted:   evicted,
		PaintTime: time.Since(start),
	}
	if tree != nil {
		f.Seq = tree.Frame
	}
	paint.Logger().Debug("present: frame painted", "seq", f.Seq, "took", f.PaintTime)

	select {
	case p.frames <- f:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pipeline) presentLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f, ok := <-p.frames:
			if !ok {
				return nil
			}
			if err := p.sink(ctx, f); err != nil {
				return fmt.Errorf("present: sink frame %d: %w", f.Seq, err)
			}
		}
	}
}
