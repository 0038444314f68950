// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package present

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/paint"
	"github.com/gogpu/paint/surface"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var viewport = paint.XYWH(0, 0, 32, 32)

type fixture struct {
	tree    *paint.RenderTree
	root    *paint.Element
	painter *paint.Painter
	dst     *surface.ImageSurface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	p, err := paint.NewPainter(surface.NewSurface)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := surface.NewImageSurface(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = p.Close()
		_ = dst.Close()
	})
	root := &paint.Element{ID: 1, Bounds: viewport, BackgroundColor: gg.Red}
	tree := paint.NewRenderTree()
	tree.Rebuild(root)
	return &fixture{tree: tree, root: root, painter: p, dst: dst}
}

// collector is a Sink recording frames.
type collector struct {
	mu     sync.Mutex
	frames []Frame
}

func (c *collector) sink(_ context.Context, f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
	return nil
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func TestNewValidates(t *testing.T) {
	fx := newFixture(t)
	sink := func(context.Context, Frame) error { return nil }
	tests := []struct {
		name    string
		painter *paint.Painter
		dst     paint.Surface
		sink    Sink
		want    error
	}{
		{"painter", nil, fx.dst, sink, ErrNilPainter},
		{"surface", fx.painter, nil, sink, ErrNilSurface},
		{"sink", fx.painter, fx.dst, nil, ErrNilSink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.painter, tt.dst, tt.sink); !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPipelineDeliversFramesInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)
	fx := newFixture(t)
	var c collector
	pl, err := New(fx.painter, fx.dst, c.sink)
	if err != nil {
		t.Fatal(err)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- pl.Run(context.Background()) }()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if i > 0 {
			fx.tree.InvalidateElement(fx.root)
		}
		if err := pl.Submit(ctx, fx.tree.BuildPaintTree(viewport)); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	pl.Close()
	if err := <-runErr; err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if c.len() != 3 {
		t.Fatalf("delivered %d frames, want 3", c.len())
	}
	for i, f := range c.frames {
		if i > 0 && f.Seq != c.frames[i-1].Seq+1 {
			t.Errorf("frame %d Seq = %d, previous %d", i, f.Seq, c.frames[i-1].Seq)
		}
		got := color.RGBA64Model.Convert(f.Image.At(16, 16)).(color.RGBA64)
		if got.R < 0xf000 || got.G > 0x0fff {
			t.Errorf("frame %d center = %v, want red", i, got)
		}
	}
	if err := pl.Submit(ctx, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() after Close error = %v, want ErrClosed", err)
	}
}

func TestPipelineCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	fx := newFixture(t)
	var c collector
	pl, _ := New(fx.painter, fx.dst, c.sink)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- pl.Run(ctx) }()
	cancel()

	if err := <-runErr; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if err := pl.Submit(context.Background(), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() after Run returned: %v, want ErrClosed", err)
	}
}

func TestPipelineSinkError(t *testing.T) {
	defer goleak.VerifyNone(t)
	fx := newFixture(t)
	errDisk := errors.New("disk full")
	pl, _ := New(fx.painter, fx.dst, func(context.Context, Frame) error { return errDisk })

	runErr := make(chan error, 1)
	go func() { runErr <- pl.Run(context.Background()) }()
	if err := pl.Submit(context.Background(), fx.tree.BuildPaintTree(viewport)); err != nil {
		t.Fatal(err)
	}

	if err := <-runErr; !errors.Is(err, errDisk) {
		t.Errorf("Run() error = %v, want wrapped sink error", err)
	}
}

func TestSubmitBlocksWhenFull(t *testing.T) {
	fx := newFixture(t)
	var c collector
	pl, _ := New(fx.painter, fx.dst, c.sink)
	defer pl.Close()

	if err := pl.Submit(context.Background(), nil); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := pl.Submit(ctx, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("second Submit() error = %v, want DeadlineExceeded", err)
	}
}

func TestRunTwice(t *testing.T) {
	defer goleak.VerifyNone(t)
	fx := newFixture(t)
	var c collector
	pl, _ := New(fx.painter, fx.dst, c.sink)

	started := make(chan struct{})
	runErr := make(chan error, 1)
	go func() {
		close(started)
		runErr <- pl.Run(context.Background())
	}()
	<-started
	// Wait until the first Run has claimed the pipeline.
	for !pl.running.Load() {
		time.Sleep(time.Millisecond)
	}
	if err := pl.Run(context.Background()); !errors.Is(err, ErrRunning) {
		t.Errorf("second Run() error = %v, want ErrRunning", err)
	}
	pl.Close()
	if err := <-runErr; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestNilTreeFrame(t *testing.T) {
	defer goleak.VerifyNone(t)
	fx := newFixture(t)
	var c collector
	pl, _ := New(fx.painter, fx.dst, c.sink)

	runErr := make(chan error, 1)
	go func() { runErr <- pl.Run(context.Background()) }()
	if err := pl.Submit(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	pl.Close()
	if err := <-runErr; err != nil {
		t.Fatal(err)
	}
	if c.len() != 1 || c.frames[0].Seq != 0 {
		t.Errorf("frames = %+v, want one frame with Seq 0", c.frames)
	}
}

func TestCloseKeepsAcceptedFrames(t *testing.T) {
	defer goleak.VerifyNone(t)
	for i := 0; i < 50; i++ {
		fx := newFixture(t)
		var c collector
		pl, _ := New(fx.painter, fx.dst, c.sink)

		runErr := make(chan error, 1)
		go func() { runErr <- pl.Run(context.Background()) }()

		const submitters = 4
		var wg sync.WaitGroup
		var mu sync.Mutex
		accepted := 0
		for j := 0; j < submitters; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := pl.Submit(context.Background(), nil); err == nil {
					mu.Lock()
					accepted++
					mu.Unlock()
				} else if !errors.Is(err, ErrClosed) {
					t.Errorf("Submit() error = %v", err)
				}
			}()
		}
		pl.Close()
		wg.Wait()
		if err := <-runErr; err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if c.len() != accepted {
			t.Fatalf("iteration %d: delivered %d frames, accepted %d", i, c.len(), accepted)
		}
	}
}
