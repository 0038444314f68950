// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/present"
	"github.com/gogpu/paint/surface"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func newRenderCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to numbered PNG frames",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg config
			if err := v.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("paintdemo: decode config: %w", err)
			}
			return runRender(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.String("scene", "scene.yaml", "scene file")
	f.String("out", "frames", "output directory")
	f.Int("frames", 1, "number of frames to render")
	f.String("backend", "", "surface backend (default: highest priority)")
	f.Float64("scale", 1, "device pixel ratio")
	f.StringSlice("debug", nil, "debug overlays: repaint, layers, focus")
	f.Bool("no-cache", false, "repaint every layer every frame")
	for _, name := range []string{"scene", "out", "frames", "backend", "scale", "debug"} {
		_ = v.BindPFlag(name, f.Lookup(name))
	}
	_ = v.BindPFlag("no_cache", f.Lookup("no-cache"))
	return cmd
}

func surfaceFactory(name string) (paint.SurfaceFactory, error) {
	if name == "" {
		return surface.Default()
	}
	return surface.FactoryByName(name)
}

// runRender paints cfg.Frames frames of the scene. The element tree is
// owned by the calling goroutine; painting and PNG encoding run in a
// present.Pipeline. Layers the painter could not complete are damaged
// again through Resync.
func runRender(ctx context.Context, cfg config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	debug, err := cfg.debugFlags()
	if err != nil {
		return err
	}
	scene, err := LoadScene(cfg.Scene)
	if err != nil {
		return err
	}
	root, anim, err := scene.Build()
	if err != nil {
		return err
	}
	factory, err := surfaceFactory(cfg.Backend)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return fmt.Errorf("paintdemo: %w", err)
	}

	viewport := paint.XYWH(0, 0, float64(scene.Width), float64(scene.Height))
	painter, err := paint.NewPainter(factory,
		paint.WithScale(cfg.Scale),
		paint.WithViewport(viewport),
		paint.WithDebug(debug))
	if err != nil {
		return err
	}
	defer painter.Close()

	dst, err := surface.NewImageSurface(int(float64(scene.Width)*cfg.Scale), int(float64(scene.Height)*cfg.Scale))
	if err != nil {
		return err
	}
	defer dst.Close()
	dst.Scale(cfg.Scale, cfg.Scale)

	pl, err := present.New(painter, dst, pngSink(cfg.Out))
	if err != nil {
		return err
	}

	tree := paint.NewRenderTree(paint.WithLayerCache(!cfg.NoCache))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pl.Run(gctx) })
	g.Go(func() error {
		defer pl.Close()
		for i := 0; i < cfg.Frames; i++ {
			if i > 0 {
				anim.Step()
			}
			tree.Rebuild(root)
			painter.Resync(tree)
			if err := pl.Submit(gctx, tree.BuildPaintTree(viewport)); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	paint.Logger().Info("paintdemo: done", "frames", cfg.Frames, "out", cfg.Out)
	return nil
}

// pngSink writes each frame as frame-NNN.png in dir.
func pngSink(dir string) present.Sink {
	return func(_ context.Context, f present.Frame) error {
		name := filepath.Join(dir, fmt.Sprintf("frame-%03d.png", f.Seq))
		out, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := png.Encode(out, f.Image); err != nil {
			out.Close()
			return err
		}
		paint.Logger().Info("paintdemo: frame written",
			"file", name, "evicted", len(f.Evicted), "paint", f.PaintTime)
		return out.Close()
	}
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered surface backends by priority",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range surface.List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
