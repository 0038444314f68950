// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"errors"
	"fmt"
)

var (
	// ErrNilFactory is returned by NewPainter without a surface factory.
	ErrNilFactory = errors.New("paint: nil surface factory")

	// ErrNilCanvas is returned by Painter.Paint without a destination.
	ErrNilCanvas = errors.New("paint: nil destination canvas")

	// ErrNilSurface is returned when a factory yields no surface and no error.
	ErrNilSurface = errors.New("paint: factory returned nil surface")
)

// LayerError reports a layer skipped because its surface could not be
// allocated. The layer is missing from that frame.
type LayerError struct {
	Key RenderLayerKey
	Err error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("paint: layer %s: %v", e.Key, e.Err)
}

func (e *LayerError) Unwrap() error { return e.Err }

// FailedLayers returns the keys of every LayerError in err's tree, in
// the order they occur.
func FailedLayers(err error) []RenderLayerKey {
	var keys []RenderLayerKey
	var walk func(error)
	walk = func(err error) {
		switch v := err.(type) {
		case nil:
		case *LayerError:
			keys = append(keys, v.Key)
		case interface{ Unwrap() []error }:
			for _, e := range v.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(v.Unwrap())
		}
	}
	walk(err)
	return keys
}
