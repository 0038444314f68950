// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import "sync/atomic"

// RenderFn is an externally supplied draw callback captured into a paint
// snapshot. It runs at most once, even when the snapshot is shared between
// goroutines.
type RenderFn struct {
	fn   func(Canvas)
	done atomic.Bool
}

// NewRenderFn wraps fn. A nil fn yields a RenderFn that does nothing.
func NewRenderFn(fn func(Canvas)) *RenderFn {
	return &RenderFn{fn: fn}
}

// Run calls the callback with c unless it already ran. It reports whether
// this call ran it.
func (r *RenderFn) Run(c Canvas) bool {
	if r == nil || !r.done.CompareAndSwap(false, true) {
		return false
	}
	if r.fn != nil {
		r.fn(c)
	}
	return true
}

// Done reports whether the callback has run.
func (r *RenderFn) Done() bool {
	return r != nil && r.done.Load()
}

// MergeRenderFns returns a RenderFn that runs fns in order. Nil entries
// are skipped; entries that already ran are not run again.
func MergeRenderFns(fns ...*RenderFn) *RenderFn {
	return NewRenderFn(func(c Canvas) {
		for _, f := range fns {
			f.Run(c)
		}
	})
}
