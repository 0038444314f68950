// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "errors"

var (
	// ErrInvalidSize is returned when a surface is requested with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("surface: invalid size")

	// ErrClosed is returned by operations on a closed surface.
	ErrClosed = errors.New("surface: closed")

	// ErrNoBackendAvailable is returned when no backend is registered.
	ErrNoBackendAvailable = errors.New("surface: no backend available")
)

// BackendNotFoundError is returned when a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}
