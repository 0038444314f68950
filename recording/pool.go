// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"image"

	"github.com/gogpu/gg"
)

// ResourcePool stores resources referenced by recording commands.
// Resources are stored in slices indexed by their reference types.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	paths  []*gg.Path
	images []image.Image
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:  make([]*gg.Path, 0, 32),
		images: make([]image.Image, 0, 4),
	}
}

// AddPath adds a path to the pool and returns its reference.
// The path is cloned to ensure immutability of the recording.
func (p *ResourcePool) AddPath(path *gg.Path) PathRef {
	if path != nil {
		path = path.Clone()
	}
	p.paths = append(p.paths, path)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PathRef(uint32(len(p.paths) - 1))
}

// GetPath returns the path for the given reference.
// Returns nil if the reference is invalid.
func (p *ResourcePool) GetPath(ref PathRef) *gg.Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// PathCount returns the number of paths in the pool.
func (p *ResourcePool) PathCount() int {
	return len(p.paths)
}

// AddImage adds an image to the pool and returns its reference.
// Images are stored by reference; callers must not mutate them afterwards.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ImageRef(uint32(len(p.images) - 1))
}

// GetImage returns the image for the given reference.
// Returns nil if the reference is invalid.
func (p *ResourcePool) GetImage(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// ImageCount returns the number of images in the pool.
func (p *ResourcePool) ImageCount() int {
	return len(p.images)
}

// Clear removes all resources while keeping allocated capacity.
func (p *ResourcePool) Clear() {
	clear(p.paths)
	clear(p.images)
	p.paths = p.paths[:0]
	p.images = p.images[:0]
}
