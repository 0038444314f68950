// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"sort"
	"sync"

	"github.com/gogpu/paint"
)

// RegistryEntry describes a registered surface backend.
type RegistryEntry struct {
	// Name is the unique backend identifier.
	Name string

	// Priority determines selection order when no name is given.
	// Higher values are tried first.
	Priority int

	// Factory creates layer surfaces.
	Factory paint.SurfaceFactory
}

var globalRegistry = NewRegistry()

// Registry manages surface backend registrations. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
func Register(name string, priority int, factory paint.SurfaceFactory) {
	globalRegistry.Register(name, priority, factory)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns the registered backend names, highest priority first.
func List() []string {
	return globalRegistry.List()
}

// Default returns the factory of the highest priority backend.
func Default() (paint.SurfaceFactory, error) {
	return globalRegistry.Default()
}

// FactoryByName returns the factory of the named backend.
func FactoryByName(name string) (paint.SurfaceFactory, error) {
	return globalRegistry.FactoryByName(name)
}

// Register adds or replaces a backend.
func (r *Registry) Register(name string, priority int, factory paint.SurfaceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = &RegistryEntry{
		Name:     name,
		Priority: priority,
		Factory:  factory,
	}
}

// Unregister removes a backend. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// List returns the registered backend names, highest priority first.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames()
}

// Default returns the factory of the highest priority backend.
func (r *Registry) Default() (paint.SurfaceFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.sortedNames()
	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}
	return r.entries[names[0]].Factory, nil
}

// FactoryByName returns the factory of the named backend.
func (r *Registry) FactoryByName(name string) (paint.SurfaceFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	return entry.Factory, nil
}

// sortedNames orders by priority, then name. The caller holds mu.
func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := r.entries[names[i]].Priority, r.entries[names[j]].Priority
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})
	return names
}

func init() {
	Register("image", 10, NewSurface)
}
