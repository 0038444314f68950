// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/paint"
	"github.com/google/go-cmp/cmp"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, NewSurface)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, NewSurface)
	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
	r.Unregister("missing")
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, NewSurface)
	r.Register("high", 100, NewSurface)
	r.Register("mid-b", 50, NewSurface)
	r.Register("mid-a", 50, NewSurface)

	want := []string{"high", "mid-a", "mid-b", "low"}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryDefault(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Default(); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("Default() on empty registry error = %v, want ErrNoBackendAvailable", err)
	}

	called := ""
	r.Register("a", 1, func(w, h int) (paint.Surface, error) {
		called = "a"
		return NewSurface(w, h)
	})
	r.Register("b", 2, func(w, h int) (paint.Surface, error) {
		called = "b"
		return NewSurface(w, h)
	})

	f, err := r.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	s, err := f(4, 4)
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	defer s.Close()
	if called != "b" {
		t.Errorf("Default() used %q, want b", called)
	}
}

func TestRegistryFactoryByNameMissing(t *testing.T) {
	r := NewRegistry()
	_, err := r.FactoryByName("vulkan")

	var nf *BackendNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("FactoryByName() error = %v, want BackendNotFoundError", err)
	}
	if nf.Name != "vulkan" {
		t.Errorf("Name = %q, want vulkan", nf.Name)
	}
}

func TestImageBackendRegistered(t *testing.T) {
	f, err := FactoryByName("image")
	if err != nil {
		t.Fatalf("FactoryByName(image) error = %v", err)
	}
	s, err := f(8, 8)
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	defer s.Close()
	if s.Width() != 8 || s.Height() != 8 {
		t.Errorf("size = %dx%d, want 8x8", s.Width(), s.Height())
	}
}
