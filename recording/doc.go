// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recording captures the draw calls the painter issues.
//
// A Recorder implements paint.Canvas. Every call is stored as a typed
// command struct instead of being rasterized, so the exact sequence a
// frame produced can be inspected, compared, or replayed onto another
// canvas (for example a raster surface from package surface).
//
// Paths and images are stored in a ResourcePool and referenced by
// PathRef and ImageRef. Paths are cloned on record, so later mutation of
// a caller's path does not change the recording.
//
// # Example
//
//	rec := recording.NewRecorder(800, 600)
//	painter.Paint(rec, tree)
//	r := rec.FinishRecording()
//
//	for _, cmd := range r.Commands() {
//	    fmt.Println(cmd.Type())
//	}
//
//	// Replay onto a raster surface.
//	r.Playback(surf)
package recording
