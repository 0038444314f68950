// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/paint"
)

// CommandType identifies the type of a command.
// Each command type corresponds to one paint.Canvas method.
type CommandType uint8

const (
	// State commands
	CmdSave         CommandType = iota // Save current state
	CmdRestore                         // Restore previous state
	CmdTranslate                       // Translate the transform
	CmdScale                           // Scale the transform
	CmdConcat                          // Post-multiply the transform
	CmdSetTransform                    // Replace the transform
	CmdClipRect                        // Intersect clip with a rectangle
	CmdClipPath                        // Intersect clip with a path

	// Drawing commands
	CmdClearRect // Reset pixels to transparent
	CmdDrawRect  // Fill or stroke a rectangle
	CmdDrawPath  // Fill or stroke a path
	CmdDrawImage // Draw an image
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSave:         "Save",
	CmdRestore:      "Restore",
	CmdTranslate:    "Translate",
	CmdScale:        "Scale",
	CmdConcat:       "Concat",
	CmdSetTransform: "SetTransform",
	CmdClipRect:     "ClipRect",
	CmdClipPath:     "ClipPath",
	CmdClearRect:    "ClearRect",
	CmdDrawRect:     "DrawRect",
	CmdDrawPath:     "DrawPath",
	CmdDrawImage:    "DrawImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// Reference Types
// --------------------------------------------------------------------------

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference points to a valid path.
func (r PathRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// IsValid returns true if the reference points to a valid image.
func (r ImageRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SaveCommand saves the current transform and clip.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand restores the previously saved transform and clip.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// TranslateCommand translates the current transform.
type TranslateCommand struct {
	X, Y float64
}

// Type implements Command.
func (TranslateCommand) Type() CommandType { return CmdTranslate }

// ScaleCommand scales the current transform.
type ScaleCommand struct {
	X, Y float64
}

// Type implements Command.
func (ScaleCommand) Type() CommandType { return CmdScale }

// ConcatCommand post-multiplies the current transform.
type ConcatCommand struct {
	Matrix gg.Matrix
}

// Type implements Command.
func (ConcatCommand) Type() CommandType { return CmdConcat }

// SetTransformCommand replaces the current transform.
type SetTransformCommand struct {
	Matrix gg.Matrix
}

// Type implements Command.
func (SetTransformCommand) Type() CommandType { return CmdSetTransform }

// ClipRectCommand intersects the clip with a rectangle in user space.
type ClipRectCommand struct {
	Rect paint.Rect
}

// Type implements Command.
func (ClipRectCommand) Type() CommandType { return CmdClipRect }

// ClipPathCommand intersects the clip with a path in user space.
type ClipPathCommand struct {
	// Path references the clip path in the resource pool.
	Path PathRef
}

// Type implements Command.
func (ClipPathCommand) Type() CommandType { return CmdClipPath }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// ClearRectCommand resets the pixels under a rectangle to transparent.
type ClearRectCommand struct {
	Rect paint.Rect
}

// Type implements Command.
func (ClearRectCommand) Type() CommandType { return CmdClearRect }

// DrawRectCommand paints a rectangle.
type DrawRectCommand struct {
	Rect  paint.Rect
	Style paint.Style
}

// Type implements Command.
func (DrawRectCommand) Type() CommandType { return CmdDrawRect }

// DrawPathCommand paints a path.
type DrawPathCommand struct {
	// Path references the path in the resource pool.
	Path  PathRef
	Style paint.Style
}

// Type implements Command.
func (DrawPathCommand) Type() CommandType { return CmdDrawPath }

// DrawImageCommand draws an image with its top-left corner at (X, Y).
type DrawImageCommand struct {
	// Image references the image in the resource pool.
	Image ImageRef
	X, Y  float64
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }
