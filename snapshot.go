// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import (
	"github.com/gogpu/framedefer/geom"
	"github.com/gogpu/framedefer/path"
)

// SaveFlags controls which parts of a Snapshot a save/restore pair
// preserves. The engine only ever saves everything (matrix and clip
// together); the flag type exists because the original distinguishes
// SK_SAVE_FLAGS and a future caller may want finer control.
type SaveFlags uint8

const (
	// SaveMatrixClip saves both transform and clip state.
	SaveMatrixClip SaveFlags = 1 << iota
)

// Snapshot is immutable-per-save state: every CanvasState.save pushes a
// new Snapshot that inherits its parent's fields by value, and every
// mutation (translate, clipRect, scaleAlpha, ...) either creates a new
// Snapshot or is only ever applied to the stack's writable top — the
// snapshot beneath it is never retroactively changed. Restoring pops
// back to an earlier Snapshot unmodified.
type Snapshot struct {
	Transform geom.Mat4
	Clip      geom.Region

	// Alpha is the accumulated alpha for everything drawn under this
	// snapshot, composed multiplicatively on scaleAlpha.
	Alpha float64

	RelativeLightCenter geom.Vec3

	// RoundRectClipRadius is non-negative when a round-rect clip is
	// active; RoundRectClipBounds gives its rect. A zero radius with
	// RoundRectClipActive false means no round-rect clip.
	RoundRectClipActive bool
	RoundRectClipBounds geom.Rect
	RoundRectClipRadius float64

	// ProjectionPathMask, when non-nil, restricts projected children to
	// this path in the projection receiver's local space (§4.5.4).
	ProjectionPathMask *path.Path

	// RenderTargetClip is the clip rect of the render target currently
	// drawn into: the viewport clip passed into the FrameBuilder at the
	// root, replaced by a layer's repaint rect when saveForLayer opens
	// that layer.
	RenderTargetClip geom.Rect

	flags SaveFlags
}

// rootSnapshot builds the Snapshot a FrameBuilder initializes its canvas
// state with: identity transform, clip equal to the viewport clip rect,
// alpha 1.
func rootSnapshot(clip geom.Rect, lightCenter geom.Vec3) Snapshot {
	return Snapshot{
		Transform:           geom.Identity(),
		Clip:                geom.NewRegion(clip),
		Alpha:               1,
		RelativeLightCenter: lightCenter,
		RenderTargetClip:    clip,
		flags:               SaveMatrixClip,
	}
}

// clone returns a copy of the snapshot suitable for pushing as a new
// save. Mat4/Rect/Region here are all plain value types, so a Go value
// copy already gives each save its own independent Snapshot — this
// method exists to make that independence explicit at call sites instead
// of relying on an implicit struct copy.
func (s Snapshot) clone() Snapshot {
	return s
}
