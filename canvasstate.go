// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import (
	"github.com/gogpu/framedefer/geom"
)

// CanvasState is the save/restore stack FrameBuilder walks a RenderNode
// tree against. Every save pushes a Snapshot that starts as a copy of
// the current top; restoreToCount pops back to an earlier depth,
// discarding everything pushed after it.
//
// The stack is never empty after initializeSaveStack: index 0 is the
// root snapshot and is never popped during a build.
type CanvasState struct {
	stack []Snapshot
}

// initializeSaveStack resets the canvas state to a single root Snapshot
// built from the frame's viewport clip and light center. Called once at
// the start of a FrameBuilder build, per §4.5 step 2.
func (c *CanvasState) initializeSaveStack(clip geom.Rect, lightCenter geom.Vec3) {
	c.stack = []Snapshot{rootSnapshot(clip, lightCenter)}
}

// save pushes a copy of the current snapshot and returns the new stack
// depth (the count after pushing, matching the original's save()
// returning the restore count to pass to restoreToCount later).
func (c *CanvasState) save(flags SaveFlags) int {
	top := c.currentSnapshot().clone()
	top.flags = flags
	c.stack = append(c.stack, top)
	return len(c.stack)
}

// restoreToCount pops snapshots until the stack has exactly n entries.
// n must be >= 1 (the root snapshot can never be popped) and must not
// exceed the current depth; either violation is a fatal programming
// error (§5: "every save has a matching restore").
func (c *CanvasState) restoreToCount(n int) {
	if n < 1 || n > len(c.stack) {
		panicf("framedefer: restoreToCount(%d) out of range for stack depth %d", n, len(c.stack))
	}
	c.stack = c.stack[:n]
}

// depth returns the current stack depth.
func (c *CanvasState) depth() int {
	return len(c.stack)
}

// currentSnapshot returns the top of the stack by value.
func (c *CanvasState) currentSnapshot() Snapshot {
	return c.stack[len(c.stack)-1]
}

// writableSnapshot returns a pointer to the top of the stack for
// in-place mutation (translate, concatMatrix, scaleAlpha, clipRect all
// mutate through this rather than pushing a new save).
func (c *CanvasState) writableSnapshot() *Snapshot {
	return &c.stack[len(c.stack)-1]
}

// translate appends a translation to the current snapshot's transform.
func (c *CanvasState) translate(x, y, z float64) {
	s := c.writableSnapshot()
	s.Transform = s.Transform.ConcatTranslate(x, y, z)
}

// concatMatrix appends m to the current snapshot's transform.
func (c *CanvasState) concatMatrix(m geom.Mat4) {
	s := c.writableSnapshot()
	s.Transform = s.Transform.Multiply(m)
}

// scaleAlpha composes alpha multiplicatively into the current snapshot,
// per §4.2 ("scaleAlpha composes multiplicatively").
func (c *CanvasState) scaleAlpha(alpha float64) {
	s := c.writableSnapshot()
	s.Alpha *= alpha
}

// clipRect combines shape into the current snapshot's clip using op. An
// Intersect can never grow the clip: Region.Combine already enforces
// this for Intersect, so no extra check is needed here — see §4.2's
// clip-contraction invariant.
func (c *CanvasState) clipRect(shape geom.Rect, op geom.ClipOp) {
	s := c.writableSnapshot()
	s.Clip = s.Clip.Combine(shape, op)
}

// setClippingRoundRect installs a round-rect clip on the current
// snapshot. A radius of 0 degenerates to a plain rect clip.
func (c *CanvasState) setClippingRoundRect(bounds geom.Rect, radius float64) {
	s := c.writableSnapshot()
	s.Clip = s.Clip.Combine(bounds, geom.ClipIntersect)
	s.RoundRectClipActive = true
	s.RoundRectClipBounds = bounds
	s.RoundRectClipRadius = radius
}

// setClippingOutline installs a clip derived from a RenderNode's outline
// (an arbitrary path), per §4.5.1's reveal-clip/outline handling. Because
// an outline need not be convex, the clip's conservative bound is the
// outline's bounding box, intersected with the existing clip.
func (c *CanvasState) setClippingOutline(boundsHint geom.Rect) {
	s := c.writableSnapshot()
	s.Clip = s.Clip.Combine(boundsHint, geom.ClipIntersect)
}

// quickRejectConservative reports whether bounds provably contributes
// nothing under the current snapshot's clip and alpha. NaN/infinite
// bounds are treated as quick-reject (§7).
func (c *CanvasState) quickRejectConservative(bounds geom.Rect) bool {
	if !bounds.IsFinite() || bounds.IsEmpty() {
		return true
	}
	s := c.currentSnapshot()
	if s.Alpha <= 0 {
		return true
	}
	return s.Clip.QuickRejects(bounds)
}
