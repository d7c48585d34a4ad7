// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import (
	"github.com/gogpu/framedefer/geom"
	"github.com/gogpu/framedefer/recording"
)

// StrokeBehavior selects how tryStrokeableOpConstruct decides whether to
// outset an op's bounds for its stroke, per §4.3.
type StrokeBehavior uint8

const (
	// StrokeStyled outsets only if the op's paint style includes a
	// stroke (Stroke or FillAndStroke).
	StrokeStyled StrokeBehavior = iota
	// StrokeForced always outsets, used by ops (points, lines) that are
	// stroke-only regardless of paint style.
	StrokeForced
)

// BakedOpState is the per-op resolved state a LayerBuilder batches: the
// op baked against the canvas state active when it was recorded,
// carrying everything downstream batching/merging and the renderer need
// without re-walking the snapshot stack.
type BakedOpState struct {
	transform     geom.Mat4
	clippedBounds geom.Rect
	alpha         float64
	op            recording.Op
}

// Bounds returns the op's clipped, transformed bounds in layer space.
func (b *BakedOpState) Bounds() geom.Rect { return b.clippedBounds }

// Alpha returns the op's resolved alpha (snapshot alpha * paint alpha,
// or the paint alpha alone for an op built by directConstruct).
func (b *BakedOpState) Alpha() float64 { return b.alpha }

// Transform returns the transform the op was baked under.
func (b *BakedOpState) Transform() geom.Mat4 { return b.transform }

// Op returns the underlying recorded op.
func (b *BakedOpState) Op() recording.Op { return b.op }

// Color returns the op's paint color, the only attribute SoftwareRenderer
// consumes (§1 Non-goal: "rendering pixels" — real rasterization reads
// far more than this).
func (b *BakedOpState) Color() recording.Color { return b.op.PaintOf().Color }

// tryBakeOpState resolves op against canvas's current snapshot: it maps
// op's local bounds through snapshot.Transform * op.Matrix(), intersects
// with both the snapshot clip and the op's own localClip (if any), and
// resolves alpha as snapshot.Alpha * op.PaintOf().Alpha(). An empty
// clippedBounds after intersection is a quick reject: no BakedOpState is
// produced and the op contributes nothing further (spec §3).
func tryBakeOpState(arena *Arena, canvas *CanvasState, op recording.Op) *BakedOpState {
	snap := canvas.currentSnapshot()
	transform := snap.Transform.Multiply(op.Matrix())

	bounds := transform.MapRect(op.Bounds())
	if clip := op.Clip(); clip != nil {
		bounds = bounds.Intersect(transform.MapRect(*clip))
	}
	bounds = bounds.Intersect(snap.Clip.Bounds)

	alpha := snap.Alpha * op.PaintOf().Alpha()
	if bounds.IsEmpty() || !bounds.IsFinite() || alpha <= 0 {
		return nil
	}

	state := Create[BakedOpState](arena)
	*state = BakedOpState{transform: transform, clippedBounds: bounds, alpha: alpha, op: op}
	return state
}

// tryStrokeableOpConstruct bakes op exactly as tryBakeOpState does, but
// first outsets its local bounds by half the paint's stroke width when
// behavior calls for it, so a stroked shape's clip/reject decisions
// account for the stroke extending past the fill geometry.
func tryStrokeableOpConstruct(arena *Arena, canvas *CanvasState, op recording.Op, behavior StrokeBehavior) *BakedOpState {
	paint := op.PaintOf()
	shouldOutset := behavior == StrokeForced || paint.Style.HasStroke()
	if !shouldOutset || paint.StrokeWidth <= 0 {
		return tryBakeOpState(arena, canvas, op)
	}

	half := paint.StrokeWidth / 2
	outset := stroked{op, half}
	return tryBakeOpState(arena, canvas, outset)
}

// stroked wraps a recording.Op, outsetting its reported bounds by half a
// stroke width without mutating the original op.
type stroked struct {
	recording.Op
	half float64
}

func (s stroked) Bounds() geom.Rect { return s.Op.Bounds().Outset(s.half) }

// tryShadowOpConstruct bakes a ShadowOp using snapshot rather than
// canvas's current top: defer3dChildren calls this with the snapshot
// active at the caster's draw position, which may differ from the
// canvas's top-of-stack snapshot by the time all of a chunk's children
// have been visited (spec §4.5.3).
func tryShadowOpConstruct(arena *Arena, snapshot Snapshot, shadowOp recording.ShadowOp) *BakedOpState {
	transform := snapshot.Transform.Multiply(shadowOp.Matrix())
	bounds := transform.MapRect(shadowOp.Bounds()).Intersect(snapshot.Clip.Bounds)
	alpha := snapshot.Alpha * shadowOp.PaintOf().Alpha()
	if bounds.IsEmpty() || alpha <= 0 {
		return nil
	}

	state := Create[BakedOpState](arena)
	*state = BakedOpState{transform: transform, clippedBounds: bounds, alpha: alpha, op: shadowOp}
	return state
}

// directConstruct bakes op against an explicit clip and destination
// rect rather than the canvas's snapshot stack, used for the
// CopyToLayer and CopyFromLayer ops of an unclipped save-layer, whose
// destination rect the caller has already resolved to layer space. Only
// an empty clipped rect rejects the op; the paint's alpha is carried
// as is and never rejects it.
func directConstruct(arena *Arena, clip geom.Rect, dstRect geom.Rect, op recording.Op) *BakedOpState {
	bounds := dstRect.Intersect(clip)
	if bounds.IsEmpty() {
		return nil
	}
	alpha := op.PaintOf().Alpha()

	state := Create[BakedOpState](arena)
	*state = BakedOpState{transform: op.Matrix(), clippedBounds: bounds, alpha: alpha, op: op}
	return state
}
