// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import (
	"testing"

	"github.com/gogpu/framedefer/geom"
	"github.com/gogpu/framedefer/recording"
)

func rectOp(x, y, w, h float64, alpha float64) recording.RectOp {
	r := geom.RectWH(x, y, w, h)
	return recording.RectOp{
		Base: recording.Base{UnmappedBounds: r, LocalMatrix: geom.Identity(), PaintValue: recording.Paint{Color: recording.Color{A: alpha}}},
		Rect: r,
	}
}

func TestTryBakeOpStateRejectsOutOfClip(t *testing.T) {
	arena := NewArena(0)
	canvas := newTestCanvas()

	op := rectOp(1000, 1000, 10, 10, 1)
	if state := tryBakeOpState(arena, canvas, op); state != nil {
		t.Fatalf("out-of-clip op should bake to nil, got %+v", state)
	}
}

func TestTryBakeOpStateRejectsZeroAlpha(t *testing.T) {
	arena := NewArena(0)
	canvas := newTestCanvas()

	op := rectOp(10, 10, 10, 10, 0)
	if state := tryBakeOpState(arena, canvas, op); state != nil {
		t.Fatal("zero-alpha op should bake to nil")
	}
}

func TestTryBakeOpStateComposesSnapshotAlpha(t *testing.T) {
	arena := NewArena(0)
	canvas := newTestCanvas()
	canvas.save(SaveMatrixClip)
	canvas.scaleAlpha(0.5)

	op := rectOp(10, 10, 10, 10, 0.5)
	state := tryBakeOpState(arena, canvas, op)
	if state == nil {
		t.Fatal("op should bake")
	}
	if got := state.Alpha(); got != 0.25 {
		t.Fatalf("Alpha() = %v, want 0.25", got)
	}
}

func TestTryBakeOpStateAppliesTransform(t *testing.T) {
	arena := NewArena(0)
	canvas := newTestCanvas()
	canvas.save(SaveMatrixClip)
	canvas.translate(5, 7, 0)

	op := rectOp(10, 10, 10, 10, 1)
	state := tryBakeOpState(arena, canvas, op)
	if state == nil {
		t.Fatal("op should bake")
	}
	want := geom.RectWH(15, 17, 10, 10)
	if got := state.Bounds(); got != want {
		t.Fatalf("Bounds() = %v, want %v", got, want)
	}
}

func TestTryStrokeableOpConstructOutsetsForStroke(t *testing.T) {
	arena := NewArena(0)
	canvas := newTestCanvas()

	r := geom.RectWH(10, 10, 10, 10)
	op := recording.RectOp{
		Base: recording.Base{
			UnmappedBounds: r,
			LocalMatrix:    geom.Identity(),
			PaintValue:     recording.Paint{Color: recording.Color{A: 1}, Style: recording.StyleStroke, StrokeWidth: 4},
		},
		Rect: r,
	}

	state := tryStrokeableOpConstruct(arena, canvas, op, StrokeStyled)
	if state == nil {
		t.Fatal("op should bake")
	}
	want := geom.RectWH(8, 8, 14, 14)
	if got := state.Bounds(); got != want {
		t.Fatalf("Bounds() = %v, want %v (stroke should outset by half width)", got, want)
	}
}

func TestTryStrokeableOpConstructFillDoesNotOutset(t *testing.T) {
	arena := NewArena(0)
	canvas := newTestCanvas()

	r := geom.RectWH(10, 10, 10, 10)
	op := recording.RectOp{
		Base: recording.Base{
			UnmappedBounds: r,
			LocalMatrix:    geom.Identity(),
			PaintValue:     recording.Paint{Color: recording.Color{A: 1}, Style: recording.StyleFill, StrokeWidth: 4},
		},
		Rect: r,
	}

	state := tryStrokeableOpConstruct(arena, canvas, op, StrokeStyled)
	if state == nil {
		t.Fatal("op should bake")
	}
	if got := state.Bounds(); got != r {
		t.Fatalf("Bounds() = %v, want unchanged %v", got, r)
	}
}

func TestDirectConstructClipsToExplicitRect(t *testing.T) {
	arena := NewArena(0)
	clip := geom.RectWH(0, 0, 50, 50)
	dst := geom.RectWH(40, 40, 30, 30)

	op := recording.CopyToLayerOp{Base: recording.Base{PaintValue: recording.Paint{Color: recording.Color{A: 1}}}}
	state := directConstruct(arena, clip, dst, op)
	if state == nil {
		t.Fatal("overlapping dst/clip should bake")
	}
	want := geom.RectWH(40, 40, 10, 10)
	if got := state.Bounds(); got != want {
		t.Fatalf("Bounds() = %v, want %v", got, want)
	}

	outside := geom.RectWH(1000, 1000, 10, 10)
	if s := directConstruct(arena, clip, outside, op); s != nil {
		t.Fatal("disjoint dst/clip should bake to nil")
	}
}
