// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import (
	"testing"

	"github.com/gogpu/framedefer/geom"
	"github.com/gogpu/framedefer/path"
	"github.com/gogpu/framedefer/recording"
)

// TestScenarioS1 — two overlapping, identically-styled rects stay in one
// Vertices batch, in declaration order (spec.md §8, S1).
func TestScenarioS1(t *testing.T) {
	dl := recording.NewDisplayList()
	r1 := geom.RectWH(0, 0, 50, 50)
	r2 := geom.NewRect(25, 25, 75, 75)
	dl.Append(recording.RectOp{Base: recording.Base{UnmappedBounds: r1, LocalMatrix: geom.Identity(), PaintValue: recording.Paint{Color: recording.Color{A: 1}}}, Rect: r1})
	dl.Append(recording.RectOp{Base: recording.Base{UnmappedBounds: r2, LocalMatrix: geom.Identity(), PaintValue: recording.Paint{Color: recording.Color{A: 1}}}, Rect: r2})
	dl.CloseChunk(false, -1)

	p := recording.DefaultProperties()
	p.Width, p.Height = 100, 100
	root := &recording.RenderNode{Name: "root", Properties: p, DisplayList: dl}

	fb := NewFrameBuilder(nil, geom.RectWH(0, 0, 100, 100), 100, 100, []*recording.RenderNode{root}, geom.Vec3{})

	batches := fb.LayerBuilders()[0].Batches()
	if len(batches) != 1 {
		t.Fatalf("len(Batches()) = %d, want 1", len(batches))
	}
	if batches[0].ID != BatchVertices {
		t.Fatalf("batch ID = %v, want Vertices", batches[0].ID)
	}
	if got := len(batches[0].Ops); got != 2 {
		t.Fatalf("len(Ops) = %d, want 2", got)
	}
	if got := batches[0].Ops[0].Bounds(); got != r1 {
		t.Fatalf("Ops[0].Bounds() = %v, want %v", got, r1)
	}
	if got := batches[0].Ops[1].Bounds(); got != r2 {
		t.Fatalf("Ops[1].Bounds() = %v, want %v", got, r2)
	}
}

// TestScenarioS2 — same as S1 but the second op is anti-aliased: the
// differing batch id plus overlapping bounds forces a new batch, order
// preserved (spec.md §8, S2).
func TestScenarioS2(t *testing.T) {
	dl := recording.NewDisplayList()
	r1 := geom.RectWH(0, 0, 50, 50)
	r2 := geom.NewRect(25, 25, 75, 75)
	dl.Append(recording.RectOp{Base: recording.Base{UnmappedBounds: r1, LocalMatrix: geom.Identity(), PaintValue: recording.Paint{Color: recording.Color{A: 1}}}, Rect: r1})
	dl.Append(recording.RectOp{Base: recording.Base{UnmappedBounds: r2, LocalMatrix: geom.Identity(), PaintValue: recording.Paint{Color: recording.Color{A: 1}, AntiAlias: true}}, Rect: r2})
	dl.CloseChunk(false, -1)

	p := recording.DefaultProperties()
	p.Width, p.Height = 100, 100
	root := &recording.RenderNode{Name: "root", Properties: p, DisplayList: dl}

	fb := NewFrameBuilder(nil, geom.RectWH(0, 0, 100, 100), 100, 100, []*recording.RenderNode{root}, geom.Vec3{})

	batches := fb.LayerBuilders()[0].Batches()
	if len(batches) != 2 {
		t.Fatalf("len(Batches()) = %d, want 2", len(batches))
	}
	if batches[0].ID != BatchVertices || batches[1].ID != BatchAlphaVertices {
		t.Fatalf("batch IDs = [%v, %v], want [Vertices, AlphaVertices]", batches[0].ID, batches[1].ID)
	}
}

// TestScenarioS3 — three pure-translation, src-over bitmap ops with
// generations A, A, B and non-overlapping bounds: the two A's coalesce by
// generation, B stays separate (spec.md §8, S3).
func TestScenarioS3(t *testing.T) {
	genA, genB := recording.GenerationID(7), recording.GenerationID(9)
	mk := func(x, y float64, gen recording.GenerationID) recording.BitmapOp {
		r := geom.RectWH(x, y, 10, 10)
		return recording.BitmapOp{
			Base:       recording.Base{UnmappedBounds: r, LocalMatrix: geom.Identity(), PaintValue: recording.Paint{Color: recording.Color{A: 1}}},
			Image:      recording.ImageRef(1),
			Generation: gen,
			SrcRect:    r,
			DstRect:    r,
		}
	}

	dl := recording.NewDisplayList()
	dl.Append(mk(0, 0, genA))
	dl.Append(mk(20, 20, genA))
	dl.Append(mk(40, 40, genB))
	dl.CloseChunk(false, -1)

	p := recording.DefaultProperties()
	p.Width, p.Height = 100, 100
	root := &recording.RenderNode{Name: "root", Properties: p, DisplayList: dl}

	fb := NewFrameBuilder(nil, geom.RectWH(0, 0, 100, 100), 100, 100, []*recording.RenderNode{root}, geom.Vec3{})

	batches := fb.LayerBuilders()[0].Batches()
	totalOps := 0
	mergedFound := false
	for _, b := range batches {
		if b.ID != BatchBitmap {
			t.Fatalf("unexpected batch ID %v, want all Bitmap", b.ID)
		}
		totalOps += len(b.Ops)
		if len(b.Ops) == 2 {
			mergedFound = true
		}
	}
	if totalOps != 3 {
		t.Fatalf("total baked ops = %d, want 3", totalOps)
	}
	if !mergedFound {
		t.Fatal("expected the two generation-A bitmaps to merge into one batch")
	}
}

// shadowCaster builds a leaf node with a valid outline so deferShadow
// actually bakes a ShadowOp for it.
func shadowCaster(name string, left, top, width, height, z float64) *recording.RenderNode {
	n := leafNode(name, left, top, width, height)
	n.Properties.TranslationZ = z
	n.Properties.Outline.Alpha = 1
	outline := path.New(4)
	outline.Rect(geom.RectWH(0, 0, width, height))
	n.Properties.Outline.Path = outline
	return n
}

// TestScenarioS4 — one z=-3 child and one z=+5 child under a
// reorder-enabled chunk: the negative phase never casts a shadow, only
// the positive phase does (spec.md §8, S4).
func TestScenarioS4(t *testing.T) {
	childNeg := shadowCaster("neg", 0, 0, 10, 10, -3)
	childPos := shadowCaster("pos", 50, 50, 10, 10, 5)

	dl := recording.NewDisplayList()
	dl.AppendChild(recording.RenderNodeOp{Base: recording.Base{LocalMatrix: geom.Identity()}, Node: 0})
	dl.AppendChild(recording.RenderNodeOp{Base: recording.Base{LocalMatrix: geom.Identity()}, Node: 1})
	dl.CloseChunk(true, -1)

	p := recording.DefaultProperties()
	p.Width, p.Height = 100, 100
	root := &recording.RenderNode{Name: "root", Properties: p, DisplayList: dl, Children: []*recording.RenderNode{childNeg, childPos}}

	fb := NewFrameBuilder(nil, geom.RectWH(0, 0, 100, 100), 100, 100, []*recording.RenderNode{root}, geom.Vec3{})

	batches := fb.LayerBuilders()[0].Batches()
	wantIDs := []BatchID{BatchVertices, BatchShadow, BatchVertices}
	if len(batches) != len(wantIDs) {
		t.Fatalf("len(Batches()) = %d, want %d (draw(-3), shadow(+5), draw(+5))", len(batches), len(wantIDs))
	}
	for i, want := range wantIDs {
		if batches[i].ID != want {
			t.Fatalf("batches[%d].ID = %v, want %v", i, batches[i].ID, want)
		}
	}
}

// TestScenarioS5 — two positive-z children within 0.1 of each other cast
// both shadows before either body draws (spec.md §8, S5).
func TestScenarioS5(t *testing.T) {
	childA := shadowCaster("a", 0, 0, 10, 10, 2.0)
	childB := shadowCaster("b", 50, 50, 10, 10, 2.05)

	dl := recording.NewDisplayList()
	dl.AppendChild(recording.RenderNodeOp{Base: recording.Base{LocalMatrix: geom.Identity()}, Node: 0})
	dl.AppendChild(recording.RenderNodeOp{Base: recording.Base{LocalMatrix: geom.Identity()}, Node: 1})
	dl.CloseChunk(true, -1)

	p := recording.DefaultProperties()
	p.Width, p.Height = 100, 100
	root := &recording.RenderNode{Name: "root", Properties: p, DisplayList: dl, Children: []*recording.RenderNode{childA, childB}}

	fb := NewFrameBuilder(nil, geom.RectWH(0, 0, 100, 100), 100, 100, []*recording.RenderNode{root}, geom.Vec3{})

	batches := fb.LayerBuilders()[0].Batches()
	if len(batches) != 3 {
		t.Fatalf("len(Batches()) = %d, want 3 (shadow, shadow, draws)", len(batches))
	}
	if batches[0].ID != BatchShadow || batches[1].ID != BatchShadow {
		t.Fatalf("batches[0:2].ID = [%v, %v], want [Shadow, Shadow]", batches[0].ID, batches[1].ID)
	}
	if batches[2].ID != BatchVertices || len(batches[2].Ops) != 2 {
		t.Fatalf("batches[2] = %+v, want Vertices batch with 2 ops", batches[2])
	}
}

// TestScenarioS6 — an unclipped save-layer emits CopyToLayer, a clear,
// the enclosed draw, then CopyFromLayer, all in the primary builder
// (spec.md §8, S6).
func TestScenarioS6(t *testing.T) {
	bounds := geom.NewRect(10, 10, 20, 20)
	rect := geom.NewRect(12, 12, 18, 18)

	dl := recording.NewDisplayList()
	dl.Append(recording.BeginUnclippedLayerOp{
		Base:        recording.Base{UnmappedBounds: bounds, LocalMatrix: geom.Identity()},
		LayerBounds: bounds,
	})
	dl.Append(recording.RectOp{
		Base: recording.Base{UnmappedBounds: rect, LocalMatrix: geom.Identity(), PaintValue: recording.Paint{Color: recording.Color{A: 1}}},
		Rect: rect,
	})
	dl.Append(recording.EndUnclippedLayerOp{})
	dl.CloseChunk(false, -1)

	p := recording.DefaultProperties()
	p.Width, p.Height = 40, 40
	root := &recording.RenderNode{Name: "root", Properties: p, DisplayList: dl}

	fb := NewFrameBuilder(nil, geom.RectWH(0, 0, 40, 40), 40, 40, []*recording.RenderNode{root}, geom.Vec3{})

	lb := fb.LayerBuilders()[0]
	batches := lb.Batches()
	wantIDs := []BatchID{BatchCopyToLayer, BatchVertices, BatchCopyFromLayer}
	if len(batches) != len(wantIDs) {
		t.Fatalf("len(Batches()) = %d, want %d (CopyToLayer, draw, CopyFromLayer)", len(batches), len(wantIDs))
	}
	for i, want := range wantIDs {
		if batches[i].ID != want {
			t.Fatalf("batches[%d].ID = %v, want %v", i, batches[i].ID, want)
		}
	}
	if lb.ClearRect != bounds {
		t.Fatalf("ClearRect = %v, want %v", lb.ClearRect, bounds)
	}
}
