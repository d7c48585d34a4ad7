// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import "github.com/gogpu/framedefer/recording"

// dispatch is FrameBuilder's total per-op dispatch table (spec §9): every
// OpID a DisplayList's Ops slice can hold, other than the RenderNodeOp
// that deferNodeOps special-cases, reaches exactly one case here; that
// includes BeginLayer, EndLayer, BeginUnclippedLayer and
// EndUnclippedLayer. Shadow, Layer, CopyToLayer, and
// CopyFromLayer never appear in a recorded DisplayList — FrameBuilder
// only ever constructs them internally — so they have no case; reaching
// the default with one of those is as much a programming error as an
// op kind this dispatch genuinely doesn't know about.
func (fb *FrameBuilder) dispatch(op recording.Op) {
	switch o := op.(type) {
	case recording.RectOp:
		fb.deferRectOp(o)
	case recording.OvalOp:
		fb.deferOvalOp(o)
	case recording.RoundRectOp:
		fb.deferRoundRectOp(o)
	case recording.ArcOp:
		fb.deferArcOp(o)
	case recording.PathOp:
		fb.deferPathOp(o)
	case recording.LinesOp:
		fb.deferLinesOp(o)
	case recording.PointsOp:
		fb.deferPointsOp(o)
	case recording.SimpleRectsOp:
		fb.deferSimpleRectsOp(o)
	case recording.BitmapOp:
		fb.deferBitmapOp(o)
	case recording.BitmapMeshOp:
		fb.deferBitmapMeshOp(o)
	case recording.BitmapRectOp:
		fb.deferBitmapRectOp(o)
	case recording.PatchOp:
		fb.deferPatchOp(o)
	case recording.TextOp:
		fb.deferTextOp(o)
	case recording.TextOnPathOp:
		fb.deferTextOnPathOp(o)
	case recording.FunctorOp:
		fb.deferFunctorOp(o)
	case recording.TextureLayerOp:
		fb.deferTextureLayerOp(o)
	case recording.CirclePropsOp:
		fb.deferOvalOp(o.Resolve())
	case recording.RoundRectPropsOp:
		fb.deferRoundRectOp(o.Resolve())
	case recording.BeginLayerOp:
		fb.deferBeginLayerOp(o)
	case recording.EndLayerOp:
		fb.deferEndLayerOp(o)
	case recording.BeginUnclippedLayerOp:
		fb.deferBeginUnclippedLayerOp(o)
	case recording.EndUnclippedLayerOp:
		fb.deferEndUnclippedLayerOp(o)
	default:
		panicf("framedefer: unhandled op kind %v in dispatch", op.ID())
	}
}

// tessBatchID picks the tessellation batch a styled/filled geometry op
// bakes into: path-effect ops need an alpha mask texture, antialiased
// ones a float-alpha vertex buffer, everything else a plain one (spec
// §4.5.6).
func tessBatchID(op recording.Op) BatchID {
	paint := op.PaintOf()
	switch {
	case paint.PathEffect.IsValid():
		return BatchAlphaMaskTexture
	case paint.AntiAlias:
		return BatchAlphaVertices
	default:
		return BatchVertices
	}
}

// textBatchID routes opaque-black text into the Text batch and every
// other color into ColorText, since most text a screen draws is black
// and keeping it in its own batch avoids forcing a color uniform change
// on the common case (spec §4.5.6).
func textBatchID(paint recording.Paint) BatchID {
	if paint.Color.IsPureBlack() {
		return BatchText
	}
	return BatchColorText
}

// hasMergeableClip reports whether state's clip is simple enough to
// fold into a merged batch. Region here is always a conservative
// rectangle (geom.Region.IsRect is unconditionally true), so every
// baked state qualifies.
func hasMergeableClip(_ *BakedOpState) bool { return true }

// colorKey packs an 8-bit-per-channel quantization of c into a single
// merge key for the mergeable Text batch (spec §4.5.6: "mergeId =
// paint.color").
func colorKey(c recording.Color) uint64 {
	r := uint64(clamp255(c.R))
	g := uint64(clamp255(c.G)) << 8
	b := uint64(clamp255(c.B)) << 16
	a := uint64(clamp255(c.A)) << 24
	return r | g | b | a
}

func clamp255(v float64) int {
	n := int(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

func (fb *FrameBuilder) deferStrokeableOp(op recording.Op, batchID BatchID, behavior StrokeBehavior) {
	state := tryStrokeableOpConstruct(fb.arena, &fb.canvas, op, behavior)
	if state == nil {
		return
	}
	fb.currentLayer().deferUnmergeableOp(state, batchID)
}

func (fb *FrameBuilder) deferArcOp(op recording.ArcOp) {
	fb.deferStrokeableOp(op, tessBatchID(op), StrokeStyled)
}

func (fb *FrameBuilder) deferRectOp(op recording.RectOp) {
	fb.deferStrokeableOp(op, tessBatchID(op), StrokeStyled)
}

func (fb *FrameBuilder) deferOvalOp(op recording.OvalOp) {
	fb.deferStrokeableOp(op, tessBatchID(op), StrokeStyled)
}

func (fb *FrameBuilder) deferRoundRectOp(op recording.RoundRectOp) {
	fb.deferStrokeableOp(op, tessBatchID(op), StrokeStyled)
}

func (fb *FrameBuilder) deferPathOp(op recording.PathOp) {
	fb.deferStrokeableOp(op, BatchBitmap, StrokeStyled)
}

func (fb *FrameBuilder) deferLinesOp(op recording.LinesOp) {
	batch := BatchVertices
	if op.PaintOf().AntiAlias {
		batch = BatchAlphaVertices
	}
	fb.deferStrokeableOp(op, batch, StrokeForced)
}

func (fb *FrameBuilder) deferPointsOp(op recording.PointsOp) {
	batch := BatchVertices
	if op.PaintOf().AntiAlias {
		batch = BatchAlphaVertices
	}
	fb.deferStrokeableOp(op, batch, StrokeForced)
}

// deferSimpleRectsOp bakes a pre-flattened set of disjoint rects (e.g. a
// region) as one vertex draw, always unmergeable (spec §4.5.6: "functor,
// texture-layer, bitmap-mesh, bitmap-rect, simple-rects: unmergeable on
// their respective batch ids").
func (fb *FrameBuilder) deferSimpleRectsOp(op recording.SimpleRectsOp) {
	if state := tryBakeOpState(fb.arena, &fb.canvas, op); state != nil {
		fb.currentLayer().deferUnmergeableOp(state, BatchVertices)
	}
}

// deferBitmapOp bakes a BitmapOp and merges it into the Bitmap batch by
// generation ID whenever its transform is simple-positive-scale, its
// paint is plain SrcOver, it isn't an alpha mask, and its clip is
// mergeable (spec §4.5.6).
func (fb *FrameBuilder) deferBitmapOp(op recording.BitmapOp) {
	state := tryBakeOpState(fb.arena, &fb.canvas, op)
	if state == nil {
		return
	}
	if state.Transform().IsSimple() && state.Transform().PositiveScale() &&
		op.PaintOf().IsSrcOver() && !op.IsAlphaMask && hasMergeableClip(state) {
		fb.currentLayer().deferMergeableOp(state, BatchBitmap, uint64(op.Generation), nil)
		return
	}
	fb.currentLayer().deferUnmergeableOp(state, BatchBitmap)
}

func (fb *FrameBuilder) deferBitmapMeshOp(op recording.BitmapMeshOp) {
	if state := tryBakeOpState(fb.arena, &fb.canvas, op); state != nil {
		fb.currentLayer().deferUnmergeableOp(state, BatchBitmap)
	}
}

func (fb *FrameBuilder) deferBitmapRectOp(op recording.BitmapRectOp) {
	if state := tryBakeOpState(fb.arena, &fb.canvas, op); state != nil {
		fb.currentLayer().deferUnmergeableOp(state, BatchBitmap)
	}
}

// deferPatchOp bakes a 9-patch draw, merging into BatchMergedPatch by
// generation ID when its transform is a pure translate, its paint is
// plain SrcOver, and its clip is mergeable; otherwise it still bakes
// into the ordinary Bitmap batch, just unmerged (spec §4.5.6).
func (fb *FrameBuilder) deferPatchOp(op recording.PatchOp) {
	state := tryBakeOpState(fb.arena, &fb.canvas, op)
	if state == nil {
		return
	}
	if state.Transform().IsPureTranslate() && op.PaintOf().IsSrcOver() && hasMergeableClip(state) {
		fb.currentLayer().deferMergeableOp(state, BatchMergedPatch, uint64(op.Generation), nil)
		return
	}
	fb.currentLayer().deferUnmergeableOp(state, BatchBitmap)
}

// deferTextOp bakes a glyph run, merging by paint color into the Text
// or ColorText batch when its transform is a pure translate, its paint
// is plain SrcOver, and its clip is mergeable (spec §4.5.6).
func (fb *FrameBuilder) deferTextOp(op recording.TextOp) {
	state := tryBakeOpState(fb.arena, &fb.canvas, op)
	if state == nil {
		return
	}
	batch := textBatchID(op.PaintOf())
	if state.Transform().IsPureTranslate() && op.PaintOf().IsSrcOver() && hasMergeableClip(state) {
		fb.currentLayer().deferMergeableOp(state, batch, colorKey(op.PaintOf().Color), nil)
		return
	}
	fb.currentLayer().deferUnmergeableOp(state, batch)
}

func (fb *FrameBuilder) deferTextOnPathOp(op recording.TextOnPathOp) {
	if state := tryBakeOpState(fb.arena, &fb.canvas, op); state != nil {
		fb.currentLayer().deferUnmergeableOp(state, textBatchID(op.PaintOf()))
	}
}

func (fb *FrameBuilder) deferFunctorOp(op recording.FunctorOp) {
	if state := tryBakeOpState(fb.arena, &fb.canvas, op); state != nil {
		fb.currentLayer().deferUnmergeableOp(state, BatchFunctor)
	}
}

func (fb *FrameBuilder) deferTextureLayerOp(op recording.TextureLayerOp) {
	if state := tryBakeOpState(fb.arena, &fb.canvas, op); state != nil {
		fb.currentLayer().deferUnmergeableOp(state, BatchTextureLayer)
	}
}
