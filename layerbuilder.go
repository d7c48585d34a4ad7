// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import (
	"github.com/gogpu/framedefer/geom"
	"github.com/gogpu/framedefer/recording"
)

// BatchID is the closed batch-id enumeration every baked op is assigned
// to, per §4.4.
type BatchID uint8

const (
	BatchBitmap BatchID = iota
	BatchMergedPatch
	BatchPatch
	BatchAlphaMaskTexture
	BatchText
	BatchColorText
	BatchVertices
	BatchAlphaVertices
	BatchShadow
	BatchFunctor
	BatchTextureLayer
	BatchCopyToLayer
	BatchCopyFromLayer
)

var batchIDNames = [...]string{
	BatchBitmap:           "Bitmap",
	BatchMergedPatch:       "MergedPatch",
	BatchPatch:             "Patch",
	BatchAlphaMaskTexture:  "AlphaMaskTexture",
	BatchText:              "Text",
	BatchColorText:         "ColorText",
	BatchVertices:          "Vertices",
	BatchAlphaVertices:     "AlphaVertices",
	BatchShadow:            "Shadow",
	BatchFunctor:           "Functor",
	BatchTextureLayer:      "TextureLayer",
	BatchCopyToLayer:       "CopyToLayer",
	BatchCopyFromLayer:     "CopyFromLayer",
}

func (id BatchID) String() string {
	if int(id) < len(batchIDNames) {
		return batchIDNames[id]
	}
	return "BatchID(unknown)"
}

// Batch is a contiguous run of BakedOpStates a downstream renderer can
// issue together. mergeKey distinguishes batches of the same BatchID
// that must not merge with each other (e.g. two bitmap batches drawing
// different generations of a bitmap).
type Batch struct {
	ID       BatchID
	mergeKey uint64
	Ops      []*BakedOpState
	bounds   geom.Rect // union of every op's bounds, for overlap tests
}

func (b *Batch) absorb(state *BakedOpState) {
	b.Ops = append(b.Ops, state)
	b.bounds = b.bounds.Union(state.Bounds())
}

// unclippedSaveLayer is one entry of activeUnclippedSaveLayers: the
// not-yet-deferred copy-back op for a BeginUnclippedLayerOp that has not
// seen its matching EndUnclippedLayerOp.
type unclippedSaveLayer struct {
	state *BakedOpState
}

// LayerBuilder accumulates the batched draw ops for one off-screen
// target: either the primary framebuffer (layerBuilders[0]) or a
// secondary layer created for a HW layer or a save-layer.
type LayerBuilder struct {
	Width, Height int
	RepaintRect   geom.Rect

	// BeginLayerOp is set when this builder was created to satisfy a
	// clipped save-layer; nil for the primary framebuffer and for
	// unclipped save-layers (those draw directly into their parent via
	// copy-to/copy-from instead of a dedicated builder).
	BeginLayerOp *recording.BeginLayerOp

	// RenderNode is set when this builder backs a persistent HW layer.
	RenderNode *recording.RenderNode

	batches []Batch

	// ClearRect is non-empty when deferLayerClear was called; the
	// renderer clears it before issuing batches.
	ClearRect geom.Rect

	activeUnclippedSaveLayers []unclippedSaveLayer

	ViewportClip geom.Rect

	// OffscreenBuffer is filled in by the renderer at draw time; the
	// engine only ever allocates the cell (spec §4.5.5).
	OffscreenBuffer *recording.LayerHandle
}

// newLayerBuilder creates a LayerBuilder for a width x height off-screen
// target clipped to viewportClip.
func newLayerBuilder(width, height int, viewportClip geom.Rect) *LayerBuilder {
	return &LayerBuilder{Width: width, Height: height, ViewportClip: viewportClip}
}

// Batches returns the builder's accumulated batches in emission order.
func (lb *LayerBuilder) Batches() []Batch { return lb.batches }

// deferUnmergeableOp appends state to the most recent batch with matching
// id only if no intervening batch with a different id exists whose
// bounds overlap state's, scanning backward the same way deferMergeableOp
// does; otherwise it starts a new batch (spec.md:89). Unmergeable ops
// within the joined batch are never merge-predicate-tested against each
// other — they just accumulate in submission order.
func (lb *LayerBuilder) deferUnmergeableOp(state *BakedOpState, id BatchID) {
	bounds := state.Bounds()
	for i := len(lb.batches) - 1; i >= 0; i-- {
		b := &lb.batches[i]
		if b.ID == id {
			b.absorb(state)
			return
		}
		if b.bounds.Overlaps(bounds) {
			break
		}
	}
	nb := Batch{ID: id}
	nb.absorb(state)
	lb.batches = append(lb.batches, nb)
}

// deferMergeableOp scans backward through existing batches of id/mergeKey
// for one state can join, stopping the search as soon as an intervening
// batch's bounds overlap state's bounds — merging past an overlapping
// batch would draw state before something that must visually precede
// it, violating the overlap-preserving batching invariant (§4.4). When
// no compatible batch is found (or the scan is blocked), a new batch is
// appended.
func (lb *LayerBuilder) deferMergeableOp(state *BakedOpState, id BatchID, mergeKey uint64, canMerge func(*BakedOpState, *BakedOpState) bool) {
	bounds := state.Bounds()
	for i := len(lb.batches) - 1; i >= 0; i-- {
		b := &lb.batches[i]
		if b.ID == id && b.mergeKey == mergeKey {
			if canMerge == nil || canMerge(b.Ops[len(b.Ops)-1], state) {
				b.absorb(state)
				return
			}
		}
		if b.bounds.Overlaps(bounds) {
			break
		}
	}
	nb := Batch{ID: id, mergeKey: mergeKey}
	nb.absorb(state)
	lb.batches = append(lb.batches, nb)
}

// deferLayerClear records that rect must be cleared before this
// builder's batches are issued, used by an unclipped save-layer to clear
// the destination rect it has just copied out.
func (lb *LayerBuilder) deferLayerClear(rect geom.Rect) {
	lb.ClearRect = lb.ClearRect.Union(rect)
}

// deferShadow appends a shadow bake as its own batch, always — shadows
// never merge with each other or coalesce with an adjacent shadow batch,
// since each has a distinct caster path and z (§4.4: "deferShadow (never
// mergeable)").
func (lb *LayerBuilder) deferShadow(state *BakedOpState) {
	nb := Batch{ID: BatchShadow}
	nb.absorb(state)
	lb.batches = append(lb.batches, nb)
}

// clear resets the builder to empty, discarding every batch and the
// pending clear rect. Used when a finished layer's LayerOp quick-rejects
// (§7): the layer's content was built for nothing, but building it
// anyway and discarding it here is the original's own documented
// behavior (DESIGN.md open-question resolution), not a bug this
// repository works around.
func (lb *LayerBuilder) clear() {
	lb.batches = nil
	lb.ClearRect = geom.Rect{}
}

// pushUnclippedSaveLayer records the already-baked copy-back op for a
// new in-progress unclipped save-layer. state may be nil when the
// copy-back quick-rejected; popUnclippedSaveLayer returns nil in that
// case and the caller simply has nothing left to defer.
func (lb *LayerBuilder) pushUnclippedSaveLayer(state *BakedOpState) {
	lb.activeUnclippedSaveLayers = append(lb.activeUnclippedSaveLayers, unclippedSaveLayer{state: state})
}

// popUnclippedSaveLayer pops the most recently pushed unclipped
// save-layer's copy-back state. Panics if none is active — an
// EndUnclippedLayerOp with no matching Begin is a fatal programming
// error (§5).
func (lb *LayerBuilder) popUnclippedSaveLayer() *BakedOpState {
	n := len(lb.activeUnclippedSaveLayers)
	if n == 0 {
		panicf("framedefer: EndUnclippedLayerOp with no active BeginUnclippedLayerOp")
	}
	top := lb.activeUnclippedSaveLayers[n-1]
	lb.activeUnclippedSaveLayers = lb.activeUnclippedSaveLayers[:n-1]
	return top.state
}
