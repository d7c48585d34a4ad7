// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framedefer

import (
	"log/slog"
	"sort"

	"github.com/gogpu/framedefer/geom"
	"github.com/gogpu/framedefer/path"
	"github.com/gogpu/framedefer/recording"
)

// FrameBuilder walks a tree of RenderNodes once and produces a set of
// LayerBuilders, each holding the batched, baked ops a renderer can
// issue without re-deriving any canvas state (spec §4.5). Building
// happens synchronously inside NewFrameBuilder: there is no separate
// "build" step to call afterward.
type FrameBuilder struct {
	arena     *Arena
	canvas    CanvasState
	resources *recording.ResourcePool
	logger    *slog.Logger

	layerBuilders []*LayerBuilder
	layerStack    []int // indices into layerBuilders; never empty mid-build
}

// NewFrameBuilder builds one frame's deferred op list against rootNodes,
// clipped to clip, with layerUpdateQueue's entries repainted first in
// reverse order (spec §4.5 steps 1-4). viewportWidth/viewportHeight size
// the primary (index 0) LayerBuilder.
func NewFrameBuilder(
	layerUpdateQueue recording.LayerUpdateQueue,
	clip geom.Rect,
	viewportWidth, viewportHeight int,
	rootNodes []*recording.RenderNode,
	lightCenter geom.Vec3,
	opts ...Option,
) *FrameBuilder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := Logger()
	if o.logger != nil {
		logger = o.logger
	}

	fb := &FrameBuilder{
		arena:     NewArena(o.arenaChunkSize),
		resources: recording.NewResourcePool(),
		logger:    logger,
	}

	primary := newLayerBuilder(viewportWidth, viewportHeight, clip)
	primary.OffscreenBuffer = &recording.LayerHandle{}
	fb.layerBuilders = append(fb.layerBuilders, primary)
	fb.layerStack = append(fb.layerStack, 0)
	fb.canvas.initializeSaveStack(clip, lightCenter)

	for i := len(layerUpdateQueue) - 1; i >= 0; i-- {
		entry := layerUpdateQueue[i]
		node := entry.RenderNode
		layerLight := mapLightCenterIntoLayer(node, fb.canvas.currentSnapshot().RelativeLightCenter)
		fb.saveForLayer(int(node.Properties.Width), int(node.Properties.Height), 0, 0, entry.DamageRect, layerLight, nil, node)
		if node.HasDisplayList() {
			fb.deferNodeOps(node)
		}
		fb.restoreForLayer()
	}

	for _, node := range rootNodes {
		if node.Properties.NothingToDraw() {
			continue
		}
		count := fb.canvas.save(SaveMatrixClip)
		fb.deferNodePropsAndOps(node)
		fb.canvas.restoreToCount(count)
	}

	return fb
}

// LayerBuilders returns every LayerBuilder this build produced, index 0
// being the primary framebuffer. Secondary builders appear in the order
// they were opened.
func (fb *FrameBuilder) LayerBuilders() []*LayerBuilder { return fb.layerBuilders }

// Resources returns the pool any derived resources built during this
// frame (currently: shadow caster paths) were stashed in, so a renderer
// can resolve the PathRefs a ShadowOp carries.
func (fb *FrameBuilder) Resources() *recording.ResourcePool { return fb.resources }

func (fb *FrameBuilder) currentLayer() *LayerBuilder {
	return fb.layerBuilders[fb.layerStack[len(fb.layerStack)-1]]
}

func mapLightCenterIntoLayer(node *recording.RenderNode, lightCenter geom.Vec3) geom.Vec3 {
	x, y, z := node.Properties.InverseTransformInWindow.MapPoint3D(lightCenter.X, lightCenter.Y, lightCenter.Z)
	return geom.Vec3{X: x, Y: y, Z: z}
}

// saveForLayer pushes a fresh Snapshot whose transform is a pure
// translate by (translateX, translateY) — replacing, not composing
// with, the parent transform — and opens a new LayerBuilder sized
// width x height, clipped to repaintRect (spec §4.5.5).
func (fb *FrameBuilder) saveForLayer(
	width, height int,
	translateX, translateY float64,
	repaintRect geom.Rect,
	lightCenter geom.Vec3,
	beginLayerOp *recording.BeginLayerOp,
	node *recording.RenderNode,
) {
	fb.canvas.save(SaveMatrixClip)
	s := fb.canvas.writableSnapshot()
	s.RoundRectClipActive = false
	s.RelativeLightCenter = lightCenter
	s.Transform = geom.Translate(translateX, translateY, 0)
	s.Clip = geom.NewRegion(repaintRect)
	s.RenderTargetClip = repaintRect

	fb.layerStack = append(fb.layerStack, len(fb.layerBuilders))
	lb := newLayerBuilder(width, height, repaintRect)
	lb.BeginLayerOp = beginLayerOp
	lb.RenderNode = node
	lb.OffscreenBuffer = &recording.LayerHandle{}
	fb.layerBuilders = append(fb.layerBuilders, lb)
}

// restoreForLayer pops both the canvas save stack and the layer stack
// pushed by the matching saveForLayer.
func (fb *FrameBuilder) restoreForLayer() {
	fb.canvas.restoreToCount(fb.canvas.depth() - 1)
	if len(fb.layerStack) <= 1 {
		panicf("framedefer: restoreForLayer with no active saveForLayer")
	}
	fb.layerStack = fb.layerStack[:len(fb.layerStack)-1]
}

// deferNodePropsAndOps applies node's properties to the canvas state
// (translate, matrix, alpha, clip) and then dispatches its content,
// exactly mirroring the property-application order of the original
// (spec §4.5.1): translate, then static-or-animation matrix, then the
// transform matrix (preferring a plain translate when it is one), then
// alpha, then clip, then reveal-clip/outline, then the quick-reject
// gate, then the three-way HW-layer / save-layer / direct dispatch.
func (fb *FrameBuilder) deferNodePropsAndOps(node *recording.RenderNode) {
	p := node.Properties
	if p.NothingToDraw() {
		return
	}

	if p.Left != 0 || p.Top != 0 {
		fb.canvas.translate(p.Left, p.Top, 0)
	}
	if p.StaticMatrix != nil {
		fb.canvas.concatMatrix(*p.StaticMatrix)
	} else if p.AnimationMatrix != nil {
		fb.canvas.concatMatrix(*p.AnimationMatrix)
	}
	if p.TransformMatrix != nil {
		if p.TransformMatrix.IsPureTranslate() {
			tx, ty, tz := p.TransformMatrix.MapPoint3D(0, 0, 0)
			fb.canvas.translate(tx, ty, tz)
		} else {
			fb.canvas.concatMatrix(*p.TransformMatrix)
		}
	}

	width, height := p.Width, p.Height
	isLayer := p.EffectiveLayerType() != recording.LayerNone
	clipToBounds := p.ClipToBounds
	var saveLayerBounds geom.Rect

	if p.Alpha < 1 {
		if isLayer {
			clipToBounds = false
		}
		if isLayer || !p.HasOverlappingRendering {
			fb.canvas.scaleAlpha(p.Alpha)
		} else {
			saveLayerBounds = geom.RectWH(0, 0, width, height)
			clipToBounds = false
			fb.logger.Debug("alpha promoted to saveLayer", "node", node.Name, "alpha", p.Alpha, "width", width, "height", height)
		}
	}

	if clipToBounds {
		fb.canvas.clipRect(geom.RectWH(0, 0, width, height), geom.ClipIntersect)
	}

	if p.RevealClip.Active {
		fb.canvas.setClippingRoundRect(p.RevealClip.Bounds, p.RevealClip.Radius)
	} else if p.Outline.ShouldClip {
		bounds := geom.RectWH(0, 0, width, height)
		if p.Outline.Path != nil {
			bounds = p.Outline.Path.BoundingBox()
		}
		fb.canvas.setClippingOutline(bounds)
	}

	worldBounds := fb.canvas.currentSnapshot().Transform.MapRect(geom.RectWH(0, 0, width, height))
	if fb.canvas.quickRejectConservative(worldBounds) {
		return
	}

	switch {
	case node.HasLayer():
		layerOp := recording.LayerOp{
			Base:  recording.Base{UnmappedBounds: geom.RectWH(0, 0, width, height), LocalMatrix: geom.Identity(), PaintValue: recording.Paint{Color: recording.Color{A: 1}}},
			Layer: node.Layer,
		}
		if state := tryBakeOpState(fb.arena, &fb.canvas, layerOp); state != nil {
			fb.currentLayer().deferUnmergeableOp(state, BatchBitmap)
		}
	case !saveLayerBounds.IsEmpty():
		beginOp := recording.BeginLayerOp{
			Base:        recording.Base{UnmappedBounds: saveLayerBounds, LocalMatrix: geom.Identity()},
			LayerBounds: saveLayerBounds,
			Alpha:       p.Alpha,
		}
		fb.deferBeginLayerOp(beginOp)
		fb.deferNodeOps(node)
		fb.deferEndLayerOp(recording.EndLayerOp{})
	default:
		fb.deferNodeOps(node)
	}
}

// deferNodeOps walks node's DisplayList chunk by chunk, interleaving
// negative-z children, the chunk's own ops (with background projection
// fired at its ProjectionReceiveIndex), and positive-z children (spec
// §4.5.2/§4.5.3).
func (fb *FrameBuilder) deferNodeOps(node *recording.RenderNode) {
	dl := node.DisplayList
	if dl == nil {
		return
	}
	for _, chunk := range dl.Chunks {
		zNodes := buildZSortedChildList(dl, chunk, node)
		fb.defer3dChildren(childrenNegative, zNodes)

		for opIndex := chunk.BeginOp; opIndex < chunk.EndOp; opIndex++ {
			op := dl.Ops[opIndex]
			if rnOp, ok := op.(recording.RenderNodeOp); ok {
				if !childSkipped(dl, chunk, rnOp.Node) {
					fb.deferRenderNodeOpImpl(&rnOp, node.Children[rnOp.Node])
				}
			} else {
				fb.dispatch(op)
			}
			if chunk.HasProjectionReceiver() && opIndex == chunk.ProjectionReceiveIndex {
				if rnOp, ok := op.(recording.RenderNodeOp); ok {
					fb.deferProjectedChildren(node, rnOp)
				}
			}
		}

		fb.defer3dChildren(childrenPositive, zNodes)
	}
}

// childSkipped reports whether the RenderNodeOp referencing nodeIdx was
// flagged skip-in-order-draw by buildZSortedChildList — it is being
// drawn out of order via defer3dChildren instead of at its natural
// position in the op stream.
func childSkipped(dl *recording.DisplayList, chunk recording.Chunk, nodeIdx int) bool {
	for i := chunk.BeginChild; i < chunk.EndChild; i++ {
		if dl.Children[i].Node == nodeIdx {
			return dl.Children[i].SkipInOrderDraw
		}
	}
	return false
}

type childrenSelectMode uint8

const (
	childrenNegative childrenSelectMode = iota
	childrenPositive
)

type zNode struct {
	z       float64
	childOp *recording.RenderNodeOp
	child   *recording.RenderNode
}

// buildZSortedChildList collects chunk's reorder-eligible children
// (non-zero TranslationZ, ReorderChildren set) sorted by ascending z,
// flagging each as SkipInOrderDraw so deferNodeOps's main op loop skips
// it (spec §4.5.2).
func buildZSortedChildList(dl *recording.DisplayList, chunk recording.Chunk, node *recording.RenderNode) []zNode {
	if chunk.BeginChild == chunk.EndChild {
		return nil
	}
	var zNodes []zNode
	for i := chunk.BeginChild; i < chunk.EndChild; i++ {
		childOp := &dl.Children[i]
		child := node.Children[childOp.Node]
		childZ := child.Properties.TranslationZ
		if childZ != 0 && chunk.ReorderChildren {
			childOp.SkipInOrderDraw = true
			zNodes = append(zNodes, zNode{z: childZ, childOp: childOp, child: child})
		} else if !child.Properties.ProjectBackwards {
			childOp.SkipInOrderDraw = false
		}
	}
	sort.SliceStable(zNodes, func(i, j int) bool { return zNodes[i].z < zNodes[j].z })
	return zNodes
}

// defer3dChildren draws mode's half of zNodes, interleaving each
// positive-z caster's shadow immediately before it once casters within
// 0.1 of each other's z have all had their shadows drawn (spec §4.5.3):
// the negative pass draws no shadows at all, only negative-z children.
func (fb *FrameBuilder) defer3dChildren(mode childrenSelectMode, zNodes []zNode) {
	size := len(zNodes)
	if size == 0 {
		return
	}
	if mode == childrenNegative && zNodes[0].z > 0 {
		return
	}
	if mode == childrenPositive && zNodes[size-1].z < 0 {
		return
	}

	nonNegIndex := size
	for i, n := range zNodes {
		if n.z >= 0 {
			nonNegIndex = i
			break
		}
	}

	var drawIndex, shadowIndex, endIndex int
	if mode == childrenNegative {
		drawIndex, endIndex = 0, nonNegIndex
		shadowIndex = endIndex // negative pass draws no shadows
	} else {
		drawIndex, endIndex = nonNegIndex, size
		shadowIndex = drawIndex
	}

	lastCasterZ := 0.0
	for shadowIndex < endIndex || drawIndex < endIndex {
		if shadowIndex < endIndex {
			caster := zNodes[shadowIndex]
			if shadowIndex == drawIndex || caster.z-lastCasterZ < 0.1 {
				fb.deferShadow(caster.child)
				lastCasterZ = caster.z
				shadowIndex++
				continue
			}
		}
		child := zNodes[drawIndex]
		fb.deferRenderNodeOpImpl(child.childOp, child.child)
		drawIndex++
	}
}

// deferShadow bakes caster's ambient+spot shadow, clipping its outline
// path by its reveal-clip and clip-to-bounds rect when present (spec
// §4.5.3). The intersected caster path is stashed in the frame's
// resource pool so the resulting ShadowOp can carry it by reference.
func (fb *FrameBuilder) deferShadow(caster *recording.RenderNode) {
	p := caster.Properties
	if p.Alpha <= 0 || p.Outline.Alpha <= 0 || p.Outline.Path == nil || p.Outline.Path.IsEmpty() || p.ScaleX == 0 || p.ScaleY == 0 {
		return
	}

	casterPath := p.Outline.Path
	if p.RevealClip.Active {
		if p.RevealClip.Bounds.IsEmpty() {
			return
		}
		reveal := path.New(8)
		reveal.RoundRect(p.RevealClip.Bounds, p.RevealClip.Radius)
		casterPath = path.Intersect(casterPath, reveal)
	}
	if p.ClipToBounds {
		bounds := path.New(4)
		bounds.Rect(geom.RectWH(0, 0, p.Width, p.Height))
		casterPath = path.Intersect(casterPath, bounds)
	}
	if casterPath.IsEmpty() {
		return
	}

	// The outline is in the caster's own space; place it the same way
	// deferNodePropsAndOps places the caster's content.
	placement := geom.Translate(p.Left, p.Top, 0)
	if p.StaticMatrix != nil {
		placement = placement.Multiply(*p.StaticMatrix)
	} else if p.AnimationMatrix != nil {
		placement = placement.Multiply(*p.AnimationMatrix)
	}
	if p.TransformMatrix != nil {
		placement = placement.Multiply(*p.TransformMatrix)
	}

	snapshot := fb.canvas.currentSnapshot()
	shadowOp := recording.ShadowOp{
		Base: recording.Base{
			UnmappedBounds: casterPath.BoundingBox(),
			LocalMatrix:    placement,
			PaintValue:     recording.Paint{Color: recording.Color{A: p.Alpha * p.Outline.Alpha}},
		},
		CasterPath:          fb.resources.AddPath(casterPath),
		CasterZ:             p.TranslationZ,
		RelativeLightCenter: snapshot.RelativeLightCenter,
	}

	state := tryShadowOpConstruct(fb.arena, snapshot, shadowOp)
	if state != nil {
		fb.currentLayer().deferShadow(state)
	}
}

// deferProjectedChildren draws receiver's registered projected
// descendants under each one's own ancestor-to-receiver transform
// rather than its direct parent's (spec §4.5.4).
func (fb *FrameBuilder) deferProjectedChildren(receiver *recording.RenderNode, backgroundOp recording.RenderNodeOp) {
	background := receiver.Children[backgroundOp.Node]
	if len(background.ProjectedNodes) == 0 {
		return
	}

	count := fb.canvas.save(SaveMatrixClip)
	fb.canvas.translate(background.Properties.Left, background.Properties.Top, 0)

	mask := background.Properties.Outline.Path
	fb.canvas.writableSnapshot().ProjectionPathMask = mask

	for _, projected := range background.ProjectedNodes {
		inner := fb.canvas.save(SaveMatrixClip)
		fb.canvas.concatMatrix(projected.TransformFromCompositingAncestor)
		fb.deferRenderNodeOpImpl(nil, projected.Node)
		fb.canvas.restoreToCount(inner)
	}

	fb.canvas.restoreToCount(count)
}

// deferRenderNodeOpImpl applies childOp's own local clip and matrix (if
// childOp is non-nil — projected children apply their placement via
// concatMatrix before calling this instead) and recurses into child's
// properties and content.
func (fb *FrameBuilder) deferRenderNodeOpImpl(childOp *recording.RenderNodeOp, child *recording.RenderNode) {
	if child.Properties.NothingToDraw() {
		return
	}
	count := fb.canvas.save(SaveMatrixClip)
	if childOp != nil {
		if clip := childOp.Clip(); clip != nil {
			fb.canvas.clipRect(*clip, geom.ClipIntersect)
		}
		fb.canvas.concatMatrix(childOp.Matrix())
	}
	fb.deferNodePropsAndOps(child)
	fb.canvas.restoreToCount(count)
}

// deferBeginLayerOp computes the clipped layer's actual size and
// content offset and opens a new LayerBuilder for it (spec §4.5.5): the
// layer's bounds are mapped out and intersected with the parent's
// render-target clip, mapped back into local space and intersected with
// the layer's own local bounds, then rounded out to integer pixel edges.
func (fb *FrameBuilder) deferBeginLayerOp(op recording.BeginLayerOp) {
	previous := fb.canvas.currentSnapshot()

	contentTransform := previous.Transform.Multiply(op.LocalMatrix).ConcatTranslate(op.UnmappedBounds.Left, op.UnmappedBounds.Top, 0)
	inverse := contentTransform.Invert()

	lightCenter := mapPoint3DVec(inverse, previous.RelativeLightCenter)

	localBounds := geom.RectWH(0, 0, op.UnmappedBounds.Width(), op.UnmappedBounds.Height())
	saveLayerBounds := contentTransform.MapRect(localBounds)
	saveLayerBounds = saveLayerBounds.Intersect(previous.RenderTargetClip)
	saveLayerBounds = inverse.MapRect(saveLayerBounds)
	saveLayerBounds = saveLayerBounds.Intersect(localBounds)
	saveLayerBounds = saveLayerBounds.RoundOut()

	layerWidth := int(saveLayerBounds.Width())
	layerHeight := int(saveLayerBounds.Height())
	contentTranslateX := -saveLayerBounds.Left
	contentTranslateY := -saveLayerBounds.Top

	repaintRect := geom.RectWH(0, 0, float64(layerWidth), float64(layerHeight))
	fb.saveForLayer(layerWidth, layerHeight, contentTranslateX, contentTranslateY, repaintRect, lightCenter, &op, nil)
}

func mapPoint3DVec(m geom.Mat4, v geom.Vec3) geom.Vec3 {
	x, y, z := m.MapPoint3D(v.X, v.Y, v.Z)
	return geom.Vec3{X: x, Y: y, Z: z}
}

// deferEndLayerOp closes the most recently opened clipped save-layer,
// drawing its finished content back into the parent layer as a single
// LayerOp — or, if that LayerOp quick-rejects, discarding the content
// that was just built for it (spec §7, documented open question: the
// wasted work is the original's own behavior, not a bug this repository
// works around).
func (fb *FrameBuilder) deferEndLayerOp(_ recording.EndLayerOp) {
	beginLayerOp := fb.currentLayer().BeginLayerOp
	if beginLayerOp == nil {
		panicf("framedefer: EndLayerOp with no active BeginLayerOp")
	}
	finishedLayerIndex := fb.layerStack[len(fb.layerStack)-1]
	fb.restoreForLayer()

	layerOp := recording.LayerOp{
		Base: recording.Base{
			UnmappedBounds: beginLayerOp.UnmappedBounds,
			LocalMatrix:    beginLayerOp.LocalMatrix,
			LocalClip:      beginLayerOp.LocalClip,
			PaintValue:     recording.Paint{Color: recording.Color{A: beginLayerOp.Alpha}},
		},
		Layer: fb.layerBuilders[finishedLayerIndex].OffscreenBuffer,
	}
	if state := tryBakeOpState(fb.arena, &fb.canvas, layerOp); state != nil {
		fb.currentLayer().deferUnmergeableOp(state, BatchBitmap)
		return
	}
	fb.logger.Warn("discarding finished layer that quick-rejected", "layerIndex", finishedLayerIndex)
	fb.layerBuilders[finishedLayerIndex].clear()
}

// deferBeginUnclippedLayerOp opens an in-place save-layer: rather than a
// dedicated off-screen LayerBuilder, it copies the destination rect out
// to a layer-handle cell, clears it, and defers (but does not yet
// submit) the copy-back op that EndUnclippedLayerOp will later emit
// (spec §4.5.5).
func (fb *FrameBuilder) deferBeginUnclippedLayerOp(op recording.BeginUnclippedLayerOp) {
	snapshot := fb.canvas.currentSnapshot()
	dstRect := snapshot.Transform.Multiply(op.LocalMatrix).MapRect(op.UnmappedBounds)
	dstRect = dstRect.Intersect(snapshot.RenderTargetClip)

	handle := &recording.LayerHandle{}

	copyToOp := recording.CopyToLayerOp{Base: op.Base, DstRect: dstRect, LayerHandle: handle}
	if state := directConstruct(fb.arena, fb.currentLayer().ViewportClip, dstRect, copyToOp); state != nil {
		fb.currentLayer().deferUnmergeableOp(state, BatchCopyToLayer)
	}

	fb.currentLayer().deferLayerClear(dstRect)

	copyFromOp := recording.CopyFromLayerOp{Base: op.Base, DstRect: dstRect, LayerHandle: handle}
	state := directConstruct(fb.arena, fb.currentLayer().ViewportClip, dstRect, copyFromOp)
	fb.currentLayer().pushUnclippedSaveLayer(state)
}

// deferEndUnclippedLayerOp submits the copy-back op deferBeginUnclippedLayerOp
// already baked, in its own batch.
func (fb *FrameBuilder) deferEndUnclippedLayerOp(_ recording.EndUnclippedLayerOp) {
	state := fb.currentLayer().popUnclippedSaveLayer()
	if state != nil {
		fb.currentLayer().deferUnmergeableOp(state, BatchCopyFromLayer)
	}
}
