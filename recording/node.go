package recording

import "github.com/gogpu/framedefer/geom"

// Chunk partitions a DisplayList's ops and child references into a
// contiguous run that shares a reorder policy (spec §3).
type Chunk struct {
	BeginOp, EndOp       int
	BeginChild, EndChild int
	ReorderChildren      bool

	// ProjectionReceiveIndex is the op index within [BeginOp, EndOp) that
	// receives background projection, or -1 if the chunk has none. At
	// most one index per chunk may be marked (spec §3).
	ProjectionReceiveIndex int
}

// HasProjectionReceiver reports whether this chunk names a projection
// receiver op.
func (c Chunk) HasProjectionReceiver() bool {
	return c.ProjectionReceiveIndex >= 0
}

// ProjectedNode is one entry of a node's background-projection list
// (spec §4.5.4): a descendant drawn under the projection receiver's
// transform rather than its direct parent's.
type ProjectedNode struct {
	Node                         *RenderNode
	TransformFromCompositingAncestor geom.Mat4
}

// DisplayList is an ordered sequence of RecordedOps and child-node
// references, partitioned into Chunks (spec §3).
type DisplayList struct {
	Ops      []Op
	Children []RenderNodeOp
	Chunks   []Chunk
}

// NewDisplayList returns an empty DisplayList with no ops and no chunks;
// chunks are added by CloseChunk.
func NewDisplayList() *DisplayList {
	return &DisplayList{}
}

// Append records op and returns its index within Ops.
func (dl *DisplayList) Append(op Op) int {
	dl.Ops = append(dl.Ops, op)
	return len(dl.Ops) - 1
}

// AppendChild records a child-node reference and returns its index
// within Children.
func (dl *DisplayList) AppendChild(child RenderNodeOp) int {
	dl.Children = append(dl.Children, child)
	return len(dl.Children) - 1
}

// CloseChunk appends a Chunk spanning every op/child recorded since the
// previous CloseChunk (or the start of the list).
func (dl *DisplayList) CloseChunk(reorder bool, projectionReceiveIndex int) {
	beginOp, beginChild := 0, 0
	if n := len(dl.Chunks); n > 0 {
		beginOp, beginChild = dl.Chunks[n-1].EndOp, dl.Chunks[n-1].EndChild
	}
	dl.Chunks = append(dl.Chunks, Chunk{
		BeginOp: beginOp, EndOp: len(dl.Ops),
		BeginChild: beginChild, EndChild: len(dl.Children),
		ReorderChildren:         reorder,
		ProjectionReceiveIndex:  projectionReceiveIndex,
	})
}

// RenderNode is the external, read-only-for-the-frame drawing node the
// engine walks (spec §3). It is borrowed, never owned, by a
// FrameBuilder build.
type RenderNode struct {
	Properties     Properties
	DisplayList    *DisplayList
	Layer          *LayerHandle
	ProjectedNodes []ProjectedNode
	Name           string

	// Children holds the actual child RenderNodes in recording order.
	// A RenderNodeOp's Node field indexes into this slice: the op in
	// the DisplayList marks *where* in draw order a child is visited,
	// Children supplies *which* node it is.
	Children []*RenderNode
}

// HasDisplayList reports whether the node has recorded content.
func (n *RenderNode) HasDisplayList() bool {
	return n.DisplayList != nil
}

// HasLayer reports whether the node draws through a persistent
// off-screen buffer rather than directly (spec §4.5.1 dispatch).
func (n *RenderNode) HasLayer() bool {
	return n.Layer != nil
}
