package recording

import "github.com/gogpu/framedefer/geom"

// LayerUpdateEntry is one entry of the caller-supplied LayerUpdateQueue
// (spec §6): a dirty layer node and the damage rect that needs
// repainting within it.
type LayerUpdateEntry struct {
	RenderNode *RenderNode
	DamageRect geom.Rect
}

// LayerUpdateQueue is the ordered sequence of layer updates a
// FrameBuilder processes in reverse (spec §4.5 step 3).
type LayerUpdateQueue []LayerUpdateEntry
