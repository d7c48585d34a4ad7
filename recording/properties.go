package recording

import (
	"github.com/gogpu/framedefer/geom"
	"github.com/gogpu/framedefer/path"
)

// LayerType selects whether a node draws directly or through a
// persistent off-screen buffer.
type LayerType uint8

const (
	LayerNone LayerType = iota
	LayerHardware
)

// Outline is a node's outline clip/shadow-caster shape.
type Outline struct {
	Path       *path.Path
	Radius     float64
	ShouldClip bool
	Alpha      float64
}

// Empty reports whether the outline has no path and no rounded-rect
// radius to fall back on — the node-rejection test in spec §4.5.1 treats
// "shouldClip && empty" as a rejection.
func (o Outline) Empty() bool {
	return (o.Path == nil || o.Path.IsEmpty()) && o.Radius <= 0
}

// RevealClip is a node's reveal-clip round-rect, used for circular/
// round-rect reveal animations. It takes precedence over Outline when
// both are set (spec §4.5.1).
type RevealClip struct {
	Active bool
	Bounds geom.Rect
	Radius float64
}

// Properties holds a RenderNode's per-frame-stable attributes (spec §3:
// "properties are stable for the duration of one frame build").
type Properties struct {
	Left, Top     float64
	Width, Height float64

	ScaleX, ScaleY float64
	Alpha          float64

	StaticMatrix    *geom.Mat4
	AnimationMatrix *geom.Mat4
	TransformMatrix *geom.Mat4

	ClipToBounds            bool
	HasOverlappingRendering bool

	Outline    Outline
	RevealClip RevealClip

	LayerType LayerType

	TranslationZ     float64
	ProjectBackwards bool

	// InverseTransformInWindow is only meaningful for layer nodes
	// (LayerType != LayerNone) and maps window space back into the
	// layer's local space, used to recompute the light center for
	// per-layer shadow casting (spec §4.5 step 3).
	InverseTransformInWindow geom.Mat4
}

// DefaultProperties returns a Properties value matching an untransformed,
// fully opaque, non-clipping node.
func DefaultProperties() Properties {
	return Properties{
		ScaleX:                  1,
		ScaleY:                  1,
		Alpha:                   1,
		HasOverlappingRendering: true,
	}
}

// EffectiveLayerType reports the node's layer type.
func (p Properties) EffectiveLayerType() LayerType {
	return p.LayerType
}

// NothingToDraw reports the node-rejection condition from spec §4.5.1:
// alpha<=0, an empty clipping outline, or a zero scale factor.
func (p Properties) NothingToDraw() bool {
	if p.Alpha <= 0 {
		return true
	}
	if p.Outline.ShouldClip && p.Outline.Empty() {
		return true
	}
	if p.ScaleX == 0 || p.ScaleY == 0 {
		return true
	}
	return false
}
