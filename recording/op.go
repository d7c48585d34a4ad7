package recording

import "github.com/gogpu/framedefer/geom"

// OpID identifies the concrete kind of a RecordedOp. The enumeration is
// closed: FrameBuilder's per-op dispatch must be total over it (spec §9,
// "dispatch be total over the closed enumeration").
type OpID uint8

const (
	OpRect OpID = iota
	OpOval
	OpRoundRect
	OpArc
	OpPath
	OpLines
	OpPoints
	OpSimpleRects
	OpBitmap
	OpBitmapMesh
	OpBitmapRect
	OpPatch
	OpText
	OpTextOnPath
	OpFunctor
	OpTextureLayer
	OpRenderNode
	OpBeginLayer
	OpEndLayer
	OpBeginUnclippedLayer
	OpEndUnclippedLayer
	OpCopyToLayer
	OpCopyFromLayer
	OpShadow
	OpLayer
	OpCircleProps
	OpRoundRectProps
)

var opIDNames = [...]string{
	OpRect:                "Rect",
	OpOval:                "Oval",
	OpRoundRect:           "RoundRect",
	OpArc:                 "Arc",
	OpPath:                "Path",
	OpLines:               "Lines",
	OpPoints:              "Points",
	OpSimpleRects:         "SimpleRects",
	OpBitmap:              "Bitmap",
	OpBitmapMesh:          "BitmapMesh",
	OpBitmapRect:          "BitmapRect",
	OpPatch:               "Patch",
	OpText:                "Text",
	OpTextOnPath:          "TextOnPath",
	OpFunctor:             "Functor",
	OpTextureLayer:        "TextureLayer",
	OpRenderNode:          "RenderNode",
	OpBeginLayer:          "BeginLayer",
	OpEndLayer:            "EndLayer",
	OpBeginUnclippedLayer: "BeginUnclippedLayer",
	OpEndUnclippedLayer:   "EndUnclippedLayer",
	OpCopyToLayer:         "CopyToLayer",
	OpCopyFromLayer:       "CopyFromLayer",
	OpShadow:              "Shadow",
	OpLayer:               "Layer",
	OpCircleProps:         "CircleProps",
	OpRoundRectProps:      "RoundRectProps",
}

func (id OpID) String() string {
	if int(id) < len(opIDNames) {
		return opIDNames[id]
	}
	return "OpID(unknown)"
}

// Op is the interface every RecordedOp variant satisfies. unmappedBounds,
// localMatrix, localClip, and paint are the common fields spec §3
// requires of every recorded op.
type Op interface {
	ID() OpID
	Bounds() geom.Rect
	Matrix() geom.Mat4
	Clip() *geom.Rect
	PaintOf() Paint
}

// Base holds the four fields every RecordedOp variant carries. Concrete
// op types embed it and add their own geometry.
type Base struct {
	UnmappedBounds geom.Rect
	LocalMatrix    geom.Mat4
	LocalClip      *geom.Rect
	PaintValue     Paint
}

func (b Base) Bounds() geom.Rect  { return b.UnmappedBounds }
func (b Base) Matrix() geom.Mat4  { return b.LocalMatrix }
func (b Base) Clip() *geom.Rect   { return b.LocalClip }
func (b Base) PaintOf() Paint     { return b.PaintValue }

// RectOp draws an axis-aligned rectangle.
type RectOp struct {
	Base
	Rect geom.Rect
}

func (RectOp) ID() OpID { return OpRect }

// OvalOp draws an oval inscribed in Rect.
type OvalOp struct {
	Base
	Rect geom.Rect
}

func (OvalOp) ID() OpID { return OpOval }

// RoundRectOp draws a rounded rectangle.
type RoundRectOp struct {
	Base
	Rect   geom.Rect
	RadiusX, RadiusY float64
}

func (RoundRectOp) ID() OpID { return OpRoundRect }

// ArcOp draws an elliptical arc.
type ArcOp struct {
	Base
	Rect             geom.Rect
	StartAngle, SweepAngle float64
	UseCenter        bool
}

func (ArcOp) ID() OpID { return OpArc }

// PathRef refers to a path stashed in a ResourcePool.
type PathRef uint32

// InvalidRef marks an unset reference of any kind in this package.
const InvalidRef = ^uint32(0)

// IsValid reports whether ref names a real pooled path.
func (r PathRef) IsValid() bool { return uint32(r) != InvalidRef }

// ImageRef refers to a bitmap stashed in a ResourcePool.
type ImageRef uint32

// IsValid reports whether ref names a real pooled image.
func (r ImageRef) IsValid() bool { return uint32(r) != InvalidRef }

// FontRef refers to a font face stashed in a ResourcePool.
type FontRef uint32

// IsValid reports whether ref names a real pooled font.
func (r FontRef) IsValid() bool { return uint32(r) != InvalidRef }

// PathOp draws an arbitrary path, filled or stroked per Paint.Style.
type PathOp struct {
	Base
	Path PathRef
}

func (PathOp) ID() OpID { return OpPath }

// LinesOp draws a disconnected set of line segments (point pairs).
type LinesOp struct {
	Base
	Points []geom.Rect // each entry's (Left,Top)-(Right,Bottom) is one segment
}

func (LinesOp) ID() OpID { return OpLines }

// PointsOp draws a set of points, each stroked as a dot/square per cap.
type PointsOp struct {
	Base
	Points []Point2D
}

func (PointsOp) ID() OpID { return OpPoints }

// Point2D is a plain 2D coordinate used by PointsOp.
type Point2D struct{ X, Y float64 }

// SimpleRectsOp draws a set of disjoint axis-aligned rects as a single
// unmergeable vertex batch — the fast path for pre-flattened regions
// (e.g. a SkRegion) that don't need per-rect stroke/style handling.
type SimpleRectsOp struct {
	Base
	Rects []geom.Rect
}

func (SimpleRectsOp) ID() OpID { return OpSimpleRects }

// GenerationID identifies a bitmap's content revision; it is the merge
// key for mergeable bitmap/patch batches (spec §4.5.6).
type GenerationID uint32

// BitmapOp draws a bitmap with SrcRect mapped onto DstRect.
type BitmapOp struct {
	Base
	Image        ImageRef
	Generation   GenerationID
	IsAlphaMask  bool
	SrcRect      geom.Rect
	DstRect      geom.Rect
}

func (BitmapOp) ID() OpID { return OpBitmap }

// BitmapMeshOp draws a bitmap warped across an NxM mesh of vertices.
type BitmapMeshOp struct {
	Base
	Image      ImageRef
	MeshWidth  int
	MeshHeight int
	Vertices   []Point2D
}

func (BitmapMeshOp) ID() OpID { return OpBitmapMesh }

// BitmapRectOp draws a sub-rectangle of a bitmap, unmergeable variant
// used when source/dest rects need independent transforms from BitmapOp.
type BitmapRectOp struct {
	Base
	Image   ImageRef
	SrcRect geom.Rect
	DstRect geom.Rect
}

func (BitmapRectOp) ID() OpID { return OpBitmapRect }

// PatchOp draws a 9-patch (stretchable) bitmap.
type PatchOp struct {
	Base
	Image      ImageRef
	Generation GenerationID
	DstRect    geom.Rect
}

func (PatchOp) ID() OpID { return OpPatch }

// TextOp draws a run of glyphs at Positions, using the pooled font Face.
type TextOp struct {
	Base
	Face      FontRef
	Glyphs    []uint16
	Positions []Point2D
}

func (TextOp) ID() OpID { return OpText }

// TextOnPathOp draws a run of glyphs following Path, offset by HOffset
// along it and VOffset perpendicular to it.
type TextOnPathOp struct {
	Base
	Face    FontRef
	Glyphs  []uint16
	Path    PathRef
	HOffset float64
	VOffset float64
}

func (TextOnPathOp) ID() OpID { return OpTextOnPath }

// FunctorOp defers to a host-supplied callback (e.g. a WebView or video
// surface); the engine treats it as an opaque unmergeable draw.
type FunctorOp struct {
	Base
	Invoke func()
}

func (FunctorOp) ID() OpID { return OpFunctor }

// TextureLayerOp draws the contents of an externally-managed texture
// (e.g. a SurfaceTexture), analogous to LayerOp but for a non-HW-layer
// source.
type TextureLayerOp struct {
	Base
	Texture ImageRef
}

func (TextureLayerOp) ID() OpID { return OpTextureLayer }

// RenderNodeOp references a child RenderNode by index into the owning
// RenderNode's Children slice.
type RenderNodeOp struct {
	Base
	Node           int
	LocalClipRegion *geom.Rect
	SkipInOrderDraw bool
}

func (RenderNodeOp) ID() OpID { return OpRenderNode }

// BeginLayerOp starts a clipped save-layer. Bounds is the layer's
// content-space bounds; Alpha is the layer-compositing alpha.
type BeginLayerOp struct {
	Base
	LayerBounds geom.Rect
	Alpha       float64
}

func (BeginLayerOp) ID() OpID { return OpBeginLayer }

// EndLayerOp closes the most recently opened clipped save-layer.
type EndLayerOp struct {
	Base
}

func (EndLayerOp) ID() OpID { return OpEndLayer }

// BeginUnclippedLayerOp starts an in-place (copy-out) save-layer.
type BeginUnclippedLayerOp struct {
	Base
	LayerBounds geom.Rect
}

func (BeginUnclippedLayerOp) ID() OpID { return OpBeginUnclippedLayer }

// EndUnclippedLayerOp closes the most recently opened unclipped
// save-layer.
type EndUnclippedLayerOp struct {
	Base
}

func (EndUnclippedLayerOp) ID() OpID { return OpEndUnclippedLayer }

// CopyToLayerOp copies DstRect's pixels out to a layer handle cell
// before it gets cleared and drawn into.
type CopyToLayerOp struct {
	Base
	DstRect     geom.Rect
	LayerHandle *LayerHandle
}

func (CopyToLayerOp) ID() OpID { return OpCopyToLayer }

// CopyFromLayerOp copies a previously-saved layer handle's pixels back.
type CopyFromLayerOp struct {
	Base
	DstRect     geom.Rect
	LayerHandle *LayerHandle
}

func (CopyFromLayerOp) ID() OpID { return OpCopyFromLayer }

// LayerHandle is an arena-allocated cell a renderer fills at draw time;
// the engine only ever passes its address around (spec §4.5.5, "Allocate
// a layer-handle cell in the arena (a pointer-sized slot; filled by
// renderer at draw time)").
type LayerHandle struct {
	Opaque any
}

// ShadowOp draws a caster's ambient+spot shadow. CasterPath is the
// arena-computed intersection described in spec §4.5.3.
type ShadowOp struct {
	Base
	CasterPath        PathRef
	CasterZ           float64
	RelativeLightCenter geom.Vec3
}

func (ShadowOp) ID() OpID { return OpShadow }

// LayerOp draws the contents of a persistent HW layer or a just-closed
// save-layer buffer as a single textured quad.
type LayerOp struct {
	Base
	Layer *LayerHandle
}

func (LayerOp) ID() OpID { return OpLayer }

// CirclePropsOp resolves to an OvalOp by dereferencing mutable property
// cells at defer time (spec §4.5.6, "Property-indirect ops").
type CirclePropsOp struct {
	Base
	X, Y, Radius *float64
}

func (CirclePropsOp) ID() OpID { return OpCircleProps }

// Resolve dereferences the property cells and returns the concrete op.
func (o CirclePropsOp) Resolve() OvalOp {
	x, y, r := *o.X, *o.Y, *o.Radius
	return OvalOp{Base: o.Base, Rect: geom.NewRect(x-r, y-r, x+r, y+r)}
}

// RoundRectPropsOp resolves to a RoundRectOp by dereferencing mutable
// property cells at defer time.
type RoundRectPropsOp struct {
	Base
	Left, Top, Right, Bottom *float64
	RadiusX, RadiusY         *float64
}

func (RoundRectPropsOp) ID() OpID { return OpRoundRectProps }

// Resolve dereferences the property cells and returns the concrete op.
func (o RoundRectPropsOp) Resolve() RoundRectOp {
	return RoundRectOp{
		Base:    o.Base,
		Rect:    geom.NewRect(*o.Left, *o.Top, *o.Right, *o.Bottom),
		RadiusX: *o.RadiusX,
		RadiusY: *o.RadiusY,
	}
}
