package recording

// Color is a straight-alpha RGBA color in [0,1] per channel, matching
// the teacher library's own RGBA type.
type Color struct {
	R, G, B, A float64
}

// Black is the paint color that routes text into the plain Text batch
// rather than ColorText (spec §4.5.6).
var Black = Color{A: 1}

// IsPureBlack reports whether c is opaque black.
func (c Color) IsPureBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0 && c.A == 1
}

// PaintStyle selects which geometry a strokeable op bakes: fill,
// stroke, or both.
type PaintStyle uint8

const (
	StyleFill PaintStyle = iota
	StyleStroke
	StyleFillAndStroke
)

// HasStroke reports whether style includes a stroked outline.
func (s PaintStyle) HasStroke() bool {
	return s == StyleStroke || s == StyleFillAndStroke
}

// Xfermode is the compositing mode a paint draws with. Only SrcOver
// participates in any merge predicate; every other mode forces an
// unmergeable bake.
type Xfermode uint8

const (
	XfermodeSrcOver Xfermode = iota
	XfermodeClear
	XfermodeSrc
	XfermodeDst
	XfermodeMultiply
	XfermodeScreen
)

// PathEffectRef refers to a pooled dash/path-effect description. A zero
// value means "no path effect".
type PathEffectRef uint32

// IsValid reports whether ref names a real path effect.
func (r PathEffectRef) IsValid() bool { return r != 0 }

// Paint carries the drawing attributes a RecordedOp bakes against: the
// fields RecordedOp.unmappedBounds/localMatrix/localClip travel
// alongside, per §6 ("RecordedOps ... paint attributes (color, alpha,
// antialias, style, stroke width, path effect, xfermode)").
type Paint struct {
	Color       Color
	AntiAlias   bool
	Style       PaintStyle
	StrokeWidth float64
	PathEffect  PathEffectRef
	Xfermode    Xfermode
}

// Alpha returns the paint's own alpha contribution, independent of any
// ancestor snapshot alpha.
func (p Paint) Alpha() float64 {
	return p.Color.A
}

// IsSrcOver reports whether p composites with normal alpha blending,
// the precondition every mergeable batch predicate requires.
func (p Paint) IsSrcOver() bool {
	return p.Xfermode == XfermodeSrcOver
}
