package geom

import "math"

// Mat4 represents a 4x4 transformation matrix stored in row-major order.
// M[row*4+col] is the element at (row, col). A point (x, y, z, 1) is
// transformed by treating it as a column vector: p' = M * p.
type Mat4 struct {
	M [16]float64
}

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Translate returns a translation transform.
func Translate(x, y, z float64) Mat4 {
	m := Identity()
	m.M[3] = x
	m.M[7] = y
	m.M[11] = z
	return m
}

// Translate2D returns a translation transform in the XY plane.
func Translate2D(x, y float64) Mat4 {
	return Translate(x, y, 0)
}

// Scale returns a scaling transform.
func Scale(sx, sy, sz float64) Mat4 {
	m := Identity()
	m.M[0] = sx
	m.M[5] = sy
	m.M[10] = sz
	return m
}

// RotateZ returns a rotation about the Z axis (angle in radians).
func RotateZ(angle float64) Mat4 {
	m := Identity()
	c, s := math.Cos(angle), math.Sin(angle)
	m.M[0], m.M[1] = c, -s
	m.M[4], m.M[5] = s, c
	return m
}

// Multiply returns m*other — applying other first, then m.
func (m Mat4) Multiply(other Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.M[row*4+k] * other.M[k*4+col]
			}
			r.M[row*4+col] = sum
		}
	}
	return r
}

// ConcatTranslate appends a translation to m; it is computed as the full
// 4x4 product m.Multiply(Translate(x, y, z)).
func (m Mat4) ConcatTranslate(x, y, z float64) Mat4 {
	return m.Multiply(Translate(x, y, z))
}

// MapPoint3D transforms a 3D point.
func (m Mat4) MapPoint3D(x, y, z float64) (float64, float64, float64) {
	return m.M[0]*x + m.M[1]*y + m.M[2]*z + m.M[3],
		m.M[4]*x + m.M[5]*y + m.M[6]*z + m.M[7],
		m.M[8]*x + m.M[9]*y + m.M[10]*z + m.M[11]
}

// MapPoint transforms a 2D point (z=0) and drops the resulting z.
func (m Mat4) MapPoint(x, y float64) (float64, float64) {
	rx, ry, _ := m.MapPoint3D(x, y, 0)
	return rx, ry
}

// MapRect maps an axis-aligned rectangle through the transform and
// returns the axis-aligned bounding box of the four transformed corners.
// NaN or infinite input coordinates propagate to an empty rect, which the
// engine's quick-reject logic treats as "contributes nothing" (spec §7).
func (m Mat4) MapRect(r Rect) Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	corners := [4][2]float64{
		{r.Left, r.Top}, {r.Right, r.Top}, {r.Left, r.Bottom}, {r.Right, r.Bottom},
	}
	out := EmptyRect()
	for _, c := range corners {
		x, y := m.MapPoint(c[0], c[1])
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return Rect{}
		}
		out = out.UnionPoint(x, y)
	}
	return out
}

// Invert returns the inverse of an affine (no-perspective) Mat4: the
// upper-left 3x3 is inverted and the translation is re-derived from it.
// The engine never constructs a matrix with a non-trivial bottom row, so
// a general 4x4 inverse is unnecessary. Returns the
// identity if the linear part is singular.
func (m Mat4) Invert() Mat4 {
	a, b, c := m.M[0], m.M[1], m.M[2]
	d, e, f := m.M[4], m.M[5], m.M[6]
	g, h, i := m.M[8], m.M[9], m.M[10]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math.Abs(det) < 1e-12 {
		return Identity()
	}
	invDet := 1.0 / det

	r := Identity()
	r.M[0] = (e*i - f*h) * invDet
	r.M[1] = (c*h - b*i) * invDet
	r.M[2] = (b*f - c*e) * invDet
	r.M[4] = (f*g - d*i) * invDet
	r.M[5] = (a*i - c*g) * invDet
	r.M[6] = (c*d - a*f) * invDet
	r.M[8] = (d*h - e*g) * invDet
	r.M[9] = (b*g - a*h) * invDet
	r.M[10] = (a*e - b*d) * invDet

	tx, ty, tz := m.M[3], m.M[7], m.M[11]
	rtx, rty, rtz := r.MapPoint3D(-tx, -ty, -tz)
	r.M[3], r.M[7], r.M[11] = rtx, rty, rtz
	return r
}

const mat4Epsilon = 1e-9

// IsIdentity reports whether m performs no transformation.
func (m Mat4) IsIdentity() bool {
	id := Identity()
	for k := range m.M {
		if math.Abs(m.M[k]-id.M[k]) > mat4Epsilon {
			return false
		}
	}
	return true
}

// IsPureTranslate reports whether m is a translation with no rotation,
// skew, or scale — matching the original's Matrix4::isPureTranslate(),
// used to decide whether bitmap/patch/text ops are mergeable.
func (m Mat4) IsPureTranslate() bool {
	return approxEq(m.M[0], 1) && approxEq(m.M[1], 0) && approxEq(m.M[2], 0) &&
		approxEq(m.M[4], 0) && approxEq(m.M[5], 1) && approxEq(m.M[6], 0) &&
		approxEq(m.M[8], 0) && approxEq(m.M[9], 0) && approxEq(m.M[10], 1)
}

// IsSimple reports whether m has no rotation, skew, or perspective —
// only (possibly non-uniform) scale and translation. This mirrors the
// original's Matrix4::isSimple(), used to gate bitmap merging.
func (m Mat4) IsSimple() bool {
	return approxEq(m.M[1], 0) && approxEq(m.M[2], 0) &&
		approxEq(m.M[4], 0) && approxEq(m.M[6], 0) &&
		approxEq(m.M[8], 0) && approxEq(m.M[9], 0) &&
		approxEq(m.M[12], 0) && approxEq(m.M[13], 0) && approxEq(m.M[14], 0) && approxEq(m.M[15], 1)
}

// PositiveScale reports whether the transform's X and Y scale factors are
// both positive (no flip). Requires IsSimple to be meaningful.
func (m Mat4) PositiveScale() bool {
	return m.M[0] > 0 && m.M[5] > 0
}

// ScaleFactor returns the larger of the X/Y scale magnitudes. The engine
// does not call it; stroke outsets are applied in local space.
func (m Mat4) ScaleFactor() float64 {
	sx := math.Hypot(m.M[0], m.M[4])
	sy := math.Hypot(m.M[1], m.M[5])
	if sx > sy {
		return sx
	}
	return sy
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < mat4Epsilon
}
