package geom

import "math"

// Rect is an axis-aligned rectangle in whatever space it is currently
// expressed (local, world, or render-target), following the teacher's
// Left/Top/Right/Bottom convention for geometry consumed by recorded ops.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect creates a Rect from explicit edges.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// RectWH creates a Rect from a top-left corner and a size.
func RectWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// EmptyRect returns an inverted rectangle suitable as the identity value
// for repeated Union calls.
func EmptyRect() Rect {
	return Rect{Left: math.MaxFloat64, Top: math.MaxFloat64, Right: -math.MaxFloat64, Bottom: -math.MaxFloat64}
}

// IsEmpty reports whether the rectangle has no area, including the case
// of NaN edges (which can never satisfy Right > Left).
func (r Rect) IsEmpty() bool {
	return !(r.Right > r.Left && r.Bottom > r.Top)
}

// Width returns the rectangle's width, or 0 if empty.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the rectangle's height, or 0 if empty.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Bottom - r.Top
}

// Union returns the smallest rectangle containing both r and other.
// An empty operand does not contribute to the result.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// UnionPoint expands r to include (x, y).
func (r Rect) UnionPoint(x, y float64) Rect {
	return Rect{
		Left:   math.Min(r.Left, x),
		Top:    math.Min(r.Top, y),
		Right:  math.Max(r.Right, x),
		Bottom: math.Max(r.Bottom, y),
	}
}

// Intersect returns the overlapping region of r and other. The result is
// empty (by the Right<=Left/Bottom<=Top convention) if they don't
// overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, other.Left),
		Top:    math.Max(r.Top, other.Top),
		Right:  math.Min(r.Right, other.Right),
		Bottom: math.Min(r.Bottom, other.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Overlaps reports whether r and other share any area.
func (r Rect) Overlaps(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	if other.IsEmpty() {
		return true
	}
	if r.IsEmpty() {
		return false
	}
	return other.Left >= r.Left && other.Top >= r.Top && other.Right <= r.Right && other.Bottom <= r.Bottom
}

// Translate returns r offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Outset expands r by d on every side (used to account for stroke width).
// Negative d insets.
func (r Rect) Outset(d float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// RoundOut returns r expanded to integer edges, matching SkRect::roundOut
// as used by the original's save-layer bounds computation.
func (r Rect) RoundOut() Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{
		Left:   math.Floor(r.Left),
		Top:    math.Floor(r.Top),
		Right:  math.Ceil(r.Right),
		Bottom: math.Ceil(r.Bottom),
	}
}

// IsFinite reports whether every edge is a finite number. Recorded ops
// with non-finite bounds are treated as quick-rejected per spec §7.
func (r Rect) IsFinite() bool {
	return isFinite(r.Left) && isFinite(r.Top) && isFinite(r.Right) && isFinite(r.Bottom)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
