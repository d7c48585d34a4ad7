package path

import (
	"math"

	"github.com/gogpu/framedefer/geom"
)

// Element is a single recorded path instruction.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath at Point without drawing.
type MoveTo struct{ Point Point }

// LineTo draws a straight line to Point.
type LineTo struct{ Point Point }

// QuadTo draws a quadratic Bezier curve through Control to Point.
type QuadTo struct{ Control, Point Point }

// CubicTo draws a cubic Bezier curve through Control1/Control2 to Point.
type CubicTo struct{ Control1, Control2, Point Point }

// Close closes the current subpath with a line back to its start.
type Close struct{}

func (MoveTo) isElement()  {}
func (LineTo) isElement()  {}
func (QuadTo) isElement()  {}
func (CubicTo) isElement() {}
func (Close) isElement()   {}

// Path is an immutable-once-built sequence of path elements. Outlines,
// reveal-clips, and projection masks recorded on a render node are all
// represented with this type.
type Path struct {
	elements []Element
	start    Point
	current  Point
}

// New creates an empty path with room for n elements.
func New(n int) *Path {
	if n <= 0 {
		n = 16
	}
	return &Path{elements: make([]Element, 0, n)}
}

func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start, p.current = pt, pt
}

func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

func (p *Path) QuadTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{Control1: Pt(c1x, c1y), Control2: Pt(c2x, c2y), Point: pt})
	p.current = pt
}

func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

func (p *Path) Elements() []Element { return p.elements }

func (p *Path) IsEmpty() bool { return len(p.elements) == 0 }

// Rect appends a rectangle subpath.
func (p *Path) Rect(r geom.Rect) {
	p.MoveTo(r.Left, r.Top)
	p.LineTo(r.Right, r.Top)
	p.LineTo(r.Right, r.Bottom)
	p.LineTo(r.Left, r.Bottom)
	p.Close()
}

// RoundRect appends a round-rect subpath with corner radius rad, clamped
// to half of the smaller dimension.
func (p *Path) RoundRect(r geom.Rect, rad float64) {
	maxR := math.Min(r.Width(), r.Height()) / 2
	if rad > maxR {
		rad = maxR
	}
	if rad <= 0 {
		p.Rect(r)
		return
	}
	l, t, rr, b := r.Left, r.Top, r.Right, r.Bottom
	p.MoveTo(l+rad, t)
	p.LineTo(rr-rad, t)
	p.arc(rr-rad, t+rad, rad, -math.Pi/2, 0)
	p.LineTo(rr, b-rad)
	p.arc(rr-rad, b-rad, rad, 0, math.Pi/2)
	p.LineTo(l+rad, b)
	p.arc(l+rad, b-rad, rad, math.Pi/2, math.Pi)
	p.LineTo(l, t+rad)
	p.arc(l+rad, t+rad, rad, math.Pi, 3*math.Pi/2)
	p.Close()
}

// Oval appends an oval subpath inscribed in r.
func (p *Path) Oval(r geom.Rect) {
	cx, cy := (r.Left+r.Right)/2, (r.Top+r.Bottom)/2
	rx, ry := r.Width()/2, r.Height()/2
	const k = 0.5522847498307936
	ox, oy := rx*k, ry*k
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

func (p *Path) arc(cx, cy, r, a1, a2 float64) {
	const maxAngle = math.Pi / 2
	n := int(math.Ceil(math.Abs(a2-a1) / maxAngle))
	if n < 1 {
		n = 1
	}
	step := (a2 - a1) / float64(n)
	for i := 0; i < n; i++ {
		s1 := a1 + float64(i)*step
		s2 := s1 + step
		p.arcSegment(cx, cy, r, s1, s2)
	}
}

func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3
	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)
	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2
	c1x, c1y := x1-alpha*r*sin1, y1+alpha*r*cos1
	c2x, c2y := x2+alpha*r*sin2, y2-alpha*r*cos2
	if len(p.elements) == 0 {
		p.MoveTo(x1, y1)
	}
	p.CubicTo(c1x, c1y, c2x, c2y, x2, y2)
}

// Transform returns a copy of p with every point mapped through m.
func (p *Path) Transform(m geom.Mat4) *Path {
	out := New(len(p.elements))
	for _, e := range p.elements {
		switch v := e.(type) {
		case MoveTo:
			x, y := m.MapPoint(v.Point.X, v.Point.Y)
			out.MoveTo(x, y)
		case LineTo:
			x, y := m.MapPoint(v.Point.X, v.Point.Y)
			out.LineTo(x, y)
		case QuadTo:
			cx, cy := m.MapPoint(v.Control.X, v.Control.Y)
			x, y := m.MapPoint(v.Point.X, v.Point.Y)
			out.QuadTo(cx, cy, x, y)
		case CubicTo:
			c1x, c1y := m.MapPoint(v.Control1.X, v.Control1.Y)
			c2x, c2y := m.MapPoint(v.Control2.X, v.Control2.Y)
			x, y := m.MapPoint(v.Point.X, v.Point.Y)
			out.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case Close:
			out.Close()
		}
	}
	return out
}

// Clone returns a deep copy of p, used when a path is stashed into the
// arena-backed resource pool for the duration of a frame.
func (p *Path) Clone() *Path {
	out := New(len(p.elements))
	out.elements = append(out.elements, p.elements...)
	out.start, out.current = p.start, p.current
	return out
}

// BoundingBox returns the axis-aligned bounds of p's control points
// (not the tight curve bounds — sufficient for conservative bounds use).
func (p *Path) BoundingBox() geom.Rect {
	bbox := geom.EmptyRect()
	visit := func(pt Point) { bbox = bbox.UnionPoint(pt.X, pt.Y) }
	for _, e := range p.elements {
		switch v := e.(type) {
		case MoveTo:
			visit(v.Point)
		case LineTo:
			visit(v.Point)
		case QuadTo:
			visit(v.Control)
			visit(v.Point)
		case CubicTo:
			visit(v.Control1)
			visit(v.Control2)
			visit(v.Point)
		}
	}
	return bbox
}
