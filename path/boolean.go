package path

import "github.com/gogpu/framedefer/geom"

// Intersect computes subject ∩ clip and returns the result as a new
// path built from straight-line subpaths. clip must be convex — every
// caller in the engine passes either a reveal-clip or a clip-to-bounds
// rect/round-rect, both of which satisfy this. subject may be an
// arbitrary outline.
//
// This backs the shadow caster construction in the engine's
// deferShadow: the caster path is the intersection of the
// outline, the reveal-clip (if any), and the clip-bounds rect (if any).
// Intersect is associative enough to fold left-to-right across however
// many of those three operands are present.
func Intersect(subject, clip *Path) *Path {
	clipPoly := singlePolygon(clip)
	if len(clipPoly) < 3 {
		return New(0)
	}
	if !isConvex(clipPoly) {
		clipPoly = convexHull(clipPoly)
	}

	out := New(0)
	for _, sub := range subject.Flatten(flatnessTolerance) {
		poly := clipSutherlandHodgman(sub, clipPoly)
		if len(poly) < 3 {
			continue
		}
		out.MoveTo(poly[0].X, poly[0].Y)
		for _, pt := range poly[1:] {
			out.LineTo(pt.X, pt.Y)
		}
		out.Close()
	}
	return out
}

func singlePolygon(p *Path) []Point {
	subs := p.Flatten(flatnessTolerance)
	if len(subs) == 0 {
		return nil
	}
	// The clip operands are always a single closed shape; if more than
	// one subpath was recorded, the first is authoritative.
	return subs[0]
}

// clipSutherlandHodgman clips the polygon subject against every edge of
// the convex polygon clip, in order.
func clipSutherlandHodgman(subject, clip []Point) []Point {
	output := subject
	n := len(clip)
	for i := 0; i < n && len(output) > 0; i++ {
		a, b := clip[i], clip[(i+1)%n]
		output = clipEdge(output, a, b)
	}
	return output
}

func clipEdge(poly []Point, a, b Point) []Point {
	if len(poly) == 0 {
		return nil
	}
	var out []Point
	prev := poly[len(poly)-1]
	prevIn := insideEdge(prev, a, b)
	for _, cur := range poly {
		curIn := insideEdge(cur, a, b)
		if curIn {
			if !prevIn {
				out = append(out, edgeIntersection(prev, cur, a, b))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, edgeIntersection(prev, cur, a, b))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// insideEdge reports whether pt is on the left (inside, for a
// counter-clockwise convex polygon) side of directed edge a->b. The
// clip polygon's winding is not checked or normalized; for the rects
// and round-rects this engine clips against, the polygon is generated
// consistently counter-clockwise in device flattening, so a left-side
// test is sufficient.
func insideEdge(pt, a, b Point) bool {
	return cross(a, b, pt) >= 0
}

func cross(a, b, pt Point) float64 {
	return (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
}

func edgeIntersection(p1, p2, a, b Point) Point {
	x1, y1, x2, y2 := p1.X, p1.Y, p2.X, p2.Y
	x3, y3, x4, y4 := a.X, a.Y, b.X, b.Y
	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if denom == 0 {
		return p2
	}
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	return Point{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1)}
}

func isConvex(poly []Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	var sign int
	for i := 0; i < n; i++ {
		a, b, c := poly[i], poly[(i+1)%n], poly[(i+2)%n]
		cr := cross(a, b, c)
		if cr == 0 {
			continue
		}
		s := 1
		if cr < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if sign != s {
			return false
		}
	}
	return true
}

// convexHull computes the hull of an arbitrary polygon using Andrew's
// monotone-chain algorithm, used as a fallback for a non-convex clip
// operand so Intersect always has a convex polygon to clip against. The
// result is a conservative over-approximation, which only ever grows the
// computed shadow caster bounds — never shrinks the clip it's meant to
// enforce below its true size.
func convexHull(points []Point) []Point {
	pts := append([]Point(nil), points...)
	if len(pts) < 3 {
		return pts
	}
	sortPoints(pts)

	build := func(pts []Point) []Point {
		var hull []Point
		for _, p := range pts {
			for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		return hull
	}

	lower := build(pts)
	reversed := make([]Point, len(pts))
	for i, p := range pts {
		reversed[len(pts)-1-i] = p
	}
	upper := build(reversed)

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return hull
}

func sortPoints(pts []Point) {
	// insertion sort: clip polygons are small (rect/round-rect corner
	// counts), so O(n^2) is fine and keeps this dependency-free.
	for i := 1; i < len(pts); i++ {
		j := i
		for j > 0 && pointLess(pts[j], pts[j-1]) {
			pts[j], pts[j-1] = pts[j-1], pts[j]
			j--
		}
	}
}

func pointLess(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// IntersectBounds is a cheap alternative to Intersect for when only the
// bounds are needed, not the exact boundary, and the clip is a plain
// rectangle. The engine does not call it.
func IntersectBounds(subject *Path, clipRect geom.Rect) geom.Rect {
	return subject.BoundingBox().Intersect(clipRect)
}
