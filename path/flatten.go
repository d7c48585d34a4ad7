package path

// Flatten walks p and returns a polyline approximation of every
// subpath, to the given tolerance. Each subpath is delivered as its own
// slice so callers can tell closed shapes apart.
func (p *Path) Flatten(tolerance float64) [][]Point {
	var subpaths [][]Point
	var current []Point
	var cur, start Point

	flush := func() {
		if len(current) > 0 {
			subpaths = append(subpaths, current)
			current = nil
		}
	}

	for _, e := range p.elements {
		switch v := e.(type) {
		case MoveTo:
			flush()
			current = []Point{v.Point}
			cur, start = v.Point, v.Point
		case LineTo:
			current = append(current, v.Point)
			cur = v.Point
		case QuadTo:
			current = flattenQuad(cur, v.Control, v.Point, tolerance, current)
			cur = v.Point
		case CubicTo:
			current = flattenCubic(cur, v.Control1, v.Control2, v.Point, tolerance, current)
			cur = v.Point
		case Close:
			current = append(current, start)
			cur = start
		}
	}
	flush()
	return subpaths
}

func flattenQuad(p0, p1, p2 Point, tol float64, out []Point) []Point {
	return flattenQuadRecursive(p0, p1, p2, tol*tol, out, 0)
}

func flattenQuadRecursive(p0, p1, p2 Point, tolSq float64, out []Point, depth int) []Point {
	if depth > 24 || quadFlat(p0, p1, p2) <= tolSq {
		return append(out, p2)
	}
	p01 := mid(p0, p1)
	p12 := mid(p1, p2)
	p012 := mid(p01, p12)
	out = flattenQuadRecursive(p0, p01, p012, tolSq, out, depth+1)
	out = flattenQuadRecursive(p012, p12, p2, tolSq, out, depth+1)
	return out
}

func quadFlat(p0, p1, p2 Point) float64 {
	d := distSq(p1, mid(p0, p2))
	return d
}

func flattenCubic(p0, p1, p2, p3 Point, tol float64, out []Point) []Point {
	return flattenCubicRecursive(p0, p1, p2, p3, tol*tol, out, 0)
}

func flattenCubicRecursive(p0, p1, p2, p3 Point, tolSq float64, out []Point, depth int) []Point {
	if depth > 24 || cubicFlat(p0, p1, p2, p3) <= tolSq {
		return append(out, p3)
	}
	p01, p12, p23 := mid(p0, p1), mid(p1, p2), mid(p2, p3)
	p012, p123 := mid(p01, p12), mid(p12, p23)
	p0123 := mid(p012, p123)
	out = flattenCubicRecursive(p0, p01, p012, p0123, tolSq, out, depth+1)
	out = flattenCubicRecursive(p0123, p123, p23, p3, tolSq, out, depth+1)
	return out
}

func cubicFlat(p0, p1, p2, p3 Point) float64 {
	d1 := distSq(p1, lerpLine(p0, p3, p1))
	d2 := distSq(p2, lerpLine(p0, p3, p2))
	if d1 > d2 {
		return d1
	}
	return d2
}

func lerpLine(a, b, pt Point) Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return a
	}
	t := ((pt.X-a.X)*dx + (pt.Y-a.Y)*dy) / lenSq
	return Point{X: a.X + t*dx, Y: a.Y + t*dy}
}

func mid(a, b Point) Point { return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2} }

func distSq(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// flatnessTolerance is the default tolerance used by boolean ops and
// bounds-only flattening, matching the teacher's device-space default.
const flatnessTolerance = 0.25
