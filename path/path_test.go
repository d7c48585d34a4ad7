package path

import (
	"testing"

	"github.com/gogpu/framedefer/geom"
)

func TestRectBoundingBox(t *testing.T) {
	p := New(0)
	p.Rect(geom.NewRect(0, 0, 10, 20))
	bbox := p.BoundingBox()
	want := geom.NewRect(0, 0, 10, 20)
	if bbox != want {
		t.Errorf("BoundingBox() = %+v, want %+v", bbox, want)
	}
}

func TestTransform(t *testing.T) {
	p := New(0)
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	out := p.Transform(geom.Translate2D(5, 5))
	elems := out.Elements()
	line := elems[1].(LineTo)
	if line.Point.X != 15 || line.Point.Y != 5 {
		t.Errorf("transformed LineTo = %+v, want (15, 5)", line.Point)
	}
}

func TestFlattenRect(t *testing.T) {
	p := New(0)
	p.Rect(geom.NewRect(0, 0, 10, 10))
	subs := p.Flatten(0.25)
	if len(subs) != 1 {
		t.Fatalf("Flatten() returned %d subpaths, want 1", len(subs))
	}
	if len(subs[0]) < 4 {
		t.Errorf("Flatten() returned %d points, want at least 4", len(subs[0]))
	}
}

func TestIntersectOverlapping(t *testing.T) {
	a := New(0)
	a.Rect(geom.NewRect(0, 0, 10, 10))
	b := New(0)
	b.Rect(geom.NewRect(5, 5, 15, 15))

	got := Intersect(a, b)
	bbox := got.BoundingBox()
	want := geom.NewRect(5, 5, 10, 10)
	if bbox != want {
		t.Errorf("Intersect() bbox = %+v, want %+v", bbox, want)
	}
}

func TestIntersectDisjoint(t *testing.T) {
	a := New(0)
	a.Rect(geom.NewRect(0, 0, 10, 10))
	b := New(0)
	b.Rect(geom.NewRect(20, 20, 30, 30))

	got := Intersect(a, b)
	if !got.IsEmpty() {
		t.Errorf("Intersect() of disjoint rects should be empty, got %d elements", len(got.Elements()))
	}
}

func TestClone(t *testing.T) {
	p := New(0)
	p.MoveTo(1, 2)
	p.LineTo(3, 4)
	clone := p.Clone()
	clone.LineTo(5, 6)
	if len(p.Elements()) == len(clone.Elements()) {
		t.Error("Clone() should be independent of the original")
	}
}
