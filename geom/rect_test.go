package geom

import "testing"

func TestEmptyRect(t *testing.T) {
	r := EmptyRect()
	if !r.IsEmpty() {
		t.Error("EmptyRect() should be empty")
	}
	if r.Width() != 0 || r.Height() != 0 {
		t.Errorf("EmptyRect() dims = (%v, %v), want (0, 0)", r.Width(), r.Height())
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 20, 20)
	got := a.Union(b)
	want := NewRect(0, 0, 20, 20)
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestRectUnionWithEmpty(t *testing.T) {
	a := NewRect(1, 2, 3, 4)
	got := a.Union(EmptyRect())
	if got != a {
		t.Errorf("Union(empty) = %+v, want %+v", got, a)
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 20, 20)
	got := a.Intersect(b)
	want := NewRect(5, 5, 10, 10)
	if got != want {
		t.Errorf("Intersect() = %+v, want %+v", got, want)
	}
}

func TestRectIntersectDisjoint(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 20, 30, 30)
	if got := a.Intersect(b); !got.IsEmpty() {
		t.Errorf("Intersect() of disjoint rects = %+v, want empty", got)
	}
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)
	inner := NewRect(10, 10, 20, 20)
	if !outer.Contains(inner) {
		t.Error("Contains() should be true")
	}
	if inner.Contains(outer) {
		t.Error("Contains() should be false for reversed operands")
	}
}

func TestRectRoundOut(t *testing.T) {
	r := NewRect(1.2, 1.8, 9.1, 9.9)
	got := r.RoundOut()
	want := NewRect(1, 1, 10, 10)
	if got != want {
		t.Errorf("RoundOut() = %+v, want %+v", got, want)
	}
}

func TestRectWH(t *testing.T) {
	r := RectWH(10, 20, 30, 40)
	want := NewRect(10, 20, 40, 60)
	if r != want {
		t.Errorf("RectWH() = %+v, want %+v", r, want)
	}
}
