package geom

import "testing"

func TestIdentityMapPoint(t *testing.T) {
	x, y := Identity().MapPoint(3, 4)
	if x != 3 || y != 4 {
		t.Errorf("MapPoint() = (%v, %v), want (3, 4)", x, y)
	}
}

func TestTranslateMapPoint(t *testing.T) {
	m := Translate2D(10, -5)
	x, y := m.MapPoint(1, 1)
	if x != 11 || y != -4 {
		t.Errorf("MapPoint() = (%v, %v), want (11, -4)", x, y)
	}
}

func TestMultiplyOrder(t *testing.T) {
	m := Translate2D(10, 0).Multiply(Scale(2, 2, 1))
	x, y := m.MapPoint(1, 1)
	if x != 12 || y != 2 {
		t.Errorf("MapPoint() = (%v, %v), want (12, 2)", x, y)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Translate2D(5, 7).Multiply(Scale(2, 3, 1))
	inv := m.Invert()
	x, y := m.MapPoint(4, 9)
	rx, ry := inv.MapPoint(x, y)
	if diff := rx - 4; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("round-trip x = %v, want 4", rx)
	}
	if diff := ry - 9; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("round-trip y = %v, want 9", ry)
	}
}

func TestInvertSingular(t *testing.T) {
	m := Scale(0, 1, 1)
	if inv := m.Invert(); !inv.IsIdentity() {
		t.Errorf("Invert() of singular matrix = %+v, want identity", inv)
	}
}

func TestIsPureTranslate(t *testing.T) {
	if !Translate2D(3, 4).IsPureTranslate() {
		t.Error("Translate2D() should be a pure translation")
	}
	if RotateZ(0.5).IsPureTranslate() {
		t.Error("RotateZ() should not be a pure translation")
	}
}

func TestIsSimple(t *testing.T) {
	if !Scale(2, 3, 1).Multiply(Translate2D(1, 2)).IsSimple() {
		t.Error("scale+translate should be simple")
	}
	if RotateZ(0.3).IsSimple() {
		t.Error("rotation should not be simple")
	}
}

func TestMapRectEmpty(t *testing.T) {
	got := Identity().MapRect(Rect{})
	if !got.IsEmpty() {
		t.Errorf("MapRect(empty) = %+v, want empty", got)
	}
}

func TestMapRectTranslate(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	got := Translate2D(5, 5).MapRect(r)
	want := NewRect(5, 5, 15, 15)
	if got != want {
		t.Errorf("MapRect() = %+v, want %+v", got, want)
	}
}

func TestScaleFactor(t *testing.T) {
	m := Scale(2, 3, 1)
	if sf := m.ScaleFactor(); sf != 3 {
		t.Errorf("ScaleFactor() = %v, want 3", sf)
	}
}
