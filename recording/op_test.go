package recording

import (
	"testing"

	"github.com/gogpu/framedefer/geom"
)

func TestOpIDString(t *testing.T) {
	if got := OpRect.String(); got != "Rect" {
		t.Errorf("OpRect.String() = %q, want %q", got, "Rect")
	}
	if got := OpID(200).String(); got != "OpID(unknown)" {
		t.Errorf("unknown OpID.String() = %q, want %q", got, "OpID(unknown)")
	}
}

func TestCirclePropsOpResolve(t *testing.T) {
	x, y, r := 10.0, 20.0, 5.0
	op := CirclePropsOp{X: &x, Y: &y, Radius: &r}
	resolved := op.Resolve()
	want := geom.NewRect(5, 15, 15, 25)
	if resolved.Rect != want {
		t.Errorf("Resolve().Rect = %+v, want %+v", resolved.Rect, want)
	}
	if resolved.ID() != OpOval {
		t.Errorf("Resolve().ID() = %v, want OpOval", resolved.ID())
	}
}

func TestRoundRectPropsOpResolve(t *testing.T) {
	l, top, rr, b := 0.0, 0.0, 10.0, 10.0
	rx, ry := 2.0, 2.0
	op := RoundRectPropsOp{Left: &l, Top: &top, Right: &rr, Bottom: &b, RadiusX: &rx, RadiusY: &ry}
	resolved := op.Resolve()
	if resolved.RadiusX != 2 || resolved.RadiusY != 2 {
		t.Errorf("Resolve() radius = (%v, %v), want (2, 2)", resolved.RadiusX, resolved.RadiusY)
	}
}

func TestRefValidity(t *testing.T) {
	var invalid PathRef = PathRef(InvalidRef)
	if invalid.IsValid() {
		t.Error("InvalidRef should not be valid")
	}
	var valid PathRef = 0
	if !valid.IsValid() {
		t.Error("ref 0 should be valid")
	}
}

func TestBaseAccessors(t *testing.T) {
	b := Base{
		UnmappedBounds: geom.NewRect(0, 0, 10, 10),
		LocalMatrix:    geom.Translate2D(1, 2),
		PaintValue:     Paint{Color: Black},
	}
	op := RectOp{Base: b, Rect: b.UnmappedBounds}
	if op.Bounds() != b.UnmappedBounds {
		t.Error("Bounds() mismatch")
	}
	if op.Matrix() != b.LocalMatrix {
		t.Error("Matrix() mismatch")
	}
	if op.Clip() != nil {
		t.Error("Clip() should be nil when unset")
	}
	if !op.PaintOf().Color.IsPureBlack() {
		t.Error("PaintOf() mismatch")
	}
}
