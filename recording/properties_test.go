package recording

import "testing"

func TestDefaultPropertiesNothingToDraw(t *testing.T) {
	p := DefaultProperties()
	if p.NothingToDraw() {
		t.Error("default properties should be drawable")
	}
}

func TestNothingToDrawAlphaZero(t *testing.T) {
	p := DefaultProperties()
	p.Alpha = 0
	if !p.NothingToDraw() {
		t.Error("alpha=0 should reject the node")
	}
}

func TestNothingToDrawZeroScale(t *testing.T) {
	p := DefaultProperties()
	p.ScaleX = 0
	if !p.NothingToDraw() {
		t.Error("scaleX=0 should reject the node")
	}
}

func TestNothingToDrawEmptyClippingOutline(t *testing.T) {
	p := DefaultProperties()
	p.Outline.ShouldClip = true
	if !p.NothingToDraw() {
		t.Error("an empty clipping outline should reject the node")
	}
}

func TestOutlineEmptyWithRadius(t *testing.T) {
	o := Outline{Radius: 5}
	if o.Empty() {
		t.Error("an outline with a positive radius should not be empty")
	}
}
