// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
	"testing"

	"github.com/gogpu/framedefer"
	"github.com/gogpu/framedefer/geom"
	"github.com/gogpu/framedefer/recording"
	"github.com/gogpu/gputypes"
)

func leafNode(name string, left, top, width, height float64, c recording.Color) *recording.RenderNode {
	dl := recording.NewDisplayList()
	r := geom.RectWH(0, 0, width, height)
	dl.Append(recording.RectOp{
		Base: recording.Base{UnmappedBounds: r, LocalMatrix: geom.Identity(), PaintValue: recording.Paint{Color: c}},
		Rect: r,
	})
	dl.CloseChunk(false, -1)

	p := recording.DefaultProperties()
	p.Left, p.Top, p.Width, p.Height = left, top, width, height
	return &recording.RenderNode{Name: name, Properties: p, DisplayList: dl}
}

func TestSoftwareRendererFillsOpaqueRect(t *testing.T) {
	red := recording.Color{R: 1, A: 1}
	root := leafNode("root", 10, 10, 20, 20, red)
	fb := framedefer.NewFrameBuilder(nil, geom.RectWH(0, 0, 40, 40), 40, 40, []*recording.RenderNode{root}, geom.Vec3{})

	pixmap := NewPixmapTarget(40, 40)
	r := NewSoftwareRenderer()
	if err := r.Render(pixmap, fb); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	got := pixmap.GetPixel(15, 15)
	wr, wg, wb, wa := got.RGBA()
	if wr != 0xffff || wg != 0 || wb != 0 || wa != 0xffff {
		t.Fatalf("pixel inside rect = %v, want opaque red", got)
	}

	outside := pixmap.GetPixel(1, 1)
	or, og, ob, oa := outside.RGBA()
	if or != 0 || og != 0 || ob != 0 || oa != 0 {
		t.Fatalf("pixel outside rect = %v, want transparent black", outside)
	}
}

func TestSoftwareRendererBlendsTranslucentRectOverExistingContent(t *testing.T) {
	blue := recording.Color{B: 1, A: 1}
	root := leafNode("root", 0, 0, 10, 10, blue)
	fb := framedefer.NewFrameBuilder(nil, geom.RectWH(0, 0, 10, 10), 10, 10, []*recording.RenderNode{root}, geom.Vec3{})

	pixmap := NewPixmapTarget(10, 10)
	pixmap.Clear(color.White)

	r := NewSoftwareRenderer()
	if err := r.Render(pixmap, fb); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	got := pixmap.GetPixel(5, 5)
	wr, _, wb, wa := got.RGBA()
	if wa != 0xffff {
		t.Fatalf("pixel alpha = %v, want fully opaque after source-over onto opaque white", wa)
	}
	if wr != 0 {
		t.Fatalf("pixel red channel = %v, want 0 (opaque blue fully replaces white)", wr)
	}
	if wb != 0xffff {
		t.Fatalf("pixel blue channel = %v, want 0xffff", wb)
	}
}

func TestSoftwareRendererCompositesSecondaryLayerOntoPrimary(t *testing.T) {
	green := recording.Color{G: 1, A: 1}
	node := leafNode("faded", 0, 0, 20, 20, green)
	node.Properties.Alpha = 0.5
	node.Properties.HasOverlappingRendering = true

	fb := framedefer.NewFrameBuilder(nil, geom.RectWH(0, 0, 20, 20), 20, 20, []*recording.RenderNode{node}, geom.Vec3{})
	if len(fb.LayerBuilders()) != 2 {
		t.Fatalf("len(LayerBuilders()) = %d, want 2", len(fb.LayerBuilders()))
	}

	pixmap := NewPixmapTarget(20, 20)
	r := NewSoftwareRenderer()
	if err := r.Render(pixmap, fb); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	got := pixmap.GetPixel(10, 10)
	_, wg, _, wa := got.RGBA()
	if wg == 0 || wa == 0 {
		t.Fatalf("pixel = %v, want some green drawn onto the primary layer", got)
	}
}

func TestSoftwareRendererRejectsWrongTargetType(t *testing.T) {
	root := leafNode("root", 0, 0, 10, 10, recording.Color{A: 1})
	fb := framedefer.NewFrameBuilder(nil, geom.RectWH(0, 0, 10, 10), 10, 10, []*recording.RenderNode{root}, geom.Vec3{})

	r := NewSoftwareRenderer()
	if err := r.Render(fakeTarget{}, fb); err == nil {
		t.Fatal("Render with a non-*PixmapTarget should return an error")
	}
}

func TestSoftwareRendererRejectsNilFrameBuilder(t *testing.T) {
	r := NewSoftwareRenderer()
	if err := r.Render(NewPixmapTarget(1, 1), nil); err == nil {
		t.Fatal("Render with a nil FrameBuilder should return an error")
	}
}

func TestRegisterRendererPanicsOnNilFactory(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("RegisterRenderer(nil factory) should panic")
		}
	}()
	RegisterRenderer("nil-factory-test", nil)
}

func TestRegisterRendererPanicsOnDuplicate(t *testing.T) {
	RegisterRenderer("dup-test", func() Renderer { return NewSoftwareRenderer() })
	defer func() {
		if recover() == nil {
			t.Fatal("RegisterRenderer called twice for the same name should panic")
		}
	}()
	RegisterRenderer("dup-test", func() Renderer { return NewSoftwareRenderer() })
}

func TestNewRendererBuiltinSoftware(t *testing.T) {
	r, err := NewRenderer("software")
	if err != nil {
		t.Fatalf("NewRenderer(\"software\") returned error: %v", err)
	}
	if _, ok := r.(*SoftwareRenderer); !ok {
		t.Fatalf("NewRenderer(\"software\") = %T, want *SoftwareRenderer", r)
	}
}

func TestNewRendererUnknownName(t *testing.T) {
	if _, err := NewRenderer("does-not-exist"); err == nil {
		t.Fatal("NewRenderer with an unregistered name should return an error")
	}
}

// fakeTarget is a RenderTarget that is not a *PixmapTarget, used to
// exercise SoftwareRenderer's target-type check.
type fakeTarget struct{}

func (fakeTarget) Width() int                     { return 0 }
func (fakeTarget) Height() int                    { return 0 }
func (fakeTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (fakeTarget) TextureView() TextureView       { return nil }
func (fakeTarget) Pixels() []byte                 { return nil }
func (fakeTarget) Stride() int                    { return 0 }
