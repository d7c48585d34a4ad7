// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/gogpu/framedefer"
	"github.com/gogpu/framedefer/geom"
	"github.com/gogpu/framedefer/recording"
)

// Renderer executes a finished frame against a render target.
//
// Renderers are stateless between Render calls, allowing the same
// renderer to be used with different targets and frames.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should
// be used from a single goroutine, or external synchronization must
// be used.
type Renderer interface {
	// Render draws fb's batched layers to target.
	Render(target RenderTarget, fb *framedefer.FrameBuilder) error

	// Flush ensures all pending rendering operations are complete.
	// For SoftwareRenderer this is a no-op; a future GPU-backed
	// Renderer would submit and wait on command buffers here.
	Flush() error
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	IsGPU                bool
	SupportsAntialiasing bool
	SupportsBlendModes   bool
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer
	Capabilities() RendererCapabilities
}

// SoftwareRenderer composites a FrameBuilder's baked ops as flat,
// alpha-blended rectangles. It does not rasterize curves, text, or
// bitmaps — this is test and demo scaffolding for the render package,
// not a renderer the deferral engine depends on.
type SoftwareRenderer struct{}

// NewSoftwareRenderer creates a SoftwareRenderer.
func NewSoftwareRenderer() *SoftwareRenderer { return &SoftwareRenderer{} }

// Render walks fb.LayerBuilders() in reverse-construction order — every
// non-primary layer composited onto the primary, offscreen layers
// closest to the leaves of the save-layer tree drawn first — and fills
// each baked op's bounds with its resolved paint color.
func (r *SoftwareRenderer) Render(target RenderTarget, fb *framedefer.FrameBuilder) error {
	if fb == nil {
		return fmt.Errorf("render: nil FrameBuilder")
	}
	pixmap, ok := target.(*PixmapTarget)
	if !ok {
		return fmt.Errorf("render: SoftwareRenderer requires a *PixmapTarget, got %T", target)
	}

	layers := fb.LayerBuilders()
	for i := len(layers) - 1; i >= 1; i-- {
		drawLayer(pixmap, layers[i])
	}
	if len(layers) > 0 {
		drawLayer(pixmap, layers[0])
	}
	return nil
}

func drawLayer(pixmap *PixmapTarget, lb *framedefer.LayerBuilder) {
	for _, batch := range lb.Batches() {
		for _, op := range batch.Ops {
			fillRect(pixmap, op.Bounds(), op.Color(), op.Alpha())
		}
	}
}

func fillRect(pixmap *PixmapTarget, bounds geom.Rect, c recording.Color, alpha float64) {
	if bounds.IsEmpty() || alpha <= 0 {
		return
	}
	left, top := int(bounds.Left), int(bounds.Top)
	right, bottom := int(bounds.Right), int(bounds.Bottom)
	sr, sg, sb, sa := colorChannels(c)
	srcA := float64(sa) / 0xffff * alpha
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			dr, dg, db, da := pixmap.GetPixel(x, y).RGBA()
			pixmap.SetPixel(x, y, color.RGBA64{
				R: blendChannel(sr, dr, srcA),
				G: blendChannel(sg, dg, srcA),
				B: blendChannel(sb, db, srcA),
				A: blendChannel(sa, da, srcA),
			})
		}
	}
}

// blendChannel computes source-over compositing for one 16-bit channel.
func blendChannel(src, dst uint32, srcA float64) uint16 {
	return uint16(float64(src)*srcA + float64(dst)*(1-srcA))
}

// colorChannels widens c's unpremultiplied [0,1] float channels to the
// 16-bit range image/color uses, matching color.Color.RGBA's contract.
func colorChannels(c recording.Color) (r, g, b, a uint32) {
	clamp := func(v float64) uint32 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint32(v * 0xffff)
	}
	return clamp(c.R), clamp(c.G), clamp(c.B), clamp(c.A)
}

// Flush is a no-op for SoftwareRenderer; it performs no buffering.
func (r *SoftwareRenderer) Flush() error { return nil }

var _ Renderer = (*SoftwareRenderer)(nil)

// RendererFactory creates a new Renderer instance.
type RendererFactory func() Renderer

var (
	registryMu sync.RWMutex
	renderers  = make(map[string]RendererFactory)
)

// RegisterRenderer registers a renderer factory under name, typically
// from an init() function.
//
// RegisterRenderer panics if factory is nil or if name is already
// registered, catching duplicate registrations at program
// initialization rather than silently overwriting a renderer.
func RegisterRenderer(name string, factory RendererFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("render: RegisterRenderer factory is nil")
	}
	if _, dup := renderers[name]; dup {
		panic("render: RegisterRenderer called twice for " + name)
	}
	renderers[name] = factory
}

// NewRenderer creates a new Renderer instance by name.
func NewRenderer(name string) (Renderer, error) {
	registryMu.RLock()
	factory, ok := renderers[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("render: unknown renderer %q (forgotten import?)", name)
	}
	return factory(), nil
}

func init() {
	RegisterRenderer("software", func() Renderer { return NewSoftwareRenderer() })
}
