// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// TextureView is the GPU-side handle a RenderTarget exposes once a real
// GPU backend is wired in. The deferral engine never creates one itself
// (§1 Non-goal: "managing GPU resources") — it exists so a RenderTarget
// has a typed place to carry it for a downstream GPU renderer.
type TextureView interface {
	Destroy()
}

// RenderTarget defines where a Renderer's output goes.
//
// A RenderTarget is an abstraction over different rendering
// destinations; this repository only implements the CPU-backed
// PixmapTarget and LayeredPixmapTarget, but the interface carries gputypes.TextureFormat and
// TextureView so a GPU-backed implementation can be dropped in later
// without changing the Renderer contract.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// TextureView returns the GPU texture view for this target.
	// Returns nil for CPU-only targets.
	TextureView() TextureView

	// Pixels returns direct access to pixel data.
	// Returns nil for GPU-only targets.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PixmapTarget is a CPU-backed render target using *image.RGBA. It is
// the target SoftwareRenderer composites the deferral engine's batched
// ops onto.
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render
// target. The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

func (t *PixmapTarget) Width() int  { return t.img.Bounds().Dx() }
func (t *PixmapTarget) Height() int { return t.img.Bounds().Dy() }

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TextureView returns nil as this is a CPU-only target.
func (t *PixmapTarget) TextureView() TextureView { return nil }

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte { return t.img.Pix }

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int { return t.img.Stride }

// Image returns the underlying *image.RGBA. The returned image shares
// memory with the target.
func (t *PixmapTarget) Image() *image.RGBA { return t.img }

// SetPixel writes c to the pixel at (x, y), converting it to the
// target's RGBA color model. Out-of-bounds coordinates are ignored.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	if !image.Pt(x, y).In(t.img.Bounds()) {
		return
	}
	t.img.Set(x, y, c)
}

// GetPixel returns the color at (x, y).
func (t *PixmapTarget) GetPixel(x, y int) color.Color {
	return t.img.RGBAAt(x, y)
}

// Clear fills the entire target with c.
func (t *PixmapTarget) Clear(c color.Color) {
	r, g, b, a := c.RGBA()
	//nolint:gosec // G115: mask ensures no overflow
	rgba := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	bounds := t.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			t.img.SetRGBA(x, y, rgba)
		}
	}
}

// Ensure PixmapTarget implements RenderTarget.
var _ RenderTarget = (*PixmapTarget)(nil)
