// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render is the downstream collaborator a finished
// framedefer.FrameBuilder hands its frame to. It does not rasterize
// curves or manage real GPU resources: it walks the builder's
// LayerBuilders in the documented reverse-construction order and
// composites flat-colored, alpha-blended rectangles for each baked op
// onto a RenderTarget. That is enough to prove batch order and layer
// order end to end without attempting real rendering.
//
// # Core types
//
//   - RenderTarget: where a Renderer's output goes. PixmapTarget wraps
//     an *image.RGBA; LayeredPixmapTarget also implements it.
//   - LayeredPixmapTarget: a RenderTarget that also exposes secondary,
//     z-ordered offscreen buffers, mirroring how a FrameBuilder's
//     non-primary LayerBuilders are offscreen targets composited back
//     onto the primary layer.
//   - Renderer: executes a finished frame against a RenderTarget.
//     SoftwareRenderer is the only implementation.
//
// # Usage
//
//	fb := framedefer.NewFrameBuilder(queue, clip, w, h, roots, lightCenter)
//	target := render.NewPixmapTarget(w, h)
//	renderer := render.NewSoftwareRenderer()
//	if err := renderer.Render(target, fb); err != nil {
//	    log.Fatal(err)
//	}
//	img := target.Image()
package render
