// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package framedefer implements a single-threaded, single-pass frame
// deferral and render-batching engine: given a tree of RenderNodes (see
// the recording subpackage) it walks each node exactly once, resolves
// every recorded drawing op against the canvas state active when it
// was recorded, and emits a set of per-layer batches a downstream
// renderer can issue with no further bookkeeping.
//
// A build is a single call to NewFrameBuilder. Internally it:
//
//  1. opens a primary LayerBuilder sized to the frame's viewport;
//  2. repaints every dirty persistent layer in the caller-supplied
//     LayerUpdateQueue, processed in reverse order so a layer's content
//     is current by the time anything that composites it is reached;
//  3. walks the root RenderNode list, applying each node's properties
//     (transform, alpha, clip) to a CanvasState save/restore stack and
//     dispatching its recorded ops into baked, batched BakedOpStates.
//
// Everything NewFrameBuilder allocates — BakedOpStates, batches, the
// canvas snapshot stack — lives in an Arena scoped to that one build;
// there is no cross-frame state. FrameBuilder.LayerBuilders returns the
// finished result for a renderer (see the render subpackage) to
// consume.
package framedefer
