// Package recording provides the recorded-op data model the frame
// deferral engine consumes: RenderNode, DisplayList, the closed
// RecordedOp variant set, Paint, and the mutable Properties a node
// carries between frames.
//
// This is the teacher library's own recording package reshaped for a
// retained tree rather than a flat command stream: where the teacher's
// Recorder built a Cairo-style command list consumed immediately by a
// Playback, a RenderNode here owns a DisplayList of RecordedOps grouped
// into chunks, and nodes reference each other by index the way
// original_source/libs/hwui/RecordingCanvas.h describes. The
// ResourcePool stores paths and images in plain slices addressed by
// index references, with no reference counting; RecordedOps carry those
// references.
package recording
