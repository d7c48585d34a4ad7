// Package geom provides the geometric value types shared by the deferral
// engine and its collaborators: a 4x4 transform, axis-aligned rectangles,
// 3-vectors (used for the light position), and a clip region kept as one
// conservative bounding rectangle, supporting the six region combine operators the engine's
// CanvasState exposes.
//
// These types mirror the style of the teacher library's own 2D Matrix
// (recording/matrix.go) and Rect (scene/encoding.go) but are extended to
// the 4x4, 3D-aware shapes the frame deferral engine's snapshot stack
// requires (world transform, light position, z-ordering).
package geom
