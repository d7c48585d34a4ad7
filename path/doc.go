// Package path provides the vector path type the deferral engine uses
// for outlines, reveal-clips, and clip-to-clip-bounds shapes, along with
// the boolean intersection operation shadow casting needs to combine
// them into a single caster path.
//
// The Path type and its flattening/bounds/winding helpers are adapted
// from the teacher library's own path.go/path_ops.go/curve.go; the
// boolean Intersect operation is new, grounded on the same corpus's
// flattening machinery plus a Sutherland-Hodgman polygon clip (valid
// here because every clip operand the engine ever intersects against —
// a reveal-clip or a clip-bounds rect/round-rect — is convex).
package path
