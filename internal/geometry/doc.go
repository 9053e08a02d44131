// Package geometry implements the placement math behind autorig.
//
// Contents
//
//   - Centroid of a vertex-selection point set (joint placement)
//   - SpanPoints, the even in-between distribution used by the spine chain
//   - Mirror, the dominant-axis mirroring rule for limb joints
//
// # Notes
//
// All functions are pure and operate on domain.Vector3 values. Centroid
// accumulates in float64 so large selections do not drift in float32.
package geometry
