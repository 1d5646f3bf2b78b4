// Package geometry implements the primitive value types shared by the BVH and the octree
// (AABB, plane, sphere, triangle, ray, frustum, segment) together with the classification,
// intersection and closest-point routines that operate on them.
//
// All routines are pure and share a single tolerance, Epsilon.
package geometry

import "math"

// Epsilon is the tolerance used by every comparison in this package.
const Epsilon = 1e-6

// NoHit is returned by the ray intersection routines when there is no intersection.
// Callers must treat any negative value as a miss.
const NoHit = -1.0

// AreEqual reports whether x and y are within Epsilon of each other.
func AreEqual(x, y float64) bool {
	return x <= y+Epsilon && x >= y-Epsilon
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
