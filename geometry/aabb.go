package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box.
// Min must be lower or equal to Max on every axis; this is maintained by the caller.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB returns the box spanning min and max.
func NewAABB(min, max mgl64.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that any Union or Extend will overwrite.
func EmptyAABB() AABB {
	return AABB{
		Min: mgl64.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: mgl64.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

// AABBFromPoints returns the smallest box containing every point.
func AABBFromPoints(points ...mgl64.Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size returns the full extent of the box on each axis.
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// HalfExtents returns half of Size.
func (a AABB) HalfExtents() mgl64.Vec3 {
	return a.Max.Sub(a.Center())
}

// SurfaceArea returns 2*(xy + xz + yz).
func (a AABB) SurfaceArea() float64 {
	s := a.Size()
	return 2 * (s.X()*s.Y() + s.X()*s.Z() + s.Y()*s.Z())
}

// LongestAxis returns the index of the largest extent. Ties go to the lowest index.
func (a AABB) LongestAxis() int {
	s := a.Size()
	axis := 0
	for i := 1; i < 3; i++ {
		if s[i] > s[axis] {
			axis = i
		}
	}
	return axis
}

// Extend returns the box grown to include p.
func (a AABB) Extend(p mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		a.Min[i] = math.Min(a.Min[i], p[i])
		a.Max[i] = math.Max(a.Max[i], p[i])
	}
	return a
}

// Union returns the smallest box containing both a and other.
func (a AABB) Union(other AABB) AABB {
	for i := 0; i < 3; i++ {
		a.Min[i] = math.Min(a.Min[i], other.Min[i])
		a.Max[i] = math.Max(a.Max[i], other.Max[i])
	}
	return a
}

// Contains reports whether other lies entirely inside a.
func (a AABB) Contains(other AABB) bool {
	return a.ContainsPoint(other.Min) && a.ContainsPoint(other.Max)
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return IntersectionPointAABB(point, a)
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	return IntersectionAABBAABB(a, other)
}
