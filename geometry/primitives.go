package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is defined by a point lying on it and a normal.
// The normal does not need to be unit length but must not be zero.
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// normalLenSqr returns |Normal|² and panics on a zero normal.
func (p Plane) normalLenSqr() float64 {
	lenSq := p.Normal.LenSqr()
	if AreEqual(lenSq, 0) {
		panic("geometry: plane normal has zero length")
	}
	return lenSq
}

// Sphere is a center and a radius.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Triangle is three vertices in counter clockwise order.
type Triangle struct {
	A, B, C mgl64.Vec3
}

// Centroid returns the average of the three vertices.
func (t Triangle) Centroid() mgl64.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// Normal returns the (non normalized) face normal (B-A)x(C-A).
func (t Triangle) Normal() mgl64.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// AABB returns the bounding box of the triangle.
func (t Triangle) AABB() AABB {
	return AABBFromPoints(t.A, t.B, t.C)
}

// Ray is an origin and a direction. The direction is not required to be normalized,
// ray parameters are expressed in multiples of it.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns Origin + t*Direction.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Frustum planes, in the order they are stored.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum is six planes whose normals point outwards.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum builds a frustum from its six planes.
func NewFrustum(left, right, bottom, top, near, far Plane) Frustum {
	return Frustum{Planes: [6]Plane{left, right, bottom, top, near, far}}
}

// Segment is the line segment between two endpoints.
type Segment struct {
	P0, P1 mgl64.Vec3
}

// At returns the endpoint i (0 or 1).
func (s Segment) At(i int) mgl64.Vec3 {
	switch i {
	case 0:
		return s.P0
	case 1:
		return s.P1
	}
	panic(fmt.Sprintf("geometry: segment endpoint %d out of range", i))
}

// Length returns the distance between both endpoints.
func (s Segment) Length() float64 {
	return s.P1.Sub(s.P0).Len()
}
