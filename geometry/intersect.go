package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// IntersectionPointSphere reports whether point lies inside or on the sphere.
func IntersectionPointSphere(point mgl64.Vec3, sphere Sphere) bool {
	return point.Sub(sphere.Center).LenSqr() <= sphere.Radius*sphere.Radius
}

// IntersectionPointAABB reports whether point lies inside or on the box.
func IntersectionPointAABB(point mgl64.Vec3, box AABB) bool {
	for i := 0; i < 3; i++ {
		if point[i] < box.Min[i] || point[i] > box.Max[i] {
			return false
		}
	}
	return true
}

// IntersectionPointTriangle reports whether a point coplanar with tri lies inside it.
// The cross products of the point-to-vertex vectors must all point the same way.
// A zero cross product (point on an edge line or on a vertex) counts as inside.
func IntersectionPointTriangle(point mgl64.Vec3, tri Triangle) bool {
	pa := tri.A.Sub(point)
	pb := tri.B.Sub(point)
	pc := tri.C.Sub(point)

	c1 := pa.Cross(pb)
	c2 := pb.Cross(pc)
	if c1.Dot(c2) < 0 {
		return false
	}
	c3 := pc.Cross(pa)
	return c1.Dot(c3) >= 0
}

// IntersectionSphereSphere is a point-in-sphere test with the summed radius.
func IntersectionSphereSphere(s1, s2 Sphere) bool {
	return IntersectionPointSphere(s2.Center, Sphere{Center: s1.Center, Radius: s1.Radius + s2.Radius})
}

// IntersectionAABBAABB rejects on the first separating axis. Touching boxes intersect.
func IntersectionAABBAABB(a, b AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] > a.Max[i] || b.Max[i] < a.Min[i] {
			return false
		}
	}
	return true
}

// IntersectionRayPlane returns the ray parameter of the hit, or NoHit when the ray is
// parallel to the plane or the plane is behind the origin.
func IntersectionRayPlane(ray Ray, plane Plane) float64 {
	dirDotN := ray.Direction.Dot(plane.Normal)
	if AreEqual(dirDotN, 0) {
		return NoHit
	}

	t := (plane.Point.Dot(plane.Normal) - ray.Origin.Dot(plane.Normal)) / dirDotN
	if t < 0 {
		return NoHit
	}
	return t
}

// IntersectionRayAABB uses the slab method. It returns the entry parameter, 0 when the
// origin is inside the box, or NoHit.
func IntersectionRayAABB(ray Ray, box AABB) float64 {
	tMin := 0.0
	tMax := math.MaxFloat64

	for i := 0; i < 3; i++ {
		if AreEqual(ray.Direction[i], 0) {
			if ray.Origin[i] < box.Min[i] || ray.Origin[i] > box.Max[i] {
				return NoHit
			}
			continue
		}

		tEnter := (box.Min[i] - ray.Origin[i]) / ray.Direction[i]
		tExit := (box.Max[i] - ray.Origin[i]) / ray.Direction[i]
		if tEnter > tExit {
			tEnter, tExit = tExit, tEnter
		}
		tMin = math.Max(tMin, tEnter)
		tMax = math.Min(tMax, tExit)
		if tMin > tMax {
			return NoHit
		}
	}

	if tMin > 0 {
		return tMin
	}
	return 0
}

// IntersectionRaySphere solves the ray/sphere quadratic.
//
// No real root or two negative roots is a miss. A tangent ray returns its root when it is
// not behind the origin. When exactly one root is negative the origin is inside the sphere
// and 0 is returned. Otherwise the smaller root is returned.
func IntersectionRaySphere(ray Ray, sphere Sphere) float64 {
	a := ray.Direction.LenSqr()
	if AreEqual(a, 0) {
		return NoHit
	}

	oc := ray.Origin.Sub(sphere.Center)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.LenSqr() - sphere.Radius*sphere.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return NoHit
	}

	sq := math.Sqrt(disc)
	t1 := (-b + sq) / (2 * a)
	t2 := (-b - sq) / (2 * a)

	if AreEqual(t1, t2) {
		if t1 >= 0 {
			return t1
		}
		return NoHit
	}

	if t1 < 0 && t2 < 0 {
		return NoHit
	}
	if t1 < 0 || t2 < 0 {
		return 0
	}
	return math.Min(t1, t2)
}

// IntersectionRayTriangle hits the supporting plane then checks the hit point.
// Only a collapsed triangle, with an exactly zero normal, is rejected up front.
func IntersectionRayTriangle(ray Ray, tri Triangle) float64 {
	normal := tri.Normal()
	if normal == (mgl64.Vec3{}) {
		return NoHit
	}

	t := IntersectionRayPlane(ray, Plane{Point: tri.A, Normal: normal})
	if t < 0 {
		return NoHit
	}
	if IntersectionPointTriangle(ray.At(t), tri) {
		return t
	}
	return NoHit
}
