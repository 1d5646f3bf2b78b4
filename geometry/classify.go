package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Classification is the position of a primitive relative to a plane or a frustum.
// Inside means on the opposite side of the normal.
type Classification int

const (
	Inside Classification = iota
	Outside
	Overlapping
)

func (c Classification) String() string {
	switch c {
	case Inside:
		return "inside"
	case Outside:
		return "outside"
	case Overlapping:
		return "overlapping"
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

// ParseClassification is the inverse of Classification.String.
func ParseClassification(s string) (Classification, error) {
	switch s {
	case "inside":
		return Inside, nil
	case "outside":
		return Outside, nil
	case "overlapping":
		return Overlapping, nil
	}
	return Overlapping, fmt.Errorf("unknown classification %q", s)
}

// ClassifyPlanePoint projects the point onto the plane normal. A projection no longer than
// thickness is Overlapping, otherwise the sign against the normal decides.
func ClassifyPlanePoint(plane Plane, point mgl64.Vec3, thickness float64) Classification {
	lenSq := plane.normalLenSqr()

	proj := plane.Normal.Mul(point.Sub(plane.Point).Dot(plane.Normal) / lenSq)
	if proj.LenSqr() <= thickness*thickness {
		return Overlapping
	}
	if proj.Dot(plane.Normal) < 0 {
		return Inside
	}
	return Outside
}

// ClassifyPlaneTriangle classifies each vertex. A unanimous result wins; a triangle
// with vertices on both sides is Overlapping; otherwise Inside wins over Outside.
func ClassifyPlaneTriangle(plane Plane, tri Triangle, thickness float64) Classification {
	results := [3]Classification{
		ClassifyPlanePoint(plane, tri.A, thickness),
		ClassifyPlanePoint(plane, tri.B, thickness),
		ClassifyPlanePoint(plane, tri.C, thickness),
	}
	if results[0] == results[1] && results[0] == results[2] {
		return results[0]
	}

	var counters [3]int
	for _, r := range results {
		counters[r]++
	}
	switch {
	case counters[Inside] > 0 && counters[Outside] > 0:
		return Overlapping
	case counters[Inside] > 0:
		return Inside
	}
	return Outside
}

// ClassifyPlaneAABB compares the plane distance of the box center against the box
// half extents projected on the normal. thickness is accepted for symmetry with the
// other classifiers and does not widen the test.
func ClassifyPlaneAABB(plane Plane, box AABB, thickness float64) Classification {
	center := box.Center()
	half := box.Max.Sub(center)

	r := half.X()*math.Abs(plane.Normal.X()) +
		half.Y()*math.Abs(plane.Normal.Y()) +
		half.Z()*math.Abs(plane.Normal.Z())
	dist := plane.Normal.Dot(center) - plane.Point.Dot(plane.Normal)

	if math.Abs(dist) <= r {
		return Overlapping
	}
	if center.Sub(plane.Point).Dot(plane.Normal) < 0 {
		return Inside
	}
	return Outside
}

// ClassifyPlaneSphere classifies the sphere center, widened by the radius.
func ClassifyPlaneSphere(plane Plane, sphere Sphere, thickness float64) Classification {
	centerClass := ClassifyPlanePoint(plane, sphere.Center, thickness)
	if centerClass == Overlapping {
		return Overlapping
	}

	distSq := sphere.Center.Sub(ClosestPointPlane(sphere.Center, plane)).LenSqr()
	if distSq-thickness*thickness <= sphere.Radius*sphere.Radius {
		return Overlapping
	}
	return centerClass
}

// ClassifyFrustumSphereNaive tests the sphere against all six planes without early exit.
func ClassifyFrustumSphereNaive(frustum Frustum, sphere Sphere) Classification {
	var results [6]Classification
	for i, p := range frustum.Planes {
		results[i] = ClassifyPlaneSphere(p, sphere, Epsilon)
	}
	return combineFrustum(results)
}

// ClassifyFrustumAABBNaive tests the box against all six planes without early exit.
func ClassifyFrustumAABBNaive(frustum Frustum, box AABB) Classification {
	var results [6]Classification
	for i, p := range frustum.Planes {
		results[i] = ClassifyPlaneAABB(p, box, Epsilon)
	}
	return combineFrustum(results)
}

// combineFrustum: any Outside wins, all Inside is Inside, anything else Overlapping.
func combineFrustum(results [6]Classification) Classification {
	var counters [3]int
	for _, r := range results {
		counters[r]++
	}
	if counters[Outside] > 0 {
		return Outside
	}
	if counters[Inside] == len(results) {
		return Inside
	}
	return Overlapping
}
