package geometry

import "github.com/go-gl/mathgl/mgl64"

// ClosestPointPlane projects point onto the plane.
func ClosestPointPlane(point mgl64.Vec3, plane Plane) mgl64.Vec3 {
	lenSq := plane.normalLenSqr()
	return point.Sub(plane.Normal.Mul(point.Sub(plane.Point).Dot(plane.Normal) / lenSq))
}

// ClosestSegmentSegment returns the shortest segment joining s1 and s2. Its P0 lies on s1
// and its P1 on s2.
//
// Zero length inputs are treated as points. For parallel segments the parameter on s1 is
// fixed at its first endpoint and the parameter on s2 follows from it.
func ClosestSegmentSegment(s1, s2 Segment) Segment {
	d1 := s1.P1.Sub(s1.P0)
	d2 := s2.P1.Sub(s2.P0)
	r := s1.P0.Sub(s2.P0)

	a := d1.LenSqr()
	e := d2.LenSqr()
	f := d2.Dot(r)

	if AreEqual(a, 0) && AreEqual(e, 0) {
		return Segment{P0: s1.P0, P1: s2.P0}
	}

	var s, t float64
	switch {
	case AreEqual(a, 0):
		s = 0
		t = clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if AreEqual(e, 0) {
			t = 0
			s = clamp(-c/a, 0, 1)
			break
		}

		b := d1.Dot(d2)
		denom := a*e - b*b
		if !AreEqual(denom, 0) {
			s = clamp((b*f-c*e)/denom, 0, 1)
		}

		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = clamp((b-c)/a, 0, 1)
		}
	}

	return Segment{P0: s1.P0.Add(d1.Mul(s)), P1: s2.P0.Add(d2.Mul(t))}
}
