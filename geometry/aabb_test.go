package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// AABB Utility Function Tests
// =============================================================================

func TestAABBOverlaps_Separated(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AABB
		aabb2 AABB
	}{
		{
			name:  "Separated on X axis (positive)",
			aabb1: AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2: AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}},
		},
		{
			name:  "Separated on Y axis (negative)",
			aabb1: AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2: AABB{Min: mgl64.Vec3{0, -2, 0}, Max: mgl64.Vec3{1, -1, 1}},
		},
		{
			name:  "Separated on Z axis only",
			aabb1: AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2: AABB{Min: mgl64.Vec3{0.5, 0.5, 2}, Max: mgl64.Vec3{1.5, 1.5, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IntersectionAABBAABB(tt.aabb1, tt.aabb2) {
				t.Errorf("AABBs should not overlap")
			}
			if IntersectionAABBAABB(tt.aabb2, tt.aabb1) {
				t.Errorf("AABBs should not overlap (symmetry test)")
			}
		})
	}
}

func TestAABBOverlaps_Overlapping(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AABB
		aabb2 AABB
	}{
		{
			name:  "Complete overlap (identical)",
			aabb1: AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2: AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
		},
		{
			name:  "Partial overlap on all axes",
			aabb1: AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}},
			aabb2: AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{3, 3, 3}},
		},
		{
			name:  "Complete containment",
			aabb1: AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{10, 10, 10}},
			aabb2: AABB{Min: mgl64.Vec3{2, 2, 2}, Max: mgl64.Vec3{3, 3, 3}},
		},
		{
			name:  "Face touching",
			aabb1: AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2: AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.aabb1.Overlaps(tt.aabb2) {
				t.Errorf("AABBs should overlap")
			}
			if !tt.aabb2.Overlaps(tt.aabb1) {
				t.Errorf("AABBs should overlap (symmetry test)")
			}
		})
	}
}

func TestAABBOverlaps_Reflexivity(t *testing.T) {
	boxes := []AABB{
		{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
		{Min: mgl64.Vec3{-5, -3, -1}, Max: mgl64.Vec3{-4, 7, 2}},
		{Min: mgl64.Vec3{100, 100, 100}, Max: mgl64.Vec3{100.5, 101, 100.25}},
	}

	for _, box := range boxes {
		if !IntersectionAABBAABB(box, box) {
			t.Errorf("box %v should overlap itself", box)
		}
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"center", mgl64.Vec3{0, 0, 0}, true},
		{"corner", mgl64.Vec3{1, 1, 1}, true},
		{"face", mgl64.Vec3{-1, 0, 0}, true},
		{"outside x", mgl64.Vec3{1.01, 0, 0}, false},
		{"outside z", mgl64.Vec3{0, 0, -2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.ContainsPoint(tt.point); got != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestAABBHelpers(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 2, 3}}

	if got := box.Center(); got != (mgl64.Vec3{0.5, 1, 1.5}) {
		t.Errorf("Center() = %v, want {0.5 1 1.5}", got)
	}
	if got := box.HalfExtents(); got != (mgl64.Vec3{0.5, 1, 1.5}) {
		t.Errorf("HalfExtents() = %v, want {0.5 1 1.5}", got)
	}
	// 2 * (1*2 + 1*3 + 2*3)
	if got := box.SurfaceArea(); got != 22 {
		t.Errorf("SurfaceArea() = %v, want 22", got)
	}
	if got := box.LongestAxis(); got != 2 {
		t.Errorf("LongestAxis() = %v, want 2", got)
	}

	other := AABB{Min: mgl64.Vec3{-1, 1, 1}, Max: mgl64.Vec3{0.5, 5, 2}}
	union := box.Union(other)
	want := AABB{Min: mgl64.Vec3{-1, 0, 0}, Max: mgl64.Vec3{1, 5, 3}}
	if union != want {
		t.Errorf("Union() = %v, want %v", union, want)
	}
	if !union.Contains(box) || !union.Contains(other) {
		t.Errorf("Union() should contain both inputs")
	}
}

func TestAABBFromPoints(t *testing.T) {
	box := AABBFromPoints(
		mgl64.Vec3{1, -2, 3},
		mgl64.Vec3{-1, 4, 0},
		mgl64.Vec3{0, 0, 5},
	)
	want := AABB{Min: mgl64.Vec3{-1, -2, 0}, Max: mgl64.Vec3{1, 4, 5}}
	if box != want {
		t.Errorf("AABBFromPoints() = %v, want %v", box, want)
	}
}
