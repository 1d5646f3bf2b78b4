package bvh

import (
	"github.com/akmonengine/partition/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Mesh is raw triangle geometry: vertex positions and a flat list of vertex indices,
// three per triangle.
type Mesh struct {
	Positions []mgl64.Vec3
	Indices   []uint32
}

// TriangleCount returns len(Indices) / 3.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the i-th triangle of the mesh.
func (m Mesh) Triangle(i int) geometry.Triangle {
	return triangleAt(m.Positions, m.Indices[3*i:3*i+3])
}

// Validate checks that the index list is made of whole triangles and only references
// existing positions.
func (m Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return errors.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return errors.Errorf("index %d at position %d is out of range (%d vertices)", idx, i, len(m.Positions))
		}
	}
	return nil
}

func triangleAt(positions []mgl64.Vec3, tri []uint32) geometry.Triangle {
	return geometry.Triangle{
		A: positions[tri[0]],
		B: positions[tri[1]],
		C: positions[tri[2]],
	}
}

func centroid(positions []mgl64.Vec3, tri []uint32) mgl64.Vec3 {
	return positions[tri[0]].Add(positions[tri[1]]).Add(positions[tri[2]]).Mul(1.0 / 3.0)
}

// boundingVolume returns the box of every vertex referenced by indices.
func boundingVolume(positions []mgl64.Vec3, indices []uint32) geometry.AABB {
	bv := geometry.EmptyAABB()
	for _, idx := range indices {
		bv = bv.Extend(positions[idx])
	}
	return bv
}

// UnitCube returns the 8 vertex, 12 triangle cube spanning [-0.5, 0.5] on every axis.
func UnitCube() Mesh {
	return Mesh{
		Positions: []mgl64.Vec3{
			{-0.5, -0.5, -0.5},
			{0.5, -0.5, -0.5},
			{0.5, 0.5, -0.5},
			{-0.5, 0.5, -0.5},
			{-0.5, -0.5, 0.5},
			{0.5, -0.5, 0.5},
			{0.5, 0.5, 0.5},
			{-0.5, 0.5, 0.5},
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // -z
			4, 5, 6, 4, 6, 7, // +z
			0, 4, 7, 0, 7, 3, // -x
			1, 2, 6, 1, 6, 5, // +x
			0, 1, 5, 0, 5, 4, // -y
			3, 7, 6, 3, 6, 2, // +y
		},
	}
}

// GridMesh returns a flat n x n grid of unit quads on the XZ plane, two triangles per quad,
// starting at the origin.
func GridMesh(n int) Mesh {
	var m Mesh
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			m.Positions = append(m.Positions, mgl64.Vec3{float64(x), 0, float64(z)})
		}
	}

	row := uint32(n + 1)
	for z := uint32(0); z < uint32(n); z++ {
		for x := uint32(0); x < uint32(n); x++ {
			i := z*row + x
			m.Indices = append(m.Indices,
				i, i+row, i+1,
				i+1, i+row, i+row+1,
			)
		}
	}
	return m
}
