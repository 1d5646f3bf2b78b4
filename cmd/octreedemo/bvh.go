package main

import (
	"fmt"

	"github.com/akmonengine/partition/bvh"
	"github.com/akmonengine/partition/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jedib0t/go-pretty/v6/table"
)

type bvhRow struct {
	method bvh.Method
	nodes  int
	leaves int
	depth  int
	root   geometry.AABB
	hit    float64
}

// probeRay points at the middle of the mesh box from outside, along -Y for flat meshes and
// along +X otherwise.
func probeRay(mesh bvh.Mesh) geometry.Ray {
	bv := geometry.AABBFromPoints(mesh.Positions...)
	center := bv.Center()
	if geometry.AreEqual(bv.Size().Y(), 0) {
		return geometry.Ray{Origin: center.Add(mgl64.Vec3{0.25, 10, 0.25}), Direction: mgl64.Vec3{0, -1, 0}}
	}
	return geometry.Ray{Origin: mgl64.Vec3{bv.Min.X() - 5, center.Y(), center.Z()}, Direction: mgl64.Vec3{1, 0, 0}}
}

// buildReport constructs mesh with every build method and probes each tree with a ray.
func buildReport(mesh bvh.Mesh) []bvhRow {
	ray := probeRay(mesh)
	tree := bvh.NewTree()

	var rows []bvhRow
	for _, method := range []bvh.Method{bvh.TopDown, bvh.BottomUp} {
		tree.Construct(mesh, method)

		row := bvhRow{
			method: method,
			nodes:  tree.NodeCount(),
			leaves: len(tree.Leaves()),
			depth:  tree.Depth(),
			hit:    geometry.NoHit,
		}
		if root := tree.Root(); root != nil {
			row.root = root.BV
		}
		if hit, ok := tree.Raycast(ray); ok {
			row.hit = hit.T
		}
		rows = append(rows, row)
	}
	tree.Clear()
	return rows
}

func renderBVHReport(title string, rows []bvhRow) string {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Method", "Nodes", "Leaves", "Depth", "Root min", "Root max", "Ray hit"})
	for _, r := range rows {
		hit := "miss"
		if r.hit >= 0 {
			hit = fmt.Sprintf("%.3f", r.hit)
		}
		t.AppendRow(table.Row{r.method, r.nodes, r.leaves, r.depth, formatVec(r.root.Min), formatVec(r.root.Max), hit})
	}
	return t.Render()
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}
