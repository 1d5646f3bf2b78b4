// Package bvh builds bounding volume hierarchies of axis aligned boxes over triangle meshes.
package bvh

import (
	"github.com/akmonengine/partition/geometry"
	"github.com/akmonengine/partition/log"
	"github.com/go-gl/mathgl/mgl64"
)

// Tree is a binary hierarchy of boxes over the triangles of a mesh.
// The zero value is an empty tree.
type Tree struct {
	root      *Node
	method    Method
	nodeCount int
	positions []mgl64.Vec3
}

var logger = log.New("bvh")

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Construct builds the hierarchy over mesh with the given method.
//
// Asking for the method the tree was already built with is a no-op, even for another mesh.
// An unknown method logs a warning and leaves the tree untouched. Otherwise the previous
// hierarchy is cleared first. Construct panics if the mesh fails Validate.
func (t *Tree) Construct(mesh Mesh, method Method) {
	if method == t.method {
		return
	}
	if !method.valid() {
		logger.Warningf("ignoring construction with unknown method %s", method)
		return
	}
	if err := mesh.Validate(); err != nil {
		panic(err)
	}

	t.Clear()
	t.method = method
	t.positions = mesh.Positions

	b := newBuilder(mesh.Positions)
	switch method {
	case TopDown:
		t.root = b.topDown(mesh.Indices)
	case BottomUp:
		t.root = b.bottomUp(mesh.Indices)
	case Insertion:
		logger.Infof("insertion construction is not supported, tree left empty")
	}
	t.nodeCount = b.numNodes

	logger.Debugf(
		"BVH %s build time: %d ms, triangles: %d, depth: %d, nodes: %d, leafs: %d",
		method, b.elapsedMillis(), mesh.TriangleCount(), t.Depth(), b.numNodes, b.numLeafs,
	)
}

// Root returns the root node, nil when the tree is empty.
func (t *Tree) Root() *Node {
	return t.root
}

// IsEmpty reports whether the tree has no root.
func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// BuildMethod returns the method of the last construction, NotConstructed after Clear.
func (t *Tree) BuildMethod() Method {
	return t.method
}

// NodeCount returns the number of live nodes.
func (t *Tree) NodeCount() int {
	return t.nodeCount
}

// Clear releases every node, children before parents, and resets the build method so the
// tree can be constructed again with any method.
func (t *Tree) Clear() {
	if t.root != nil {
		type frame struct {
			node    *Node
			visited bool
		}
		stack := []frame{{node: t.root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if !top.visited {
				top.visited = true
				n := top.node
				if n.Right != nil {
					stack = append(stack, frame{node: n.Right})
				}
				if n.Left != nil {
					stack = append(stack, frame{node: n.Left})
				}
				continue
			}

			n := top.node
			stack = stack[:len(stack)-1]
			n.Left, n.Right = nil, nil
			n.Indices = nil
			t.nodeCount--
		}
	}

	t.root = nil
	t.nodeCount = 0
	t.method = NotConstructed
	t.positions = nil
}

// Walk visits the nodes in pre-order, left before right. Returning false from fn skips the
// children of that node.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t.root == nil {
		return
	}

	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.node, f.depth) {
			continue
		}
		if f.node.Right != nil {
			stack = append(stack, frame{f.node.Right, f.depth + 1})
		}
		if f.node.Left != nil {
			stack = append(stack, frame{f.node.Left, f.depth + 1})
		}
	}
}

// Leaves returns the leaves in left to right order.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	t.Walk(func(n *Node, _ int) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// Depth returns the number of edges on the longest root to leaf path, -1 for an empty tree.
func (t *Tree) Depth() int {
	depth := -1
	t.Walk(func(_ *Node, d int) bool {
		if d > depth {
			depth = d
		}
		return true
	})
	return depth
}

// Hit is the closest triangle found by Raycast.
type Hit struct {
	T        float64
	Point    mgl64.Vec3
	Triangle geometry.Triangle
	Leaf     *Node
}

// Raycast returns the closest triangle hit by ray, skipping subtrees whose box is missed
// or lies beyond the current best hit.
func (t *Tree) Raycast(ray geometry.Ray) (Hit, bool) {
	best := Hit{T: geometry.NoHit}
	found := false

	t.Walk(func(n *Node, _ int) bool {
		tBox := geometry.IntersectionRayAABB(ray, n.BV)
		if tBox < 0 || (found && tBox > best.T) {
			return false
		}
		if !n.IsLeaf() {
			return true
		}

		for i := 0; i+2 < len(n.Indices); i += 3 {
			tri := triangleAt(t.positions, n.Indices[i:i+3])
			tHit := geometry.IntersectionRayTriangle(ray, tri)
			if tHit < 0 || (found && tHit >= best.T) {
				continue
			}
			best = Hit{T: tHit, Point: ray.At(tHit), Triangle: tri, Leaf: n}
			found = true
		}
		return false
	})

	return best, found
}
