package bvh

import "github.com/akmonengine/partition/geometry"

// NodeType tells internal nodes and leaves apart.
type NodeType int

const (
	Internal NodeType = iota
	Leaf
)

func (t NodeType) String() string {
	if t == Leaf {
		return "leaf"
	}
	return "internal"
}

// Node is a node of the hierarchy. It exclusively owns its children.
// Leaves hold the vertex indices of their triangles, three per triangle.
type Node struct {
	ID      int
	Type    NodeType
	BV      geometry.AABB
	Indices []uint32
	Left    *Node
	Right   *Node
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Type == Leaf
}

// TriangleCount returns the number of triangles held by a leaf.
func (n *Node) TriangleCount() int {
	return len(n.Indices) / 3
}
