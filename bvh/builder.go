package bvh

import (
	"slices"
	"time"

	"github.com/akmonengine/partition/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// builder holds the state of one construction.
type builder struct {
	positions []mgl64.Vec3
	start     time.Time

	// Stats
	numNodes int
	numLeafs int
}

func newBuilder(positions []mgl64.Vec3) *builder {
	return &builder{
		positions: positions,
		start:     time.Now(),
	}
}

func (b *builder) elapsedMillis() int64 {
	return time.Since(b.start).Nanoseconds() / 1e6
}

// newLeaf copies indices so the leaf does not alias the mesh or a sibling's work list.
func (b *builder) newLeaf(indices []uint32) *Node {
	n := &Node{
		ID:      b.numNodes,
		Type:    Leaf,
		BV:      boundingVolume(b.positions, indices),
		Indices: slices.Clone(indices),
	}
	b.numNodes++
	b.numLeafs++
	return n
}

func (b *builder) newInternal(bv geometry.AABB, left, right *Node) *Node {
	n := &Node{
		ID:    b.numNodes,
		Type:  Internal,
		BV:    bv,
		Left:  left,
		Right: right,
	}
	b.numNodes++
	return n
}

// topDown splits every node by the plane through the mean triangle centroid, normal to the
// longest axis of the node box. Triangles whose centroid lies strictly inside the plane go
// left, the others go right. A node whose triangles cannot be separated becomes a leaf
// holding all of them.
//
// The work list is an explicit stack so pathological inputs cannot exhaust the goroutine
// stack.
func (b *builder) topDown(indices []uint32) *Node {
	if len(indices) == 0 {
		return nil
	}

	type work struct {
		indices []uint32
		slot    **Node
	}

	var root *Node
	stack := []work{{indices: indices, slot: &root}}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(w.indices) <= 3 {
			*w.slot = b.newLeaf(w.indices)
			continue
		}

		bv := boundingVolume(b.positions, w.indices)
		axis := bv.LongestAxis()

		var mean mgl64.Vec3
		count := len(w.indices) / 3
		for i := 0; i < len(w.indices); i += 3 {
			mean = mean.Add(centroid(b.positions, w.indices[i:i+3]))
		}
		mean = mean.Mul(1 / float64(count))

		var normal mgl64.Vec3
		normal[axis] = 1
		plane := geometry.Plane{Point: mean, Normal: normal}

		left := make([]uint32, 0, len(w.indices))
		right := make([]uint32, 0, len(w.indices))
		for i := 0; i < len(w.indices); i += 3 {
			tri := w.indices[i : i+3]
			if geometry.ClassifyPlanePoint(plane, centroid(b.positions, tri), geometry.Epsilon) == geometry.Inside {
				left = append(left, tri...)
			} else {
				right = append(right, tri...)
			}
		}

		if len(left) == 0 || len(right) == 0 {
			*w.slot = b.newLeaf(w.indices)
			continue
		}

		node := b.newInternal(bv, nil, nil)
		*w.slot = node
		// Right is pushed first so the left subtree is built first.
		stack = append(stack, work{indices: right, slot: &node.Right})
		stack = append(stack, work{indices: left, slot: &node.Left})
	}

	return root
}

// bottomUp starts from one leaf per triangle and repeatedly merges the pair of live nodes
// whose union has the smallest surface area. The merged node takes the lower slot and the
// last live node moves into the freed one.
func (b *builder) bottomUp(indices []uint32) *Node {
	nodes := make([]*Node, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		nodes = append(nodes, b.newLeaf(indices[i:i+3:i+3]))
	}
	if len(nodes) == 0 {
		return nil
	}

	count := len(nodes)
	for count > 1 {
		dest, src := findMergeCandidates(nodes[:count])
		merged := b.newInternal(nodes[dest].BV.Union(nodes[src].BV), nodes[dest], nodes[src])

		nodes[dest] = merged
		count--
		nodes[src] = nodes[count]
		nodes[count] = nil
	}

	return nodes[0]
}

// findMergeCandidates returns the first pair i < j, in scan order, with the smallest merged
// surface area.
func findMergeCandidates(nodes []*Node) (int, int) {
	dest, src := 0, 1
	best := -1.0
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			area := nodes[i].BV.Union(nodes[j].BV).SurfaceArea()
			if best < 0 || area < best {
				best = area
				dest, src = i, j
			}
		}
	}
	return dest, src
}
