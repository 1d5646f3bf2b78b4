// Package octree implements a linear octree: nodes are stored in a map keyed by locational
// code and hold intrusive lists of externally owned objects.
package octree

import (
	"cmp"
	"math/bits"
	"slices"

	"github.com/akmonengine/partition/geometry"
	"github.com/akmonengine/partition/log"
	"github.com/pkg/errors"
)

var logger = log.New("octree")

// Octree is a sparse octree centered on the origin. It is empty when it holds no node.
type Octree struct {
	nodes    map[Code]*Node
	rootSize uint32
	levels   uint32
}

// New returns an empty octree spanning rootSize on every axis and at most levels deep.
func New(rootSize, levels uint32) (*Octree, error) {
	if err := validate(rootSize, levels); err != nil {
		return nil, err
	}
	return &Octree{
		nodes:    make(map[Code]*Node),
		rootSize: rootSize,
		levels:   levels,
	}, nil
}

func validate(rootSize, levels uint32) error {
	if rootSize < 2 || rootSize&(rootSize-1) != 0 {
		return errors.Errorf("root size %d is not a power of two greater than 1", rootSize)
	}
	if levels < 1 {
		return errors.New("an octree needs at least one level")
	}
	sizeBits := uint32(bits.Len32(rootSize) - 1)
	if levels > sizeBits {
		return errors.Errorf("%d levels exceed log2 of the root size %d", levels, rootSize)
	}
	if levels*Dimensions+1 > 32 {
		return errors.Errorf("%d levels do not fit a 32 bit locational code", levels)
	}
	return nil
}

// RootSize returns the side of the root cell.
func (o *Octree) RootSize() uint32 {
	return o.rootSize
}

// Levels returns the maximum depth.
func (o *Octree) Levels() uint32 {
	return o.levels
}

// Len returns the number of nodes.
func (o *Octree) Len() int {
	return len(o.nodes)
}

// IsEmpty reports whether the octree has no node.
func (o *Octree) IsEmpty() bool {
	return len(o.nodes) == 0
}

// CodeOf returns the code of the smallest node fully containing bv.
func (o *Octree) CodeOf(bv geometry.AABB) Code {
	return ComputeLocationalCodeBV(bv, o.rootSize, o.levels)
}

// NodeBV returns the world box of n.
func (o *Octree) NodeBV(n *Node) geometry.AABB {
	return ComputeBV(n.code, o.rootSize)
}

// FindNode returns the node with the given code, nil if it does not exist.
func (o *Octree) FindNode(c Code) *Node {
	return o.nodes[c]
}

// FindCreateNode returns the node with the given code, adding it alone when missing.
// Ancestors are not touched, see CreateNode.
func (o *Octree) FindCreateNode(c Code) *Node {
	if n, ok := o.nodes[c]; ok {
		return n
	}
	n := &Node{code: c}
	o.nodes[c] = n
	return n
}

// FindNodeBV returns the node addressed by the code of bv.
func (o *Octree) FindNodeBV(bv geometry.AABB) *Node {
	return o.FindNode(o.CodeOf(bv))
}

// FindCreateNodeBV is FindCreateNode for the code of bv.
func (o *Octree) FindCreateNodeBV(bv geometry.AABB) *Node {
	return o.FindCreateNode(o.CodeOf(bv))
}

// CreateNode returns the node with the given code, creating it and every missing ancestor up
// to the root. Each ancestor gets the bit of the child on the path set.
func (o *Octree) CreateNode(c Code) *Node {
	if c == 0 {
		panic("octree: zero is not a locational code")
	}

	n := o.FindCreateNode(c)
	for child := c; child > RootCode; child = ParentCode(child) {
		parent := o.FindCreateNode(ParentCode(child))
		parent.childrenActive |= 1 << uint(ChildIndex(child))
	}
	return n
}

// DeleteNode removes exactly the node with the given code, without touching its relatives.
func (o *Octree) DeleteNode(c Code) {
	delete(o.nodes, c)
}

// DeleteNodeRec removes the node with the given code when it has no occupants and no
// children, then walks up clearing its bit in the parent and removing every ancestor left
// with neither occupants nor children. It stops at the first ancestor still in use.
//
// It panics if the node does not exist.
func (o *Octree) DeleteNodeRec(c Code) {
	n := o.FindNode(c)
	if n == nil {
		panic("octree: deleting a missing node " + c.String())
	}
	if !n.IsEmpty() {
		return
	}

	o.DeleteNode(c)
	for child := c; child > RootCode; child = ParentCode(child) {
		parent := o.FindNode(ParentCode(child))
		if parent == nil {
			return
		}
		parent.childrenActive &^= 1 << uint(ChildIndex(child))
		if !parent.IsEmpty() {
			return
		}
		o.DeleteNode(parent.code)
	}
}

// Destroy removes every node. Occupants are unlinked and can be inserted again.
func (o *Octree) Destroy() {
	o.orphan()
}

func (o *Octree) orphan() []Object {
	var orphans []Object
	for c, n := range o.nodes {
		for obj := n.first; obj != nil; {
			e := obj.OctreeEntry()
			next := e.next
			e.reset()
			orphans = append(orphans, obj)
			obj = next
		}
		n.first = nil
		n.count = 0
		delete(o.nodes, c)
	}
	return orphans
}

// Reconfigure changes the root size and depth. Every node is dropped and the objects they
// held are unlinked and returned, so they can be inserted again.
func (o *Octree) Reconfigure(rootSize, levels uint32) ([]Object, error) {
	if err := validate(rootSize, levels); err != nil {
		return nil, errors.Wrap(err, "reconfiguring octree")
	}

	orphans := o.orphan()
	o.rootSize = rootSize
	o.levels = levels
	logger.Infof("octree reconfigured to size %d with %d levels, %d objects orphaned", rootSize, levels, len(orphans))
	return orphans, nil
}

// Range calls fn for every node, in no particular order, until fn returns false.
// fn must not add or delete nodes.
func (o *Octree) Range(fn func(*Node) bool) {
	for _, n := range o.nodes {
		if !fn(n) {
			return
		}
	}
}

// NodesAtLevel returns the existing nodes of the given depth in code order.
// A negative level returns every node.
func (o *Octree) NodesAtLevel(level int) []*Node {
	var nodes []*Node
	o.Range(func(n *Node) bool {
		if level < 0 || n.code.Depth() == level {
			nodes = append(nodes, n)
		}
		return true
	})
	slices.SortFunc(nodes, func(a, b *Node) int {
		return cmp.Compare(a.code, b.code)
	})
	return nodes
}

// Insert links obj into the node addressed by its world box, creating the node and its
// ancestors as needed. It panics if obj is already in a node.
func (o *Octree) Insert(obj Object) *Node {
	n := o.CreateNode(o.CodeOf(obj.WorldBV()))
	n.PushFront(obj)
	return n
}

// Update inserts obj if it is not linked yet, or moves it when its world box now maps to
// another node. The node it leaves is deleted with its empty ancestors. It reports whether
// obj changed node.
func (o *Octree) Update(obj Object) bool {
	e := obj.OctreeEntry()
	if e.node == nil {
		o.Insert(obj)
		return true
	}

	c := o.CodeOf(obj.WorldBV())
	if e.node.code == c {
		return false
	}

	o.Remove(obj)
	o.Insert(obj)
	return true
}

// Remove unlinks obj from its node and deletes the node with its empty ancestors.
// It does nothing if obj is not in the octree.
func (o *Octree) Remove(obj Object) {
	old := obj.OctreeEntry().node
	if old == nil {
		return
	}
	old.Remove(obj)
	if old.IsEmpty() {
		o.DeleteNodeRec(old.code)
	}
}

// Walk visits node c and its existing descendants depth first, children in index order.
// Returning false from fn skips the descendants of that node.
func (o *Octree) Walk(c Code, fn func(*Node) bool) {
	n := o.FindNode(c)
	if n == nil {
		return
	}

	stack := []*Node{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		for i := childMask; i >= 0; i-- {
			if !n.HasChild(i) {
				continue
			}
			if child := o.nodes[ChildCode(n.code, i)]; child != nil {
				stack = append(stack, child)
			}
		}
	}
}
