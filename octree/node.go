package octree

import "github.com/akmonengine/partition/geometry"

// Object is an externally owned entity stored in the octree. The octree links and unlinks
// objects through their Entry but never owns them.
type Object interface {
	WorldBV() geometry.AABB
	OctreeEntry() *Entry
}

// Entry is the record an Object embeds to be linked into a node's occupant list.
type Entry struct {
	node *Node
	next Object
	prev Object
}

// Node returns the node the object is linked into, nil when it is not in the octree.
func (e *Entry) Node() *Node {
	return e.node
}

// Next returns the following occupant of the same node.
func (e *Entry) Next() Object {
	return e.next
}

func (e *Entry) reset() {
	e.node = nil
	e.next = nil
	e.prev = nil
}

// Node is a cell of the octree.
type Node struct {
	code           Code
	childrenActive uint8

	first Object
	count int
}

// Code returns the locational code of the node.
func (n *Node) Code() Code {
	return n.code
}

// ChildrenActive returns the occupancy mask: bit i is set when child i exists.
func (n *Node) ChildrenActive() uint8 {
	return n.childrenActive
}

// HasChild reports whether the i-th child exists.
func (n *Node) HasChild(i int) bool {
	return n.childrenActive&(1<<uint(i)) != 0
}

// First returns the head of the occupant list.
func (n *Node) First() Object {
	return n.first
}

// Len returns the number of occupants.
func (n *Node) Len() int {
	return n.count
}

// IsEmpty reports whether the node has neither occupants nor children.
func (n *Node) IsEmpty() bool {
	return n.first == nil && n.childrenActive == 0
}

// Occupants calls fn for every occupant, stopping when fn returns false.
// fn must not link or unlink objects of this node.
func (n *Node) Occupants(fn func(Object) bool) {
	for obj := n.first; obj != nil; obj = obj.OctreeEntry().next {
		if !fn(obj) {
			return
		}
	}
}

// PushFront links obj at the head of the occupant list and points it back at n.
// It panics if obj is already linked into a node.
func (n *Node) PushFront(obj Object) {
	e := obj.OctreeEntry()
	if e.node != nil {
		panic("octree: object is already linked into a node")
	}

	e.node = n
	e.prev = nil
	e.next = n.first
	if n.first != nil {
		n.first.OctreeEntry().prev = obj
	}
	n.first = obj
	n.count++
}

// Remove unlinks obj from the occupant list. It panics if obj is not linked into n.
func (n *Node) Remove(obj Object) {
	e := obj.OctreeEntry()
	if e.node != n {
		panic("octree: object is not linked into this node")
	}

	if e.prev != nil {
		e.prev.OctreeEntry().next = e.next
	} else {
		n.first = e.next
	}
	if e.next != nil {
		e.next.OctreeEntry().prev = e.prev
	}
	e.reset()
	n.count--
}
