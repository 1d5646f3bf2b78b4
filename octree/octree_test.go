package octree

import (
	"testing"

	"github.com/akmonengine/partition/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type box struct {
	name  string
	bv    geometry.AABB
	entry Entry
}

func (b *box) WorldBV() geometry.AABB {
	return b.bv
}

func (b *box) OctreeEntry() *Entry {
	return &b.entry
}

func newOctree(t *testing.T) *Octree {
	t.Helper()
	o, err := New(128, 3)
	require.NoError(t, err)
	return o
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		rootSize uint32
		levels   uint32
		wantErr  bool
	}{
		{"default", 128, 3, false},
		{"deepest", 128, 7, false},
		{"largest", 1 << 31, 10, false},
		{"not a power of two", 100, 3, true},
		{"too small", 1, 1, true},
		{"no level", 128, 0, true},
		{"deeper than the root size", 128, 8, true},
		{"code overflow", 1 << 31, 11, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := New(tt.rootSize, tt.levels)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, o)
				return
			}
			require.NoError(t, err)
			assert.True(t, o.IsEmpty())
			assert.Equal(t, tt.rootSize, o.RootSize())
			assert.Equal(t, tt.levels, o.Levels())
		})
	}
}

func TestCreateNodeActivatesAncestors(t *testing.T) {
	o := newOctree(t)
	leaf := Code(0b1111000000)

	n := o.CreateNode(leaf)
	require.NotNil(t, n)
	assert.Same(t, n, o.FindNode(leaf))
	assert.Equal(t, 4, o.Len())

	for c := leaf; c != RootCode; c = ParentCode(c) {
		parent := o.FindNode(ParentCode(c))
		require.NotNil(t, parent, "parent of %v", c)
		assert.True(t, parent.HasChild(ChildIndex(c)))
	}
	assert.Equal(t, uint8(1<<7), o.FindNode(RootCode).ChildrenActive())

	assert.Same(t, n, o.CreateNode(leaf))
	assert.Equal(t, 4, o.Len())

	o.CreateNode(leaf | 1)
	assert.Equal(t, 5, o.Len())
	assert.Equal(t, uint8(0b11), o.FindNode(0b1111000).ChildrenActive())
}

func TestDeleteNodeRec(t *testing.T) {
	o := newOctree(t)
	a := Code(0b1111000000)
	b := Code(0b1111000001)
	o.CreateNode(a)
	o.CreateNode(b)

	o.DeleteNodeRec(b)
	assert.Nil(t, o.FindNode(b))
	assert.Equal(t, 4, o.Len())
	assert.Equal(t, uint8(0b1), o.FindNode(0b1111000).ChildrenActive())

	o.DeleteNodeRec(a)
	assert.True(t, o.IsEmpty())
}

func TestDeleteNodeRecKeepsNodesInUse(t *testing.T) {
	o := newOctree(t)
	parent := Code(0b1111000)
	child := Code(0b1111000000)
	o.CreateNode(child)

	o.DeleteNodeRec(parent)
	assert.Equal(t, 4, o.Len())

	occupant := &box{bv: cube(1, 62)}
	o.Insert(occupant)
	assert.Equal(t, Code(0b1111), occupant.entry.Node().Code())

	o.DeleteNodeRec(child)
	assert.Nil(t, o.FindNode(child))
	assert.Nil(t, o.FindNode(parent))
	octant := o.FindNode(0b1111)
	require.NotNil(t, octant)
	assert.Zero(t, octant.ChildrenActive())
	assert.True(t, o.FindNode(RootCode).HasChild(7))
	assert.Equal(t, 2, o.Len())

	o.DeleteNodeRec(0b1111)
	assert.Equal(t, 2, o.Len())
}

func TestDeleteNodeRecMissingNodePanics(t *testing.T) {
	o := newOctree(t)
	assert.Panics(t, func() {
		o.DeleteNodeRec(0b1111)
	})
}

func TestDeleteNodeLeavesRelatives(t *testing.T) {
	o := newOctree(t)
	o.CreateNode(0b1111000000)
	o.DeleteNode(0b1111000)

	assert.Equal(t, 3, o.Len())
	assert.NotNil(t, o.FindNode(0b1111000000))
	assert.True(t, o.FindNode(0b1111).HasChild(0))
}

func TestFindCreateNodeBV(t *testing.T) {
	o := newOctree(t)
	assert.Nil(t, o.FindNodeBV(cube(1, 2)))

	n := o.FindCreateNodeBV(cube(1, 2))
	assert.Equal(t, Code(0b1111000000), n.Code())
	assert.Same(t, n, o.FindNodeBV(cube(1.5, 1.9)))
	assert.Equal(t, 1, o.Len())
}

func TestOccupantList(t *testing.T) {
	var n Node
	a, b, c := &box{name: "a"}, &box{name: "b"}, &box{name: "c"}
	n.PushFront(a)
	n.PushFront(b)
	n.PushFront(c)

	names := func() []string {
		var out []string
		n.Occupants(func(obj Object) bool {
			out = append(out, obj.(*box).name)
			return true
		})
		return out
	}
	assert.Equal(t, []string{"c", "b", "a"}, names())
	assert.Equal(t, 3, n.Len())
	assert.Same(t, &n, b.entry.Node())

	n.Remove(b)
	assert.Equal(t, []string{"c", "a"}, names())
	assert.Nil(t, b.entry.Node())
	assert.Equal(t, Object(a), c.entry.Next())

	n.Remove(c)
	assert.Equal(t, []string{"a"}, names())
	assert.Equal(t, Object(a), n.First())

	n.Remove(a)
	assert.Nil(t, n.First())
	assert.Zero(t, n.Len())
	assert.True(t, n.IsEmpty())
}

func TestOccupantListMisuse(t *testing.T) {
	var n, other Node
	a := &box{}
	n.PushFront(a)

	assert.Panics(t, func() { n.PushFront(a) })
	assert.Panics(t, func() { other.Remove(a) })
}

func TestInsertUpdateRemove(t *testing.T) {
	o := newOctree(t)
	obj := &box{bv: cube(1, 2)}

	n := o.Insert(obj)
	assert.Equal(t, Code(0b1111000000), n.Code())
	assert.Equal(t, 4, o.Len())

	obj.bv = cube(1.2, 2.2)
	assert.False(t, o.Update(obj))
	assert.Same(t, n, obj.entry.Node())

	obj.bv = cube(17, 18)
	assert.True(t, o.Update(obj))
	assert.Equal(t, Code(0b1111000111), obj.entry.Node().Code())
	assert.Nil(t, o.FindNode(0b1111000000))
	assert.Equal(t, 4, o.Len())

	o.Remove(obj)
	assert.Nil(t, obj.entry.Node())
	assert.True(t, o.IsEmpty())

	o.Remove(obj)
	assert.True(t, o.Update(obj))
	assert.Equal(t, 4, o.Len())
}

func TestUpdateKeepsSharedNode(t *testing.T) {
	o := newOctree(t)
	a := &box{bv: cube(1, 2)}
	b := &box{bv: cube(3, 4)}
	o.Insert(a)
	o.Insert(b)
	require.Same(t, a.entry.Node(), b.entry.Node())

	a.bv = cube(-10, -9)
	o.Update(a)
	assert.NotNil(t, o.FindNode(0b1111000000))
	assert.Equal(t, 1, b.entry.Node().Len())
}

func TestReconfigure(t *testing.T) {
	o := newOctree(t)
	objs := []*box{{bv: cube(1, 2)}, {bv: cube(-10, -9)}, {bv: cube(-1, 1)}}
	for _, obj := range objs {
		o.Insert(obj)
	}

	_, err := o.Reconfigure(100, 3)
	assert.Error(t, err)
	assert.Equal(t, uint32(128), o.RootSize())
	assert.False(t, o.IsEmpty())

	orphans, err := o.Reconfigure(256, 4)
	require.NoError(t, err)
	assert.Len(t, orphans, 3)
	assert.True(t, o.IsEmpty())
	assert.Equal(t, uint32(256), o.RootSize())
	assert.Equal(t, uint32(4), o.Levels())
	for _, obj := range objs {
		assert.Nil(t, obj.entry.Node())
		o.Insert(obj)
	}
	assert.Equal(t, 9, o.Len())
}

func TestDestroy(t *testing.T) {
	o := newOctree(t)
	obj := &box{bv: cube(1, 2)}
	o.Insert(obj)

	o.Destroy()
	assert.True(t, o.IsEmpty())
	assert.Nil(t, obj.entry.Node())
}

func TestNodesAtLevel(t *testing.T) {
	o := newOctree(t)
	o.CreateNode(0b1111000001)
	o.CreateNode(0b1000000000)
	o.CreateNode(0b1111000000)

	codes := func(nodes []*Node) []Code {
		var out []Code
		for _, n := range nodes {
			out = append(out, n.Code())
		}
		return out
	}
	assert.Equal(t, []Code{0b1000000000, 0b1111000000, 0b1111000001}, codes(o.NodesAtLevel(3)))
	assert.Equal(t, []Code{0b1000, 0b1111}, codes(o.NodesAtLevel(1)))
	assert.Equal(t, []Code{RootCode}, codes(o.NodesAtLevel(0)))
	assert.Len(t, o.NodesAtLevel(-1), o.Len())
	assert.Empty(t, o.NodesAtLevel(4))
}

func TestWalk(t *testing.T) {
	o := newOctree(t)
	o.CreateNode(0b1111000001)
	o.CreateNode(0b1000000000)

	var visited []Code
	o.Walk(RootCode, func(n *Node) bool {
		visited = append(visited, n.Code())
		return true
	})
	assert.Equal(t, []Code{
		RootCode,
		0b1000, 0b1000000, 0b1000000000,
		0b1111, 0b1111000, 0b1111000001,
	}, visited)

	visited = nil
	o.Walk(RootCode, func(n *Node) bool {
		visited = append(visited, n.Code())
		return n.Code().Depth() < 1
	})
	assert.Equal(t, []Code{RootCode, 0b1000, 0b1111}, visited)
}
