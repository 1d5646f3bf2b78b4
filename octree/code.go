package octree

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/akmonengine/partition/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Dimensions is the number of axes encoded per level, and so the width of a bit group.
const Dimensions = 3

const childMask = 1<<Dimensions - 1

// Code is a locational code: one bit group per level below a leading sentinel bit.
// The group of the deepest level sits in the lowest bits, with X as its lowest bit.
type Code uint32

// RootCode is the code of the root node: the sentinel alone.
const RootCode Code = 1

// ChildCode returns the code of the i-th child of parent.
func ChildCode(parent Code, i int) Code {
	return parent<<Dimensions | Code(i&childMask)
}

// ParentCode returns the code of the parent of c. The root is its own parent.
func ParentCode(c Code) Code {
	if c <= RootCode {
		return RootCode
	}
	return c >> Dimensions
}

// ChildIndex returns the index of c among the children of its parent.
func ChildIndex(c Code) int {
	return int(c & childMask)
}

func sentinelIndex(c Code) int {
	return bits.Len32(uint32(c)) - 1
}

// LocationalCodeDepth returns the level of c, 0 for the root.
func LocationalCodeDepth(c Code) int {
	if c == 0 {
		return 0
	}
	return sentinelIndex(c) / Dimensions
}

// Depth is LocationalCodeDepth(c).
func (c Code) Depth() int {
	return LocationalCodeDepth(c)
}

func (c Code) String() string {
	return fmt.Sprintf("%b", uint32(c))
}

// ComputeLocationalCode returns the code of the deepest node, at most levels deep, containing
// the integer world position. The root is centered on the origin and spans rootSize on every
// axis. Positions outside the root map to RootCode.
//
// It panics when levels exceeds log2(rootSize) or does not fit a 32 bit code.
func ComputeLocationalCode(pos [Dimensions]int, rootSize, levels uint32) Code {
	if rootSize <= 1 {
		return RootCode
	}

	half := int(rootSize / 2)
	var cells [Dimensions]uint32
	for axis := 0; axis < Dimensions; axis++ {
		p := pos[axis] + half
		if p < 0 || p >= int(rootSize) {
			return RootCode
		}
		cells[axis] = uint32(p)
	}

	sizeBits := uint32(bits.Len32(rootSize) - 1)
	if levels > sizeBits || levels*Dimensions+1 > 32 {
		panic(fmt.Sprintf("octree: %d levels do not fit a root of size %d", levels, rootSize))
	}
	shift := sizeBits - levels
	for axis := range cells {
		cells[axis] >>= shift
	}

	var code uint32
	for i := uint32(0); i < levels; i++ {
		for axis := uint32(0); axis < Dimensions; axis++ {
			code |= (cells[axis] >> i & 1) << (i*Dimensions + axis)
		}
	}
	return Code(code | 1<<(levels*Dimensions))
}

// ComputeLocationalCodeBV returns the code of the smallest node fully containing bv.
// The min corner is floored and the max corner ceiled before encoding.
func ComputeLocationalCodeBV(bv geometry.AABB, rootSize, levels uint32) Code {
	var lo, hi [Dimensions]int
	for axis := 0; axis < Dimensions; axis++ {
		lo[axis] = int(math.Floor(bv.Min[axis]))
		hi[axis] = int(math.Ceil(bv.Max[axis]))
	}
	return CommonLocationalCode(
		ComputeLocationalCode(lo, rootSize, levels),
		ComputeLocationalCode(hi, rootSize, levels),
	)
}

// CommonLocationalCode returns the code of the deepest common ancestor of a and b: their
// longest shared prefix of whole bit groups, read from each sentinel down.
func CommonLocationalCode(a, b Code) Code {
	if a == b {
		return a
	}

	da, db := LocationalCodeDepth(a), LocationalCodeDepth(b)
	for ; da > db; da-- {
		a >>= Dimensions
	}
	for ; db > da; db-- {
		b >>= Dimensions
	}
	for a != b {
		a >>= Dimensions
		b >>= Dimensions
	}
	return a
}

// ComputeBV returns the world box of the node addressed by c.
func ComputeBV(c Code, rootSize uint32) geometry.AABB {
	half := float64(rootSize / 2)
	bv := geometry.NewAABB(mgl64.Vec3{-half, -half, -half}, mgl64.Vec3{half, half, half})

	depth := LocationalCodeDepth(c)
	for level := 0; level < depth; level++ {
		step := float64(rootSize >> uint(level+1))
		group := uint32(c) >> uint((depth-1-level)*Dimensions)
		for axis := 0; axis < Dimensions; axis++ {
			if group>>uint(axis)&1 == 1 {
				bv.Min[axis] += step
			} else {
				bv.Max[axis] -= step
			}
		}
	}
	return bv
}
