package partition

import (
	"math/rand"

	"github.com/akmonengine/partition/geometry"
	"github.com/akmonengine/partition/octree"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Body is a moving sphere tracked by the octree.
type Body struct {
	ID       uuid.UUID
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Radius   float64
	// IsTrigger bodies report trigger events instead of contact events
	IsTrigger bool
	// IsStatic bodies are never integrated
	IsStatic bool

	bv    geometry.AABB
	entry octree.Entry
}

// NewBody creates a body with a fresh identifier and its world box already computed.
func NewBody(position, velocity mgl64.Vec3, radius float64) *Body {
	b := &Body{
		ID:       uuid.New(),
		Position: position,
		Velocity: velocity,
		Radius:   radius,
	}
	b.refreshBV()

	return b
}

// WorldBV returns the box enclosing the sphere, as of the last step.
func (b *Body) WorldBV() geometry.AABB {
	return b.bv
}

func (b *Body) OctreeEntry() *octree.Entry {
	return &b.entry
}

// Sphere returns the collision shape in world space.
func (b *Body) Sphere() geometry.Sphere {
	return geometry.Sphere{Center: b.Position, Radius: b.Radius}
}

// Node returns the octree node holding the body, nil when it is not inserted.
func (b *Body) Node() *octree.Node {
	return b.entry.Node()
}

// Depth returns the depth of the node holding the body, -1 when it is not inserted.
func (b *Body) Depth() int {
	if n := b.entry.Node(); n != nil {
		return n.Code().Depth()
	}
	return -1
}

func (b *Body) refreshBV() {
	r := mgl64.Vec3{b.Radius, b.Radius, b.Radius}
	b.bv = geometry.NewAABB(b.Position.Sub(r), b.Position.Add(r))
}

func (b *Body) integrate(dt float64) {
	if b.IsStatic {
		return
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}

// bounce clamps the body inside [-boundary, boundary] and reverses the velocity of each
// axis moving out.
func (b *Body) bounce(boundary float64) {
	for i := 0; i < 3; i++ {
		if b.Position[i] > boundary && b.Velocity[i] > 0 {
			b.Position[i] = boundary
			b.Velocity[i] = -b.Velocity[i]
		}
		if b.Position[i] < -boundary && b.Velocity[i] < 0 {
			b.Position[i] = -boundary
			b.Velocity[i] = -b.Velocity[i]
		}
	}
}

// randomBody places a body uniformly inside [-extent, extent], with a velocity drawn inside a
// ball of radius 1 to 5 and a radius between 0.5 and 2.
func randomBody(rng *rand.Rand, extent float64) *Body {
	var position mgl64.Vec3
	for i := range position {
		position[i] = (rng.Float64()*2 - 1) * extent
	}

	return NewBody(position, ballRand(rng, 1+rng.Float64()*4), 0.5+rng.Float64()*1.5)
}

func ballRand(rng *rand.Rand, radius float64) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
		if l := v.LenSqr(); l <= 1 && l > 0 {
			return v.Mul(radius)
		}
	}
}
