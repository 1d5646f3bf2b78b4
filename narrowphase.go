package partition

import (
	"sync"
	"sync/atomic"

	"github.com/akmonengine/partition/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact is an intersecting pair of bodies. Normal points from BodyA to BodyB.
type Contact struct {
	BodyA       *Body
	BodyB       *Body
	Normal      mgl64.Vec3
	Penetration float64
}

// NarrowPhase tests every candidate pair with workersCount goroutines. It returns the
// contacts found and the number of pairs tested.
func NarrowPhase(pairs <-chan Pair, workersCount int) ([]*Contact, int) {
	contactsChan := make(chan *Contact, workersCount*2)
	var checks atomic.Int64

	var wg sync.WaitGroup
	for i, n := 0, max(1, workersCount); i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pair := range pairs {
				checks.Add(1)
				if contact, ok := collide(pair.BodyA, pair.BodyB); ok {
					contactsChan <- contact
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(contactsChan)
	}()

	contacts := make([]*Contact, 0)
	for c := range contactsChan {
		contacts = append(contacts, c)
	}
	return contacts, int(checks.Load())
}

// collide intersects the spheres of a and b. Concentric spheres get an arbitrary up normal.
func collide(a, b *Body) (*Contact, bool) {
	if !geometry.IntersectionSphereSphere(a.Sphere(), b.Sphere()) {
		return nil, false
	}

	delta := b.Position.Sub(a.Position)
	distance := delta.Len()
	normal := mgl64.Vec3{0, 1, 0}
	if !geometry.AreEqual(distance, 0) {
		normal = delta.Mul(1 / distance)
	}

	return &Contact{
		BodyA:       a,
		BodyB:       b,
		Normal:      normal,
		Penetration: a.Radius + b.Radius - distance,
	}, true
}
