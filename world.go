// Package partition keeps a world of moving spheres sorted in a linear octree and finds
// their contacts every step.
package partition

import (
	"math/rand"

	"github.com/akmonengine/partition/log"
	"github.com/akmonengine/partition/octree"
	"github.com/pkg/errors"
)

const DEFAULT_WORKERS = 1

const (
	// MaxSizeBit bounds the root size to 1<<31, the largest power of two a code can address.
	MaxSizeBit = 31
	// MaxLevels is the deepest octree a 32 bit locational code can hold.
	MaxLevels = (32 - 1) / octree.Dimensions
)

var logger = log.New("partition")

// Options configures a World.
type Options struct {
	// The octree root spans 1<<SizeBit on every axis
	SizeBit int `yaml:"size_bit"`
	// Levels is the maximum depth of the octree
	Levels int `yaml:"levels"`
	// BruteForce tests every pair of bodies instead of walking the octree
	BruteForce bool `yaml:"brute_force"`
	// PhysicsEnabled integrates velocities during Step
	PhysicsEnabled bool `yaml:"physics_enabled"`
	// Bodies bounce this far inside the root boundary
	WallMargin float64 `yaml:"wall_margin"`
	Workers    int     `yaml:"workers"`
}

func DefaultOptions() Options {
	return Options{
		SizeBit:        7,
		Levels:         3,
		PhysicsEnabled: true,
		WallMargin:     5,
		Workers:        DEFAULT_WORKERS,
	}
}

func (o Options) validate() error {
	if o.SizeBit < 1 || o.SizeBit > MaxSizeBit {
		return errors.Errorf("size bit %d is outside [1, %d]", o.SizeBit, MaxSizeBit)
	}
	if o.Levels < 1 || o.Levels > min(o.SizeBit, MaxLevels) {
		return errors.Errorf("levels %d is outside [1, %d]", o.Levels, min(o.SizeBit, MaxLevels))
	}
	if o.WallMargin < 0 {
		return errors.Errorf("wall margin %v is negative", o.WallMargin)
	}
	return nil
}

// StepStats summarizes one call to Step.
type StepStats struct {
	Checks   int
	Contacts int
	Nodes    int
	Moved    int
}

type World struct {
	// List of all bodies in the world
	Bodies  []*Body
	Octree  *octree.Octree
	Options Options

	Events Events
	// Contacts found by the last step, triggers excluded
	Contacts []*Contact
}

// NewWorld creates an empty world.
func NewWorld(opts Options) (*World, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid world options")
	}

	tree, err := octree.New(1<<uint(opts.SizeBit), uint32(opts.Levels))
	if err != nil {
		return nil, errors.Wrap(err, "creating octree")
	}

	return &World{
		Octree:  tree,
		Options: opts,
		Events:  NewEvents(),
	}, nil
}

// AddBody adds a body to the world and inserts it into the octree
func (w *World) AddBody(body *Body) {
	w.Bodies = append(w.Bodies, body)
	w.Octree.Update(body)
}

// RemoveBody removes a body from the world and from the octree
func (w *World) RemoveBody(body *Body) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Octree.Remove(body)
	w.Events.forget(body)
}

// Spawn adds n bodies at random positions inside the bouncing walls.
func (w *World) Spawn(rng *rand.Rand, n int) []*Body {
	extent := w.boundary()
	bodies := make([]*Body, 0, n)
	for i := 0; i < n; i++ {
		body := randomBody(rng, extent)
		w.AddBody(body)
		bodies = append(bodies, body)
	}
	return bodies
}

// boundary is the half extent of the volume bodies bounce in.
func (w *World) boundary() float64 {
	return float64(w.Octree.RootSize())*0.5 - w.Options.WallMargin
}

// Step moves the bodies, relocates them in the octree, then finds and reports contacts.
func (w *World) Step(dt float64) StepStats {
	workers := max(DEFAULT_WORKERS, w.Options.Workers)

	w.integrate(dt, workers)
	moved := w.relocate()

	contacts, checks := w.detectCollision(workers)
	w.Contacts = w.Events.recordContacts(contacts)
	w.Events.flush()

	return StepStats{
		Checks:   checks,
		Contacts: len(contacts),
		Nodes:    w.Octree.Len(),
		Moved:    moved,
	}
}

func (w *World) integrate(dt float64, workers int) {
	boundary := w.boundary()
	task(workers, w.Bodies, func(body *Body) {
		if w.Options.PhysicsEnabled {
			body.integrate(dt)
		}
		body.bounce(boundary)
		body.refreshBV()
	})
}

// relocate is sequential: octree nodes are created and deleted on the way.
func (w *World) relocate() int {
	moved := 0
	for _, body := range w.Bodies {
		if w.Octree.Update(body) {
			moved++
		}
	}
	return moved
}

func (w *World) detectCollision(workers int) ([]*Contact, int) {
	if w.Options.BruteForce {
		return NarrowPhase(BruteForce(w.Bodies, workers), workers)
	}
	return NarrowPhase(BroadPhase(w.Octree, workers), workers)
}

// SetOctreeSizeBit resizes the octree root to 1<<bit. Levels deeper than bit are clamped.
// Every body is orphaned and inserted again.
func (w *World) SetOctreeSizeBit(bit int) error {
	opts := w.Options
	opts.SizeBit = bit
	opts.Levels = min(opts.Levels, bit)
	return w.reconfigure(opts)
}

// SetOctreeLevels changes the maximum depth of the octree.
// Every body is orphaned and inserted again.
func (w *World) SetOctreeLevels(levels int) error {
	opts := w.Options
	opts.Levels = levels
	return w.reconfigure(opts)
}

func (w *World) reconfigure(opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	orphans, err := w.Octree.Reconfigure(1<<uint(opts.SizeBit), uint32(opts.Levels))
	if err != nil {
		return err
	}
	w.Options = opts

	for _, orphan := range orphans {
		w.Octree.Insert(orphan)
	}
	logger.Debugf("%d bodies inserted again", len(orphans))
	return nil
}

// BodiesAtLevel returns the bodies held by nodes of the given depth. A negative level
// returns every body.
func (w *World) BodiesAtLevel(level int) []*Body {
	var bodies []*Body
	for _, body := range w.Bodies {
		if level < 0 || body.Depth() == level {
			bodies = append(bodies, body)
		}
	}
	return bodies
}
