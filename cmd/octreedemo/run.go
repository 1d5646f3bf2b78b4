package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/akmonengine/partition"
	"github.com/pkg/errors"
)

// runScenario spawns the bodies and steps the world for the configured number of frames,
// or until ctx is done.
func runScenario(ctx context.Context, sc Scenario) (summary, error) {
	if err := sc.validate(); err != nil {
		return summary{}, err
	}

	world, err := partition.NewWorld(sc.World)
	if err != nil {
		return summary{}, errors.Wrap(err, "creating world")
	}

	mode := "octree"
	if sc.World.BruteForce {
		mode = "brute force"
	}
	m := newMetrics(mode)
	if sc.MetricsAddr != "" {
		m.serve(ctx, sc.MetricsAddr)
	}

	world.Spawn(rand.New(rand.NewSource(sc.Seed)), sc.Objects)
	logger.Infof("running %d frames with %d bodies (%s, root %d, %d levels)",
		sc.Frames, len(world.Bodies), mode, world.Octree.RootSize(), world.Octree.Levels())

	s := summary{mode: mode}
	var checks history
	start := time.Now()
	for frame := 0; frame < sc.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			logger.Warningf("stopped after %d frames", frame)
			break
		}

		stats := world.Step(sc.DT)
		m.observe(stats, len(world.Bodies))
		checks.push(float64(stats.Checks))

		s.frames++
		s.totalChecks += stats.Checks
		s.totalContacts += stats.Contacts
		s.nodes = stats.Nodes
		logger.Debugf("frame %d: %d checks, %d contacts, %d nodes, %d moved",
			frame, stats.Checks, stats.Contacts, stats.Nodes, stats.Moved)
	}
	s.elapsed = time.Since(start)
	s.bodies = len(world.Bodies)
	s.meanChecks, s.stdDevChecks, s.maxChecks = checks.stats()
	for level := 0; level <= sc.World.Levels; level++ {
		s.levels = append(s.levels, levelCount{level: level, bodies: len(world.BodiesAtLevel(level))})
	}

	return s, nil
}
