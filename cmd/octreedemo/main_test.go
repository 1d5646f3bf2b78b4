package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/akmonengine/partition/bvh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestLoadScenario(t *testing.T) {
	sc, err := loadScenario("")
	require.NoError(t, err)
	assert.Equal(t, defaultScenario(), sc)

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
objects: 42
frames: 10
world:
  size_bit: 8
  levels: 4
  brute_force: true
`), 0o644))

	sc, err = loadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 42, sc.Objects)
	assert.Equal(t, 10, sc.Frames)
	assert.Equal(t, 8, sc.World.SizeBit)
	assert.Equal(t, 4, sc.World.Levels)
	assert.True(t, sc.World.BruteForce)
	assert.Equal(t, 5.0, sc.World.WallMargin)
	assert.Equal(t, 1.0/60, sc.DT)

	_, err = loadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("objects: [1"), 0o644))
	_, err = loadScenario(bad)
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	set := flag.NewFlagSet("run", flag.ContinueOnError)
	set.Int(flagObjects, 0, "")
	set.Int(flagSizeBit, 0, "")
	set.Bool(flagBruteForce, false, "")
	set.Int(flagFrames, 0, "")
	require.NoError(t, set.Parse([]string{"--objects", "7", "--size-bit", "2", "--brute-force"}))
	c := cli.NewContext(cli.NewApp(), set, nil)

	sc := defaultScenario()
	applyFlags(c, &sc)
	assert.Equal(t, 7, sc.Objects)
	assert.Equal(t, 2, sc.World.SizeBit)
	assert.Equal(t, 2, sc.World.Levels)
	assert.True(t, sc.World.BruteForce)
	assert.Equal(t, 600, sc.Frames)
}

func TestRunScenario(t *testing.T) {
	sc := defaultScenario()
	sc.Objects = 40
	sc.Frames = 20

	octree, err := runScenario(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, 20, octree.frames)
	assert.Equal(t, 40, octree.bodies)
	assert.Len(t, octree.levels, sc.World.Levels+1)

	sc.World.BruteForce = true
	brute, err := runScenario(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, 20*40*39/2, brute.totalChecks)
	assert.Equal(t, 40*39/2.0, brute.maxChecks)
	assert.Less(t, octree.totalChecks, brute.totalChecks)
	assert.Equal(t, brute.totalContacts, octree.totalContacts)

	out := brute.render()
	assert.Contains(t, out, "brute force")
	assert.Contains(t, out, "bodies per level")
}

func TestRunScenarioInvalid(t *testing.T) {
	sc := defaultScenario()
	sc.Frames = 0
	_, err := runScenario(context.Background(), sc)
	assert.Error(t, err)

	sc = defaultScenario()
	sc.World.Levels = 9
	_, err = runScenario(context.Background(), sc)
	assert.Error(t, err)
}

func TestRunScenarioCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := runScenario(ctx, defaultScenario())
	require.NoError(t, err)
	assert.Zero(t, s.frames)
}

func TestHistory(t *testing.T) {
	var h history
	mean, stdDev, max := h.stats()
	assert.Zero(t, mean+stdDev+max)

	h.push(4)
	mean, stdDev, max = h.stats()
	assert.Equal(t, 4.0, mean)
	assert.Zero(t, stdDev)
	assert.Equal(t, 4.0, max)

	for i := 0; i < historySize; i++ {
		h.push(2)
	}
	assert.Len(t, h.values, historySize)
	mean, stdDev, max = h.stats()
	assert.Equal(t, 2.0, mean)
	assert.Zero(t, stdDev)
	assert.Equal(t, 2.0, max)
}

func TestBuildReport(t *testing.T) {
	rows := buildReport(bvh.UnitCube())
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.InDelta(t, 5, r.hit, 1e-9)
		assert.Equal(t, -0.5, r.root.Min.X())
		assert.Equal(t, 0.5, r.root.Max.X())
	}
	assert.Equal(t, 23, rows[1].nodes)

	grid := buildReport(bvh.GridMesh(4))
	for _, r := range grid {
		assert.InDelta(t, 10, r.hit, 1e-9)
		assert.Positive(t, r.leaves)
		assert.LessOrEqual(t, r.leaves, 32)
	}
	assert.Equal(t, 32, grid[1].leaves)
	assert.Contains(t, renderBVHReport("grid", grid), "bottom_up")
}
