// Command octreedemo drives a world of bouncing spheres through the linear octree, or
// compares the BVH build methods, and prints statistics.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/akmonengine/partition/bvh"
	"github.com/akmonengine/partition/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagObjects     = "objects"
	flagFrames      = "frames"
	flagDT          = "dt"
	flagSeed        = "seed"
	flagSizeBit     = "size-bit"
	flagLevels      = "levels"
	flagBruteForce  = "brute-force"
	flagWorkers     = "workers"
	flagMetricsAddr = "metrics-addr"
	flagGrid        = "grid"
)

var logger = log.New("octreedemo")

func main() {
	app := &cli.App{
		Name:  "octreedemo",
		Usage: "exercise the octree broad phase and the BVH builders",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "info",
				Usage: "one of debug, info, warning, error",
			},
		},
		Before: func(c *cli.Context) error {
			level, ok := log.ParseLevel(c.String(flagLogLevel))
			if !ok {
				return errors.Errorf("unknown log level %q", c.String(flagLogLevel))
			}
			log.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "simulate bouncing spheres and count pair checks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagConfig,
						Aliases: []string{"c"},
						Usage:   "load the scenario from a YAML `FILE`",
					},
					&cli.IntFlag{Name: flagObjects, Usage: "number of spheres to spawn"},
					&cli.IntFlag{Name: flagFrames, Usage: "number of steps to simulate"},
					&cli.Float64Flag{Name: flagDT, Usage: "step duration in seconds"},
					&cli.Int64Flag{Name: flagSeed, Usage: "random seed"},
					&cli.IntFlag{Name: flagSizeBit, Usage: "octree root size is 1<<size-bit"},
					&cli.IntFlag{Name: flagLevels, Usage: "octree depth"},
					&cli.BoolFlag{Name: flagBruteForce, Usage: "test every pair instead of walking the octree"},
					&cli.IntFlag{Name: flagWorkers, Usage: "goroutines used per phase"},
					&cli.StringFlag{Name: flagMetricsAddr, Usage: "serve prometheus metrics on `ADDR`"},
				},
				Action: runAction,
			},
			{
				Name:  "bvh",
				Usage: "build a mesh with every BVH method",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagGrid,
						Usage: "use an N x N grid instead of the unit cube",
					},
				},
				Action: bvhAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func runAction(c *cli.Context) error {
	sc, err := loadScenario(c.String(flagConfig))
	if err != nil {
		return err
	}
	applyFlags(c, &sc)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	s, err := runScenario(ctx, sc)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, s.render())
	return nil
}

func bvhAction(c *cli.Context) error {
	n := c.Int(flagGrid)
	if n < 0 {
		return errors.Errorf("grid size must not be negative, got %d", n)
	}

	mesh, title := bvh.UnitCube(), "unit cube"
	if n > 0 {
		mesh, title = bvh.GridMesh(n), fmt.Sprintf("%dx%d grid", n, n)
	}
	fmt.Fprintln(c.App.Writer, renderBVHReport(title, buildReport(mesh)))
	return nil
}
