package main

import (
	"os"

	"github.com/akmonengine/partition"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Scenario describes one headless run of the octree demo.
type Scenario struct {
	World       partition.Options `yaml:"world"`
	Objects     int               `yaml:"objects"`
	Frames      int               `yaml:"frames"`
	DT          float64           `yaml:"dt"`
	Seed        int64             `yaml:"seed"`
	MetricsAddr string            `yaml:"metrics_addr"`
}

func defaultScenario() Scenario {
	return Scenario{
		World:   partition.DefaultOptions(),
		Objects: 100,
		Frames:  600,
		DT:      1.0 / 60,
		Seed:    1,
	}
}

// loadScenario reads a YAML scenario over the defaults. Keys missing from the file keep
// their default value.
func loadScenario(path string) (Scenario, error) {
	sc := defaultScenario()
	if path == "" {
		return sc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sc, errors.Wrapf(err, "reading scenario %s", path)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, errors.Wrapf(err, "parsing scenario %s", path)
	}
	return sc, nil
}

func (sc Scenario) validate() error {
	if sc.Objects < 0 {
		return errors.Errorf("objects must not be negative, got %d", sc.Objects)
	}
	if sc.Frames < 1 {
		return errors.Errorf("frames must be positive, got %d", sc.Frames)
	}
	if sc.DT <= 0 {
		return errors.Errorf("dt must be positive, got %v", sc.DT)
	}
	return nil
}

// applyFlags overrides the scenario with the flags set on the command line.
func applyFlags(c *cli.Context, sc *Scenario) {
	if c.IsSet(flagObjects) {
		sc.Objects = c.Int(flagObjects)
	}
	if c.IsSet(flagFrames) {
		sc.Frames = c.Int(flagFrames)
	}
	if c.IsSet(flagDT) {
		sc.DT = c.Float64(flagDT)
	}
	if c.IsSet(flagSeed) {
		sc.Seed = c.Int64(flagSeed)
	}
	if c.IsSet(flagSizeBit) {
		sc.World.SizeBit = c.Int(flagSizeBit)
		sc.World.Levels = min(sc.World.Levels, sc.World.SizeBit)
	}
	if c.IsSet(flagLevels) {
		sc.World.Levels = c.Int(flagLevels)
	}
	if c.IsSet(flagBruteForce) {
		sc.World.BruteForce = c.Bool(flagBruteForce)
	}
	if c.IsSet(flagWorkers) {
		sc.World.Workers = c.Int(flagWorkers)
	}
	if c.IsSet(flagMetricsAddr) {
		sc.MetricsAddr = c.String(flagMetricsAddr)
	}
}
