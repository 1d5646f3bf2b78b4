package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// historySize is the number of steps the check statistics are computed over.
const historySize = 500

type history struct {
	values []float64
}

func (h *history) push(v float64) {
	h.values = append(h.values, v)
	if len(h.values) > historySize {
		h.values = h.values[len(h.values)-historySize:]
	}
}

// stats returns the mean, standard deviation and maximum of the recorded values.
func (h *history) stats() (mean, stdDev, max float64) {
	switch len(h.values) {
	case 0:
		return 0, 0, 0
	case 1:
		return h.values[0], 0, h.values[0]
	}
	mean, stdDev = stat.MeanStdDev(h.values, nil)
	return mean, stdDev, floats.Max(h.values)
}

type levelCount struct {
	level  int
	bodies int
}

type summary struct {
	mode          string
	frames        int
	bodies        int
	nodes         int
	totalChecks   int
	totalContacts int
	meanChecks    float64
	stdDevChecks  float64
	maxChecks     float64
	elapsed       time.Duration
	levels        []levelCount
}

func (s summary) render() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("octree demo (%s)", s.mode))
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Frames", s.frames},
		{"Bodies", s.bodies},
		{"Octree nodes", s.nodes},
		{"Checks", s.totalChecks},
		{"Contacts", s.totalContacts},
		{fmt.Sprintf("Checks per step (last %d)", historySize), fmt.Sprintf("mean %.1f, stddev %.1f, max %.0f", s.meanChecks, s.stdDevChecks, s.maxChecks)},
		{"Elapsed", s.elapsed.Round(time.Millisecond)},
	})
	out := t.Render()

	if len(s.levels) > 0 {
		lt := table.NewWriter()
		lt.SetTitle("bodies per level")
		lt.AppendHeader(table.Row{"Level", "Bodies"})
		for _, l := range s.levels {
			lt.AppendRow(table.Row{l.level, l.bodies})
		}
		out += "\n" + lt.Render()
	}
	return out
}
