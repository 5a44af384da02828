package main

import (
	"os"

	mg "github.com/erkkah/margaid"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/ogauthe/optimize-contraction/network"
)

// addPoints appends one (step, value) point per element, x starting at first.
func addPoints[T constraints.Integer](s *mg.Series, first int, values []T) {
	for i, v := range values {
		s.Add(mg.MakeValue(float64(first+i), float64(v)))
	}
}

// writeProfile renders the evaluation profile to an SVG file: live elements
// per step (step 0 is the initial frontier) and cumulative cost per step,
// both on a log scale.
func writeProfile(path string, n *network.Network) error {
	steps := n.Steps()
	if len(steps) == 0 {
		return errors.Errorf("no contraction steps to profile for %q", path)
	}
	cumulative := make([]uint64, len(steps))
	var total uint64
	for i, step := range steps {
		total += step.Cost
		cumulative[i] = total
	}

	memSeries := mg.NewSeries(mg.Titled("live elements"))
	addPoints(memSeries, 0, n.MemoryBySteps())
	cpuSeries := mg.NewSeries(mg.Titled("cumulative cost"))
	addPoints(cpuSeries, 1, cumulative)

	diagram := mg.New(1024, 400,
		mg.WithAutorange(mg.XAxis, memSeries, cpuSeries),
		mg.WithAutorange(mg.YAxis, memSeries, cpuSeries),
		mg.WithProjection(mg.YAxis, mg.Log),
		mg.WithInset(70),
		mg.WithPadding(2),
		mg.WithColorScheme(90),
		mg.WithBackgroundColor("#f8f8f8"),
	)
	diagram.Line(memSeries, mg.UsingAxes(mg.XAxis, mg.YAxis), mg.UsingMarker("square"), mg.UsingStrokeWidth(2))
	diagram.Line(cpuSeries, mg.UsingAxes(mg.XAxis, mg.YAxis), mg.UsingStrokeWidth(2))
	diagram.Axis(memSeries, mg.XAxis, diagram.ValueTicker('f', 0, 10), false, "Step")
	diagram.Axis(memSeries, mg.YAxis, diagram.ValueTicker('f', 0, 10), true, "Elements / multiply-adds")
	diagram.Frame()
	diagram.Title("Contraction profile")
	diagram.Legend(mg.BottomLeft)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create SVG profile %q", path)
	}
	if err := diagram.Render(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to render SVG profile to %q", path)
	}
	return errors.Wrapf(f.Close(), "failed to write SVG profile %q", path)
}
