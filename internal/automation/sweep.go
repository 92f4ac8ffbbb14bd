package automation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
)

// Sweep runs one configuration across evenly spaced values of a setting.
type Sweep struct {
	Base     *config.Config
	Param    string
	Min, Max float64
	Steps    int
	Parallel int
}

type SweepResult struct {
	Value      float64
	Frames     int
	Live       int
	Torn       int
	Cut        int
	Pruned     int
	MaxStretch float64
}

// Values returns the swept values, Min and Max included.
func (s *Sweep) Values() []float64 {
	if s.Steps <= 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.Steps-1)
	vals := make([]float64, s.Steps)
	for i := range vals {
		vals[i] = s.Min + float64(i)*step
	}
	return vals
}

// RunSweep runs every value as an independent instance of an ensemble.
func RunSweep(ctx context.Context, sweep *Sweep, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.Base == nil {
		return nil, fmt.Errorf("sweep has no base config")
	}
	if err := sweep.Base.Clone().Set(sweep.Param, sweep.Min); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	values := sweep.Values()
	stretch := make([]*metrics.MaxStretch, len(values))

	ens := sim.NewEnsemble(func(idx int) (*sim.Simulator, error) {
		cfg := sweep.Base.Clone()
		if err := cfg.Set(sweep.Param, values[idx]); err != nil {
			return nil, err
		}
		s, err := sim.FromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, values[idx], err)
		}
		stretch[idx] = metrics.NewMaxStretch()
		s.AddMetric(stretch[idx])
		return s, nil
	}, len(values))
	ens.SetParallelism(sweep.Parallel)
	ens.SetLogger(logger)

	runs, err := ens.Run(ctx, sim.Config{Frames: sweep.Base.Frames})
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(values))
	for i, res := range runs {
		results[i] = SweepResult{
			Value:      values[i],
			Frames:     res.Frames,
			Live:       len(res.Final),
			Torn:       res.Totals.Torn,
			Cut:        res.Totals.Cut,
			Pruned:     res.Totals.Pruned,
			MaxStretch: stretch[i].Value(),
		}
	}
	return results, nil
}
