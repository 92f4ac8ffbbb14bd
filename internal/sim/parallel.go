package sim

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Factory builds instance idx of an ensemble. Each call must return a
// simulator that shares no particles or constraints with any other.
type Factory func(idx int) (*Simulator, error)

// Ensemble runs independent instances concurrently and waits for all of
// them. Instances never communicate.
type Ensemble struct {
	factory  Factory
	numRuns  int
	parallel int
	logger   *slog.Logger
}

func NewEnsemble(factory Factory, numRuns int) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, logger: slog.Default()}
}

// SetParallelism caps concurrently running instances; n <= 0 means no cap.
func (e *Ensemble) SetParallelism(n int) { e.parallel = n }

func (e *Ensemble) SetLogger(l *slog.Logger) { e.logger = l }

// Run builds and runs every instance. The first failure cancels the rest;
// results of instances that finished are still returned in order.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, gctx := errgroup.WithContext(ctx)
	if e.parallel > 0 {
		g.SetLimit(e.parallel)
	}

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			s, err := e.factory(idx)
			if err != nil {
				return err
			}
			s.SetLogger(e.logger.With("instance", idx))

			e.logger.Debug("instance started", "instance", idx)
			res, err := s.Run(gctx, cfg)
			results[idx] = res
			if err != nil {
				return err
			}
			e.logger.Debug("instance finished", "instance", idx, "frames", res.Frames, "elapsed", res.Elapsed)
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
