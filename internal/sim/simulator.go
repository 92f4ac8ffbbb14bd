package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Simulator owns one cloth instance and drives it frame by frame.
type Simulator struct {
	cloth     *cloth.Cloth
	solver    *cloth.Solver
	pointer   *cloth.Pointer
	scripts   []Script
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(c *cloth.Cloth, solver *cloth.Solver, ptr *cloth.Pointer) *Simulator {
	if ptr == nil {
		ptr = cloth.NewPointer()
	}
	return &Simulator{
		cloth:     c,
		solver:    solver,
		pointer:   ptr,
		scripts:   make([]Script, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.Default(),
	}
}

func (s *Simulator) AddScript(sc Script)      { s.scripts = append(s.scripts, sc) }
func (s *Simulator) AddMetric(m Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *slog.Logger) { s.logger = l }

func (s *Simulator) Cloth() *cloth.Cloth     { return s.cloth }
func (s *Simulator) Pointer() *cloth.Pointer { return s.pointer }

// Step advances one frame: scripts, solver, then metrics and observers.
func (s *Simulator) Step() cloth.StepStats {
	frame := s.cloth.Frame()
	for _, sc := range s.scripts {
		sc.Apply(frame, s.cloth, s.pointer)
	}

	st := s.solver.Step(s.cloth, s.pointer)

	for _, m := range s.metrics {
		m.Observe(frame, s.cloth, st)
	}
	for _, obs := range s.observers {
		obs.OnFrame(frame, s.cloth, st)
	}
	return st
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Series:  make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
		Groups:  make(map[string][]cloth.Sample),
		Errors:  make([]error, 0),
	}
	for _, m := range s.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Frames)
	}

	start := time.Now()
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, start)
			return result, ctx.Err()
		default:
		}

		st := s.Step()
		result.Totals.Add(st)
		result.Frames++

		for _, m := range s.metrics {
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}

		if st.Anomalies > 0 {
			s.logger.Debug("skipped non-finite particles", "frame", i, "count", st.Anomalies)
		}

		if cfg.ValidateEvery > 0 && (i+1)%cfg.ValidateEvery == 0 {
			if err := s.cloth.Validate(); err != nil {
				result.Errors = append(result.Errors, FrameError{Frame: i, Message: "invalid topology", Err: err})
				break
			}
		}

		if s.cloth.Len() == 0 {
			s.logger.Info("cloth fully detached", "frame", i)
			break
		}
	}

	s.finish(result, start)
	s.logger.Debug("run complete",
		"frames", result.Frames,
		"live", s.cloth.Len(),
		"torn", result.Totals.Torn,
		"cut", result.Totals.Cut,
		"elapsed", result.Elapsed)
	return result, nil
}

func (s *Simulator) finish(result *Result, start time.Time) {
	result.Elapsed = time.Since(start)
	result.Final = s.cloth.Snapshot()
	for _, g := range s.cloth.Groups() {
		result.Groups[g.Name()] = s.cloth.GroupSnapshot(g)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if cfg.ValidateEvery < 0 {
		return fmt.Errorf("validate interval must not be negative, got %d", cfg.ValidateEvery)
	}
	return nil
}
