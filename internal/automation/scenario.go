package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run: a preset (or defaults) with overrides.
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Frames int                `yaml:"frames"`
	Set    map[string]float64 `yaml:"set"`
	SaveAs string             `yaml:"save_as"`
}

// StepResult pairs a finished step with the id it was stored under.
type StepResult struct {
	Step   int
	RunID  string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the configuration of a step.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}

	// sorted so errors are reported deterministically
	names := make([]string, 0, len(s.Set))
	for name := range s.Set {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := cfg.Set(name, s.Set[name]); err != nil {
			return nil, err
		}
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, nil
}

// RunScenario executes the steps in order. Results are saved when store is
// not nil.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "name", cfg.Name)

		s, err := sim.FromConfig(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		for _, m := range metrics.Defaults(cfg.Physics.Dt) {
			s.AddMetric(m)
		}
		s.SetLogger(logger.With("step", i+1))

		res, err := s.Run(ctx, sim.Config{Frames: cfg.Frames})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Result: res}
		if store != nil {
			if sr.RunID, err = store.Save(cfg, i+1, res); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
