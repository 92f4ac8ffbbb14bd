package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
)

func stepped(t *testing.T, frames int) (*cloth.Cloth, []cloth.StepStats) {
	t.Helper()
	c := cloth.Build(5, 5, 10, 10)
	s, err := cloth.NewSolver(cloth.DefaultParams())
	if err != nil {
		t.Fatalf("new solver: %v", err)
	}
	stats := make([]cloth.StepStats, frames)
	for i := range stats {
		stats[i] = s.Step(c, nil)
	}
	return c, stats
}

func TestTopologyCounts(t *testing.T) {
	c, stats := stepped(t, 1)

	live := NewLiveParticles()
	cons := NewLiveConstraints()
	live.Observe(0, c, stats[0])
	cons.Observe(0, c, stats[0])

	if live.Value() != 24 {
		t.Errorf("expected 24 live particles, got %f", live.Value())
	}
	if cons.Value() != 40 {
		t.Errorf("expected 40 constraints, got %f", cons.Value())
	}

	live.Reset()
	if live.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestBrokenAccumulates(t *testing.T) {
	b := NewBroken()
	b.Observe(0, nil, cloth.StepStats{Torn: 2})
	b.Observe(1, nil, cloth.StepStats{Torn: 1, Cut: 3})

	if b.Value() != 6 {
		t.Errorf("expected 6 broken, got %f", b.Value())
	}
	b.Reset()
	if b.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSagFollowsGravity(t *testing.T) {
	c, stats := stepped(t, 5)
	s := NewSag()
	s.Observe(4, c, stats[4])

	if s.Value() >= 0 {
		t.Errorf("expected cloth to sag below zero, got %f", s.Value())
	}
}

func TestKineticEnergy(t *testing.T) {
	k := NewKinetic(cloth.DefaultDt)

	c := cloth.Build(2, 2, 10, 10, cloth.WithPinning(cloth.PinNone))
	k.Observe(0, c, cloth.StepStats{})
	if k.Value() != 0 {
		t.Errorf("expected zero energy at rest, got %f", k.Value())
	}

	c, stats := stepped(t, 3)
	k.Observe(2, c, stats[2])
	if k.Value() <= 0 {
		t.Error("expected positive energy for a falling cloth")
	}
	if k.Peak() < k.Value() {
		t.Error("peak below current value")
	}
}

func TestMaxStretch(t *testing.T) {
	c := cloth.Build(2, 1, 10, 10, cloth.WithPinning(cloth.PinNone))
	m := NewMaxStretch()

	m.Observe(0, c, cloth.StepStats{})
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected stretch 1 at rest, got %f", m.Value())
	}

	p := c.Particle(1)
	p.Pos[0] += 5
	m.Observe(1, c, cloth.StepStats{})
	if math.Abs(m.Value()-1.5) > 1e-12 {
		t.Errorf("expected stretch 1.5, got %f", m.Value())
	}
}

func TestDefaults(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults(cloth.DefaultDt) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 metrics, got %d", len(seen))
	}
}
