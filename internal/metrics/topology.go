package metrics

import (
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

type LiveParticles struct{ n int }

func NewLiveParticles() *LiveParticles { return &LiveParticles{} }

func (l *LiveParticles) Name() string { return "live_particles" }
func (l *LiveParticles) Observe(_ int, c *cloth.Cloth, _ cloth.StepStats) {
	l.n = c.Len()
}
func (l *LiveParticles) Value() float64 { return float64(l.n) }
func (l *LiveParticles) Reset()         { l.n = 0 }

type LiveConstraints struct{ n int }

func NewLiveConstraints() *LiveConstraints { return &LiveConstraints{} }

func (l *LiveConstraints) Name() string { return "live_constraints" }
func (l *LiveConstraints) Observe(_ int, c *cloth.Cloth, _ cloth.StepStats) {
	l.n = c.NumConstraints()
}
func (l *LiveConstraints) Value() float64 { return float64(l.n) }
func (l *LiveConstraints) Reset()         { l.n = 0 }

// Broken counts constraints removed by tearing or cutting since Reset.
type Broken struct{ n int }

func NewBroken() *Broken { return &Broken{} }

func (b *Broken) Name() string { return "broken" }
func (b *Broken) Observe(_ int, _ *cloth.Cloth, st cloth.StepStats) {
	b.n += st.Torn + st.Cut
}
func (b *Broken) Value() float64 { return float64(b.n) }
func (b *Broken) Reset()         { b.n = 0 }

// Defaults is the metric set recorded by every run.
func Defaults(dt float64) []sim.Metric {
	return []sim.Metric{
		NewLiveParticles(),
		NewLiveConstraints(),
		NewBroken(),
		NewSag(),
		NewKinetic(dt),
		NewMaxStretch(),
	}
}
