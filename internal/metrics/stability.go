package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// MaxStretch records the largest ratio of live length to rest length over
// all constraints seen so far. Values near 1 mean a stiff, settled cloth.
type MaxStretch struct {
	max float64
}

func NewMaxStretch() *MaxStretch {
	return &MaxStretch{}
}

func (m *MaxStretch) Name() string { return "max_stretch" }

func (m *MaxStretch) Observe(_ int, c *cloth.Cloth, _ cloth.StepStats) {
	c.ForEachConstraint(func(k cloth.Constraint) {
		if k.RestLength == 0 {
			return
		}
		d := c.Particle(k.P1).Pos.Sub(c.Particle(k.P2).Pos).Len()
		if r := d / k.RestLength; r > m.max {
			m.max = r
		}
	})
}

func (m *MaxStretch) Value() float64 { return m.max }

func (m *MaxStretch) Reset() { m.max = 0 }
