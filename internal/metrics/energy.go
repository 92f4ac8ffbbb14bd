package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// Kinetic tracks the kinetic energy implied by the Verlet displacement of
// unpinned particles, assuming unit mass.
type Kinetic struct {
	dt      float64
	current float64
	peak    float64
}

func NewKinetic(dt float64) *Kinetic {
	return &Kinetic{dt: dt}
}

func (k *Kinetic) Name() string { return "kinetic" }

func (k *Kinetic) Observe(_ int, c *cloth.Cloth, _ cloth.StepStats) {
	dt2 := k.dt * k.dt
	total := 0.0
	for i := 0; i < c.Cap(); i++ {
		p := c.Particle(i)
		if !p.Alive() || p.Pinned {
			continue
		}
		v := p.Pos.Sub(p.Prev)
		total += 0.5 * v.Dot(v) / dt2
	}
	k.current = total
	if total > k.peak {
		k.peak = total
	}
}

func (k *Kinetic) Value() float64 { return k.current }

// Peak is the largest energy seen since the last Reset.
func (k *Kinetic) Peak() float64 { return k.peak }

func (k *Kinetic) Reset() {
	k.current = 0
	k.peak = 0
}
