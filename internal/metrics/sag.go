package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// Sag is the mean z of live unpinned particles in the latest frame.
type Sag struct {
	mean float64
}

func NewSag() *Sag { return &Sag{} }

func (s *Sag) Name() string { return "sag" }

func (s *Sag) Observe(_ int, c *cloth.Cloth, _ cloth.StepStats) {
	sum, n := 0.0, 0
	for _, smp := range c.Snapshot() {
		if smp.Pinned {
			continue
		}
		sum += smp.Z
		n++
	}
	if n == 0 {
		s.mean = 0
		return
	}
	s.mean = sum / float64(n)
}

func (s *Sag) Value() float64 { return s.mean }

func (s *Sag) Reset() { s.mean = 0 }
