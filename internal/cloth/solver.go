package cloth

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultAccuracy   = 5
	DefaultElasticity = 1.2
	DefaultDamping    = 0.99
	DefaultDt         = 0.016
	DefaultBound      = 800.0
	DefaultFloor      = 1.0
	DefaultDrag       = 1.8
)

// DefaultGravity pulls along -z.
var DefaultGravity = mgl64.Vec3{0, 0, -7000}

// Params is the tuning of one solver. Each instance carries its own copy.
type Params struct {
	Accuracy   int        // relaxation passes per frame
	Elasticity float64    // constraint correction factor; > 1 over-corrects
	Damping    float64    // fraction of implicit velocity kept per frame
	Dt         float64    // fixed timestep in seconds
	Gravity    mgl64.Vec3 // constant force added to unpinned particles
	Bounds     mgl64.Vec3 // containment half-extent per axis
	Floor      float64    // lower containment bound on x and y
	Drag       float64    // grab drag factor
}

func DefaultParams() Params {
	return Params{
		Accuracy:   DefaultAccuracy,
		Elasticity: DefaultElasticity,
		Damping:    DefaultDamping,
		Dt:         DefaultDt,
		Gravity:    DefaultGravity,
		Bounds:     mgl64.Vec3{DefaultBound, DefaultBound, DefaultBound},
		Floor:      DefaultFloor,
		Drag:       DefaultDrag,
	}
}

// Validate reports the first out-of-range parameter.
func (p Params) Validate() error {
	if p.Accuracy < 1 {
		return fmt.Errorf("%w: accuracy must be at least 1, got %d", ErrInvalidParams, p.Accuracy)
	}
	if p.Elasticity <= 0 || p.Elasticity >= 2 {
		return fmt.Errorf("%w: elasticity must be in (0, 2), got %f", ErrInvalidParams, p.Elasticity)
	}
	if p.Damping < 0 || p.Damping > 1 {
		return fmt.Errorf("%w: damping must be in [0, 1], got %f", ErrInvalidParams, p.Damping)
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidParams, p.Dt)
	}
	for axis, b := range p.Bounds {
		if b <= p.Floor {
			return fmt.Errorf("%w: bound on axis %d (%f) must exceed floor %f", ErrInvalidParams, axis, b, p.Floor)
		}
	}
	if !isFinite(p.Gravity) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidParams)
	}
	return nil
}

// StepStats counts what happened during one frame.
type StepStats struct {
	Torn       int // constraints torn by overstretch
	Cut        int // constraints dropped by the pointer
	Pruned     int // particles removed from the live set
	Degenerate int // constraint corrections skipped for zero length
	Anomalies  int // particles whose integration produced a non-finite position
}

// Add accumulates other into s.
func (s *StepStats) Add(other StepStats) {
	s.Torn += other.Torn
	s.Cut += other.Cut
	s.Pruned += other.Pruned
	s.Degenerate += other.Degenerate
	s.Anomalies += other.Anomalies
}

// Solver advances a Cloth one fixed timestep at a time.
type Solver struct {
	params Params
	dt2    float64
}

func NewSolver(p Params) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Solver{params: p, dt2: p.Dt * p.Dt}, nil
}

func (s *Solver) Params() Params { return s.params }

// Step runs one frame: relax, interact and integrate, contain, prune.
// ptr may be nil for no interaction.
func (s *Solver) Step(c *Cloth, ptr *Pointer) StepStats {
	var st StepStats

	for pass := 0; pass < s.params.Accuracy; pass++ {
		s.relax(c, &st)
	}

	for i := range c.particles {
		p := &c.particles[i]
		if !p.alive {
			continue
		}

		switch ptr.Effect(p.Pos) {
		case EffectGrab:
			if !p.Pinned {
				ptr.grab(p, s.params.Drag)
			}
		case EffectCut:
			st.Cut += c.Cut(i)
		}

		if p.Pinned {
			p.Force = mgl64.Vec3{}
			continue
		}
		if !s.integrate(p) {
			st.Anomalies++
			continue
		}
		s.contain(p)
	}

	st.Pruned = c.prune()
	c.frame++
	return st
}

// relax runs one pass over every owned constraint in particle order. Torn
// constraints are compacted out of the owner's list in place so the pass
// neither skips nor revisits a constraint.
func (s *Solver) relax(c *Cloth, st *StepStats) {
	for i := range c.particles {
		p := &c.particles[i]
		if !p.alive || len(p.constraints) == 0 {
			continue
		}
		kept := p.constraints[:0]
		for _, k := range p.constraints {
			switch c.resolve(&k, s.params.Elasticity) {
			case torn:
				c.particles[k.P2].incoming--
				st.Torn++
				continue
			case degenerate:
				st.Degenerate++
			}
			kept = append(kept, k)
		}
		p.constraints = kept
	}
}

func (s *Solver) integrate(p *Particle) bool {
	p.AddForce(s.params.Gravity)

	velocity := p.Pos.Sub(p.Prev).Mul(s.params.Damping)
	next := p.Pos.Add(velocity).Add(p.Force.Mul(0.5 * s.dt2))
	p.Force = mgl64.Vec3{}
	if !isFinite(next) {
		return false
	}

	p.Prev = p.Pos
	p.Pos = next
	return true
}

// contain reflects the position back inside the box, one axis at a time.
// x and y reflect off Floor below; z is symmetric around zero.
func (s *Solver) contain(p *Particle) {
	b := s.params.Bounds
	floor := s.params.Floor
	for axis := 0; axis < 2; axis++ {
		if p.Pos[axis] >= b[axis] {
			p.Pos[axis] = 2*b[axis] - p.Pos[axis]
		} else if p.Pos[axis] < floor {
			p.Pos[axis] = 2*floor - p.Pos[axis]
		}
	}
	if p.Pos[2] >= b[2] {
		p.Pos[2] = 2*b[2] - p.Pos[2]
	} else if p.Pos[2] <= -b[2] {
		p.Pos[2] = -2*b[2] - p.Pos[2]
	}
}

// prune removes every live particle that owns no constraints. Removal only
// tombstones, so the index walk sees each particle exactly once and
// neighbours that still link to a removed particle keep a valid endpoint.
func (c *Cloth) prune() int {
	n := 0
	for i := range c.particles {
		p := &c.particles[i]
		if p.alive && p.orphaned() {
			c.remove(i)
			n++
		}
	}
	return n
}
