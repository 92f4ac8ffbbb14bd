package cloth

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Particle is a point mass. Velocity is implicit in Pos - Prev.
type Particle struct {
	Pos    mgl64.Vec3
	Prev   mgl64.Vec3
	Force  mgl64.Vec3
	Pinned bool

	constraints []Constraint // owned: this particle is P1
	incoming    int          // constraints elsewhere with this particle as P2
	alive       bool         // false once removed; the slot stays readable as a P2 endpoint
}

func newParticle(pos mgl64.Vec3) Particle {
	return Particle{Pos: pos, Prev: pos, alive: true}
}

// Alive reports whether the particle is still part of the live set. A removed
// particle may still be the P2 endpoint of a neighbour's constraint.
func (p *Particle) Alive() bool { return p.alive }

// Constraints returns a copy of the constraints owned by the particle.
func (p *Particle) Constraints() []Constraint {
	out := make([]Constraint, len(p.constraints))
	copy(out, p.constraints)
	return out
}

// NumConstraints returns the number of owned constraints.
func (p *Particle) NumConstraints() int { return len(p.constraints) }

// Incoming returns how many constraints reference this particle as P2.
func (p *Particle) Incoming() int { return p.incoming }

// AddForce accumulates a force for the next integration. Pinned particles
// ignore forces.
func (p *Particle) AddForce(f mgl64.Vec3) {
	if p.Pinned {
		return
	}
	p.Force = p.Force.Add(f)
}

// orphaned reports whether the particle owns no constraints.
func (p *Particle) orphaned() bool { return len(p.constraints) == 0 }

func isFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// planarDist is the x-y distance between two points; z is ignored.
func planarDist(a, b mgl64.Vec3) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}
