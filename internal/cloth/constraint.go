package cloth

import "math"

// DefaultTearDistance is the stretch beyond which a constraint tears.
const DefaultTearDistance = 100.0

// Constraint links two particles at a fixed rest length. It is stored once,
// in the owned list of P1; P1 and P2 are arena indices, not owners.
type Constraint struct {
	P1, P2       int
	RestLength   float64
	TearDistance float64
}

type outcome uint8

const (
	resolved outcome = iota
	torn
	degenerate
)

// resolve performs one relaxation of k, moving the unpinned endpoints toward
// the rest length. It reports torn when the live distance exceeds the tear
// distance; the caller drops the constraint. No positions change unless the
// outcome is resolved.
func (c *Cloth) resolve(k *Constraint, elasticity float64) outcome {
	p1 := &c.particles[k.P1]
	p2 := &c.particles[k.P2]

	delta := p1.Pos.Sub(p2.Pos)
	dist := delta.Len()
	if dist == 0 || math.IsNaN(dist) || math.IsInf(dist, 0) {
		return degenerate
	}
	if dist > k.TearDistance {
		return torn
	}

	diff := (k.RestLength - dist) / dist

	switch {
	case p1.Pinned && p2.Pinned:
	case p1.Pinned:
		p2.Pos = p2.Pos.Sub(delta.Mul(diff * elasticity))
	case p2.Pinned:
		p1.Pos = p1.Pos.Add(delta.Mul(diff * elasticity))
	default:
		corr := delta.Mul(0.5 * diff * elasticity)
		p1.Pos = p1.Pos.Add(corr)
		p2.Pos = p2.Pos.Sub(corr)
	}
	return resolved
}
