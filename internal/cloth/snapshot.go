package cloth

// Sample is the read-only view of one live particle.
type Sample struct {
	Index   int
	X, Y, Z float64
	Pinned  bool
}

// Snapshot copies the live particles in index order.
func (c *Cloth) Snapshot() []Sample {
	out := make([]Sample, 0, c.live)
	for i := range c.particles {
		if p := &c.particles[i]; p.alive {
			out = append(out, sample(i, p))
		}
	}
	return out
}

// GroupSnapshot copies the live members of g in index order.
func (c *Cloth) GroupSnapshot(g *Group) []Sample {
	idx := g.Indices()
	out := make([]Sample, 0, len(idx))
	for _, i := range idx {
		if p := &c.particles[i]; p.alive {
			out = append(out, sample(i, p))
		}
	}
	return out
}

func sample(i int, p *Particle) Sample {
	return Sample{Index: i, X: p.Pos[0], Y: p.Pos[1], Z: p.Pos[2], Pinned: p.Pinned}
}

// SnapshotInto is Snapshot appending into dst[:0], for callers that reuse
// buffers across frames.
func (c *Cloth) SnapshotInto(dst []Sample) []Sample {
	dst = dst[:0]
	for i := range c.particles {
		if p := &c.particles[i]; p.alive {
			dst = append(dst, sample(i, p))
		}
	}
	return dst
}
