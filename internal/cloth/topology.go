package cloth

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultOrigin offsets the grid away from the lower containment floor.
var DefaultOrigin = mgl64.Vec2{50, 50}

// DefaultRingTolerance is the band, in squared units, around radius² within
// which a particle counts as lying on the ring.
const DefaultRingTolerance = 2000.0

// PinPolicy selects which grid rows are pinned at construction.
type PinPolicy uint8

const (
	PinTopBottom PinPolicy = iota
	PinTop
	PinNone
)

func (p PinPolicy) String() string {
	switch p {
	case PinTopBottom:
		return "top-bottom"
	case PinTop:
		return "top"
	case PinNone:
		return "none"
	}
	return fmt.Sprintf("PinPolicy(%d)", uint8(p))
}

// ParsePinPolicy maps a policy name to its value. The empty string selects
// the default top-bottom policy.
func ParsePinPolicy(s string) (PinPolicy, error) {
	switch s {
	case "", "top-bottom":
		return PinTopBottom, nil
	case "top":
		return PinTop, nil
	case "none":
		return PinNone, nil
	}
	return 0, fmt.Errorf("unknown pin policy: %s", s)
}

func (p PinPolicy) pins(row, height int) bool {
	switch p {
	case PinTopBottom:
		return row == 0 || row == height-1
	case PinTop:
		return row == 0
	}
	return false
}

type buildOptions struct {
	origin        mgl64.Vec2
	tearDistance  float64
	pin           PinPolicy
	ringTolerance float64
}

// Option customizes grid construction.
type Option func(*buildOptions)

func WithOrigin(x, y float64) Option {
	return func(o *buildOptions) { o.origin = mgl64.Vec2{x, y} }
}

func WithTearDistance(d float64) Option {
	return func(o *buildOptions) { o.tearDistance = d }
}

func WithPinning(p PinPolicy) Option {
	return func(o *buildOptions) { o.pin = p }
}

// WithRingTolerance sets the ring band used by BuildRing.
func WithRingTolerance(tol float64) Option {
	return func(o *buildOptions) { o.ringTolerance = tol }
}

func defaultBuildOptions() buildOptions {
	return buildOptions{
		origin:        DefaultOrigin,
		tearDistance:  DefaultTearDistance,
		pin:           PinTopBottom,
		ringTolerance: DefaultRingTolerance,
	}
}

// Cloth is the particle/constraint graph of one simulation instance.
// Particles live in an index-stable arena; removed particles are tombstoned
// and their index is never reused.
type Cloth struct {
	particles []Particle
	width     int
	height    int
	live      int
	frame     int

	groups     []*Group
	grabbed    []int
	grabbedSet map[int]struct{}
}

// Build constructs a width x height grid with spacing dx, dy. Each particle
// is linked to the particle directly above it and to its predecessor in the
// row. Non-positive dimensions yield an empty cloth.
func Build(width, height int, dx, dy float64, opts ...Option) *Cloth {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return build(width, height, dx, dy, o)
}

func build(width, height int, dx, dy float64, o buildOptions) *Cloth {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == 0 || height == 0 {
		width, height = 0, 0
	}

	c := &Cloth{
		particles:  make([]Particle, 0, width*height),
		width:      width,
		height:     height,
		grabbedSet: make(map[int]struct{}),
	}

	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			pos := mgl64.Vec3{o.origin[0] + dx*float64(j), o.origin[1] + dy*float64(i), 0}
			idx := len(c.particles)
			c.particles = append(c.particles, newParticle(pos))
			if i > 0 {
				c.link(idx, idx-width, o.tearDistance)
			}
			if j > 0 {
				c.link(idx, idx-1, o.tearDistance)
			}
			c.particles[idx].Pinned = o.pin.pins(i, height)
		}
	}
	c.live = len(c.particles)
	return c
}

// BuildRing builds the same grid as Build and additionally partitions the
// particles into those lying on the circle (center, radius) and the rest.
// The partition is bookkeeping only; pruning keeps both groups current.
func BuildRing(width, height int, dx, dy float64, center mgl64.Vec2, radius float64, opts ...Option) (c *Cloth, ring, other *Group) {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c = build(width, height, dx, dy, o)

	ring = c.newGroup("ring")
	other = c.newGroup("other")
	r2 := radius * radius
	for i := range c.particles {
		p := c.particles[i].Pos
		d2 := (p[0]-center[0])*(p[0]-center[0]) + (p[1]-center[1])*(p[1]-center[1])
		if math.Abs(d2-r2) < o.ringTolerance {
			ring.add(i)
		} else {
			other.add(i)
		}
	}
	return c, ring, other
}

func (c *Cloth) link(p1, p2 int, tear float64) {
	a := &c.particles[p1]
	b := &c.particles[p2]
	a.constraints = append(a.constraints, Constraint{
		P1:           p1,
		P2:           p2,
		RestLength:   a.Pos.Sub(b.Pos).Len(),
		TearDistance: tear,
	})
	b.incoming++
}

func (c *Cloth) Width() int  { return c.width }
func (c *Cloth) Height() int { return c.height }

// Len returns the number of live particles.
func (c *Cloth) Len() int { return c.live }

// Cap returns the arena size, including removed particles.
func (c *Cloth) Cap() int { return len(c.particles) }

// Frame returns the number of completed steps.
func (c *Cloth) Frame() int { return c.frame }

// Index returns the arena index of the particle at grid row, col.
func (c *Cloth) Index(row, col int) int { return row*c.width + col }

// Particle returns the particle at arena index i, or nil if i is out of
// range. Removed particles are returned with Alive() == false.
func (c *Cloth) Particle(i int) *Particle {
	if i < 0 || i >= len(c.particles) {
		return nil
	}
	return &c.particles[i]
}

// NumConstraints counts the constraints owned by live particles.
func (c *Cloth) NumConstraints() int {
	n := 0
	for i := range c.particles {
		if c.particles[i].alive {
			n += len(c.particles[i].constraints)
		}
	}
	return n
}

// NumPinned counts live pinned particles.
func (c *Cloth) NumPinned() int {
	n := 0
	for i := range c.particles {
		if c.particles[i].alive && c.particles[i].Pinned {
			n++
		}
	}
	return n
}

// Cut drops every constraint owned by particle i.
func (c *Cloth) Cut(i int) int {
	p := c.Particle(i)
	if p == nil || !p.alive {
		return 0
	}
	n := len(p.constraints)
	for _, k := range p.constraints {
		c.particles[k.P2].incoming--
	}
	p.constraints = p.constraints[:0]
	return n
}

// remove tombstones particle i. The caller guarantees it owns no
// constraints; incoming links are left in place.
func (c *Cloth) remove(i int) {
	c.particles[i].alive = false
	c.particles[i].constraints = nil
	c.live--
	for _, g := range c.groups {
		delete(g.members, i)
	}
	c.ungrab(i)
}

// Validate checks that removed particles own nothing, that every constraint
// names its owner as P1 and an existing arena slot as P2, and that incoming
// counts match the constraint lists. A P2 endpoint may be a removed particle.
func (c *Cloth) Validate() error {
	incoming := make([]int, len(c.particles))
	for i := range c.particles {
		p := &c.particles[i]
		if !p.alive {
			if len(p.constraints) != 0 {
				return fmt.Errorf("%w: removed particle %d still owns constraints", ErrDanglingConstraint, i)
			}
			continue
		}
		for _, k := range p.constraints {
			if k.P1 != i {
				return fmt.Errorf("%w: constraint owned by %d names p1=%d", ErrDanglingConstraint, i, k.P1)
			}
			if k.P2 < 0 || k.P2 >= len(c.particles) {
				return fmt.Errorf("%w: %d -> %d", ErrDanglingConstraint, i, k.P2)
			}
			incoming[k.P2]++
		}
	}
	for i := range c.particles {
		if c.particles[i].incoming != incoming[i] {
			return fmt.Errorf("%w: particle %d has %d, want %d", ErrIncomingMismatch, i, c.particles[i].incoming, incoming[i])
		}
	}
	return nil
}

// Group is a named subset of particles kept in sync with pruning.
type Group struct {
	name    string
	members map[int]struct{}
}

// newGroup registers an empty group on the cloth.
func (c *Cloth) newGroup(name string) *Group {
	g := &Group{name: name, members: make(map[int]struct{})}
	c.groups = append(c.groups, g)
	return g
}

// Groups returns the registered groups in creation order.
func (c *Cloth) Groups() []*Group {
	out := make([]*Group, len(c.groups))
	copy(out, c.groups)
	return out
}

func (g *Group) add(i int) { g.members[i] = struct{}{} }

func (g *Group) Name() string { return g.name }
func (g *Group) Len() int     { return len(g.members) }

func (g *Group) Contains(i int) bool {
	_, ok := g.members[i]
	return ok
}

// Indices returns the member indices in ascending order.
func (g *Group) Indices() []int {
	out := make([]int, 0, len(g.members))
	for i := range g.members {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// ForEachConstraint calls fn for every constraint owned by a live particle,
// in relaxation order.
func (c *Cloth) ForEachConstraint(fn func(k Constraint)) {
	for i := range c.particles {
		if !c.particles[i].alive {
			continue
		}
		for _, k := range c.particles[i].constraints {
			fn(k)
		}
	}
}
