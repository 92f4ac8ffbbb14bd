package cloth

import "github.com/go-gl/mathgl/mgl64"

// PinNear pins every live particle within radius of point (x-y plane) and
// adds it to the grabbed set. It returns the number of particles matched.
func (c *Cloth) PinNear(point mgl64.Vec2, radius float64) int {
	n := 0
	for i := range c.particles {
		p := &c.particles[i]
		if !p.alive || !within(p.Pos, point, radius) {
			continue
		}
		p.Pinned = true
		if _, ok := c.grabbedSet[i]; !ok {
			c.grabbedSet[i] = struct{}{}
			c.grabbed = append(c.grabbed, i)
		}
		n++
	}
	return n
}

// UnpinNear releases every grabbed particle within radius of point and drops
// it from the grabbed set. It returns the number of particles released.
func (c *Cloth) UnpinNear(point mgl64.Vec2, radius float64) int {
	n := 0
	kept := c.grabbed[:0]
	for _, i := range c.grabbed {
		p := &c.particles[i]
		if within(p.Pos, point, radius) {
			p.Pinned = false
			delete(c.grabbedSet, i)
			n++
			continue
		}
		kept = append(kept, i)
	}
	c.grabbed = kept
	return n
}

// ApplyTension moves every grabbed particle by delta and resets its previous
// position, so the move carries no Verlet velocity.
func (c *Cloth) ApplyTension(delta mgl64.Vec3) {
	for _, i := range c.grabbed {
		p := &c.particles[i]
		p.Pos = p.Pos.Add(delta)
		p.Prev = p.Pos
	}
}

// Grabbed returns the grabbed particle indices in the order they were pinned.
func (c *Cloth) Grabbed() []int {
	out := make([]int, len(c.grabbed))
	copy(out, c.grabbed)
	return out
}

func (c *Cloth) ungrab(i int) {
	if _, ok := c.grabbedSet[i]; !ok {
		return
	}
	delete(c.grabbedSet, i)
	for j, g := range c.grabbed {
		if g == i {
			c.grabbed = append(c.grabbed[:j], c.grabbed[j+1:]...)
			return
		}
	}
}

func within(pos mgl64.Vec3, point mgl64.Vec2, radius float64) bool {
	return planarDist(pos, mgl64.Vec3{point[0], point[1], pos[2]}) < radius
}
