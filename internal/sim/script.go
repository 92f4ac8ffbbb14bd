package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/clothsim/internal/cloth"
)

// CirclePath moves the pointer around a circle, DegPerFrame degrees per
// frame, for the first Frames frames.
type CirclePath struct {
	Center      mgl64.Vec2
	Radius      float64
	DegPerFrame float64
	Frames      int
}

func (p CirclePath) Apply(frame int, _ *cloth.Cloth, ptr *cloth.Pointer) {
	if frame >= p.Frames {
		return
	}
	theta := p.DegPerFrame * float64(frame) * math.Pi / 180
	ptr.MoveTo(p.Center[0]+p.Radius*math.Cos(theta), p.Center[1]+p.Radius*math.Sin(theta))
}

// PinAt pins the particles near Point once, at frame After.
type PinAt struct {
	Point  mgl64.Vec2
	Radius float64
	After  int
}

func (p PinAt) Apply(frame int, c *cloth.Cloth, _ *cloth.Pointer) {
	if frame == p.After {
		c.PinNear(p.Point, p.Radius)
	}
}

// Tension drags the grabbed set by Delta every frame in [From, To).
type Tension struct {
	Delta    mgl64.Vec3
	From, To int
}

func (t Tension) Apply(frame int, c *cloth.Cloth, _ *cloth.Pointer) {
	if frame >= t.From && frame < t.To {
		c.ApplyTension(t.Delta)
	}
}
