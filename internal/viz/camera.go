package viz

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits the cloth for the orbit projection. It is orthographic:
// braille dots carry no depth cue worth a perspective divide.
//
// Rotate moves a target; Update eases Pitch and Yaw towards it on a
// critically damped spring, one call per rendered frame.
type Camera struct {
	Pitch, Yaw float64
	Zoom       float64

	spring                 harmonica.Spring
	targetPitch, targetYaw float64
	velPitch, velYaw       float64
}

func NewCamera() *Camera {
	c := &Camera{
		Pitch:  -1.1,
		Yaw:    0.5,
		Zoom:   1,
		spring: harmonica.NewSpring(harmonica.FPS(60), 8.0, 1.0),
	}
	c.targetPitch, c.targetYaw = c.Pitch, c.Yaw
	return c
}

func (c *Camera) Rotate(pitch, yaw float64) {
	c.targetPitch += pitch
	c.targetYaw += yaw
}

// Update advances the orbit one frame towards its target.
func (c *Camera) Update() {
	c.Pitch, c.velPitch = c.spring.Update(c.Pitch, c.velPitch, c.targetPitch)
	c.Yaw, c.velYaw = c.spring.Update(c.Yaw, c.velYaw, c.targetYaw)
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Apply rotates p about center and scales it by the zoom.
func (c *Camera) Apply(p, center mgl64.Vec3) mgl64.Vec3 {
	rot := mgl64.Rotate3DX(c.Pitch).Mul3(mgl64.Rotate3DZ(c.Yaw))
	return rot.Mul3x1(p.Sub(center)).Mul(c.Zoom)
}
