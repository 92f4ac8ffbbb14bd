package cloth

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pointer defaults.
const (
	DefaultInfluence = 5.0
	DefaultCutRadius = 10.0
)

// Mode selects what a pressed pointer does to nearby particles.
type Mode uint8

const (
	ModeGrab Mode = iota
	ModeCut
)

func (m Mode) String() string {
	switch m {
	case ModeGrab:
		return "grab"
	case ModeCut:
		return "cut"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode maps "grab" or "cut" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "grab":
		return ModeGrab, nil
	case "cut":
		return ModeCut, nil
	}
	return 0, fmt.Errorf("unknown pointer mode: %s", s)
}

// Effect is the outcome of the pointer on one particle for one frame.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectGrab
	EffectCut
)

// Pointer is the interaction input for a frame. Proximity is measured in the
// x-y plane; HeightLimit gates cuts on z distance and is disabled when <= 0.
type Pointer struct {
	Pressed     bool
	Mode        Mode
	Pos         mgl64.Vec3
	Prev        mgl64.Vec3
	Influence   float64
	CutRadius   float64
	HeightLimit float64
}

// NewPointer returns a released pointer at the origin with default radii.
func NewPointer() *Pointer {
	return &Pointer{
		Influence: DefaultInfluence,
		CutRadius: DefaultCutRadius,
	}
}

// Set places the pointer at pos with no pending displacement and replaces
// its state.
func (p *Pointer) Set(pos mgl64.Vec3, pressed bool, mode Mode, influence, cut, heightLimit float64) {
	p.Pos = pos
	p.Prev = pos
	p.Pressed = pressed
	p.Mode = mode
	p.Influence = influence
	p.CutRadius = cut
	p.HeightLimit = heightLimit
}

// MoveTo moves the pointer in the x-y plane, remembering where it was.
func (p *Pointer) MoveTo(x, y float64) {
	p.Prev[0], p.Prev[1] = p.Pos[0], p.Pos[1]
	p.Pos[0], p.Pos[1] = x, y
}

// Displacement is the pointer movement since the previous MoveTo.
func (p *Pointer) Displacement() mgl64.Vec2 {
	return mgl64.Vec2{p.Pos[0] - p.Prev[0], p.Pos[1] - p.Prev[1]}
}

// Effect decides what the pointer does to a particle at pos this frame.
func (p *Pointer) Effect(pos mgl64.Vec3) Effect {
	if p == nil || !p.Pressed {
		return EffectNone
	}
	dist := planarDist(pos, p.Pos)

	switch p.Mode {
	case ModeGrab:
		if dist < p.Influence {
			return EffectGrab
		}
	case ModeCut:
		if dist < p.CutRadius && (p.HeightLimit <= 0 || math.Abs(pos[2]-p.Pos[2]) < p.HeightLimit) {
			return EffectCut
		}
	}
	return EffectNone
}

// grab pulls the previous position against the pointer's displacement so
// the next Verlet step carries the particle along with the pointer.
func (p *Pointer) grab(pt *Particle, drag float64) {
	d := p.Displacement()
	pt.Prev[0] = pt.Pos[0] - d[0]*drag
	pt.Prev[1] = pt.Pos[1] - d[1]*drag
}
