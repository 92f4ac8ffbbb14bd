package cloth

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPointerEffect(t *testing.T) {
	tests := []struct {
		name    string
		pressed bool
		mode    Mode
		limit   float64
		ptr     mgl64.Vec3
		pos     mgl64.Vec3
		want    Effect
	}{
		{"released", false, ModeCut, 0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, EffectNone},
		{"grab inside influence", true, ModeGrab, 0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 0, 0}, EffectGrab},
		{"grab outside influence", true, ModeGrab, 0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{6, 0, 0}, EffectNone},
		{"grab ignores z", true, ModeGrab, 0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 0, 500}, EffectGrab},
		{"cut inside radius", true, ModeCut, 0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 4, 0}, EffectCut},
		{"cut ignores influence", true, ModeCut, 0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{8, 0, 0}, EffectCut},
		{"cut outside radius", true, ModeCut, 0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, 0}, EffectNone},
		{"cut within height limit", true, ModeCut, 100, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, -50}, EffectCut},
		{"cut beyond height limit", true, ModeCut, 100, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, -150}, EffectNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPointer()
			p.Set(tt.ptr, tt.pressed, tt.mode, DefaultInfluence, DefaultCutRadius, tt.limit)
			if got := p.Effect(tt.pos); got != tt.want {
				t.Errorf("Effect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointerNilHasNoEffect(t *testing.T) {
	var p *Pointer
	if p.Effect(mgl64.Vec3{}) != EffectNone {
		t.Error("nil pointer should have no effect")
	}
}

func TestPointerMoveTo(t *testing.T) {
	p := NewPointer()
	p.Set(mgl64.Vec3{10, 20, 5}, true, ModeGrab, 5, 10, 0)

	if d := p.Displacement(); d != (mgl64.Vec2{}) {
		t.Errorf("Set should clear displacement, got %v", d)
	}

	p.MoveTo(13, 24)
	if d := p.Displacement(); d != (mgl64.Vec2{3, 4}) {
		t.Errorf("displacement %v, want (3, 4)", d)
	}
	if p.Pos[2] != 5 {
		t.Error("MoveTo should not change z")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("grab"); err != nil || m != ModeGrab {
		t.Errorf("ParseMode(grab) = %v, %v", m, err)
	}
	if m, err := ParseMode("cut"); err != nil || m != ModeCut {
		t.Errorf("ParseMode(cut) = %v, %v", m, err)
	}
	if _, err := ParseMode("poke"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
