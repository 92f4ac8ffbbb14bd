package cloth

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPinNear(t *testing.T) {
	c := Build(3, 3, 10, 10)
	center := c.Index(1, 1)

	if n := c.PinNear(mgl64.Vec2{60, 60}, 5); n != 1 {
		t.Fatalf("expected 1 match, got %d", n)
	}
	if !c.Particle(center).Pinned {
		t.Error("matched particle not pinned")
	}

	c.PinNear(mgl64.Vec2{60, 60}, 5)
	if g := c.Grabbed(); len(g) != 1 || g[0] != center {
		t.Errorf("grabbed = %v, want [%d]", g, center)
	}

	if n := c.PinNear(mgl64.Vec2{500, 500}, 5); n != 0 {
		t.Errorf("expected no match, got %d", n)
	}
}

func TestUnpinNear(t *testing.T) {
	c := Build(3, 3, 10, 10)
	c.PinNear(mgl64.Vec2{55, 60}, 8)

	if len(c.Grabbed()) != 2 {
		t.Fatalf("expected 2 grabbed, got %v", c.Grabbed())
	}

	if n := c.UnpinNear(mgl64.Vec2{55, 60}, 8); n != 2 {
		t.Errorf("expected 2 released, got %d", n)
	}
	if len(c.Grabbed()) != 0 {
		t.Errorf("grabbed set not emptied: %v", c.Grabbed())
	}
	if c.Particle(c.Index(1, 1)).Pinned || c.Particle(c.Index(1, 0)).Pinned {
		t.Error("released particles still pinned")
	}

	if n := c.UnpinNear(mgl64.Vec2{55, 60}, 8); n != 0 {
		t.Errorf("second unpin matched %d", n)
	}
}

func TestUnpinOnlyAffectsGrabbed(t *testing.T) {
	c := Build(3, 3, 10, 10)
	c.PinNear(mgl64.Vec2{60, 60}, 5)

	c.UnpinNear(mgl64.Vec2{50, 50}, 500)

	if !c.Particle(0).Pinned {
		t.Error("row-pinned particle was released")
	}
}

func TestApplyTension(t *testing.T) {
	c := Build(3, 3, 10, 10)
	s := newSolver(t, DefaultParams())
	c.PinNear(mgl64.Vec2{60, 60}, 5)
	center := c.Particle(c.Index(1, 1))

	c.ApplyTension(mgl64.Vec3{0, 0, 4})

	if center.Pos != (mgl64.Vec3{60, 60, 4}) {
		t.Errorf("position %v after tension", center.Pos)
	}
	if center.Prev != center.Pos {
		t.Error("tension should reset previous position")
	}

	s.Step(c, nil)
	if center.Pos != (mgl64.Vec3{60, 60, 4}) {
		t.Errorf("grabbed particle drifted to %v", center.Pos)
	}
}

func TestPruneReleasesGrab(t *testing.T) {
	c := Build(2, 1, 10, 10, WithPinning(PinNone))
	s := newSolver(t, DefaultParams())
	c.PinNear(mgl64.Vec2{50, 50}, 1)
	c.ApplyTension(mgl64.Vec3{0, 300, 0})

	s.Step(c, nil)

	if len(c.Grabbed()) != 0 {
		t.Errorf("pruned particle still grabbed: %v", c.Grabbed())
	}
	if c.Len() != 0 {
		t.Errorf("expected both unlinked particles pruned, got %d live", c.Len())
	}
}
