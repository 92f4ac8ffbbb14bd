package cloth

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// pair builds two free particles at x=50 and x=60 linked by one constraint
// owned by particle 1.
func pair() *Cloth {
	return Build(2, 1, 10, 10, WithPinning(PinNone))
}

func moveTo(p *Particle, pos mgl64.Vec3) {
	p.Pos = pos
	p.Prev = pos
}

func TestRelaxConverges(t *testing.T) {
	c := pair()
	s, _ := NewSolver(DefaultParams())
	moveTo(c.Particle(1), mgl64.Vec3{70, 50, 0})

	k := c.Particle(1).Constraints()[0]
	errAt := func() float64 {
		return math.Abs(c.Particle(1).Pos.Sub(c.Particle(0).Pos).Len() - k.RestLength)
	}

	prev := errAt()
	for i := 0; i < 10; i++ {
		var st StepStats
		s.relax(c, &st)
		cur := errAt()
		if cur > prev {
			t.Fatalf("pass %d: error grew from %f to %f", i, prev, cur)
		}
		prev = cur
	}
	if prev > 1e-5 {
		t.Errorf("expected convergence, residual %f", prev)
	}
}

func TestRelaxPinnedEndpoint(t *testing.T) {
	c := pair()
	s, _ := NewSolver(DefaultParams())
	anchor := c.Particle(0)
	anchor.Pinned = true
	moveTo(c.Particle(1), mgl64.Vec3{70, 50, 0})

	var st StepStats
	s.relax(c, &st)

	if anchor.Pos != (mgl64.Vec3{50, 50, 0}) {
		t.Errorf("pinned endpoint moved to %v", anchor.Pos)
	}
	// full correction: 70 + 20 * (10-20)/20 * 1.2 = 58
	if got := c.Particle(1).Pos[0]; math.Abs(got-58) > 1e-9 {
		t.Errorf("mobile endpoint x = %f, want 58", got)
	}
}

func TestRelaxTears(t *testing.T) {
	c := pair()
	s, _ := NewSolver(DefaultParams())
	moveTo(c.Particle(1), mgl64.Vec3{200, 50, 0})

	var st StepStats
	s.relax(c, &st)

	if st.Torn != 1 {
		t.Errorf("expected 1 torn constraint, got %d", st.Torn)
	}
	if c.Particle(1).NumConstraints() != 0 {
		t.Error("torn constraint still owned")
	}
	if c.Particle(0).Incoming() != 0 {
		t.Error("incoming count not released")
	}
	if got := c.Particle(1).Pos[0]; got != 200 {
		t.Errorf("torn constraint still corrected position: x = %f", got)
	}

	s.relax(c, &st)
	if st.Torn != 1 {
		t.Error("torn constraint reappeared")
	}
}

func TestRelaxDegenerate(t *testing.T) {
	c := pair()
	s, _ := NewSolver(DefaultParams())
	moveTo(c.Particle(1), c.Particle(0).Pos)

	var st StepStats
	s.relax(c, &st)

	if st.Degenerate != 1 {
		t.Errorf("expected 1 degenerate constraint, got %d", st.Degenerate)
	}
	if !isFinite(c.Particle(1).Pos) || !isFinite(c.Particle(0).Pos) {
		t.Fatal("degenerate constraint produced non-finite position")
	}
	if c.Particle(1).NumConstraints() != 1 {
		t.Error("degenerate constraint should be kept")
	}
}
