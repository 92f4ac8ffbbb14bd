package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
)

// FromConfig builds a fresh, independent simulator for cfg: cloth, solver,
// pointer and scripts.
func FromConfig(cfg *config.Config) (*Simulator, error) {
	c, _, _, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build cloth: %w", err)
	}
	solver, err := cloth.NewSolver(cfg.Params())
	if err != nil {
		return nil, err
	}
	ptr, err := cfg.NewPointer()
	if err != nil {
		return nil, err
	}

	s := New(c, solver, ptr)
	for _, sc := range Scripts(cfg.Script) {
		s.AddScript(sc)
	}
	return s, nil
}

// Scripts translates the script section of a config.
func Scripts(sc config.ScriptConfig) []Script {
	scripts := make([]Script, 0, 3)
	if sc.PinRadius > 0 {
		scripts = append(scripts, PinAt{
			Point:  mgl64.Vec2{sc.PinX, sc.PinY},
			Radius: sc.PinRadius,
			After:  sc.PinAfter,
		})
	}
	if sc.Kind == "circle" {
		scripts = append(scripts, CirclePath{
			Center:      mgl64.Vec2{sc.CenterX, sc.CenterY},
			Radius:      sc.Radius,
			DegPerFrame: sc.DegPerFrame,
			Frames:      sc.MoveFrames,
		})
	}
	if sc.TensionTo > sc.TensionFrom {
		scripts = append(scripts, Tension{
			Delta: mgl64.Vec3(sc.Tension),
			From:  sc.TensionFrom,
			To:    sc.TensionTo,
		})
	}
	return scripts
}
