package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/cloth"
)

const (
	DefaultWidth   = 30
	DefaultHeight  = 20
	DefaultSpacing = 10.0
	DefaultFrames  = 300
)

type Config struct {
	Name      string        `yaml:"name"`
	Frames    int           `yaml:"frames"`
	Instances int           `yaml:"instances"`
	Grid      GridConfig    `yaml:"grid"`
	Ring      *RingConfig   `yaml:"ring,omitempty"`
	Physics   PhysicsConfig `yaml:"physics"`
	Pointer   PointerConfig `yaml:"pointer"`
	Script    ScriptConfig  `yaml:"script"`
}

type GridConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	DX           float64 `yaml:"dx"`
	DY           float64 `yaml:"dy"`
	OriginX      float64 `yaml:"origin_x"`
	OriginY      float64 `yaml:"origin_y"`
	TearDistance float64 `yaml:"tear_distance"`
	Pin          string  `yaml:"pin"`
}

type RingConfig struct {
	CenterX   float64 `yaml:"center_x"`
	CenterY   float64 `yaml:"center_y"`
	Radius    float64 `yaml:"radius"`
	Tolerance float64 `yaml:"tolerance"`
}

type PhysicsConfig struct {
	Accuracy   int     `yaml:"accuracy"`
	Elasticity float64 `yaml:"elasticity"`
	Damping    float64 `yaml:"damping"`
	Dt         float64 `yaml:"dt"`
	GravityX   float64 `yaml:"gravity_x"`
	GravityY   float64 `yaml:"gravity_y"`
	GravityZ   float64 `yaml:"gravity_z"`
	Bound      float64 `yaml:"bound"`
	Floor      float64 `yaml:"floor"`
	Drag       float64 `yaml:"drag"`
}

type PointerConfig struct {
	Pressed     bool    `yaml:"pressed"`
	Mode        string  `yaml:"mode"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Z           float64 `yaml:"z"`
	Influence   float64 `yaml:"influence"`
	Cut         float64 `yaml:"cut"`
	HeightLimit float64 `yaml:"height_limit"`
}

// ScriptConfig drives the pointer and the grabbed set from a run.
type ScriptConfig struct {
	Kind string `yaml:"kind"` // "", "circle"

	// circle: pointer orbits (CenterX, CenterY) at Radius.
	CenterX     float64 `yaml:"center_x"`
	CenterY     float64 `yaml:"center_y"`
	Radius      float64 `yaml:"radius"`
	DegPerFrame float64 `yaml:"deg_per_frame"`
	MoveFrames  int     `yaml:"move_frames"`

	// Pin the particles within PinRadius of (PinX, PinY) after PinAfter frames.
	PinRadius float64 `yaml:"pin_radius"`
	PinX      float64 `yaml:"pin_x"`
	PinY      float64 `yaml:"pin_y"`
	PinAfter  int     `yaml:"pin_after"`

	// Apply Tension to the grabbed set during [TensionFrom, TensionTo).
	Tension     [3]float64 `yaml:"tension,flow"`
	TensionFrom int        `yaml:"tension_from"`
	TensionTo   int        `yaml:"tension_to"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:      "hanging",
		Frames:    DefaultFrames,
		Instances: 1,
		Grid: GridConfig{
			Width:        DefaultWidth,
			Height:       DefaultHeight,
			DX:           DefaultSpacing,
			DY:           DefaultSpacing,
			OriginX:      cloth.DefaultOrigin[0],
			OriginY:      cloth.DefaultOrigin[1],
			TearDistance: cloth.DefaultTearDistance,
			Pin:          cloth.PinTopBottom.String(),
		},
		Physics: PhysicsConfig{
			Accuracy:   cloth.DefaultAccuracy,
			Elasticity: cloth.DefaultElasticity,
			Damping:    cloth.DefaultDamping,
			Dt:         cloth.DefaultDt,
			GravityX:   cloth.DefaultGravity[0],
			GravityY:   cloth.DefaultGravity[1],
			GravityZ:   cloth.DefaultGravity[2],
			Bound:      cloth.DefaultBound,
			Floor:      cloth.DefaultFloor,
			Drag:       cloth.DefaultDrag,
		},
		Pointer: PointerConfig{
			Mode:      cloth.ModeGrab.String(),
			Influence: cloth.DefaultInfluence,
			Cut:       cloth.DefaultCutRadius,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() cloth.Params {
	p := c.Physics
	return cloth.Params{
		Accuracy:   p.Accuracy,
		Elasticity: p.Elasticity,
		Damping:    p.Damping,
		Dt:         p.Dt,
		Gravity:    mgl64.Vec3{p.GravityX, p.GravityY, p.GravityZ},
		Bounds:     mgl64.Vec3{p.Bound, p.Bound, p.Bound},
		Floor:      p.Floor,
		Drag:       p.Drag,
	}
}

// NewPointer builds the initial pointer state.
func (c *Config) NewPointer() (*cloth.Pointer, error) {
	mode, err := cloth.ParseMode(c.Pointer.Mode)
	if err != nil {
		return nil, err
	}
	ptr := cloth.NewPointer()
	ptr.Set(mgl64.Vec3{c.Pointer.X, c.Pointer.Y, c.Pointer.Z}, c.Pointer.Pressed, mode,
		c.Pointer.Influence, c.Pointer.Cut, c.Pointer.HeightLimit)
	return ptr, nil
}

// Build constructs the cloth described by the grid section. Groups are nil
// unless a ring is configured.
func (c *Config) Build() (cl *cloth.Cloth, ring, other *cloth.Group, err error) {
	g := c.Grid
	if g.Width <= 0 || g.Height <= 0 {
		return nil, nil, nil, fmt.Errorf("grid must be at least 1x1, got %dx%d", g.Width, g.Height)
	}
	pin, err := cloth.ParsePinPolicy(g.Pin)
	if err != nil {
		return nil, nil, nil, err
	}
	opts := []cloth.Option{
		cloth.WithOrigin(g.OriginX, g.OriginY),
		cloth.WithTearDistance(g.TearDistance),
		cloth.WithPinning(pin),
	}
	if c.Ring == nil {
		return cloth.Build(g.Width, g.Height, g.DX, g.DY, opts...), nil, nil, nil
	}
	if c.Ring.Tolerance > 0 {
		opts = append(opts, cloth.WithRingTolerance(c.Ring.Tolerance))
	}
	cl, ring, other = cloth.BuildRing(g.Width, g.Height, g.DX, g.DY,
		mgl64.Vec2{c.Ring.CenterX, c.Ring.CenterY}, c.Ring.Radius, opts...)
	return cl, ring, other, nil
}

// Tunables lists the names accepted by Set.
var Tunables = []string{"accuracy", "damping", "drag", "dt", "elasticity", "gravity", "height", "spacing", "tear", "width"}

// Set changes one numeric setting by name. Integer settings truncate v.
func (c *Config) Set(name string, v float64) error {
	switch name {
	case "accuracy":
		c.Physics.Accuracy = int(v)
	case "damping":
		c.Physics.Damping = v
	case "drag":
		c.Physics.Drag = v
	case "dt":
		c.Physics.Dt = v
	case "elasticity":
		c.Physics.Elasticity = v
	case "gravity":
		c.Physics.GravityZ = v
	case "height":
		c.Grid.Height = int(v)
	case "spacing":
		c.Grid.DX, c.Grid.DY = v, v
	case "tear":
		c.Grid.TearDistance = v
	case "width":
		c.Grid.Width = int(v)
	default:
		return fmt.Errorf("unknown setting %q (available: %v)", name, Tunables)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Ring != nil {
		ring := *c.Ring
		out.Ring = &ring
	}
	return &out
}
