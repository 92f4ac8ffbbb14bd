package config

import "sort"

// Presets are named starting points; GetPreset fills unset fields from
// DefaultConfig.
var Presets = map[string]func(*Config){
	"hanging": func(c *Config) {},
	"curtain": func(c *Config) {
		c.Grid.Pin = "top"
		c.Grid.Width, c.Grid.Height = 40, 25
	},
	"drape": func(c *Config) {
		c.Grid.Pin = "top"
		c.Grid.TearDistance = 1000
		c.Physics.Accuracy = 8
	},
	"tear": func(c *Config) {
		c.Grid.TearDistance = 14
		c.Pointer.Pressed = true
		c.Pointer.Mode = "grab"
		c.Pointer.X, c.Pointer.Y = 200, 150
		c.Pointer.Influence = 40
		c.Script = ScriptConfig{
			Kind: "circle", CenterX: 200, CenterY: 150, Radius: 60,
			DegPerFrame: 6, MoveFrames: 120,
		}
	},
	"ring-cut": func(c *Config) {
		c.Frames = 150
		c.Grid = GridConfig{
			Width: 100, Height: 100, DX: 5, DY: 5,
			OriginX: 50, OriginY: 50, TearDistance: 100, Pin: "top-bottom",
		}
		c.Ring = &RingConfig{CenterX: 300, CenterY: 300, Radius: 150, Tolerance: 2000}
		c.Pointer = PointerConfig{
			Pressed: true, Mode: "cut", X: 0, Y: 300, Z: 0,
			Influence: 5, Cut: 10, HeightLimit: 100,
		}
		c.Script = ScriptConfig{
			Kind: "circle", CenterX: 300, CenterY: 300, Radius: 150,
			DegPerFrame: 3.6, MoveFrames: 150,
			PinRadius: 31.6, PinX: 300, PinY: 300, PinAfter: 1,
		}
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Name = name
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
