package config

import (
	"fmt"
	"os"

	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/layout"
	"github.com/san-kum/arena/internal/palette"
	"github.com/san-kum/arena/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS    = 60
	DefaultFrames = 600
)

type Config struct {
	Arena        ArenaConfig     `yaml:"arena"`
	Bodies       BodiesConfig    `yaml:"bodies"`
	ImpulseScale float64         `yaml:"impulse_scale"`
	FPS          int             `yaml:"fps"`
	Frames       int             `yaml:"frames"`
	Palette      PaletteConfig   `yaml:"palette"`
	Gestures     []GestureConfig `yaml:"gestures,omitempty"`
}

type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type BodiesConfig struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	Gap    float64 `yaml:"gap"`
}

type PaletteConfig struct {
	Mode     string  `yaml:"mode"`
	Color    string  `yaml:"color"`
	Fast     string  `yaml:"fast"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// GestureConfig is a scripted slingshot for headless runs.
type GestureConfig struct {
	Frame   int        `yaml:"frame"`
	Press   [2]float64 `yaml:"press,flow"`
	Release [2]float64 `yaml:"release,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		Arena: ArenaConfig{Width: dynamo.DefaultWidth, Height: dynamo.DefaultHeight},
		Bodies: BodiesConfig{
			Count:  layout.DefaultCount,
			Radius: layout.DefaultRadius,
			Gap:    layout.DefaultGap,
		},
		ImpulseScale: dynamo.ImpulseScale,
		FPS:          DefaultFPS,
		Frames:       DefaultFrames,
		Palette: PaletteConfig{
			Mode:     palette.ModeSolid,
			Color:    palette.DefaultColor,
			Fast:     palette.DefaultFast,
			MaxSpeed: palette.DefaultMaxSpeed,
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

// Validate checks the values the simulation cannot run with. A body count
// above the grid capacity is not an error here; layout reports it.
func (c *Config) Validate() error {
	if !(c.Arena.Width > 0) || !(c.Arena.Height > 0) {
		return fmt.Errorf("%w: arena %vx%v", dynamo.ErrParameterBounds, c.Arena.Width, c.Arena.Height)
	}
	if err := c.LayoutParams().Validate(); err != nil {
		return err
	}
	if !(c.ImpulseScale > 0) {
		return fmt.Errorf("%w: impulse_scale %v", dynamo.ErrParameterBounds, c.ImpulseScale)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", dynamo.ErrParameterBounds, c.FPS)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames %d", dynamo.ErrParameterBounds, c.Frames)
	}
	for i, g := range c.Gestures {
		if g.Frame < 0 {
			return fmt.Errorf("%w: gesture %d frame %d", dynamo.ErrParameterBounds, i, g.Frame)
		}
	}
	if _, err := c.Painter(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Bounds() dynamo.Bounds {
	return dynamo.Bounds{Width: c.Arena.Width, Height: c.Arena.Height}
}

func (c *Config) LayoutParams() layout.Params {
	return layout.Params{Count: c.Bodies.Count, Radius: c.Bodies.Radius, Gap: c.Bodies.Gap}
}

func (c *Config) Painter() (dynamo.Painter, error) {
	return palette.New(c.Palette.Mode, c.Palette.Color, c.Palette.Fast, c.Palette.MaxSpeed)
}

// Script turns the configured gestures into a scheduler script.
func (c *Config) Script() sim.Script {
	var s sim.Script
	for _, g := range c.Gestures {
		s = append(s, sim.Slingshot(g.Frame,
			dynamo.Vec2{X: g.Press[0], Y: g.Press[1]},
			dynamo.Vec2{X: g.Release[0], Y: g.Release[1]})...)
	}
	return s
}
