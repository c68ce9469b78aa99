package config

import "sort"

func gesture(frame int, px, py, rx, ry float64) GestureConfig {
	return GestureConfig{Frame: frame, Press: [2]float64{px, py}, Release: [2]float64{rx, ry}}
}

// Presets are partial configs applied over DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {
		c.Gestures = []GestureConfig{gesture(0, 60, 60, 460, 260)}
	},
	"pair": func(c *Config) {
		c.Bodies.Count = 2
		c.Bodies.Gap = 200
		c.Gestures = []GestureConfig{
			gesture(0, 250, 250, 550, 250),
		}
	},
	"crowded": func(c *Config) {
		c.Bodies.Count = 50
		c.Palette.Mode = "speed"
		c.Gestures = []GestureConfig{
			gesture(0, 60, 60, 660, 460),
			gesture(120, 1140, 540, 540, 140),
		}
	},
	"sparse": func(c *Config) {
		c.Bodies.Count = 4
		c.Bodies.Radius = 30
		c.Bodies.Gap = 120
		c.Gestures = []GestureConfig{
			gesture(0, 150, 150, 450, 550),
			gesture(30, 330, 150, 30, 350),
		}
	},
	"overflow": func(c *Config) {
		c.Bodies.Count = 51
	},
}

// GetPreset returns a fresh config for name, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
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
