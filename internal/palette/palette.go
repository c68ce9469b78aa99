// Package palette decides the fill color of each body.
package palette

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/arena/internal/dynamo"
)

const (
	ModeSolid = "solid"
	ModeSpeed = "speed"

	DefaultColor    = "#ffffff"
	DefaultFast     = "#ff5f87"
	DefaultMaxSpeed = 10.0
)

// Solid paints every body the same color.
type Solid struct {
	C color.RGBA
}

func (s Solid) ColorFor(dynamo.Body) color.RGBA { return s.C }

// Speed blends from Slow to Fast in Lab space as |v| approaches MaxSpeed.
type Speed struct {
	Slow, Fast colorful.Color
	MaxSpeed   float64
}

func (s Speed) ColorFor(b dynamo.Body) color.RGBA {
	t := 0.0
	if s.MaxSpeed > 0 {
		t = math.Min(b.Vel.Len()/s.MaxSpeed, 1)
	}
	return toRGBA(s.Slow.BlendLab(s.Fast, t).Clamped())
}

// New builds a painter from mode and hex colors.
func New(mode, base, fast string, maxSpeed float64) (dynamo.Painter, error) {
	slow, err := parseHex(base)
	if err != nil {
		return nil, err
	}

	switch mode {
	case "", ModeSolid:
		return Solid{C: toRGBA(slow)}, nil
	case ModeSpeed:
		hi, err := parseHex(fast)
		if err != nil {
			return nil, err
		}
		if maxSpeed <= 0 {
			return nil, fmt.Errorf("%w: max_speed %v", dynamo.ErrParameterBounds, maxSpeed)
		}
		return Speed{Slow: slow, Fast: hi, MaxSpeed: maxSpeed}, nil
	default:
		return nil, fmt.Errorf("%w: unknown palette mode %q", dynamo.ErrParameterBounds, mode)
	}
}

// Default is solid white.
func Default() dynamo.Painter {
	c, _ := colorful.Hex(DefaultColor)
	return Solid{C: toRGBA(c)}
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseHex(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: color %q: %v", dynamo.ErrParameterBounds, s, err)
	}
	return c, nil
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
