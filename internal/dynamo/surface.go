package dynamo

import "image/color"

const (
	DefaultWidth  = 1200.0
	DefaultHeight = 600.0

	// ImpulseScale divides the drag vector into a launch velocity.
	ImpulseScale = 100.0
)

// Bounds is the arena rectangle, anchored at the origin.
type Bounds struct {
	Width, Height float64
}

func DefaultBounds() Bounds {
	return Bounds{Width: DefaultWidth, Height: DefaultHeight}
}

// Contains reports whether b lies fully inside the arena interior.
func (a Bounds) Contains(b Body) bool {
	r := b.Radius
	return b.Pos.X >= r && b.Pos.X <= a.Width-r &&
		b.Pos.Y >= r && b.Pos.Y <= a.Height-r
}

// Surface is the drawing capability a host injects into the world.
type Surface interface {
	Clear(x, y, w, h float64)
	FillCircle(x, y, r float64, c color.RGBA)
}

// Painter picks the fill color of a body.
type Painter interface {
	ColorFor(b Body) color.RGBA
}

// NopSurface discards all drawing. Used for headless runs.
type NopSurface struct{}

func (NopSurface) Clear(x, y, w, h float64) {}

func (NopSurface) FillCircle(x, y, r float64, c color.RGBA) {}
