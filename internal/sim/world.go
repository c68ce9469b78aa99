package sim

import (
	"fmt"

	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/palette"
)

// FrameStats summarises one tick.
type FrameStats struct {
	Frame    int
	Contacts int
	WallHits int
	// Events is the number of pointer events applied before the tick.
	Events int
}

// World owns the ordered body collection. Index order fixes the pair
// iteration order of collision resolution.
type World struct {
	bounds  dynamo.Bounds
	bodies  []dynamo.Body
	surface dynamo.Surface
	painter dynamo.Painter
}

// NewWorld fails with ErrNoSurface when no surface is given; a nil painter
// paints solid white.
func NewWorld(bounds dynamo.Bounds, bodies []dynamo.Body, surface dynamo.Surface, painter dynamo.Painter) (*World, error) {
	if surface == nil {
		return nil, dynamo.ErrNoSurface
	}
	if !(bounds.Width > 0) || !(bounds.Height > 0) {
		return nil, fmt.Errorf("%w: arena %vx%v", dynamo.ErrParameterBounds, bounds.Width, bounds.Height)
	}
	if painter == nil {
		painter = palette.Default()
	}
	w := &World{bounds: bounds, surface: surface, painter: painter}
	w.Reset(bodies)
	return w, nil
}

// Tick runs one frame: clear, pairwise collisions, then draw and advance.
func (w *World) Tick() FrameStats {
	var stats FrameStats

	w.surface.Clear(0, 0, w.bounds.Width, w.bounds.Height)

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			var hit bool
			w.bodies[i], w.bodies[j], hit = dynamo.Resolve(w.bodies[i], w.bodies[j])
			if hit {
				stats.Contacts++
			}
		}
	}

	for i, b := range w.bodies {
		b.Draw(w.surface, w.painter.ColorFor(b))
		b = b.Advance(w.bounds)
		if b.AtWall(w.bounds) {
			stats.WallHits++
		}
		w.bodies[i] = b
	}

	return stats
}

// Reset replaces the whole collection.
func (w *World) Reset(bodies []dynamo.Body) {
	w.bodies = append(make([]dynamo.Body, 0, len(bodies)), bodies...)
}

// Bodies returns a copy of the current bodies.
func (w *World) Bodies() []dynamo.Body {
	return append([]dynamo.Body(nil), w.bodies...)
}

func (w *World) Len() int { return len(w.bodies) }

func (w *World) Bounds() dynamo.Bounds { return w.bounds }

func (w *World) copyInto(dst []dynamo.Body) []dynamo.Body {
	return append(dst[:0], w.bodies...)
}

func (w *World) each(fn func(dynamo.Body) dynamo.Body) {
	for i := range w.bodies {
		w.bodies[i] = fn(w.bodies[i])
	}
}
