package sim

import (
	"fmt"

	"github.com/san-kum/arena/internal/dynamo"
)

// InputController forwards press and release gestures to every body.
type InputController struct {
	world *World
	scale float64
}

// NewInputController panics on a non-positive scale; config validation
// rejects those earlier.
func NewInputController(w *World, scale float64) *InputController {
	if !(scale > 0) {
		panic(fmt.Sprintf("sim: impulse scale must be positive, got %v", scale))
	}
	return &InputController{world: w, scale: scale}
}

func (c *InputController) Press(x, y float64) error {
	p := dynamo.Vec2{X: x, Y: y}
	if !p.IsFinite() {
		return fmt.Errorf("%w: press (%v, %v)", dynamo.ErrInvalidPointer, x, y)
	}
	c.world.each(func(b dynamo.Body) dynamo.Body { return b.Press(p) })
	return nil
}

func (c *InputController) Release(x, y float64) error {
	p := dynamo.Vec2{X: x, Y: y}
	if !p.IsFinite() {
		return fmt.Errorf("%w: release (%v, %v)", dynamo.ErrInvalidPointer, x, y)
	}
	c.world.each(func(b dynamo.Body) dynamo.Body { return b.Release(p, c.scale) })
	return nil
}

func (c *InputController) Handle(ev PointerEvent) error {
	switch ev.Kind {
	case PointerPress:
		return c.Press(ev.X, ev.Y)
	case PointerRelease:
		return c.Release(ev.X, ev.Y)
	default:
		return fmt.Errorf("%w: unknown pointer kind %d", dynamo.ErrInvalidPointer, ev.Kind)
	}
}
