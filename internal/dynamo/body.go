package dynamo

import "image/color"

// Body is a circular disc. Operations return an updated copy.
type Body struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64

	// Hover is set by a press inside the disc and kept until the next press.
	Hover     bool
	PressAt   Vec2
	ReleaseAt Vec2
}

func NewBody(pos Vec2, radius float64) Body {
	return Body{Pos: pos, Radius: radius}
}

// HitTest reports whether p lies inside or on the disc.
func (b Body) HitTest(p Vec2) bool {
	return p.Sub(b.Pos).Len() <= b.Radius
}

// Press records the press point and whether it landed on the disc.
func (b Body) Press(p Vec2) Body {
	b.PressAt = p
	b.Hover = b.HitTest(p)
	return b
}

// Release records the release point. A hovered body is launched with
// the drag vector divided by scale. Hover is not cleared.
func (b Body) Release(p Vec2, scale float64) Body {
	b.ReleaseAt = p
	if b.Hover {
		drag := b.ReleaseAt.Sub(b.PressAt)
		b.Vel = Vec2{drag.X / scale, drag.Y / scale}
	}
	return b
}

// Advance moves the body one step, pins it inside the arena and
// reflects the velocity on every axis touching a wall.
func (b Body) Advance(a Bounds) Body {
	b.Pos = b.Pos.Add(b.Vel)
	r := b.Radius

	if b.Pos.Y+r > a.Height {
		b.Pos.Y = a.Height - r
	}
	if b.Pos.Y < r {
		b.Pos.Y = r
	}
	if b.Pos.X+r > a.Width {
		b.Pos.X = a.Width - r
	}
	if b.Pos.X < r {
		b.Pos.X = r
	}

	if b.Pos.X+r >= a.Width || b.Pos.X-r <= 0 {
		b.Vel.X = -b.Vel.X
	}
	if b.Pos.Y+r >= a.Height || b.Pos.Y-r <= 0 {
		b.Vel.Y = -b.Vel.Y
	}
	return b
}

// AtWall reports whether the body touches any arena edge.
func (b Body) AtWall(a Bounds) bool {
	r := b.Radius
	return b.Pos.X+r >= a.Width || b.Pos.X-r <= 0 ||
		b.Pos.Y+r >= a.Height || b.Pos.Y-r <= 0
}

func (b Body) Draw(s Surface, c color.RGBA) {
	s.FillCircle(b.Pos.X, b.Pos.Y, b.Radius, c)
}
