package viz

import (
	"image/color"
	"math"

	"github.com/san-kum/arena/internal/dynamo"
)

// Surface draws arena-space shapes onto a braille Canvas.
type Surface struct {
	canvas *Canvas
	bounds dynamo.Bounds
}

func NewSurface(c *Canvas, a dynamo.Bounds) *Surface {
	return &Surface{canvas: c, bounds: a}
}

func (s *Surface) Canvas() *Canvas { return s.canvas }

// FitTerminal resizes the canvas to the largest grid that fits cols x rows
// cells while keeping sub-pixels square.
func (s *Surface) FitTerminal(cols, rows int) {
	// one cell is 2x4 sub-pixels
	ratio := s.bounds.Width / s.bounds.Height
	h := rows
	if w := int(float64(h*4) * ratio / 2); w > cols {
		h = int(float64(cols*2) / ratio / 4)
	}
	if h < 1 {
		h = 1
	}
	w := int(math.Round(float64(h*4) * ratio / 2))
	if w < 1 {
		w = 1
	}
	s.canvas.Resize(w, h)
}

func (s *Surface) scale() (sx, sy float64) {
	return float64(s.canvas.SubWidth()) / s.bounds.Width, float64(s.canvas.SubHeight()) / s.bounds.Height
}

func (s *Surface) Clear(x, y, w, h float64) {
	if x <= 0 && y <= 0 && x+w >= s.bounds.Width && y+h >= s.bounds.Height {
		s.canvas.Clear()
		return
	}
	sx, sy := s.scale()
	for py := int(math.Floor(y * sy)); py < int(math.Ceil((y+h)*sy)); py++ {
		for px := int(math.Floor(x * sx)); px < int(math.Ceil((x+w)*sx)); px++ {
			s.canvas.Unset(px, py)
		}
	}
}

func (s *Surface) FillCircle(x, y, r float64, c color.RGBA) {
	sx, sy := s.scale()
	cx, cy := x*sx, y*sy
	rx, ry := r*sx, r*sy
	if rx <= 0 || ry <= 0 {
		return
	}
	for py := int(math.Floor(cy - ry)); py <= int(math.Ceil(cy+ry)); py++ {
		for px := int(math.Floor(cx - rx)); px <= int(math.Ceil(cx+rx)); px++ {
			dx := (float64(px) + 0.5 - cx) / rx
			dy := (float64(py) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				s.canvas.Paint(px, py, c)
			}
		}
	}
}

// Line draws an untinted line between two arena points.
func (s *Surface) Line(from, to dynamo.Vec2) {
	sx, sy := s.scale()
	s.canvas.DrawLine(int(from.X*sx), int(from.Y*sy), int(to.X*sx), int(to.Y*sy))
}

// ToArena maps a terminal cell to the arena point under its centre.
func (s *Surface) ToArena(col, row int) dynamo.Vec2 {
	return dynamo.Vec2{
		X: (float64(col) + 0.5) * s.bounds.Width / float64(s.canvas.Width),
		Y: (float64(row) + 0.5) * s.bounds.Height / float64(s.canvas.Height),
	}
}
