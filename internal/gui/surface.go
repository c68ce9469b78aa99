package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface draws onto the current raylib frame. Calls are only valid
// between rl.BeginDrawing and rl.EndDrawing.
type Surface struct {
	Background rl.Color
}

func (s Surface) Clear(x, y, w, h float64) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), s.Background)
}

func (s Surface) FillCircle(x, y, r float64, c color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), rl.NewColor(c.R, c.G, c.B, c.A))
}

func rgba(c rl.Color) color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }
