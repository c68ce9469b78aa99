package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/arena/internal/analysis"
	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/palette"
)

type circle struct {
	x, y, r float64
	fill    string
}

// SVGSurface is a dynamo.Surface that renders the arena to SVG. Clearing
// drops every circle whose bounding box lies inside the cleared region.
type SVGSurface struct {
	Width, Height float64
	Background    string

	circles []circle
	paths   []string
}

func NewSVGSurface(a dynamo.Bounds) *SVGSurface {
	return &SVGSurface{Width: a.Width, Height: a.Height, Background: "#0a0a0a"}
}

func (s *SVGSurface) Clear(x, y, w, h float64) {
	kept := s.circles[:0]
	for _, c := range s.circles {
		inside := c.x-c.r >= x && c.x+c.r <= x+w && c.y-c.r >= y && c.y+c.r <= y+h
		if !inside {
			kept = append(kept, c)
		}
	}
	s.circles = kept
}

func (s *SVGSurface) FillCircle(x, y, r float64, c color.RGBA) {
	s.circles = append(s.circles, circle{x: x, y: y, r: r, fill: palette.Hex(c)})
}

// Circles returns how many circles are currently drawn.
func (s *SVGSurface) Circles() int { return len(s.circles) }

// AddPath overlays a polyline through points, e.g. a body's trajectory.
func (s *SVGSurface) AddPath(points []analysis.Point, stroke string) {
	if len(points) < 2 {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}
	sb.WriteString(`"/>`)
	s.paths = append(s.paths, sb.String())
}

func (s *SVGSurface) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background))

	for _, p := range s.paths {
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	for _, c := range s.circles {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.x, c.y, c.r, c.fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrailColor strokes the path passed to Snapshot.
const TrailColor = "#00ffff"

// Snapshot renders one frame, with trail drawn underneath the bodies when
// it has at least two points.
func Snapshot(a dynamo.Bounds, bodies []dynamo.Body, p dynamo.Painter, trail []analysis.Point) string {
	s := NewSVGSurface(a)
	s.AddPath(trail, TrailColor)
	for _, b := range bodies {
		b.Draw(s, p.ColorFor(b))
	}
	return s.String()
}
