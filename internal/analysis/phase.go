package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/arena/internal/dynamo"
)

type Point struct {
	X, Y float64
}

// Path returns the centre of body for every frame.
func Path(frames [][]dynamo.Body, body int) ([]Point, error) {
	out := make([]Point, 0, len(frames))
	for i, bodies := range frames {
		if body < 0 || body >= len(bodies) {
			return nil, fmt.Errorf("analysis: frame %d has no body %d", i, body)
		}
		out = append(out, Point{X: bodies[body].Pos.X, Y: bodies[body].Pos.Y})
	}
	return out, nil
}

// PathToASCII draws points inside the arena rectangle, y growing downward
// as on screen. The first point is marked 'o' and the last '@'.
func PathToASCII(points []Point, arena dynamo.Bounds, width, height int) string {
	if len(points) == 0 || width < 3 || height < 3 {
		return ""
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for col := 0; col < width; col++ {
		canvas[0][col] = '─'
		canvas[height-1][col] = '─'
	}
	for row := 0; row < height; row++ {
		canvas[row][0] = '│'
		canvas[row][width-1] = '│'
	}

	cell := func(p Point) (int, int) {
		col := 1 + int(p.X/arena.Width*float64(width-3)+0.5)
		row := 1 + int(p.Y/arena.Height*float64(height-3)+0.5)
		return row, col
	}

	for _, p := range points {
		row, col := cell(p)
		if row > 0 && row < height-1 && col > 0 && col < width-1 {
			canvas[row][col] = '•'
		}
	}
	if r, c := cell(points[0]); r > 0 && r < height-1 && c > 0 && c < width-1 {
		canvas[r][c] = 'o'
	}
	if r, c := cell(points[len(points)-1]); r > 0 && r < height-1 && c > 0 && c < width-1 {
		canvas[r][c] = '@'
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
