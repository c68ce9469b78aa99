package analysis

import (
	"math"

	"github.com/san-kum/arena/internal/dynamo"
)

// Separation returns, per frame, the RMS distance between matching bodies
// of two runs. The shorter run bounds the result.
func Separation(a, b [][]dynamo.Body) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		m := min(len(a[i]), len(b[i]))
		if m == 0 {
			continue
		}
		sum := 0.0
		for j := 0; j < m; j++ {
			d := a[i][j].Pos.Sub(b[i][j].Pos)
			sum += d.Dot(d)
		}
		out[i] = math.Sqrt(sum / float64(m))
	}
	return out
}

// LyapunovExponent fits ln(separation) against frame index by least
// squares and returns the slope, in 1/frame. Frames with zero separation
// are skipped; fewer than two usable frames give 0.
func LyapunovExponent(sep []float64) float64 {
	var sx, sy, sxx, sxy, n float64
	for i, s := range sep {
		if s <= 0 {
			continue
		}
		x, y := float64(i), math.Log(s)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
		n++
	}

	den := n*sxx - sx*sx
	if n < 2 || den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}
