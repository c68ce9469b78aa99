// Package layout places the initial bodies on a regular grid.
package layout

import (
	"fmt"
	"math"

	"github.com/san-kum/arena/internal/dynamo"
)

const (
	DefaultCount  = 15
	DefaultRadius = 50.0
	DefaultGap    = 10.0
)

type Params struct {
	Count  int
	Radius float64
	Gap    float64
}

func DefaultParams() Params {
	return Params{Count: DefaultCount, Radius: DefaultRadius, Gap: DefaultGap}
}

func (p Params) Validate() error {
	if p.Count < 0 {
		return fmt.Errorf("%w: count %d", dynamo.ErrParameterBounds, p.Count)
	}
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		return fmt.Errorf("%w: radius %v", dynamo.ErrParameterBounds, p.Radius)
	}
	if !(p.Gap >= 0) || math.IsInf(p.Gap, 0) {
		return fmt.Errorf("%w: gap %v", dynamo.ErrParameterBounds, p.Gap)
	}
	return nil
}

// maxSide bounds each grid dimension so cols*rows cannot overflow an int.
const maxSide = math.MaxInt32

// Capacity returns how many bodies fit per row and per column. Each count
// is capped at math.MaxInt32.
func Capacity(a dynamo.Bounds, p Params) (cols, rows int) {
	cell := 2*p.Radius + p.Gap
	return fit(a.Width / cell), fit(a.Height / cell)
}

func fit(n float64) int {
	switch {
	case !(n > 0):
		return 0
	case n >= maxSide:
		return maxSide
	}
	return int(math.Trunc(n))
}

// Grid places p.Count bodies left-to-right, top-to-bottom with spacing
// 2*radius+gap, all at rest. When the grid cannot hold them it returns an
// empty collection together with ErrCapacityExceeded; callers are expected
// to report it and carry on with no bodies.
func Grid(a dynamo.Bounds, p Params) ([]dynamo.Body, error) {
	if err := p.Validate(); err != nil {
		return []dynamo.Body{}, err
	}

	cols, rows := Capacity(a, p)
	if p.Count > cols*rows {
		return []dynamo.Body{}, fmt.Errorf("%w: %d requested, %d fit (%dx%d)",
			dynamo.ErrCapacityExceeded, p.Count, cols*rows, cols, rows)
	}

	cell := 2*p.Radius + p.Gap
	bodies := make([]dynamo.Body, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		row, col := i/cols, i%cols
		pos := dynamo.Vec2{
			X: float64(col)*cell + p.Gap + p.Radius,
			Y: float64(row)*cell + p.Gap + p.Radius,
		}
		bodies = append(bodies, dynamo.NewBody(pos, p.Radius))
	}
	return bodies, nil
}
