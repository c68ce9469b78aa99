package analysis

import (
	"fmt"

	"github.com/san-kum/arena/internal/dynamo"
)

var Fields = []string{"x", "y", "dx", "dy", "speed"}

// Series returns field of body for every frame.
func Series(frames [][]dynamo.Body, body int, field string) ([]float64, error) {
	pick, err := picker(field)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(frames))
	for i, bodies := range frames {
		if body < 0 || body >= len(bodies) {
			return nil, fmt.Errorf("analysis: frame %d has no body %d", i, body)
		}
		out = append(out, pick(bodies[body]))
	}
	return out, nil
}

func picker(field string) (func(dynamo.Body) float64, error) {
	switch field {
	case "x":
		return func(b dynamo.Body) float64 { return b.Pos.X }, nil
	case "y":
		return func(b dynamo.Body) float64 { return b.Pos.Y }, nil
	case "dx":
		return func(b dynamo.Body) float64 { return b.Vel.X }, nil
	case "dy":
		return func(b dynamo.Body) float64 { return b.Vel.Y }, nil
	case "speed":
		return func(b dynamo.Body) float64 { return b.Vel.Len() }, nil
	default:
		return nil, fmt.Errorf("analysis: unknown field %q (want one of %v)", field, Fields)
	}
}
