package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/arena/internal/dynamo"
)

type ExportFrame struct {
	Frame  int          `json:"frame"`
	Bodies []ExportBody `json:"bodies"`
}

type ExportBody struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type ExportData struct {
	RunMetadata
	States []ExportFrame `json:"states"`
}

// ExportJSON writes the run and its frames as one JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, frames [][]dynamo.Body) error {
	data := ExportData{
		RunMetadata: meta,
		States:      make([]ExportFrame, len(frames)),
	}
	for i, bodies := range frames {
		ef := ExportFrame{Frame: i, Bodies: make([]ExportBody, len(bodies))}
		for j, b := range bodies {
			ef.Bodies[j] = ExportBody{X: b.Pos.X, Y: b.Pos.Y, DX: b.Vel.X, DY: b.Vel.Y}
		}
		data.States[i] = ef
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
