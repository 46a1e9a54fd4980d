package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/chamber/internal/physics"
)

type exportBody struct {
	Kind   string     `json:"kind"`
	Pos    [2]float64 `json:"pos"`
	Vel    [2]float64 `json:"vel"`
	Mass   float64    `json:"mass"`
	Radius float64    `json:"radius"`
}

type ExportData struct {
	Meta   RunMetadata  `json:"meta"`
	Bodies []exportBody `json:"bodies"`
	Times  []float64    `json:"times"`
	Energy []float64    `json:"energy"`
}

// ExportJSON writes a saved run as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	bodies, err := s.LoadBodies(runID)
	if err != nil {
		return err
	}
	times, energy, err := s.LoadEnergy(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Meta:   *meta,
		Bodies: make([]exportBody, len(bodies)),
		Times:  times,
		Energy: energy,
	}
	for i, b := range bodies {
		data.Bodies[i] = toExport(b)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func toExport(b physics.Body) exportBody {
	return exportBody{
		Kind:   b.Kind.String(),
		Pos:    [2]float64{b.Pos.X, b.Pos.Y},
		Vel:    [2]float64{b.Vel.X, b.Vel.Y},
		Mass:   b.Mass,
		Radius: b.Radius,
	}
}
