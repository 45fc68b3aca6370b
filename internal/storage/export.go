package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/splashsim/internal/metrics"
)

type ExportData struct {
	ID         string                `json:"id"`
	Object     string                `json:"object"`
	Shape      string                `json:"shape"`
	Immersion  string                `json:"immersion"`
	Integrator string                `json:"integrator"`
	Duration   float64               `json:"duration"`
	Samples    int                   `json:"samples"`
	Impact     metrics.ImpactMetrics `json:"impact"`
	Times      []float64             `json:"times"`
	Z          []float64             `json:"z"`
	V          []float64             `json:"v"`
	A          []float64             `json:"a"`
}

// ExportJSON writes a stored run (metadata plus full trajectory) as one
// JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, traj *Trajectory) error {
	data := ExportData{
		ID:         meta.ID,
		Object:     meta.Object,
		Shape:      meta.Shape,
		Immersion:  meta.Immersion,
		Integrator: meta.Integrator,
		Duration:   meta.Duration,
		Samples:    meta.Samples,
		Impact:     meta.Impact,
		Times:      traj.Times,
		Z:          traj.Z,
		V:          traj.V,
		A:          traj.A,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
