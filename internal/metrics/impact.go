// Package metrics derives impact scalars from a completed trajectory.
package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// g-force conversions use standard gravity, not the run's configured g.
const standardGravity = 9.81

// Samples between contact and peak below which the transient is
// considered under-resolved by the output grid.
const minTransientSamples = 10

// Model is the part of the force law the extractor needs to recompute
// acceleration on the output grid.
type Model interface {
	Acceleration(z, v float64) float64
	TerminalVelocity() float64
}

// ImpactMetrics is the scalar bundle of one run. Contact-dependent
// fields (ContactTime, PeakTime, ImpactDuration, DepthAtPeak,
// PeakAccel) are only meaningful when ContactFound is true.
type ImpactMetrics struct {
	ContactFound     bool    `json:"contact_found"`
	ContactTime      float64 `json:"contact_time"`
	PeakTime         float64 `json:"peak_time"`
	ImpactDuration   float64 `json:"impact_duration"`
	MaxDepth         float64 `json:"max_depth"`
	DepthAtPeak      float64 `json:"depth_at_peak"`
	MaxVelocity      float64 `json:"max_velocity"`
	TerminalVelocity float64 `json:"terminal_velocity"`
	PercentTerminal  float64 `json:"percent_terminal"`
	PeakAccel        float64 `json:"peak_accel"`
	PeakAccelG       float64 `json:"peak_accel_g"`
	UnderResolved    bool    `json:"under_resolved"`
}

// Accelerations recomputes acceleration per output sample from the
// force law. The integrator's internal derivative evaluations are not
// aligned with the output grid, so they are deliberately not reused.
func Accelerations(model Model, result *dynamo.Result) []float64 {
	accel := make([]float64, len(result.States))
	for i, x := range result.States {
		accel[i] = model.Acceleration(x[0], x[1])
	}
	return accel
}

// Extract scans a completed trajectory for the water-contact and
// peak-deceleration events and derives the impact scalars. A body that
// never reaches the surface yields ContactFound=false, not an error.
func Extract(model Model, result *dynamo.Result) (ImpactMetrics, error) {
	n := len(result.States)
	if n == 0 || len(result.Times) != n {
		return ImpactMetrics{}, fmt.Errorf("metrics: malformed trajectory (%d states, %d times)", n, len(result.Times))
	}

	m := ImpactMetrics{
		MaxDepth:         result.States[0][0],
		MaxVelocity:      result.States[0][1],
		TerminalVelocity: model.TerminalVelocity(),
	}

	contactIdx := -1
	for i, x := range result.States {
		if x[0] > m.MaxDepth {
			m.MaxDepth = x[0]
		}
		if x[1] > m.MaxVelocity {
			m.MaxVelocity = x[1]
		}
		if contactIdx < 0 && x[0] >= 0 {
			contactIdx = i
		}
	}

	if m.TerminalVelocity > 0 {
		m.PercentTerminal = 100 * m.MaxVelocity / m.TerminalVelocity
	}

	if contactIdx < 0 {
		return m, nil
	}

	accel := Accelerations(model, result)

	// Global minimum over the whole horizon, matching the event
	// definition: a sharp re-acceleration elsewhere in a long horizon
	// would shadow the entry peak.
	peakIdx := 0
	for i, a := range accel {
		if a < accel[peakIdx] {
			peakIdx = i
		}
	}

	m.ContactFound = true
	m.ContactTime = result.Times[contactIdx]
	m.PeakTime = result.Times[peakIdx]
	m.ImpactDuration = m.PeakTime - m.ContactTime
	m.DepthAtPeak = result.States[peakIdx][0]
	m.PeakAccel = accel[peakIdx]
	m.PeakAccelG = math.Abs(m.PeakAccel) / standardGravity
	m.UnderResolved = peakIdx >= contactIdx && peakIdx-contactIdx < minTransientSamples

	return m, nil
}
