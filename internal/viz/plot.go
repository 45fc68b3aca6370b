package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/splashsim/internal/metrics"
	"github.com/san-kum/splashsim/internal/storage"
)

const (
	plotWidth  = 80
	plotHeight = 12
	// Terminal plots get unreadable past a few hundred columns of
	// data, so long trajectories are decimated first.
	maxPlotPoints = 400
)

// decimate thins a series to at most maxPlotPoints samples.
func decimate(data []float64) []float64 {
	if len(data) <= maxPlotPoints {
		return data
	}
	step := len(data) / maxPlotPoints
	out := make([]float64, 0, maxPlotPoints+1)
	for i := 0; i < len(data); i += step {
		out = append(out, data[i])
	}
	return out
}

// RenderTrajectory plots height, velocity and acceleration against
// time, annotated with the detected events. Height is plotted as -z so
// "up" on screen is up in the world, matching the sign convention of
// the depth axis.
func RenderTrajectory(traj *storage.Trajectory, impact metrics.ImpactMetrics) string {
	var sb strings.Builder

	height := make([]float64, len(traj.Z))
	for i, z := range traj.Z {
		height[i] = -z
	}

	sb.WriteString(asciigraph.Plot(decimate(height),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("height above surface (m)"),
	))
	sb.WriteString("\n\n")

	sb.WriteString(asciigraph.Plot(decimate(traj.V),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("velocity (m/s, down positive)"),
	))
	sb.WriteString("\n\n")

	sb.WriteString(asciigraph.Plot(decimate(traj.A),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("acceleration (m/s^2)"),
	))
	sb.WriteString("\n\n")

	if impact.ContactFound {
		fmt.Fprintf(&sb, "water contact at t=%.4f s, peak deceleration at t=%.4f s (%.2f g)\n",
			impact.ContactTime, impact.PeakTime, impact.PeakAccelG)
	} else {
		sb.WriteString("no water contact within the simulated horizon\n")
	}

	return sb.String()
}
