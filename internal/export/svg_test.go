package export

import (
	"strings"
	"testing"

	"github.com/san-kum/splashsim/internal/metrics"
	"github.com/san-kum/splashsim/internal/storage"
)

func sampleTrajectory() *storage.Trajectory {
	traj := &storage.Trajectory{}
	for i := 0; i < 50; i++ {
		t := float64(i) * 0.1
		traj.Times = append(traj.Times, t)
		traj.Z = append(traj.Z, -5+t*t)
		traj.V = append(traj.V, 2*t)
		traj.A = append(traj.A, 2)
	}
	return traj
}

func TestTrajectorySVG_ContainsPanels(t *testing.T) {
	svg := TrajectorySVG(sampleTrajectory(), metrics.ImpactMetrics{
		ContactFound: true,
		ContactTime:  2.2,
		PeakTime:     2.5,
		PeakAccelG:   3.1,
	})

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Fatal("missing XML header")
	}
	for _, label := range []string{"depth z (m)", "velocity (m/s)", "acceleration (m/s^2)"} {
		if !strings.Contains(svg, label) {
			t.Errorf("missing panel label %q", label)
		}
	}
	if strings.Count(svg, "<path") != 3 {
		t.Errorf("want 3 series paths, got %d", strings.Count(svg, "<path"))
	}
	// Two markers per panel.
	if strings.Count(svg, "<line") != 6 {
		t.Errorf("want 6 event markers, got %d", strings.Count(svg, "<line"))
	}
	if !strings.Contains(svg, "contact t=2.2000s") {
		t.Error("missing contact annotation")
	}
}

func TestTrajectorySVG_NoContact(t *testing.T) {
	svg := TrajectorySVG(sampleTrajectory(), metrics.ImpactMetrics{})

	if !strings.Contains(svg, "no water contact") {
		t.Error("missing no-contact annotation")
	}
	if strings.Contains(svg, "<line") {
		t.Error("unexpected event markers without contact")
	}
}

func TestTrajectorySVG_TooShort(t *testing.T) {
	if svg := TrajectorySVG(&storage.Trajectory{Times: []float64{0}}, metrics.ImpactMetrics{}); svg != "" {
		t.Errorf("want empty output, got %d bytes", len(svg))
	}
}
