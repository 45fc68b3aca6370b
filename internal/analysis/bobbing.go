package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/splashsim/internal/storage"
)

// A buoyant body overshoots its flotation depth on entry and rings
// around it before drag kills the oscillation. Bobbing summarises that
// ringdown from a recorded depth series.
type Bobbing struct {
	MeanDepth float64 // estimated flotation depth (m)
	Frequency float64 // dominant oscillation frequency (Hz)
	Period    float64 // 1/Frequency (s)
	Amplitude float64 // largest excursion from the mean depth (m)
	Samples   int     // post-contact samples analysed
}

var ErrTooShort = errors.New("analysis: not enough post-contact samples")

// minBobbingSamples is the shortest series worth pushing through the
// spectrum; below this the frequency bins are meaningless.
const minBobbingSamples = 64

// AnalyzeBobbing extracts the post-contact oscillation from a stored
// trajectory. contactTime marks the first water contact; samples before
// it are ignored.
func AnalyzeBobbing(traj *storage.Trajectory, contactTime float64) (*Bobbing, error) {
	start := 0
	for start < len(traj.Times) && traj.Times[start] < contactTime {
		start++
	}

	depths := traj.Z[start:]
	if len(depths) < minBobbingSamples {
		return nil, ErrTooShort
	}

	mean := 0.0
	for _, z := range depths {
		mean += z
	}
	mean /= float64(len(depths))

	centered := make([]float64, len(depths))
	amplitude := 0.0
	for i, z := range depths {
		centered[i] = z - mean
		if a := math.Abs(centered[i]); a > amplitude {
			amplitude = a
		}
	}

	dt := 0.0
	if len(traj.Times) > 1 {
		dt = traj.Times[1] - traj.Times[0]
	}

	freq, _ := DominantFrequency(centered, dt)
	if freq <= 0 {
		return nil, ErrTooShort
	}

	return &Bobbing{
		MeanDepth: mean,
		Frequency: freq,
		Period:    1 / freq,
		Amplitude: amplitude,
		Samples:   len(depths),
	}, nil
}
