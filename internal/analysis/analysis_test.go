package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/splashsim/internal/storage"
)

func TestFFT_ImpulseIsFlat(t *testing.T) {
	data := make([]float64, 8)
	data[0] = 1

	ps := PowerSpectrum(data)
	for i, mag := range ps {
		if math.Abs(mag-1) > 1e-12 {
			t.Errorf("bin %d: got %v, want 1", i, mag)
		}
	}
}

func TestDominantFrequency_PureTone(t *testing.T) {
	const (
		n    = 256
		dt   = 0.01
		freq = 6.25 // lands exactly on bin 16
	)

	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	got, mag := DominantFrequency(data, dt)
	if math.Abs(got-freq) > 1e-9 {
		t.Errorf("frequency = %v, want %v", got, freq)
	}
	if mag <= 0 {
		t.Errorf("magnitude = %v, want > 0", mag)
	}
}

func TestTruncatePow2(t *testing.T) {
	if n := len(TruncatePow2(make([]float64, 300))); n != 256 {
		t.Errorf("got %d, want 256", n)
	}
	if n := len(TruncatePow2(make([]float64, 64))); n != 64 {
		t.Errorf("got %d, want 64", n)
	}
}

func TestAnalyzeBobbing_DampedRingdown(t *testing.T) {
	const (
		dt    = 0.01
		n     = 512
		depth = 0.5
		freq  = 2.0
	)

	traj := &storage.Trajectory{}
	for i := 0; i < n; i++ {
		ti := float64(i) * dt
		traj.Times = append(traj.Times, ti)
		traj.Z = append(traj.Z, depth+0.2*math.Exp(-0.1*ti)*math.Cos(2*math.Pi*freq*ti))
		traj.V = append(traj.V, 0)
		traj.A = append(traj.A, 0)
	}

	bob, err := AnalyzeBobbing(traj, 0)
	if err != nil {
		t.Fatalf("AnalyzeBobbing failed: %v", err)
	}

	if math.Abs(bob.MeanDepth-depth) > 0.05 {
		t.Errorf("mean depth = %v, want about %v", bob.MeanDepth, depth)
	}
	// Resolution is one bin, 1/(512*0.01) Hz.
	if math.Abs(bob.Frequency-freq) > 0.25 {
		t.Errorf("frequency = %v, want about %v", bob.Frequency, freq)
	}
	if bob.Amplitude <= 0 || bob.Amplitude > 0.25 {
		t.Errorf("amplitude = %v, want in (0, 0.25]", bob.Amplitude)
	}
	if bob.Samples != n {
		t.Errorf("samples = %d, want %d", bob.Samples, n)
	}
}

func TestAnalyzeBobbing_TooShort(t *testing.T) {
	traj := &storage.Trajectory{
		Times: []float64{0, 0.1, 0.2},
		Z:     []float64{0.1, 0.2, 0.1},
	}

	_, err := AnalyzeBobbing(traj, 0)
	if !errors.Is(err, ErrTooShort) {
		t.Fatalf("got %v, want ErrTooShort", err)
	}
}
