package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/metrics"
)

func sampleRun() (RunMetadata, *dynamo.Result, []float64) {
	meta := RunMetadata{
		Object:     "bfs",
		Shape:      "cone",
		Immersion:  "progressive",
		Duration:   8.0,
		Integrator: "rk45",
		Impact: metrics.ImpactMetrics{
			ContactFound:   true,
			ContactTime:    1.01,
			PeakTime:       1.05,
			ImpactDuration: 0.04,
			MaxDepth:       2.3,
		},
	}
	result := &dynamo.Result{
		Times: []float64{0, 0.5, 1.0},
		States: []dynamo.State{
			{-5, 0},
			{-3.8, 4.9},
			{-0.1, 9.8},
		},
	}
	accel := []float64{9.81, 9.7, 9.5}
	return meta, result, accel
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	meta, result, accel := sampleRun()
	runID, err := st.Save(meta, result, accel)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Object != "bfs" || loaded.Shape != "cone" {
		t.Errorf("metadata lost: %+v", loaded)
	}
	if !loaded.Impact.ContactFound || loaded.Impact.MaxDepth != 2.3 {
		t.Errorf("impact metrics lost: %+v", loaded.Impact)
	}
	if loaded.Samples != 3 {
		t.Errorf("samples %d, want 3", loaded.Samples)
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(traj.Times) != 3 || len(traj.Z) != 3 || len(traj.V) != 3 || len(traj.A) != 3 {
		t.Fatalf("trajectory columns wrong length: %+v", traj)
	}
	if traj.Z[2] != -0.1 || traj.V[2] != 9.8 || traj.A[0] != 9.81 {
		t.Errorf("trajectory values lost: %+v", traj)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	meta, result, accel := sampleRun()
	if _, err := st.Save(meta, result, accel); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestList_MissingDir(t *testing.T) {
	st := New("/nonexistent/splashsim-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected empty list for missing dir, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	meta, result, accel := sampleRun()
	runID, err := st.Save(meta, result, accel)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, loaded, traj); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Object != "bfs" || len(data.Z) != 3 {
		t.Errorf("export lost data: %+v", data)
	}
}
