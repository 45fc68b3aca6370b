package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/metrics"
)

// Store persists runs under a base directory, one subdirectory per run
// holding metadata.json and trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string                `json:"id"`
	Object     string                `json:"object"`
	Shape      string                `json:"shape"`
	Immersion  string                `json:"immersion"`
	Timestamp  time.Time             `json:"timestamp"`
	Duration   float64               `json:"duration"`
	Samples    int                   `json:"samples"`
	Integrator string                `json:"integrator"`
	Impact     metrics.ImpactMetrics `json:"impact"`
}

// Save writes one completed run. The acceleration column is the
// extractor's grid-aligned recomputation, stored alongside z and v so
// exports never need the model again.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result, accel []float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Object, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Samples = len(result.Times)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "z", "v", "a"}); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.States[i][0], 'f', 6, 64),
			strconv.FormatFloat(result.States[i][1], 'f', 6, 64),
		}
		if i < len(accel) {
			row = append(row, strconv.FormatFloat(accel[i], 'f', 6, 64))
		} else {
			row = append(row, "0")
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Trajectory is the stored time series of one run, columns of equal
// length.
type Trajectory struct {
	Times []float64
	Z     []float64
	V     []float64
	A     []float64
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}

		vals := make([]float64, 4)
		ok := true
		for j := 0; j < 4; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		traj.Times = append(traj.Times, vals[0])
		traj.Z = append(traj.Z, vals[1])
		traj.V = append(traj.V, vals[2])
		traj.A = append(traj.A, vals[3])
	}

	return traj, nil
}
