// Package automation runs scripted batches of drop simulations: named
// campaigns loaded from YAML and altitude sweeps over a single object.
package automation

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/splashsim/internal/config"
	"github.com/san-kum/splashsim/internal/integrators"
	"github.com/san-kum/splashsim/internal/metrics"
	"github.com/san-kum/splashsim/internal/sim"
)

// Campaign is a scripted sequence of drops.
type Campaign struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Drops       []Drop `yaml:"drops"`
}

// Drop is one campaign entry: a preset plus optional overrides. Pointer
// fields distinguish "not set" from a deliberate zero (dropping from
// the surface is a valid altitude).
type Drop struct {
	Preset     string   `yaml:"preset"`
	Altitude   *float64 `yaml:"altitude"`
	Velocity   *float64 `yaml:"velocity"`
	Immersion  string   `yaml:"immersion"`
	Integrator string   `yaml:"integrator"`
	Duration   float64  `yaml:"duration"`
	Samples    int      `yaml:"samples"`
}

// Outcome is the result of a single campaign drop.
type Outcome struct {
	Preset  string
	Object  string
	Impact  metrics.ImpactMetrics
	Steps   int
	Elapsed time.Duration
}

// LoadCampaign reads a campaign description from a YAML file.
func LoadCampaign(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Campaign
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("campaign: parse %s: %w", path, err)
	}
	if len(c.Drops) == 0 {
		return nil, fmt.Errorf("campaign: %s defines no drops", path)
	}
	return &c, nil
}

func (d Drop) resolve() (*config.Config, error) {
	cfg := config.GetPreset(d.Preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", d.Preset)
	}

	if d.Altitude != nil {
		cfg.Initial.Altitude = *d.Altitude
	}
	if d.Velocity != nil {
		cfg.Initial.Velocity = *d.Velocity
	}
	if d.Immersion != "" {
		cfg.Immersion = d.Immersion
	}
	if d.Integrator != "" {
		cfg.Run.Integrator = d.Integrator
	}
	if d.Duration > 0 {
		cfg.Run.Duration = d.Duration
	}
	if d.Samples > 0 {
		cfg.Run.Samples = d.Samples
	}
	return cfg, nil
}

// RunCampaign executes every drop in order. A bad drop definition or a
// failed integration aborts the campaign; outcomes collected so far are
// returned alongside the error.
func RunCampaign(ctx context.Context, c *Campaign) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(c.Drops))

	for i, drop := range c.Drops {
		cfg, err := drop.resolve()
		if err != nil {
			return outcomes, fmt.Errorf("drop %d: %w", i+1, err)
		}

		out, err := runOne(ctx, cfg)
		if err != nil {
			return outcomes, fmt.Errorf("drop %d (%s): %w", i+1, drop.Preset, err)
		}
		out.Preset = drop.Preset
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// AltitudeSweep drops the same object from a range of release
// altitudes, evenly spaced from From to To inclusive.
type AltitudeSweep struct {
	Preset     string
	From       float64
	To         float64
	Steps      int
	Integrator string
	Duration   float64
	Samples    int
}

// SweepPoint pairs a release altitude with its impact metrics.
type SweepPoint struct {
	Altitude float64
	Impact   metrics.ImpactMetrics
}

// RunAltitudeSweep executes the sweep and returns one point per
// altitude.
func RunAltitudeSweep(ctx context.Context, s *AltitudeSweep) ([]SweepPoint, error) {
	if s.Steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", s.Steps)
	}

	points := make([]SweepPoint, 0, s.Steps)
	stride := (s.To - s.From) / float64(s.Steps-1)

	for i := 0; i < s.Steps; i++ {
		alt := s.From + float64(i)*stride

		drop := Drop{
			Preset:     s.Preset,
			Altitude:   &alt,
			Integrator: s.Integrator,
			Duration:   s.Duration,
			Samples:    s.Samples,
		}
		cfg, err := drop.resolve()
		if err != nil {
			return points, err
		}

		out, err := runOne(ctx, cfg)
		if err != nil {
			return points, fmt.Errorf("altitude %.2f: %w", alt, err)
		}
		points = append(points, SweepPoint{Altitude: alt, Impact: out.Impact})
	}

	return points, nil
}

func runOne(ctx context.Context, cfg *config.Config) (Outcome, error) {
	dyn, err := cfg.Build()
	if err != nil {
		return Outcome{}, err
	}

	integ, err := integrators.ByName(cfg.Run.Integrator)
	if err != nil {
		return Outcome{}, err
	}

	start := time.Now()
	result, err := sim.New(dyn, integ).Run(ctx, cfg.InitState(), cfg.SimConfig())
	if err != nil {
		return Outcome{}, err
	}

	impact, err := metrics.Extract(dyn, result)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Object:  cfg.Object.Name,
		Impact:  impact,
		Steps:   result.StepsTaken,
		Elapsed: time.Since(start),
	}, nil
}
