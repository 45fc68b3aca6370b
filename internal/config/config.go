package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/physics"
)

const (
	DefaultDuration   = 8.0
	DefaultSamples    = 100_000
	DefaultTolerance  = 1e-8
	DefaultAltitude   = -5.0
	DefaultIntegrator = "rk45"
)

// Config is the full description of one run: the falling object, the
// environment, the immersion mode, initial conditions and integration
// settings. It is data only; Build turns it into a validated model.
type Config struct {
	Object      ObjectConfig `yaml:"object"`
	Environment EnvConfig    `yaml:"environment"`
	Immersion   string       `yaml:"immersion"`
	Initial     InitConfig   `yaml:"initial"`
	Run         RunConfig    `yaml:"run"`
}

type ObjectConfig struct {
	Name      string  `yaml:"name"`
	Shape     string  `yaml:"shape"`
	Mass      float64 `yaml:"mass"`
	Radius    float64 `yaml:"radius"`
	Height    float64 `yaml:"height"`
	DragCoeff float64 `yaml:"drag_coeff"`
}

type EnvConfig struct {
	Gravity      float64 `yaml:"gravity"`
	WaterDensity float64 `yaml:"water_density"`
	AirDensity   float64 `yaml:"air_density"`
}

type InitConfig struct {
	// Altitude is the starting depth z0; negative means above the
	// water surface.
	Altitude float64 `yaml:"altitude"`
	Velocity float64 `yaml:"velocity"`
}

type RunConfig struct {
	Duration   float64 `yaml:"duration"`
	Samples    int     `yaml:"samples"`
	Tolerance  float64 `yaml:"tolerance"`
	Integrator string  `yaml:"integrator"`
}

func DefaultConfig() *Config {
	return &Config{
		Object: ObjectConfig{
			Name:      "bfs",
			Shape:     string(physics.KindCone),
			Mass:      50,
			Radius:    0.75,
			Height:    0.26,
			DragCoeff: 0.7,
		},
		Environment: EnvConfig{
			Gravity:      9.81,
			WaterDensity: 1000,
			AirDensity:   1.225,
		},
		Immersion: string(physics.Progressive),
		Initial: InitConfig{
			Altitude: DefaultAltitude,
			Velocity: 0,
		},
		Run: RunConfig{
			Duration:   DefaultDuration,
			Samples:    DefaultSamples,
			Tolerance:  DefaultTolerance,
			Integrator: DefaultIntegrator,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build validates the configuration and constructs the physics model.
// All configuration errors surface here, before any integration runs.
func (c *Config) Build() (*physics.Splash, error) {
	shape, err := physics.NewShape(physics.ShapeKind(c.Object.Shape), c.Object.Radius, c.Object.Height)
	if err != nil {
		return nil, err
	}

	body := physics.Body{
		Name:      c.Object.Name,
		Shape:     shape,
		Mass:      c.Object.Mass,
		DragCoeff: c.Object.DragCoeff,
	}
	env := physics.Environment{
		Gravity:      c.Environment.Gravity,
		WaterDensity: c.Environment.WaterDensity,
		AirDensity:   c.Environment.AirDensity,
	}

	return physics.NewSplash(body, env, physics.Mode(c.Immersion))
}

// InitState is the (z0, v0) state vector for the run.
func (c *Config) InitState() dynamo.State {
	return dynamo.State{c.Initial.Altitude, c.Initial.Velocity}
}

// SimConfig maps the run section onto solver settings, falling back to
// solver defaults for unset values.
func (c *Config) SimConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	if c.Run.Duration > 0 {
		cfg.Duration = c.Run.Duration
	}
	if c.Run.Samples > 0 {
		cfg.Samples = c.Run.Samples
	}
	if c.Run.Tolerance > 0 {
		cfg.Tolerance = c.Run.Tolerance
	}
	return cfg
}
