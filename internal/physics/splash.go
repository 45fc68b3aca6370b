package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// Body is the falling object: geometry plus mass and drag coefficient.
// Immutable once handed to NewSplash.
type Body struct {
	Name      string
	Shape     Shape
	Mass      float64
	DragCoeff float64
}

type Environment struct {
	Gravity      float64
	WaterDensity float64
	AirDensity   float64
}

func DefaultEnvironment() Environment {
	return Environment{
		Gravity:      9.81,
		WaterDensity: 1000.0,
		AirDensity:   1.225,
	}
}

// Splash models a rigid body falling onto a water surface. The state is
// (z, v): depth below the surface (negative above) and downward velocity.
type Splash struct {
	body      Body
	env       Environment
	mode      Mode
	immersion Immersion
	kAir      float64
	kWater    float64
}

func NewSplash(body Body, env Environment, mode Mode) (*Splash, error) {
	if body.Shape == nil {
		return nil, fmt.Errorf("physics: body has no shape")
	}
	if body.Mass <= 0 {
		return nil, fmt.Errorf("physics: mass must be positive, got %g", body.Mass)
	}
	if body.Shape.Radius() <= 0 {
		return nil, fmt.Errorf("physics: radius must be positive, got %g", body.Shape.Radius())
	}
	if body.Shape.ReferenceHeight() < 0 {
		return nil, fmt.Errorf("physics: reference height must be non-negative, got %g", body.Shape.ReferenceHeight())
	}
	if body.DragCoeff <= 0 {
		return nil, fmt.Errorf("physics: drag coefficient must be positive, got %g", body.DragCoeff)
	}
	if env.Gravity <= 0 || env.WaterDensity <= 0 || env.AirDensity <= 0 {
		return nil, fmt.Errorf("physics: environment constants must be positive")
	}

	area := FrontalArea(body.Shape.Radius())
	kAir := 0.5 * env.AirDensity * body.DragCoeff * area
	kWater := 0.5 * env.WaterDensity * body.DragCoeff * area

	imm, err := newImmersion(mode, body.Shape, kAir, kWater)
	if err != nil {
		return nil, err
	}

	return &Splash{
		body:      body,
		env:       env,
		mode:      mode,
		immersion: imm,
		kAir:      kAir,
		kWater:    kWater,
	}, nil
}

func (s *Splash) StateDim() int { return 2 }

// Derive is the equation of motion. t is unused by the physics but kept
// for the integrator interface.
func (s *Splash) Derive(x dynamo.State, t float64) dynamo.State {
	z, v := x[0], x[1]
	return dynamo.State{v, s.Acceleration(z, v)}
}

// Acceleration is the net downward acceleration at depth z and velocity
// v: weight minus buoyancy minus quadratic drag. Drag uses v*|v| so it
// always opposes the motion.
func (s *Splash) Acceleration(z, v float64) float64 {
	weight := s.body.Mass * s.env.Gravity
	buoyancy := s.env.WaterDensity * s.env.Gravity * s.immersion.SubmergedVolume(z)
	drag := s.immersion.DragCoefficient(z) * v * math.Abs(v)
	return (weight - buoyancy - drag) / s.body.Mass
}

// TerminalVelocity is the closed-form air-drag-only steady fall speed,
// sqrt(2mg / (rho_air * A * Cd)).
func (s *Splash) TerminalVelocity() float64 {
	area := FrontalArea(s.body.Shape.Radius())
	return math.Sqrt(2 * s.body.Mass * s.env.Gravity / (s.env.AirDensity * area * s.body.DragCoeff))
}

func (s *Splash) SubmergedVolume(z float64) float64 { return s.immersion.SubmergedVolume(z) }
func (s *Splash) DragCoefficient(z float64) float64 { return s.immersion.DragCoefficient(z) }

func (s *Splash) Body() Body               { return s.body }
func (s *Splash) Environment() Environment { return s.env }
func (s *Splash) Mode() Mode               { return s.mode }

func (s *Splash) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":      s.body.Mass,
		"radius":    s.body.Shape.Radius(),
		"height":    s.body.Shape.ReferenceHeight(),
		"cd":        s.body.DragCoeff,
		"gravity":   s.env.Gravity,
		"rho_water": s.env.WaterDensity,
		"rho_air":   s.env.AirDensity,
	}
}
