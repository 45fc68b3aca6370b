package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is the right-hand side of an ODE, dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator proposes the next step size and signals rejected
// steps with ErrToleranceNotMet so the caller can retry smaller.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

type Config struct {
	Duration      float64
	Samples       int
	Tolerance     float64
	InitialDt     float64
	MinDt         float64
	MaxDt         float64
	MaxSteps      int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Duration:      8.0,
		Samples:       100_000,
		Tolerance:     1e-8,
		InitialDt:     1e-4,
		MinDt:         1e-12,
		MaxDt:         0.05,
		MaxSteps:      10_000_000,
		ValidateState: true,
	}
}

// Result is the dense output of a completed run. Times and States have
// equal length, Times is strictly ascending, and neither is mutated
// after the run returns.
type Result struct {
	Times      []float64
	States     []State
	StepsTaken int
	Rejected   int
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
