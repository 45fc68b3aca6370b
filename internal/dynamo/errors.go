package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrToleranceNotMet indicates a rejected adaptive step; retry with
	// the suggested smaller dt.
	ErrToleranceNotMet = errors.New("dynamo: local error above tolerance")

	// ErrStepTooSmall indicates the adaptive timestep underflowed MinDt.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrStepBudget indicates the solver exhausted MaxSteps before
	// covering the requested horizon.
	ErrStepBudget = errors.New("dynamo: step budget exhausted")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
