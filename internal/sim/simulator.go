package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// Simulator advances a system over a time horizon and samples the
// solution on an evenly spaced output grid. With an adaptive integrator
// the internal step size floats freely between grid points; steps are
// clamped so every grid instant is hit exactly.
type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{dyn: dyn, integrator: integrator}
}

// Run integrates from x0 over [0, cfg.Duration] and returns the dense
// trajectory. A solver failure (step underflow, exhausted budget,
// invalid state) aborts the run; no partial trajectory is returned.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &dynamo.Result{
		Times:  make([]float64, 0, cfg.Samples),
		States: make([]dynamo.State, 0, cfg.Samples),
	}

	adaptive, isAdaptive := s.integrator.(dynamo.AdaptiveIntegrator)

	x := x0.Clone()
	t := 0.0
	dt := cfg.InitialDt
	gridDt := cfg.Duration / float64(cfg.Samples-1)

	result.Times = append(result.Times, 0)
	result.States = append(result.States, x.Clone())

	for i := 1; i < cfg.Samples; i++ {
		target := float64(i) * gridDt

		for t < target {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			h := dt
			if t+h > target {
				h = target - t
			}

			if isAdaptive {
				xNew, dtNext, err := adaptive.StepAdaptive(s.dyn, x, t, h, cfg.Tolerance)
				if errors.Is(err, dynamo.ErrToleranceNotMet) {
					result.Rejected++
					if dtNext < cfg.MinDt {
						return nil, &dynamo.SimulationError{
							Step:    result.StepsTaken,
							Time:    t,
							State:   x.Clone(),
							Wrapped: dynamo.ErrStepTooSmall,
						}
					}
					dt = dtNext
				} else {
					x = xNew
					t += h
					dt = clamp(dtNext, cfg.MinDt, cfg.MaxDt)
				}
			} else {
				x = s.integrator.Step(s.dyn, x, t, h)
				t += h
			}

			result.StepsTaken++
			if result.StepsTaken > cfg.MaxSteps {
				return nil, &dynamo.SimulationError{
					Step:    result.StepsTaken,
					Time:    t,
					State:   x.Clone(),
					Wrapped: dynamo.ErrStepBudget,
				}
			}

			if cfg.ValidateState && !x.IsValid() {
				return nil, &dynamo.SimulationError{
					Step:    result.StepsTaken,
					Time:    t,
					State:   x.Clone(),
					Wrapped: dynamo.ErrInvalidState,
				}
			}
		}

		// Land exactly on the grid; accumulated float error in t would
		// otherwise leak into the sampled timestamps.
		t = target
		result.Times = append(result.Times, target)
		result.States = append(result.States, x.Clone())
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg dynamo.Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Samples < 2 {
		return fmt.Errorf("sim: need at least 2 samples, got %d", cfg.Samples)
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("sim: tolerance must be positive, got %g", cfg.Tolerance)
	}
	if cfg.InitialDt <= 0 {
		return fmt.Errorf("sim: initial dt must be positive, got %g", cfg.InitialDt)
	}
	if cfg.MinDt <= 0 || cfg.MinDt >= cfg.MaxDt {
		return fmt.Errorf("sim: dt bounds invalid: min=%g max=%g", cfg.MinDt, cfg.MaxDt)
	}
	if cfg.MaxSteps <= 0 {
		return fmt.Errorf("sim: step budget must be positive, got %d", cfg.MaxSteps)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
