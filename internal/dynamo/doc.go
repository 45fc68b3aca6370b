// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator], [AdaptiveIntegrator]: numerical stepping
//   - [Config], [Result]: run parameters and dense trajectory output
//
// # Example
//
//	dyn, _ := physics.NewSplash(body, env, physics.Progressive)
//	integ := integrators.NewRK45()
//	result, _ := sim.New(dyn, integ).Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe; each run owns its Result.
package dynamo
