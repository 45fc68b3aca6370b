package integrators

import (
	"fmt"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// ByName returns the integrator registered under name. An empty name
// selects the adaptive default.
func ByName(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "rk45", "":
		return NewRK45(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
