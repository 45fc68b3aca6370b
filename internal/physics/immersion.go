package physics

import "fmt"

type Mode string

const (
	// Abrupt switches from fully-in-air to fully-submerged the instant
	// the body reaches the surface.
	Abrupt Mode = "abrupt"
	// Progressive grows submerged volume and blends drag continuously
	// with penetration depth up to the reference height.
	Progressive Mode = "progressive"
)

// Immersion couples submerged volume and effective drag across the
// air/water boundary so the force law stays mode-agnostic.
type Immersion interface {
	// SubmergedVolume is the displaced volume at depth z, in
	// [0, TotalVolume] and non-decreasing in z.
	SubmergedVolume(z float64) float64
	// DragCoefficient is the lumped quadratic coefficient 0.5*rho*Cd*A
	// effective at depth z.
	DragCoefficient(z float64) float64
}

type abruptImmersion struct {
	shape  Shape
	kAir   float64
	kWater float64
}

func (a abruptImmersion) SubmergedVolume(z float64) float64 {
	if z >= 0 {
		return a.shape.TotalVolume()
	}
	return 0
}

func (a abruptImmersion) DragCoefficient(z float64) float64 {
	if z >= 0 {
		return a.kWater
	}
	return a.kAir
}

type progressiveImmersion struct {
	shape  Shape
	kAir   float64
	kWater float64
}

func (p progressiveImmersion) SubmergedVolume(z float64) float64 {
	if z <= 0 {
		return 0
	}
	if z < p.shape.ReferenceHeight() {
		return p.shape.RampVolume(z)
	}
	return p.shape.TotalVolume()
}

func (p progressiveImmersion) DragCoefficient(z float64) float64 {
	if z <= 0 {
		return p.kAir
	}
	alpha := z / p.shape.ReferenceHeight()
	if alpha > 1 {
		alpha = 1
	}
	return (1-alpha)*p.kAir + alpha*p.kWater
}

func newImmersion(mode Mode, shape Shape, kAir, kWater float64) (Immersion, error) {
	switch mode {
	case Abrupt:
		return abruptImmersion{shape: shape, kAir: kAir, kWater: kWater}, nil
	case Progressive:
		// Degenerate ramp would divide by zero mid-integration.
		if shape.ReferenceHeight() <= 0 {
			return nil, fmt.Errorf("physics: progressive immersion requires positive reference height, got %g", shape.ReferenceHeight())
		}
		return progressiveImmersion{shape: shape, kAir: kAir, kWater: kWater}, nil
	default:
		return nil, fmt.Errorf("physics: unknown immersion mode %q", mode)
	}
}
