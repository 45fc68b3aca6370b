package physics

import (
	"fmt"
	"math"
)

type ShapeKind string

const (
	KindCone     ShapeKind = "cone"
	KindCylinder ShapeKind = "cylinder"
)

// Shape supplies the volume-growth law of an axisymmetric body entering
// the water tip-first, plus its reference dimensions.
type Shape interface {
	Kind() ShapeKind
	Radius() float64
	// ReferenceHeight is the penetration depth at which the body is
	// fully submerged.
	ReferenceHeight() float64
	TotalVolume() float64
	// RampVolume is the submerged volume at penetration depth z,
	// for 0 <= z < ReferenceHeight.
	RampVolume(z float64) float64
}

// FrontalArea is the cross section presented to the flow.
func FrontalArea(radius float64) float64 {
	return math.Pi * radius * radius
}

// Cone enters apex-first: the wet part is a similar cone, so volume
// scales with the cube of the penetration fraction.
type Cone struct {
	R float64
	H float64
}

func NewCone(radius, height float64) Cone {
	return Cone{R: radius, H: height}
}

func (c Cone) Kind() ShapeKind          { return KindCone }
func (c Cone) Radius() float64          { return c.R }
func (c Cone) ReferenceHeight() float64 { return c.H }

func (c Cone) TotalVolume() float64 {
	return math.Pi * c.R * c.R * c.H / 3.0
}

func (c Cone) RampVolume(z float64) float64 {
	frac := z / c.H
	return c.TotalVolume() * frac * frac * frac
}

// Cylinder has uniform cross section, so submerged volume grows
// linearly with depth.
type Cylinder struct {
	R float64
	H float64
}

func NewCylinder(radius, height float64) Cylinder {
	return Cylinder{R: radius, H: height}
}

func (c Cylinder) Kind() ShapeKind          { return KindCylinder }
func (c Cylinder) Radius() float64          { return c.R }
func (c Cylinder) ReferenceHeight() float64 { return c.H }

func (c Cylinder) TotalVolume() float64 {
	return math.Pi * c.R * c.R * c.H
}

func (c Cylinder) RampVolume(z float64) float64 {
	return math.Pi * c.R * c.R * z
}

// NewShape builds a shape from its tag, rejecting unknown tags.
func NewShape(kind ShapeKind, radius, height float64) (Shape, error) {
	switch kind {
	case KindCone:
		return NewCone(radius, height), nil
	case KindCylinder:
		return NewCylinder(radius, height), nil
	default:
		return nil, fmt.Errorf("physics: unsupported shape %q", kind)
	}
}
