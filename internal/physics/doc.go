// Package physics models the water entry of a rigid axisymmetric body.
//
// The model combines three small capabilities:
//
//   - [Shape]: the body's geometry ([Cone], [Cylinder]) with its
//     volume-growth law and reference height
//   - [Immersion]: the air/water transition strategy ([Abrupt],
//     [Progressive]), supplying submerged volume and blended drag
//   - [Splash]: the force law (weight, buoyancy, quadratic drag)
//     implementing [dynamo.System] over the state (z, v)
//
// Depth z is positive below the water surface, velocity v positive
// downward. The force law is a pure function of state; all parameters
// are fixed at construction and validated by [NewSplash].
package physics
