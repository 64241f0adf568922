// Package dynamo provides the core simulation primitives for the cart demo.
//
// The package defines the value types and interfaces shared by every layer:
//
//   - [Kinematics]: position, velocity and acceleration of the cart
//   - [Pointer]: a pointer sample in track units
//   - [Integrator]: advances [Kinematics] by one frame
//   - [PointerSource]: input layer feeding the force model
//   - [Metric] and [Observer]: per-step instrumentation
//
// # Example
//
//	integ := integrators.NewSemiImplicitEuler()
//	k := dynamo.Kinematics{Position: 100, Mass: 5}
//	k = integ.Step(k, 12.5, 1.0/60, 1)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. A session owns
// exactly one [Kinematics] value and updates it from a single call site.
package dynamo
