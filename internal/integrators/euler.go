package integrators

import "github.com/san-kum/pushcart/internal/dynamo"

// SemiImplicitEuler updates velocity first and moves the cart with the new
// velocity. This is the default integrator.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(k dynamo.Kinematics, force, dt, distanceScale float64) dynamo.Kinematics {
	k.Acceleration = force / k.Mass
	k.Velocity += k.Acceleration * dt
	k.Position += k.Velocity * dt * distanceScale
	return k
}

// Euler is the explicit variant: position advances with the velocity from
// before the step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(k dynamo.Kinematics, force, dt, distanceScale float64) dynamo.Kinematics {
	k.Acceleration = force / k.Mass
	k.Position += k.Velocity * dt * distanceScale
	k.Velocity += k.Acceleration * dt
	return k
}
