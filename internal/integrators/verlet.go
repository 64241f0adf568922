package integrators

import "github.com/san-kum/pushcart/internal/dynamo"

// Verlet treats the force as constant across the step, which makes it exact
// for piecewise-constant pushes.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(k dynamo.Kinematics, force, dt, distanceScale float64) dynamo.Kinematics {
	k.Acceleration = force / k.Mass
	k.Position += (k.Velocity*dt + 0.5*k.Acceleration*dt*dt) * distanceScale
	k.Velocity += k.Acceleration * dt
	return k
}
