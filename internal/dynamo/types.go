package dynamo

import "math"

// Kinematics is the state of the point mass on the track.
// Acceleration is derived from the applied force on every step and is not
// integrated state.
type Kinematics struct {
	Position     float64
	Velocity     float64
	Acceleration float64
	Mass         float64
}

func (k Kinematics) IsValid() bool {
	for _, v := range [...]float64{k.Position, k.Velocity, k.Acceleration} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Pointer is a pointer sample in track units. Y grows downward, matching
// screen coordinates.
type Pointer struct {
	X, Y   float64
	Active bool
}

type Integrator interface {
	Step(k Kinematics, force, dt, distanceScale float64) Kinematics
}

type PointerSource interface {
	Pointer(k Kinematics, t float64) Pointer
}

type Metric interface {
	Name() string
	Observe(k Kinematics, force float64, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(k Kinematics, force float64, t float64)
}

// Resetter is implemented by pointer sources that keep state between steps.
type Resetter interface {
	Reset()
}

type Config struct {
	Dt         float64
	Duration   float64
	MaxFrameDt float64
}

func DefaultConfig() Config {
	return Config{
		Dt:         1.0 / 60,
		Duration:   10.0,
		MaxFrameDt: 0.1,
	}
}

// Sample is one (position, value) point of the force histogram.
type Sample struct {
	Position float64 `json:"position"`
	Value    float64 `json:"value"`
}

type Result struct {
	States     []Kinematics
	Forces     []float64
	Times      []float64
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
}
