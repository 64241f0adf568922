package metrics

import (
	"math"

	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/physics"
)

// KineticEnergy tracks the peak kinetic energy seen during a run.
type KineticEnergy struct {
	name string
	peak float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "peak_kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(k dynamo.Kinematics, force float64, t float64) {
	e.peak = math.Max(e.peak, physics.KineticEnergy(k))
}

func (e *KineticEnergy) Value() float64 { return e.peak }

func (e *KineticEnergy) Reset() { e.peak = 0 }

// Work accumulates F·v·dt. The step length is inferred from consecutive
// observation times, starting at t=0.
type Work struct {
	name  string
	total float64
	lastT float64
}

func NewWork() *Work {
	return &Work{name: "work"}
}

func (w *Work) Name() string { return w.name }

func (w *Work) Observe(k dynamo.Kinematics, force float64, t float64) {
	w.total += force * k.Velocity * (t - w.lastT)
	w.lastT = t
}

func (w *Work) Value() float64 { return w.total }

func (w *Work) Reset() {
	w.total = 0
	w.lastT = 0
}
