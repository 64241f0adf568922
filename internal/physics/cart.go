package physics

import (
	"math"

	"github.com/san-kum/pushcart/internal/dynamo"
)

// Cart is the pushable box. X is the center, Top and Bottom bound the
// vertical band in screen coordinates (Top < Bottom).
type Cart struct {
	X           float64
	HalfWidth   float64
	Top         float64
	Bottom      float64
	HitboxRatio float64
	MaxForce    float64
}

// ZoneWidth is the width of each push zone measured from the cart edge.
func (c Cart) ZoneWidth() float64 {
	return c.HalfWidth * 2 * c.HitboxRatio
}

func (c Cart) Left() float64  { return c.X - c.HalfWidth }
func (c Cart) Right() float64 { return c.X + c.HalfWidth }

func (c Cart) inBand(y float64) bool {
	return y >= c.Top && y <= c.Bottom
}

// PushForce returns the force applied by the pointer. A zero-width zone
// yields no force.
func (c Cart) PushForce(p dynamo.Pointer) float64 {
	if !p.Active || !c.inBand(p.Y) {
		return 0
	}

	w := c.ZoneWidth()
	if w <= 0 {
		return 0
	}

	left, right := c.Left(), c.Right()
	if p.X >= left && p.X <= left+w {
		return c.MaxForce * (p.X - left) / w
	}
	if p.X >= right-w && p.X <= right {
		return -c.MaxForce * (right - p.X) / w
	}
	return 0
}

// Zone reports which push zone the pointer is in: -1 right, +1 left, 0 none.
// The sign matches the direction of the resulting force.
func (c Cart) Zone(p dynamo.Pointer) int {
	f := c.PushForce(p)
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

// EffectiveForce is the force scaled by the direction of motion: positive
// when the push does positive work. A cart at rest gives zero.
func EffectiveForce(force, velocity float64) float64 {
	if velocity == 0 {
		return 0
	}
	return force * math.Copysign(1, velocity)
}

func KineticEnergy(k dynamo.Kinematics) float64 {
	return 0.5 * k.Mass * k.Velocity * k.Velocity
}
