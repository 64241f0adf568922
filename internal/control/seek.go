package control

import (
	"math"

	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/physics"
)

// SeekParams configures a position-seeking pointer. Target is in track
// units; the gains map position error to newtons.
type SeekParams struct {
	Target float64 `yaml:"target"`
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
}

func DefaultSeekParams(target float64) SeekParams {
	return SeekParams{Target: target, Kp: 0.1, Ki: 0, Kd: 0.5}
}

// Seek runs a PID loop on the cart position and turns the commanded force
// into a pointer placed in the matching push zone. Only the force model can
// move the cart, so the command saturates at the cart's MaxForce.
type Seek struct {
	SeekParams
	cart     physics.Cart
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewSeek(cart physics.Cart, p SeekParams) *Seek {
	return &Seek{SeekParams: p, cart: cart, first: true}
}

// Command is the PID output for the current position, in newtons.
func (s *Seek) Command(k dynamo.Kinematics, t float64) float64 {
	err := s.Target - k.Position

	if s.first {
		s.prevErr = err
		s.prevT = t
		s.first = false
		return s.Kp * err
	}

	dt := t - s.prevT
	if dt <= 0 {
		return s.Kp * err
	}
	s.integral += err * dt
	derivative := (err - s.prevErr) / dt
	s.prevErr = err
	s.prevT = t
	return s.Kp*err + s.Ki*s.integral + s.Kd*derivative
}

func (s *Seek) Pointer(k dynamo.Kinematics, t float64) dynamo.Pointer {
	u := s.Command(k, t)

	c := s.cart
	c.X = k.Position
	if c.MaxForce <= 0 || u == 0 {
		return dynamo.Pointer{}
	}

	depth := math.Min(math.Abs(u)/c.MaxForce, maxPushDepth)
	y := (c.Top + c.Bottom) / 2
	offset := depth * c.ZoneWidth()
	if u > 0 {
		return dynamo.Pointer{X: c.Left() + offset, Y: y, Active: true}
	}
	return dynamo.Pointer{X: c.Right() - offset, Y: y, Active: true}
}

// Reset clears the loop state between runs.
func (s *Seek) Reset() {
	s.integral = 0
	s.prevErr = 0
	s.prevT = 0
	s.first = true
}
