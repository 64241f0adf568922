package control

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/physics"
)

// Edge selects which push zone a keyframe targets.
type Edge string

const (
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// maxPushDepth keeps a generated pointer off the cart's center. With a
// hitbox ratio of 0.5 the zones meet there and the left zone claims it.
const maxPushDepth = 0.95

// Keyframe holds the pointer in one push zone for a time window. Depth is
// the fraction of the zone width measured from the cart edge inward. It is
// capped at maxPushDepth, so 1 pushes at 95% of MaxForce.
type Keyframe struct {
	At       float64 `yaml:"at"`
	Duration float64 `yaml:"duration"`
	Edge     Edge    `yaml:"edge"`
	Depth    float64 `yaml:"depth"`
}

func (k Keyframe) covers(t float64) bool {
	return t >= k.At && t < k.At+k.Duration
}

// Script replays keyframes against a moving cart. The cart template
// supplies geometry; its X is replaced by the live position.
type Script struct {
	cart   physics.Cart
	frames []Keyframe
}

func NewScript(cart physics.Cart, frames []Keyframe) (*Script, error) {
	sorted := make([]Keyframe, len(frames))
	copy(sorted, frames)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })

	for i, f := range sorted {
		if f.Edge != EdgeLeft && f.Edge != EdgeRight {
			return nil, fmt.Errorf("keyframe %d: edge %q: %w", i, f.Edge, dynamo.ErrUnknown)
		}
		if f.Duration <= 0 {
			return nil, fmt.Errorf("keyframe %d: %w", i, dynamo.OutOfBounds("duration", f.Duration))
		}
		if f.Depth < 0 || f.Depth > 1 {
			return nil, fmt.Errorf("keyframe %d: %w", i, dynamo.OutOfBounds("depth", f.Depth))
		}
	}
	return &Script{cart: cart, frames: sorted}, nil
}

func (s *Script) Pointer(k dynamo.Kinematics, t float64) dynamo.Pointer {
	for _, f := range s.frames {
		if !f.covers(t) {
			continue
		}
		c := s.cart
		c.X = k.Position
		y := (c.Top + c.Bottom) / 2
		offset := math.Min(f.Depth, maxPushDepth) * c.ZoneWidth()
		if f.Edge == EdgeLeft {
			return dynamo.Pointer{X: c.Left() + offset, Y: y, Active: true}
		}
		return dynamo.Pointer{X: c.Right() - offset, Y: y, Active: true}
	}
	return dynamo.Pointer{}
}

// End is the time the last keyframe releases the cart.
func (s *Script) End() float64 {
	end := 0.0
	for _, f := range s.frames {
		if e := f.At + f.Duration; e > end {
			end = e
		}
	}
	return end
}
