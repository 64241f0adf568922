package control

import "github.com/san-kum/pushcart/internal/dynamo"

// Manual passes through the last pointer reported by the UI.
type Manual struct {
	P dynamo.Pointer
}

func NewManual() *Manual {
	return &Manual{}
}

// Move records a pointer sample already converted to track units.
func (m *Manual) Move(x, y float64) {
	m.P = dynamo.Pointer{X: x, Y: y, Active: true}
}

// Leave marks the pointer as off the surface.
func (m *Manual) Leave() {
	m.P.Active = false
}

func (m *Manual) Pointer(k dynamo.Kinematics, t float64) dynamo.Pointer {
	return m.P
}
