package control

import "github.com/san-kum/pushcart/internal/dynamo"

type Idle struct{}

func NewIdle() *Idle {
	return &Idle{}
}

func (i *Idle) Pointer(k dynamo.Kinematics, t float64) dynamo.Pointer {
	return dynamo.Pointer{}
}
