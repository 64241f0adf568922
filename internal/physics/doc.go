// Package physics holds the cart model: its geometry on the track and the
// pointer push-force rule that feeds the integrator.
//
// The force model is linear inside each push zone. A pointer at the outer
// edge of a zone produces no force; a pointer at the inner edge produces
// [Cart.MaxForce]. The left zone pushes toward +X, the right zone toward -X.
//
//	cart := physics.Cart{X: 100, HalfWidth: 10, Top: 0, Bottom: 5, HitboxRatio: 0.5, MaxForce: 25}
//	f := cart.PushForce(dynamo.Pointer{X: 95, Y: 2, Active: true}) // 12.5
package physics
