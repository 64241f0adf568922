// Package control provides pointer sources: the input layer that decides
// where the pointer is on every frame.
//
//   - [Manual]: pointer set by a UI from mouse events
//   - [Idle]: no pointer at all, the cart coasts
//   - [Script]: keyframed pushes relative to the cart, for headless runs
//
// Every source implements [dynamo.PointerSource].
package control
