// Package viz is the terminal front end of the cart demo, built on Bubble Tea.
//
// The screen mirrors the browser layout: the force-vs-position histogram on
// top, the track and cart below, and a stats panel with velocity and energy
// gauges on the right. Moving the mouse over either end of the cart pushes
// it; the push is strongest at the inner edge of each zone.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	A / D - Tap the cart from the left / right
//	R     - Reset the session
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
