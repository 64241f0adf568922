package viz

import "github.com/charmbracelet/harmonica"

// Gauge is a needle that eases toward its target with a critically damped
// spring, so per-frame jitter does not make the bars flicker.
type Gauge struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	Max    float64
}

func NewGauge(fps int, max float64) *Gauge {
	return &Gauge{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
		Max:    max,
	}
}

// Update moves the needle one frame toward target and returns its position.
func (g *Gauge) Update(target float64) float64 {
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, target)
	return g.pos
}

// Grow widens the scale so target fits, keeping the needle on the dial.
func (g *Gauge) Grow(target float64) {
	if target < 0 {
		target = -target
	}
	if g.Max <= 0 {
		g.Max = 1
	}
	for target > g.Max {
		g.Max *= 2
	}
}

func (g *Gauge) Value() float64 { return g.pos }

func (g *Gauge) Reset() {
	g.pos = 0
	g.vel = 0
}
