package gui

import "github.com/san-kum/pushcart/internal/config"

// Layout maps the logical surface onto the window, letterboxed with a
// uniform scale so the cart keeps its aspect ratio.
type Layout struct {
	Scale        float32
	OffX, OffY   float32
	surfW, surfH float64
}

func NewLayout(winW, winH int, cfg *config.Config) Layout {
	sx := float32(winW) / float32(cfg.TrackWidth)
	sy := float32(winH) / float32(cfg.SurfaceHeight)
	s := sx
	if sy < s {
		s = sy
	}
	return Layout{
		Scale: s,
		OffX:  (float32(winW) - s*float32(cfg.TrackWidth)) / 2,
		OffY:  (float32(winH) - s*float32(cfg.SurfaceHeight)) / 2,
		surfW: cfg.TrackWidth,
		surfH: cfg.SurfaceHeight,
	}
}

// ToSurface converts window pixels to surface units. ok is false outside
// the surface.
func (l Layout) ToSurface(x, y float32) (sx, sy float64, ok bool) {
	sx = float64((x - l.OffX) / l.Scale)
	sy = float64((y - l.OffY) / l.Scale)
	ok = sx >= 0 && sy >= 0 && sx <= l.surfW && sy <= l.surfH
	return sx, sy, ok
}

func (l Layout) ToScreen(x, y float64) (float32, float32) {
	return l.OffX + float32(x)*l.Scale, l.OffY + float32(y)*l.Scale
}

// Graph is the force-vs-position plot area in surface units: full track
// width, between 5% and 50% of the surface height.
type Graph struct {
	Top, Bottom float64
	MaxForce    float64
}

func NewGraph(cfg *config.Config) Graph {
	return Graph{
		Top:      cfg.SurfaceHeight * 0.05,
		Bottom:   cfg.SurfaceHeight * 0.5,
		MaxForce: cfg.MaxForce,
	}
}

func (g Graph) Base() float64 {
	return (g.Top + g.Bottom) / 2
}

// ValueY maps a force to a surface y, clamped to the plot.
func (g Graph) ValueY(v float64) float64 {
	n := v / g.MaxForce
	if n > 1 {
		n = 1
	} else if n < -1 {
		n = -1
	}
	return g.Base() - n*(g.Bottom-g.Top)/2
}

// HUD anchors the overlay text to the window corners so it follows a resize.
type HUD struct {
	Status    [2]int32
	Readout   [2]int32
	Telemetry [2]int32
	Help      [2]int32
	FPS       [2]int32
}

func NewHUD(winW, winH int) HUD {
	w, h := int32(winW), int32(winH)
	return HUD{
		Status:    [2]int32{w - 130, 30},
		Readout:   [2]int32{30, h - 160},
		Telemetry: [2]int32{300, h - 140},
		Help:      [2]int32{w - 480, h - 40},
		FPS:       [2]int32{30, h - 40},
	}
}
