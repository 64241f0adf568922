package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pushcart/internal/dynamo"
)

func (a *App) point(x, y float64) rl.Vector2 {
	sx, sy := a.layout.ToScreen(x, y)
	return rl.NewVector2(sx, sy)
}

// drawGraph plots the histogram: filled area per same-sign segment, the
// trace on top and a cursor at the newest sample.
func (a *App) drawGraph() {
	cfg := a.session.Config()
	g := a.graph

	tl := a.point(0, g.Top)
	br := a.point(cfg.TrackWidth, g.Bottom)
	rl.DrawRectangleLinesEx(rl.NewRectangle(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y), 1, ColTextDim)
	base := a.point(0, g.Base())
	rl.DrawLineV(base, rl.NewVector2(br.X, base.Y), ColTextDim)

	log := a.session.Log()
	for _, seg := range log.Segments() {
		col := ColPositive
		if !seg.Positive {
			col = ColNegative
		}
		for i := 1; i < len(seg.Samples); i++ {
			a.fillBetween(seg.Samples[i-1], seg.Samples[i], base.Y, col)
		}
	}

	samples := log.Samples()
	if len(samples) > 1 {
		points := make([]rl.Vector2, len(samples))
		for i, s := range samples {
			points[i] = a.point(s.Position, g.ValueY(s.Value))
		}
		rl.DrawLineStrip(points, ColSelect)
	}

	last := log.Last()
	rl.DrawCircleV(a.point(last.Position, g.ValueY(last.Value)), 4, ColSelect)

	half := cfg.Scale / 2
	a.drawText(fmt.Sprintf("-%.2f", half), int32(tl.X)+4, int32(br.Y)+4, 12, ColText)
	a.drawText(fmt.Sprintf("%.2f m", half), int32(br.X)-60, int32(br.Y)+4, 12, ColText)
	a.drawText(fmt.Sprintf("+%.0f N", g.MaxForce), int32(tl.X)+4, int32(tl.Y)+4, 12, ColText)
}

// fillBetween shades the area between two samples and the zero line one
// screen column at a time.
func (a *App) fillBetween(s0, s1 dynamo.Sample, baseY float32, col rl.Color) {
	p0 := a.point(s0.Position, a.graph.ValueY(s0.Value))
	p1 := a.point(s1.Position, a.graph.ValueY(s1.Value))
	if p0.X > p1.X {
		p0, p1 = p1, p0
	}
	for x := p0.X; x <= p1.X; x++ {
		y := p0.Y
		if p1.X != p0.X {
			y = p0.Y + (p1.Y-p0.Y)*(x-p0.X)/(p1.X-p0.X)
		}
		rl.DrawLineV(rl.NewVector2(x, baseY), rl.NewVector2(x, y), col)
	}
}

func (a *App) drawTrack() {
	cfg := a.session.Config()
	c := a.session.Cart()

	ground := a.point(0, cfg.Ground())
	end := a.point(cfg.TrackWidth, cfg.Ground()+cfg.SurfaceHeight*0.03)
	rl.DrawRectangleV(ground, rl.NewVector2(end.X-ground.X, end.Y-ground.Y), ColTable)

	tl := a.point(c.Left(), c.Top)
	br := a.point(c.Right(), c.Bottom)
	rl.DrawRectangleV(tl, rl.NewVector2(br.X-tl.X, br.Y-tl.Y), ColAccent)

	// push zones
	zw := a.layout.Scale * float32(c.ZoneWidth())
	rl.DrawRectangleLinesEx(rl.NewRectangle(tl.X, tl.Y, zw, br.Y-tl.Y), 1, ColPositive)
	rl.DrawRectangleLinesEx(rl.NewRectangle(br.X-zw, tl.Y, zw, br.Y-tl.Y), 1, ColNegative)

	r := (br.Y - tl.Y) / 3
	w := br.X - tl.X
	rl.DrawCircleV(rl.NewVector2(tl.X+w*0.2, br.Y), r, ColText)
	rl.DrawCircleV(rl.NewVector2(tl.X+w*0.8, br.Y), r, ColText)

	p := a.pointer.P
	if p.Active {
		col := rl.NewColor(255, 255, 255, 100)
		switch c.Zone(p) {
		case 1:
			col = ColPositive
		case -1:
			col = ColNegative
		}
		rl.DrawCircleV(a.point(p.X, p.Y), 5, col)
	}
}
