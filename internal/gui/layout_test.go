package gui

import (
	"testing"

	"github.com/san-kum/pushcart/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLayoutLetterboxesWideWindow(t *testing.T) {
	cfg := config.DefaultConfig()
	l := NewLayout(1280, 720, cfg)

	assert.InDelta(t, 1.2, l.Scale, 1e-6)
	assert.InDelta(t, 160, l.OffX, 1e-4)
	assert.Zero(t, l.OffY)
}

func TestLayoutRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	l := NewLayout(1280, 720, cfg)

	sx, sy := l.ToScreen(400, 384)
	x, y, ok := l.ToSurface(sx, sy)
	assert.True(t, ok)
	assert.InDelta(t, 400, x, 1e-3)
	assert.InDelta(t, 384, y, 1e-3)

	_, _, ok = l.ToSurface(10, 10)
	assert.False(t, ok, "left letterbox bar is off the surface")
}

func TestGraphValueY(t *testing.T) {
	g := NewGraph(config.DefaultConfig())

	assert.Equal(t, g.Base(), g.ValueY(0))
	assert.InDelta(t, g.Top, g.ValueY(25), 1e-9)
	assert.InDelta(t, g.Bottom, g.ValueY(-25), 1e-9)
	assert.InDelta(t, g.Top, g.ValueY(100), 1e-9, "clamped")
}

func TestHUDFollowsWindowSize(t *testing.T) {
	small := NewHUD(1280, 720)
	assert.Equal(t, [2]int32{1150, 30}, small.Status)
	assert.Equal(t, [2]int32{30, 680}, small.FPS)

	big := NewHUD(1920, 1080)
	assert.Equal(t, [2]int32{1790, 30}, big.Status)
	assert.Equal(t, [2]int32{1440, 1040}, big.Help)
	assert.Equal(t, [2]int32{30, 920}, big.Readout)
	assert.Equal(t, [2]int32{300, 940}, big.Telemetry)
}
