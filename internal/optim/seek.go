package optim

import (
	"context"

	"github.com/san-kum/pushcart/internal/config"
	"github.com/san-kum/pushcart/internal/control"
	"github.com/san-kum/pushcart/internal/experiment"
	"go.uber.org/zap"
)

// TuneSeek searches kp × kd for the gains that park the cart at target with
// the smallest tracking error. Ki stays at the base config's value.
func TuneSeek(ctx context.Context, base *config.Config, target float64, kps, kds []float64, logger *zap.Logger) (control.SeekParams, float64, error) {
	g, err := NewGridSearch([]string{"kp", "kd"}, [][]float64{kps, kds})
	if err != nil {
		return control.SeekParams{}, 0, err
	}

	registry := experiment.NewRegistry()
	ki := 0.0
	if base.Seek != nil {
		ki = base.Seek.Ki
	}

	build := func(p Point) (*experiment.Experiment, error) {
		cfg := base.Clone()
		cfg.Script = nil
		cfg.Seek = &control.SeekParams{Target: target, Kp: p["kp"], Ki: ki, Kd: p["kd"]}
		exp := experiment.New(cfg, nil)
		if err := exp.Setup(registry, "seek"); err != nil {
			return nil, err
		}
		return exp, nil
	}

	best, val, err := g.Search(ctx, build, "tracking_error")
	if err != nil {
		return control.SeekParams{}, 0, err
	}
	if logger != nil {
		logger.Info("seek gains tuned",
			zap.Int("grid", g.Size()),
			zap.Float64("kp", best["kp"]),
			zap.Float64("kd", best["kd"]),
			zap.Float64("tracking_error", val))
	}
	return control.SeekParams{Target: target, Kp: best["kp"], Ki: ki, Kd: best["kd"]}, val, nil
}
