package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/pushcart/internal/config"
	"github.com/san-kum/pushcart/internal/control"
	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/logging"
	"github.com/san-kum/pushcart/internal/sim"
	"go.uber.org/zap"
)

// Experiment is a headless run assembled from a config: session,
// pointer source, and the default metrics.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	logger    *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) *Experiment {
	return &Experiment{cfg: cfg, logger: logger}
}

// Setup validates the config and wires the simulator. source may be empty
// to pick one from the config.
func (e *Experiment) Setup(r *Registry, source string) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	integ, err := r.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	src, err := r.GetSource(source, e.cfg)
	if err != nil {
		return err
	}

	if script, ok := src.(*control.Script); ok && script.End() > e.cfg.Duration {
		logging.Or(e.logger).Warn("script runs past the end of the session",
			zap.Float64("script_end", script.End()),
			zap.Float64("duration", e.cfg.Duration))
	}

	session := sim.NewSession(e.cfg, integ, e.logger)
	e.simulator = sim.New(session, src, e.logger)
	for _, m := range r.DefaultMetrics(e.cfg) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
