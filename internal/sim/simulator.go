package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/logging"
	"go.uber.org/zap"
)

// Simulator drives a Session from a pointer source at a fixed step, the way
// a display loop would but without one.
type Simulator struct {
	session   *Session
	source    dynamo.PointerSource
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	logger    *zap.Logger
}

func New(session *Session, source dynamo.PointerSource, logger *zap.Logger) *Simulator {
	return &Simulator{
		session:   session,
		source:    source,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		logger:    logging.Or(logger),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Session() *Session { return s.session }

// Run resets the session and steps it for cfg.Duration. On cancellation the
// partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	s.session.Reset()
	for _, m := range s.metrics {
		m.Reset()
	}
	if r, ok := s.source.(dynamo.Resetter); ok {
		r.Reset()
	}

	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	result := &dynamo.Result{
		States:  make([]dynamo.Kinematics, 0, steps+1),
		Forces:  make([]float64, 0, steps),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	k := s.session.Kinematics()
	result.States = append(result.States, k)
	result.Times = append(result.Times, 0)

	s.logger.Info("run started",
		zap.Int("steps", steps),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("position", k.Position))

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		p := s.source.Pointer(s.session.Kinematics(), t)
		frame := s.session.Tick(p, cfg.Dt)
		t = float64(i+1) * cfg.Dt

		if !frame.Kinematics.IsValid() {
			s.finish(result)
			return result, dynamo.SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
		}

		for _, m := range s.metrics {
			m.Observe(frame.Kinematics, frame.Force, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(frame.Kinematics, frame.Force, t)
		}

		result.StepsTaken++
		result.States = append(result.States, frame.Kinematics)
		result.Forces = append(result.Forces, frame.Force)
		result.Times = append(result.Times, t)
	}

	s.finish(result)
	s.logger.Info("run finished",
		zap.Int("steps", result.StepsTaken),
		zap.Int("samples", len(result.Samples)),
		zap.Float64("position", s.session.Kinematics().Position))
	return result, nil
}

func (s *Simulator) finish(result *dynamo.Result) {
	result.Samples = s.session.Log().Samples()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg dynamo.Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive: %w", dynamo.OutOfBounds("dt", cfg.Dt))
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive: %w", dynamo.OutOfBounds("duration", cfg.Duration))
	}
	return nil
}
