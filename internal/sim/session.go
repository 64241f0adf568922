package sim

import (
	"math"

	"github.com/san-kum/pushcart/internal/config"
	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/histogram"
	"github.com/san-kum/pushcart/internal/logging"
	"github.com/san-kum/pushcart/internal/physics"
	"go.uber.org/zap"
)

// Frame is what one Tick produced.
type Frame struct {
	Kinematics dynamo.Kinematics
	Force      float64
	Effective  float64
	Energy     float64
	Dt         float64
	Stepped    bool
}

// Session owns the cart state and its histogram for one run of the demo.
// A UI calls Tick once per frame; nothing else mutates the state.
type Session struct {
	cfg     *config.Config
	integ   dynamo.Integrator
	k       dynamo.Kinematics
	cart    physics.Cart
	log     *histogram.Log
	elapsed float64
	last    Frame
	logger  *zap.Logger
}

// NewSession expects a validated config.
func NewSession(cfg *config.Config, integ dynamo.Integrator, logger *zap.Logger) *Session {
	s := &Session{
		cfg:    cfg,
		integ:  integ,
		logger: logging.Or(logger),
	}
	s.Reset()
	return s
}

// Reset puts the cart back at its start position with an empty trace.
func (s *Session) Reset() {
	start := s.cfg.StartPosition()
	s.k = dynamo.Kinematics{
		Position: start,
		Velocity: s.cfg.InitialVelocity,
		Mass:     s.cfg.Mass,
	}
	s.cart = s.cfg.Cart(start)
	s.log = histogram.New(start, s.cfg.TrackWidth)
	s.elapsed = 0
	s.last = Frame{Kinematics: s.k, Energy: physics.KineticEnergy(s.k)}
}

// Tick advances the session by dt seconds under pointer p. Negative or
// non-finite deltas skip the step; deltas above MaxFrameDt are clamped.
func (s *Session) Tick(p dynamo.Pointer, dt float64) Frame {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		s.logger.Debug("skipping frame", zap.Float64("dt", dt))
		f := s.last
		f.Stepped = false
		f.Dt = 0
		return f
	}
	if dt > s.cfg.MaxFrameDt {
		s.logger.Debug("clamping frame delta", zap.Float64("dt", dt), zap.Float64("max", s.cfg.MaxFrameDt))
		dt = s.cfg.MaxFrameDt
	}

	force := s.cart.PushForce(p)
	s.k = s.integ.Step(s.k, force, dt, s.cfg.DistanceScale())
	s.cart.X = s.k.Position

	eff := physics.EffectiveForce(force, s.k.Velocity)
	s.log.Append(s.k.Position, eff)
	s.elapsed += dt

	s.last = Frame{
		Kinematics: s.k,
		Force:      force,
		Effective:  eff,
		Energy:     physics.KineticEnergy(s.k),
		Dt:         dt,
		Stepped:    true,
	}
	return s.last
}

func (s *Session) Kinematics() dynamo.Kinematics { return s.k }
func (s *Session) Cart() physics.Cart            { return s.cart }
func (s *Session) Log() *histogram.Log           { return s.log }
func (s *Session) Elapsed() float64              { return s.elapsed }
func (s *Session) Last() Frame                   { return s.last }
func (s *Session) Config() *config.Config        { return s.cfg }
