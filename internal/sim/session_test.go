package sim

import (
	"math"
	"testing"

	"github.com/san-kum/pushcart/internal/config"
	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/integrators"
)

// scenarioConfig gives a cart of half-width 10 centered at 100 with one
// track unit per meter.
func scenarioConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.TrackWidth = 200
	cfg.Scale = 200
	cfg.CartWidth = 0.1
	cfg.MaxFrameDt = 2
	start := 100.0
	cfg.InitialPosition = &start
	return cfg
}

func newTestSession(cfg *config.Config) *Session {
	return NewSession(cfg, integrators.NewSemiImplicitEuler(), nil)
}

func pointerAt(s *Session, x float64) dynamo.Pointer {
	c := s.Cart()
	return dynamo.Pointer{X: x, Y: (c.Top + c.Bottom) / 2, Active: true}
}

func TestSessionPushScenario(t *testing.T) {
	s := newTestSession(scenarioConfig())

	f := s.Tick(pointerAt(s, 95), 1)

	if !f.Stepped {
		t.Fatal("expected the step to run")
	}
	if f.Force != 12.5 {
		t.Errorf("force = %f, want 12.5", f.Force)
	}
	if f.Kinematics.Acceleration != 2.5 {
		t.Errorf("acceleration = %f, want 2.5", f.Kinematics.Acceleration)
	}
	if f.Kinematics.Velocity != 2.5 {
		t.Errorf("velocity = %f, want 2.5", f.Kinematics.Velocity)
	}
	if f.Kinematics.Position != 102.5 {
		t.Errorf("position = %f, want 102.5", f.Kinematics.Position)
	}
	if f.Effective != 12.5 {
		t.Errorf("effective force = %f, want 12.5", f.Effective)
	}
	if s.Cart().X != 102.5 {
		t.Errorf("cart geometry not moved: %f", s.Cart().X)
	}

	last := s.Log().Last()
	if last.Position != 102.5 || last.Value != 12.5 {
		t.Errorf("unexpected last sample %+v", last)
	}
	if s.Log().Len() != 2 {
		t.Errorf("expected 2 samples, got %d", s.Log().Len())
	}
}

func TestSessionSkipsInvalidDt(t *testing.T) {
	for _, dt := range []float64{-0.016, math.NaN(), math.Inf(1), math.Inf(-1)} {
		s := newTestSession(scenarioConfig())
		before := s.Kinematics()

		f := s.Tick(pointerAt(s, 95), dt)

		if f.Stepped {
			t.Errorf("dt=%v: expected the step to be skipped", dt)
		}
		if s.Kinematics() != before {
			t.Errorf("dt=%v: state changed to %+v", dt, s.Kinematics())
		}
		if s.Log().Len() != 1 {
			t.Errorf("dt=%v: log grew to %d", dt, s.Log().Len())
		}
		if s.Elapsed() != 0 {
			t.Errorf("dt=%v: elapsed advanced to %f", dt, s.Elapsed())
		}
	}
}

func TestSessionClampsLargeDt(t *testing.T) {
	cfg := scenarioConfig()
	cfg.MaxFrameDt = 0.1
	s := newTestSession(cfg)

	f := s.Tick(pointerAt(s, 95), 30)

	if f.Dt != 0.1 {
		t.Errorf("expected clamped dt 0.1, got %f", f.Dt)
	}
	if math.Abs(f.Kinematics.Velocity-0.25) > 1e-12 {
		t.Errorf("velocity = %f, want 0.25", f.Kinematics.Velocity)
	}
}

func TestSessionZeroDt(t *testing.T) {
	s := newTestSession(scenarioConfig())
	f := s.Tick(pointerAt(s, 95), 0)

	if !f.Stepped {
		t.Error("zero dt is a valid step")
	}
	if f.Kinematics.Position != 100 || f.Kinematics.Velocity != 0 {
		t.Errorf("zero dt moved the cart: %+v", f.Kinematics)
	}
	if f.Kinematics.Acceleration != 2.5 {
		t.Errorf("acceleration = %f, want 2.5", f.Kinematics.Acceleration)
	}
	if s.Log().Len() != 1 {
		t.Errorf("duplicate position should not be logged, len=%d", s.Log().Len())
	}
}

func TestSessionCoastingCompressesTrace(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InitialVelocity = 0.5
	s := newTestSession(cfg)

	for i := 0; i < 120; i++ {
		s.Tick(dynamo.Pointer{}, 1.0/60)
	}

	if s.Log().Len() != 2 {
		t.Errorf("expected a coasting trace of 2 samples, got %d", s.Log().Len())
	}
	want := 400 + 0.5*2*cfg.DistanceScale()
	if math.Abs(s.Kinematics().Position-want) > 1e-6 {
		t.Errorf("position = %f, want %f", s.Kinematics().Position, want)
	}
	if s.Log().Last().Position != s.Kinematics().Position {
		t.Error("run end should track the latest position")
	}
}

func TestSessionDropsOffTrackSamples(t *testing.T) {
	cfg := scenarioConfig()
	cfg.InitialVelocity = 100
	s := newTestSession(cfg)

	s.Tick(dynamo.Pointer{}, 1)
	n := s.Log().Len()
	s.Tick(dynamo.Pointer{}, 1)

	if s.Kinematics().Position <= cfg.TrackWidth {
		t.Fatalf("expected the cart off the track, at %f", s.Kinematics().Position)
	}
	if s.Log().Len() != n {
		t.Errorf("off-track sample was logged")
	}
}

func TestSessionReset(t *testing.T) {
	s := newTestSession(scenarioConfig())
	s.Tick(pointerAt(s, 95), 1)
	s.Tick(pointerAt(s, 95), 1)

	s.Reset()

	k := s.Kinematics()
	if k.Position != 100 || k.Velocity != 0 {
		t.Errorf("unexpected state after reset: %+v", k)
	}
	if s.Log().Len() != 1 || s.Log().First().Position != 100 {
		t.Errorf("log not reseeded: %+v", s.Log().Samples())
	}
	if s.Elapsed() != 0 {
		t.Errorf("elapsed = %f after reset", s.Elapsed())
	}
	if s.Cart().X != 100 {
		t.Errorf("cart at %f after reset", s.Cart().X)
	}
}
