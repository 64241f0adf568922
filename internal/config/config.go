package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/pushcart/internal/control"
	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMass          = 5.0  // kg
	DefaultMaxForce      = 25.0 // N
	DefaultHitboxRatio   = 0.5
	DefaultTrackWidth    = 800.0
	DefaultSurfaceHeight = 600.0
	DefaultScale         = 35.0 // meters across the track
	DefaultCartWidth     = 0.125
	DefaultCartHeight    = 0.04
	DefaultDt            = 1.0 / 60
	DefaultDuration      = 10.0
	DefaultMaxFrameDt    = 0.1
	DefaultIntegrator    = "semi-implicit"

	// the table top sits at 66% of the surface height
	groundRatio = 0.5 + 0.2*0.8
)

type Config struct {
	Mass            float64             `yaml:"mass"`
	MaxForce        float64             `yaml:"max_force"`
	HitboxRatio     float64             `yaml:"hitbox_ratio"`
	TrackWidth      float64             `yaml:"track_width"`
	SurfaceHeight   float64             `yaml:"surface_height"`
	Scale           float64             `yaml:"scale"`
	CartWidth       float64             `yaml:"cart_width"`
	CartHeight      float64             `yaml:"cart_height"`
	InitialPosition *float64            `yaml:"initial_position,omitempty"`
	InitialVelocity float64             `yaml:"initial_velocity"`
	Integrator      string              `yaml:"integrator"`
	Dt              float64             `yaml:"dt"`
	Duration        float64             `yaml:"duration"`
	MaxFrameDt      float64             `yaml:"max_frame_dt"`
	Script          []control.Keyframe  `yaml:"script,omitempty"`
	Seek            *control.SeekParams `yaml:"seek,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass:          DefaultMass,
		MaxForce:      DefaultMaxForce,
		HitboxRatio:   DefaultHitboxRatio,
		TrackWidth:    DefaultTrackWidth,
		SurfaceHeight: DefaultSurfaceHeight,
		Scale:         DefaultScale,
		CartWidth:     DefaultCartWidth,
		CartHeight:    DefaultCartHeight,
		Integrator:    DefaultIntegrator,
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		MaxFrameDt:    DefaultMaxFrameDt,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver decodes the file on top of a copy of base. Keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the model does not guard against at
// step time.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"mass", c.Mass},
		{"max_force", c.MaxForce},
		{"track_width", c.TrackWidth},
		{"surface_height", c.SurfaceHeight},
		{"scale", c.Scale},
		{"cart_width", c.CartWidth},
		{"cart_height", c.CartHeight},
		{"dt", c.Dt},
		{"duration", c.Duration},
		{"max_frame_dt", c.MaxFrameDt},
	}
	for _, p := range positive {
		if !(p.val > 0) {
			return dynamo.OutOfBounds(p.name, p.val)
		}
	}
	if !(c.HitboxRatio > 0 && c.HitboxRatio <= 0.5) {
		return dynamo.OutOfBounds("hitbox_ratio", c.HitboxRatio)
	}
	if c.CartWidth >= 1 || c.CartHeight >= 1 {
		return dynamo.OutOfBounds("cart_size", c.CartWidth)
	}
	if p := c.StartPosition(); !(p >= 0 && p <= c.TrackWidth) {
		return dynamo.OutOfBounds("initial_position", p)
	}
	if v := c.InitialVelocity; math.IsNaN(v) || math.IsInf(v, 0) {
		return dynamo.OutOfBounds("initial_velocity", v)
	}
	if c.Seek != nil && !(c.Seek.Target >= 0 && c.Seek.Target <= c.TrackWidth) {
		return dynamo.OutOfBounds("seek.target", c.Seek.Target)
	}
	return nil
}

// StartPosition defaults to the middle of the track.
func (c *Config) StartPosition() float64 {
	if c.InitialPosition != nil {
		return *c.InitialPosition
	}
	return c.TrackWidth / 2
}

// DistanceScale converts meters to track units.
func (c *Config) DistanceScale() float64 {
	return c.TrackWidth / c.Scale
}

// Ground is the y coordinate of the table top.
func (c *Config) Ground() float64 {
	return c.SurfaceHeight * groundRatio
}

// Cart builds the cart geometry centered at x.
func (c *Config) Cart(x float64) physics.Cart {
	ground := c.Ground()
	return physics.Cart{
		X:           x,
		HalfWidth:   c.TrackWidth * c.CartWidth / 2,
		Top:         ground - c.SurfaceHeight*c.CartHeight,
		Bottom:      ground,
		HitboxRatio: c.HitboxRatio,
		MaxForce:    c.MaxForce,
	}
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:         c.Dt,
		Duration:   c.Duration,
		MaxFrameDt: c.MaxFrameDt,
	}
}

// Clone returns a deep copy so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	out := *c
	if c.InitialPosition != nil {
		p := *c.InitialPosition
		out.InitialPosition = &p
	}
	out.Script = append([]control.Keyframe(nil), c.Script...)
	if c.Seek != nil {
		sp := *c.Seek
		out.Seek = &sp
	}
	return &out
}
