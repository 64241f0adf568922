// Package automation runs batches of headless sessions: YAML scenarios and
// side-by-side integrator comparisons.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/pushcart/internal/config"
	"github.com/san-kum/pushcart/internal/control"
	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/experiment"
	"github.com/san-kum/pushcart/internal/logging"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run. It starts from a preset (or the defaults) and overrides
// whatever fields are set.
type Step struct {
	Name            string              `yaml:"name"`
	Preset          string              `yaml:"preset"`
	Integrator      string              `yaml:"integrator"`
	Source          string              `yaml:"source"`
	Duration        float64             `yaml:"duration"`
	Dt              float64             `yaml:"dt"`
	Mass            float64             `yaml:"mass"`
	InitialPosition *float64            `yaml:"initial_position"`
	InitialVelocity *float64            `yaml:"initial_velocity"`
	Script          []control.Keyframe  `yaml:"script"`
	Seek            *control.SeekParams `yaml:"seek"`
}

// Outcome pairs a finished run with the config it ran under.
type Outcome struct {
	Name   string
	Config *config.Config
	Result *dynamo.Result
}

func (o Outcome) Final() dynamo.Kinematics {
	return o.Result.States[len(o.Result.States)-1]
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config resolves the step against its preset.
func (s Step) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("preset %q: %w", s.Preset, dynamo.ErrUnknown)
		}
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Duration != 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Mass != 0 {
		cfg.Mass = s.Mass
	}
	if s.InitialPosition != nil {
		p := *s.InitialPosition
		cfg.InitialPosition = &p
	}
	if s.InitialVelocity != nil {
		cfg.InitialVelocity = *s.InitialVelocity
	}
	if s.Script != nil {
		cfg.Script = s.Script
	}
	if s.Seek != nil {
		sp := *s.Seek
		cfg.Seek = &sp
	}
	return cfg, nil
}

func (s Step) label(i int) string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Preset != "":
		return s.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the outcomes completed so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *zap.Logger) ([]Outcome, error) {
	logger = logging.Or(logger)
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.label(i)
		logger.Info("scenario step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("name", name))

		cfg, err := step.Config()
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		out, err := run(ctx, name, cfg, step.Source, registry, logger)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// Compare runs one config under each named integrator.
func Compare(ctx context.Context, cfg *config.Config, integrators []string, registry *experiment.Registry, logger *zap.Logger) ([]Outcome, error) {
	logger = logging.Or(logger)
	outcomes := make([]Outcome, 0, len(integrators))

	for _, name := range integrators {
		c := cfg.Clone()
		c.Integrator = name
		out, err := run(ctx, name, c, "", registry, logger)
		if err != nil {
			return outcomes, fmt.Errorf("%s: %w", name, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func run(ctx context.Context, name string, cfg *config.Config, source string, registry *experiment.Registry, logger *zap.Logger) (Outcome, error) {
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(registry, source); err != nil {
		return Outcome{}, fmt.Errorf("setup: %w", err)
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("run: %w", err)
	}
	return Outcome{Name: name, Config: cfg, Result: result}, nil
}
