package automation

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/experiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `
name: warmup
description: push then coast
steps:
  - preset: push
    duration: 2
  - name: heavy
    preset: push
    mass: 20
    duration: 2
  - name: drift
    initial_velocity: -1
    duration: 1
    source: idle
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)
	assert.Equal(t, "warmup", sc.Name)
	require.Len(t, sc.Steps, 3)
	assert.Equal(t, 20.0, sc.Steps[1].Mass)

	_, err = ParseScenario([]byte("name: empty\n"))
	assert.Error(t, err)
}

func TestStepConfigOverridesPreset(t *testing.T) {
	v := -1.0
	cfg, err := Step{Preset: "push", Mass: 20, InitialVelocity: &v}.Config()
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Mass)
	assert.Equal(t, -1.0, cfg.InitialVelocity)
	assert.Len(t, cfg.Script, 1)

	_, err = Step{Preset: "nope"}.Config()
	assert.True(t, errors.Is(err, dynamo.ErrUnknown))
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)

	outcomes, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, "push", outcomes[0].Name)
	light, heavy := outcomes[0].Final(), outcomes[1].Final()
	assert.Greater(t, light.Velocity, heavy.Velocity, "same push, four times the mass")
	assert.InDelta(t, -1, outcomes[2].Final().Velocity, 1e-12)
}

func TestRunScenarioStopsOnError(t *testing.T) {
	sc := &Scenario{Name: "bad", Steps: []Step{
		{Preset: "tap", Duration: 0.5},
		{Integrator: "rk9"},
	}}
	outcomes, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), nil)
	assert.True(t, errors.Is(err, dynamo.ErrUnknown))
	assert.Len(t, outcomes, 1)
}

func TestCompareIntegrators(t *testing.T) {
	step := Step{Preset: "push", Duration: 1}
	cfg, err := step.Config()
	require.NoError(t, err)

	outcomes, err := Compare(context.Background(), cfg, []string{"semi-implicit", "euler"}, experiment.NewRegistry(), nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	semi, euler := outcomes[0].Final(), outcomes[1].Final()
	assert.InDelta(t, semi.Velocity, euler.Velocity, 1e-9, "velocity update is identical")
	assert.Greater(t, semi.Position, euler.Position, "semi-implicit uses the updated velocity")
	assert.False(t, math.IsNaN(semi.Position))
	assert.Equal(t, "semi-implicit", cfg.Integrator, "input config is not mutated")
}
