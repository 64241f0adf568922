package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pushcart/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand(t *testing.T, p string, args ...string) *cobra.Command {
	t.Helper()
	preset = p
	t.Cleanup(func() { preset = "" })

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "")
	addHeadlessFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestLoadConfigLayersPresetAndFlags(t *testing.T) {
	cmd := testCommand(t, "push", "--mass", "10", "--time", "2")

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Mass)
	assert.Equal(t, 2.0, cfg.Duration)
	assert.Len(t, cfg.Script, 1, "keyframes come from the preset")
	assert.Equal(t, 200.0, cfg.StartPosition())
	assert.Equal(t, config.DefaultDt, cfg.Dt, "unset flags keep config values")
}

func TestLoadConfigLayersFileOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mass: 8\n"), 0644))
	configFile = path
	t.Cleanup(func() { configFile = "" })

	cmd := testCommand(t, "shuttle", "--time", "3")
	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Mass, "file overrides the preset")
	assert.Len(t, cfg.Script, 3, "keyframes survive from the preset")
	assert.Equal(t, 3.0, cfg.Duration, "flags override the file")
}

func TestLoadConfigRejectsUnknownPreset(t *testing.T) {
	cmd := testCommand(t, "nope")
	_, err := loadConfig(cmd)
	assert.ErrorContains(t, err, "unknown preset")
}

func TestLoadConfigValidates(t *testing.T) {
	cmd := testCommand(t, "", "--mass=-1")
	_, err := loadConfig(cmd)
	assert.Error(t, err)
}

func TestListPresets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listPresets(&buf))

	out := buf.String()
	for _, name := range config.ListPresets() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "semi-implicit")
}

func TestPrintMetricsSorted(t *testing.T) {
	var buf bytes.Buffer
	printMetrics(&buf, map[string]float64{"work": 2, "control_effort": 1})

	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("control_effort")), bytes.Index([]byte(out), []byte("work")))
}
