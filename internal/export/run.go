package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/histogram"
)

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Source     string             `json:"source"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

// WriteRun writes a finished headless run into its own directory under
// baseDir: metadata.json, states.csv, samples.csv and trace.svg. Nothing
// here is ever read back. It returns the run directory.
func WriteRun(baseDir string, meta RunMetadata, result *dynamo.Result, log *histogram.Log, maxForce float64) (string, error) {
	if result == nil || log == nil {
		return "", fmt.Errorf("nothing to export")
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		name := meta.Preset
		if name == "" {
			name = "run"
		}
		meta.ID = fmt.Sprintf("%s_%d", name, meta.Timestamp.Unix())
	}
	meta.ID = sanitizeID(meta.ID)
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

	runDir := filepath.Join(baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	if err := writeFile(filepath.Join(runDir, "metadata.json"), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, "states.csv"), func(f *os.File) error {
		return WriteStates(f, result)
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, "samples.csv"), func(f *os.File) error {
		return WriteSamples(f, log.Samples())
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, "trace.svg"), func(f *os.File) error {
		_, err := f.WriteString(TraceToSVG(log, maxForce, 800, 400))
		return err
	}); err != nil {
		return "", err
	}

	return runDir, nil
}

func writeFile(path string, fill func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// sanitizeID keeps run IDs usable as directory names.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}
