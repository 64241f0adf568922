package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pushcart.log")

	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("session started", zap.Float64("mass", 5))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"session started"`) {
		t.Errorf("log line missing message: %s", data)
	}
	if !strings.Contains(string(data), `"mass":5`) {
		t.Errorf("log line missing field: %s", data)
	}
}

func TestDebugEnablesDebugLevel(t *testing.T) {
	logger, err := New(filepath.Join(t.TempDir(), "debug.log"), true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}
}

func TestOr(t *testing.T) {
	if Or(nil) == nil {
		t.Fatal("expected a no-op logger")
	}
	l := zap.NewExample()
	if Or(l) != l {
		t.Error("expected the given logger back")
	}
}
