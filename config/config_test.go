package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rwcarlsen/pso"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
dim: 10
size: 80
inertia: 0.72
seed: 42
trials: 4
workers: 2
log_format: json
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Dim = 10
	want.Size = 80
	want.Inertia = 0.72
	want.Seed = 42
	want.Trials = 4
	want.Workers = 2
	want.LogFormat = "json"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("parsed config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"bounds":    "lower: 3\nupper: 3\n",
		"dim":       "dim: 0\n",
		"size":      "size: -2\n",
		"seed":      "seed: -1\n",
		"ticks":     "ticks: -1\n",
		"trials":    "trials: 0\n",
		"workers":   "workers: 0\n",
		"tolerance": "tolerance: -1\n",
		"log level": "log_level: loud\n",
		"format":    "log_format: xml\n",
	}
	for name, data := range tests {
		if _, err := Parse([]byte(data)); !errors.Is(err, pso.ErrInvalidConfiguration) {
			t.Errorf("[FAIL:%v] expected ErrInvalidConfiguration, got %v", name, err)
		}
	}

	if _, err := Parse([]byte("dim: [1")); err == nil {
		t.Errorf("expected yaml syntax error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("size: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Size != 12 || cfg.Dim != 2 {
		t.Errorf("unexpected config %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
