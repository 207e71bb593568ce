package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mesh.GridCellSize != 300 {
		t.Errorf("grid_cell_size = %v, want 300", cfg.Mesh.GridCellSize)
	}
	if cfg.Hiding.CoverRays != 16 || cfg.Hiding.CoverRequired != 8 {
		t.Errorf("cover rays = %d/%d, want 8/16", cfg.Hiding.CoverRequired, cfg.Hiding.CoverRays)
	}
	if !cfg.Editing.RequireCoplanarMerge {
		t.Error("require_coplanar_merge should default to true")
	}
	if cfg.Editing.Seed != 0 {
		t.Errorf("seed = %d, want 0", cfg.Editing.Seed)
	}
	if cfg.Telemetry.PerfWindow != 120 {
		t.Errorf("perf_window = %d, want 120", cfg.Telemetry.PerfWindow)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging.format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeTemp(t, "editing:\n  seed: 42\nsniper:\n  min_range: 800\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editing.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Editing.Seed)
	}
	if cfg.Sniper.MinRange != 800 {
		t.Errorf("min_range = %v, want 800", cfg.Sniper.MinRange)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Sniper.IdealRange != 1500 {
		t.Errorf("ideal_range = %v, want 1500", cfg.Sniper.IdealRange)
	}
}

func TestLoadPerfWindowDefault(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"zero", "telemetry:\n  perf_window: 0\n", 120},
		{"negative", "telemetry:\n  perf_window: -5\n", 120},
		{"set", "telemetry:\n  perf_window: 30\n", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeTemp(t, tt.body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Telemetry.PerfWindow != tt.want {
				t.Errorf("perf_window = %d, want %d", cfg.Telemetry.PerfWindow, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "mesh: [", "parsing config file"},
		{"zero cell size", "mesh:\n  grid_cell_size: 0\n", "grid_cell_size"},
		{"cover required too high", "hiding:\n  cover_required: 20\n", "cover_required"},
		{"negative decay", "danger:\n  decay_rate: -1\n", "decay_rate"},
		{"unknown log format", "logging:\n  format: xml\n", "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTemp(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Encounter.SeeRange = 1234

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if got.Encounter.SeeRange != 1234 {
		t.Errorf("see_range = %v, want 1234", got.Encounter.SeeRange)
	}
}

func TestCfgBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	defer func() {
		if recover() == nil {
			t.Error("Cfg did not panic before Init")
		}
	}()
	Cfg()
}

func TestInit(t *testing.T) {
	saved := global
	defer func() { global = saved }()

	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Cfg().Danger.DecayRate <= 0 {
		t.Error("danger decay rate not loaded")
	}
}
