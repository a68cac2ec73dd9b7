package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	def := DefaultConfig()
	if *cfg != *def {
		t.Errorf("Expected defaults %+v, got %+v", def, cfg)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ANTSIM_WIDTH", "7")
	t.Setenv("ANTSIM_DECAY_STEP", "0.25")
	t.Setenv("ANTSIM_GRPC_ADDR", ":7777")
	t.Setenv("ANTSIM_MAX_SENSE_RADIUS", "3")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Width != 7 {
		t.Errorf("Expected width 7, got %d", cfg.Width)
	}
	if cfg.DecayStep != 0.25 {
		t.Errorf("Expected decay step 0.25, got %v", cfg.DecayStep)
	}
	if cfg.GRPCAddr != ":7777" {
		t.Errorf("Expected grpc addr :7777, got %q", cfg.GRPCAddr)
	}
	if cfg.MaxSenseRadius != 3 {
		t.Errorf("Expected max sense radius 3, got %d", cfg.MaxSenseRadius)
	}
}

func TestLoadConfig_BadEnv(t *testing.T) {
	t.Setenv("ANTSIM_HEIGHT", "tall")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"width": 10, "height": 4, "tick_rate_ms": 50}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Width != 10 || cfg.Height != 4 {
		t.Errorf("Expected 10x4, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.TickRate() != 50*time.Millisecond {
		t.Errorf("Expected tick rate 50ms, got %v", cfg.TickRate())
	}
	// unspecified fields keep their defaults
	if cfg.DefaultDecay != 1.0 {
		t.Errorf("Expected default decay 1.0, got %v", cfg.DefaultDecay)
	}
	if cfg.MaxSenseRadius != 8 {
		t.Errorf("Expected max sense radius 8, got %d", cfg.MaxSenseRadius)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		contents string
		wantErr  error
	}{
		{"zero width", `{"width": 0}`, ErrInvalidConfig},
		{"negative decay", `{"default_decay": -1}`, ErrInvalidConfig},
		{"negative sense radius", `{"max_sense_radius": -1}`, ErrInvalidConfig},
		{"bad json", `{"width": `, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.contents), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := SaveDefaultConfig(path); err != nil {
		t.Fatalf("SaveDefaultConfig returned error: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Expected saved defaults to round trip, got %+v", cfg)
	}

	// Existing files are left alone
	if err := os.WriteFile(path, []byte(`{"width": 3}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := SaveDefaultConfig(path); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadConfig(path)
	if cfg.Width != 3 {
		t.Errorf("Expected existing file to be kept, got width %d", cfg.Width)
	}
}
