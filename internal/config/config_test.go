package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "Decay" {
		t.Errorf("expected model Decay, got %s", cfg.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty model", func(c *Config) { c.Model = "" }},
		{"bad interface", func(c *Config) { c.Interface = "se" }},
		{"zero step size", func(c *Config) { c.StepSize = 0 }},
		{"stop before start", func(c *Config) { c.StartTime = 5; c.StopTime = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Model = "BouncingBall"
	cfg.Outputs = []string{"h", "v"}
	cfg.EventMode = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.Model != "BouncingBall" {
		t.Errorf("expected BouncingBall, got %s", got.Model)
	}
	if !got.EventMode {
		t.Error("event_mode not round-tripped")
	}
	if len(got.Outputs) != 2 {
		t.Errorf("expected 2 outputs, got %d", len(got.Outputs))
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("BouncingBall", "events")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if !cfg.EventMode {
		t.Error("expected event mode in the events preset")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset must validate: %v", err)
	}

	if GetPreset("BouncingBall", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "default") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("Decay")) == 0 {
		t.Error("expected presets for Decay")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for model, presets := range Presets {
		for name, cfg := range presets {
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s/%s invalid: %v", model, name, err)
			}
		}
	}
}
