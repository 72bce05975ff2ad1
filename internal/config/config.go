package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStepSize = 0.01
	DefaultStopTime = 10.0
)

// Config describes one simulation run: which model, which interface, the
// communication grid, and what to record.
type Config struct {
	Model string `yaml:"model"`
	// Interface is "cs" or "me".
	Interface string   `yaml:"interface"`
	StartTime float64  `yaml:"start_time"`
	StopTime  float64  `yaml:"stop_time"`
	StepSize  float64  `yaml:"step_size"`
	Outputs   []string `yaml:"outputs"`

	// EventMode and EarlyReturn are the Co-Simulation instantiation options.
	EventMode   bool `yaml:"event_mode"`
	EarlyReturn bool `yaml:"early_return"`

	ResourcePath string        `yaml:"resource_path"`
	Logging      LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Categories []string `yaml:"categories"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     "Decay",
		Interface: "cs",
		StopTime:  DefaultStopTime,
		StepSize:  DefaultStepSize,
		Outputs:   []string{"x"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate rejects configurations the master would fail on anyway, with
// friendlier messages.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must be set")
	}
	if c.Interface != "cs" && c.Interface != "me" {
		return fmt.Errorf("interface must be cs or me, got %q", c.Interface)
	}
	if c.StepSize <= 0 {
		return fmt.Errorf("step_size must be positive, got %f", c.StepSize)
	}
	if c.StopTime <= c.StartTime {
		return fmt.Errorf("stop_time %f must be after start_time %f", c.StopTime, c.StartTime)
	}
	return nil
}
