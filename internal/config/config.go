package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

// Config holds the simulator settings shared by the CLI and the API server.
type Config struct {
	Quantum      int64        `yaml:"quantum"`       // Round Robin time slice
	MaxProcesses int          `yaml:"max_processes"` // dataset capacity
	MaxTime      int64        `yaml:"max_time"`      // latest completion a run may reach, 0 for no limit
	IdleJump     bool         `yaml:"idle_jump"`     // jump idle gaps instead of unit steps
	Policies     []string     `yaml:"policies"`      // policies run by default
	Log          LogConfig    `yaml:"log"`
	Server       ServerConfig `yaml:"server"`
	Store        StoreConfig  `yaml:"store"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig points at the SQLite results database. An empty path disables persistence.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns sensible defaults.
func Default() Config {
	policies := make([]string, 0, len(scheduler.Policies()))
	for _, p := range scheduler.Policies() {
		policies = append(policies, string(p))
	}
	return Config{
		Quantum:      2,
		MaxProcesses: 20,
		MaxTime:      1_000_000,
		IdleJump:     true,
		Policies:     policies,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:            ":9095",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Quantum <= 0 {
		errs = append(errs, fmt.Errorf("%w: quantum must be positive, got %d", process.ErrInvalidParameter, c.Quantum))
	}
	if c.MaxProcesses <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_processes must be positive, got %d", process.ErrInvalidParameter, c.MaxProcesses))
	}
	if c.MaxTime < 0 {
		errs = append(errs, fmt.Errorf("%w: max_time must not be negative, got %d", process.ErrInvalidParameter, c.MaxTime))
	}
	if _, err := c.SchedulingPolicies(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SchedulingPolicies resolves the configured policy names.
func (c Config) SchedulingPolicies() ([]scheduler.Policy, error) {
	if len(c.Policies) == 0 {
		return nil, fmt.Errorf("%w: no policies configured", process.ErrInvalidParameter)
	}
	return scheduler.ParsePolicies(c.Policies)
}

// SchedulerOptions translates the engine settings into run options.
func (c Config) SchedulerOptions() []scheduler.Option {
	return []scheduler.Option{
		scheduler.WithQuantum(c.Quantum),
		scheduler.WithIdleJump(c.IdleJump),
		scheduler.WithMaxTime(c.MaxTime),
	}
}
