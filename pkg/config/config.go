// pkg/config/config.go

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Feralthedogg/novum-contract/pkg/logging"
	"github.com/Feralthedogg/novum-contract/pkg/state"
)

// Config is the file-level configuration of contract checking and its
// side effects.
type Config struct {
	Contracts ContractsConfig `yaml:"contracts"`
	Logging   logging.Config  `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

// ContractsConfig controls the checking mode.
type ContractsConfig struct {
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled"`
}

// MetricsConfig controls the violation counters.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// TracingConfig controls violation spans.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`

	// Endpoint is the OTLP HTTP collector as host:port.
	Endpoint string `yaml:"endpoint"`
	Insecure bool   `yaml:"insecure"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Contracts.Enabled == nil {
		enabled := true
		cfg.Contracts.Enabled = &enabled
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "novum"
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = "contract"
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "novum-contract"
	}
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = "localhost:4318"
	}
}

// Validate reports every invalid field.
func Validate(cfg *Config) error {
	var errs []error
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: must be console or json, got %q", cfg.Logging.Format))
	}
	if strings.ContainsAny(cfg.Metrics.Namespace, " -.") {
		errs = append(errs, fmt.Errorf("metrics.namespace: invalid metric name component %q", cfg.Metrics.Namespace))
	}
	if strings.ContainsAny(cfg.Metrics.Subsystem, " -.") {
		errs = append(errs, fmt.Errorf("metrics.subsystem: invalid metric name component %q", cfg.Metrics.Subsystem))
	}
	return errors.Join(errs...)
}

// ChecksEnabled reports the configured checking mode.
func (c *Config) ChecksEnabled() bool {
	return c.Contracts.Enabled == nil || *c.Contracts.Enabled
}

// Apply sets sw to the configured checking mode.
func (c *Config) Apply(sw *state.Switch) {
	sw.Set(c.ChecksEnabled())
}

// Parse decodes, defaults and validates YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
