// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	Session  SessionConfig  `yaml:"session"`
	Cues     CuesConfig     `yaml:"cues"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlaybackConfig represents playback policy configuration. The half-time
// lead and skip policy are deliberately configurable.
type PlaybackConfig struct {
	CountdownSeconds    int   `yaml:"countdown_seconds" default:"3" validate:"gte=1,lte=60"`
	HalfTimeLeadSeconds int   `yaml:"half_time_lead_seconds" default:"1" validate:"gte=0,lte=5"`
	SkipCrossesRest     *bool `yaml:"skip_crosses_rest" default:"true"`
	TickIntervalMs      int   `yaml:"tick_interval_ms" default:"1000" validate:"gte=100,lte=5000"`
}

// SessionConfig represents session-related configuration.
type SessionConfig struct {
	ProgramPath string `yaml:"program_path"`
}

// CuesConfig represents cue presentation configuration.
type CuesConfig struct {
	Sinks []SinkConfig `yaml:"sinks" validate:"dive"`
}

// SinkConfig represents a single cue sink configuration.
type SinkConfig struct {
	Type     string         `yaml:"type" validate:"required"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Output string `yaml:"output" default:"stderr"`
	Level  string `yaml:"level" default:"info"`
}

// Default returns a configuration with all defaults applied, for running
// without a config file.
func Default() (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	cfg.overrideFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads configuration from a YAML file. Environment variables take
// precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("PRACTICEBOX_PROGRAM"); v != "" {
		c.Session.ProgramPath = v
	}
	if v := os.Getenv("PRACTICEBOX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// SkipCrossesRest reports the skip policy, defaulting to true.
func (c *Config) SkipCrossesRest() bool {
	if c.Playback.SkipCrossesRest == nil {
		return true
	}
	return *c.Playback.SkipCrossesRest
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
