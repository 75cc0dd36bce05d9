package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getmockd/restmock/pkg/logging"
)

// Default values.
const (
	DefaultPort         = 3000
	DefaultSpecPath     = "./openapi.yaml"
	DefaultReadTimeout  = 30
	DefaultWriteTimeout = 30
	DefaultCORSOrigin   = "*"
	DefaultArrayLength  = 10
	DefaultMetricsPath  = "/metrics"
)

// Sources of a configuration value.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// ErrInvalidPort is returned for ports outside 1..65535.
//
//nolint:staticcheck // ST1005: printed verbatim after "Error: "
var ErrInvalidPort = errors.New("Port must be a valid number between 1 and 65535")

// Config is the resolved server configuration.
type Config struct {
	Port     int    `yaml:"port"`
	SpecPath string `yaml:"path"`

	// Timeouts in seconds.
	ReadTimeout  int `yaml:"readTimeout"`
	WriteTimeout int `yaml:"writeTimeout"`

	CORSOrigin string `yaml:"corsOrigin"`

	// ArrayLength is the element count for arrays without minItems.
	ArrayLength int `yaml:"arrayLength"`

	// Seed makes synthesized responses reproducible when set.
	Seed *uint64 `yaml:"seed"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`

	// Sources maps each key to the layer that set it.
	Sources map[string]string `yaml:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	cfg := &Config{
		Port:         DefaultPort,
		SpecPath:     DefaultSpecPath,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		CORSOrigin:   DefaultCORSOrigin,
		ArrayLength:  DefaultArrayLength,
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Metrics: MetricsConfig{
			Path: DefaultMetricsPath,
		},
		Sources: make(map[string]string),
	}
	for _, key := range keys {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}

// keys are the Sources keys, matching the YAML paths.
var keys = []string{
	"port", "path", "readTimeout", "writeTimeout", "corsOrigin", "arrayLength",
	"seed", "log.level", "log.format", "metrics.enabled", "metrics.path",
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.SpecPath == "" {
		return errors.New("spec path must not be empty")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("readTimeout must be positive, got %d", c.ReadTimeout)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("writeTimeout must be positive, got %d", c.WriteTimeout)
	}
	if c.ArrayLength < 0 {
		return fmt.Errorf("arrayLength must not be negative, got %d", c.ArrayLength)
	}
	if f := logging.Format(strings.ToLower(c.Log.Format)); f != logging.FormatText && f != logging.FormatJSON {
		return fmt.Errorf("log format must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.Log.Format)
	}
	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		return fmt.Errorf("metrics path must start with '/', got %q", c.Metrics.Path)
	}
	return nil
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration.
func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns WriteTimeout as a time.Duration.
func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// Logging returns the logging configuration described by c.
func (c *Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.Log.Level)
	lc.Format = logging.ParseFormat(c.Log.Format)
	return lc
}

// MarkSource records that key was set by source.
func (c *Config) MarkSource(key, source string) {
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[key] = source
}
