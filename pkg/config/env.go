package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/getmockd/restmock/pkg/logging"
)

// Environment variable names.
const (
	EnvPort       = "RESTMOCK_PORT"
	EnvPath       = "RESTMOCK_PATH"
	EnvSeed       = "RESTMOCK_SEED"
	EnvCORSOrigin = "RESTMOCK_CORS_ORIGIN"
	EnvLogLevel   = logging.EnvLevel
	EnvLogFormat  = logging.EnvFormat
	EnvMetrics    = "RESTMOCK_METRICS"
)

// ApplyEnv overlays values present in the environment onto cfg.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, os.Getenv)
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, ErrInvalidPort)
		}
		cfg.Port = port
		cfg.MarkSource("port", SourceEnv)
	}

	if v := getenv(EnvPath); v != "" {
		cfg.SpecPath = v
		cfg.MarkSource("path", SourceEnv)
	}

	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid seed %q", EnvSeed, v)
		}
		cfg.Seed = &seed
		cfg.MarkSource("seed", SourceEnv)
	}

	if v := getenv(EnvCORSOrigin); v != "" {
		cfg.CORSOrigin = v
		cfg.MarkSource("corsOrigin", SourceEnv)
	}

	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
		cfg.MarkSource("log.level", SourceEnv)
	}

	if v := getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
		cfg.MarkSource("log.format", SourceEnv)
	}

	if v := getenv(EnvMetrics); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
		cfg.MarkSource("metrics.enabled", SourceEnv)
	}

	return nil
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
