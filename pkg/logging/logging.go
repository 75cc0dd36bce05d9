package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents a log level.
type Level = slog.Level

// Log levels. LevelSilent sits above every level slog emits, so nothing is written.
const (
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelSilent = slog.Level(1 << 10)
)

// Format represents the log output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Environment variables consulted by FromEnv.
const (
	EnvLevel  = "RESTMOCK_LOG_LEVEL"
	EnvFormat = "RESTMOCK_LOG_FORMAT"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level

	// Format is the output format (text or json).
	Format Format

	// Output is the writer to send logs to. Defaults to os.Stderr.
	Output io.Writer

	// AddSource adds source file and line to log entries.
	AddSource bool
}

// DefaultConfig returns sensible defaults for logging.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// FromEnv returns DefaultConfig overridden by RESTMOCK_LOG_LEVEL and
// RESTMOCK_LOG_FORMAT when they are set.
func FromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvLevel); v != "" {
		cfg.Level = ParseLevel(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = ParseFormat(v)
	}
	return cfg
}

// New creates a new slog.Logger with the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Level >= LevelSilent {
		return Nop()
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: LevelSilent}))
}

// Scoped returns a child logger tagged with a scope attribute.
// A nil logger yields a scoped Nop logger.
func Scoped(log *slog.Logger, scope string) *slog.Logger {
	if log == nil {
		log = Nop()
	}
	if scope == "" {
		return log
	}
	return log.With("scope", scope)
}

// ParseLevel parses a log level string, ignoring case.
// Valid values: "debug", "info", "warn"/"warning", "error", "silent".
// Returns LevelInfo if the string is not recognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "silent", "off", "none":
		return LevelSilent
	default:
		return LevelInfo
	}
}

// ParseFormat parses a log format string, ignoring case.
// Returns FormatText if the string is not recognized.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}
