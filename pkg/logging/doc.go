// Package logging provides structured logging configuration for restmock.
//
// This package wraps log/slog so that the loader, merger, security evaluator and
// dispatcher all log the same way. It supports configurable log levels and output
// formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("mock server running", "addr", "http://localhost:3000")
//
// # Scopes
//
// Components attach a scope attribute so lines can be traced back to their origin:
//
//	log := logging.Scoped(logger, "merger")
//	log.Warn("duplicate path, using first occurrence", "path", "/users")
//
// # Integration
//
// Components accept a *slog.Logger through a functional option. If no logger is
// provided they use logging.Nop().
package logging
