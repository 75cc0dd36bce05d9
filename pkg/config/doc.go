// Package config resolves the mock server's runtime configuration.
//
// Values come from four layers, highest priority first:
//  1. Command-line flags (applied by the CLI with SetFlag)
//  2. Environment variables (RESTMOCK_*)
//  3. A YAML config file (--config)
//  4. Defaults
//
// Config.Sources records which layer supplied each key.
//
// A config file looks like:
//
//	port: 8080
//	path: ./specs
//	corsOrigin: https://app.example.com
//	seed: 42
//	log:
//	  level: debug
//	  format: json
//	metrics:
//	  enabled: true
//
// ${VAR} and ${VAR:-default} references in the file are expanded from the
// environment before parsing.
package config
