package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnvVars replaces ${VAR} and ${VAR:-default} with values from the
// environment. Unset variables without a default expand to "".
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		if val := os.Getenv(sub[1]); val != "" {
			return val
		}
		return sub[2]
	})
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current value. Unknown keys are an error.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	expanded := []byte(ExpandEnvVars(string(data)))

	dec := yaml.NewDecoder(bytes.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(expanded, &doc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	markFileSources(cfg, &doc, "")
	return nil
}

// markFileSources records every scalar key present in the document.
func markFileSources(cfg *Config, node *yaml.Node, prefix string) {
	switch node.Kind {
	case yaml.DocumentNode:
		for _, n := range node.Content {
			markFileSources(cfg, n, prefix)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			if node.Content[i+1].Kind == yaml.MappingNode {
				markFileSources(cfg, node.Content[i+1], key)
				continue
			}
			cfg.MarkSource(key, SourceFile)
		}
	}
}

// Load resolves defaults, the optional config file and the environment, in
// that order. Flags are applied afterwards by the caller.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
