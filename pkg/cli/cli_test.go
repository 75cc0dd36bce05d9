package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/restmock/pkg/config"
	"github.com/getmockd/restmock/pkg/spec"
)

const petsSpec = `openapi: 3.0.3
info:
  title: Pets
  version: 2.1.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        '200':
          description: ok
    post:
      responses:
        '201':
          description: created
  /pets/{petId}:
    get:
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        '200':
          description: ok
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func parseServeFlags(t *testing.T, args ...string) (*cobra.Command, *serveOptions) {
	t.Helper()
	cmd := &cobra.Command{Use: "serve"}
	opts := &serveOptions{}
	addServeFlags(cmd, opts)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, opts
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "restmock "), out)

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.NotEmpty(t, v.Go)
	assert.NotEmpty(t, v.OS)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("prints operations", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "pets.yaml", petsSpec)

		out, err := run(t, "validate", "--path", path)
		require.NoError(t, err)

		assert.Contains(t, out, "Pets (2.1.0)")
		assert.Contains(t, out, "OpenAPI 3.0.3: 2 paths, 3 operations")
		assert.Contains(t, out, "List pets")
		assert.Regexp(t, `GET\s+/pets/\{petId\}`, out)
	})

	t.Run("merges a directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", petsSpec)
		writeFile(t, dir, "b.json", `{"openapi":"3.0.3","info":{"title":"Store","version":"1"},"paths":{"/orders":{"get":{"responses":{"200":{"description":"ok"}}}}}}`)

		out, err := run(t, "validate", "--path", dir)
		require.NoError(t, err)
		assert.Contains(t, out, spec.MergedTitle)
		assert.Contains(t, out, "3 paths, 4 operations")
		assert.Contains(t, out, "Tags: [Pets Store]")
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "nope.yaml")

		_, err := run(t, "validate", "--path", missing)
		require.Error(t, err)
		var perr *spec.ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "Path not found: "+missing, err.Error())
	})

	t.Run("unsupported file type", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "pets.txt", petsSpec)

		_, err := run(t, "validate", "--path", path)
		require.EqualError(t, err, "File must be an OpenAPI spec file (.yaml, .yml, or .json)")
	})
}

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cmd, opts := parseServeFlags(t)

		cfg, err := resolveConfig(cmd, opts)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultPort, cfg.Port)
		assert.Equal(t, config.DefaultSpecPath, cfg.SpecPath)
		assert.Nil(t, cfg.Seed)
		assert.Equal(t, config.SourceDefault, cfg.Sources["port"])
	})

	t.Run("flags", func(t *testing.T) {
		t.Parallel()
		cmd, opts := parseServeFlags(t,
			"-p", "4000", "--path", "./specs", "--seed", "7",
			"--cors-origin", "https://app.example.com", "--metrics",
			"--log-level", "debug", "--log-format", "json",
		)

		cfg, err := resolveConfig(cmd, opts)
		require.NoError(t, err)
		assert.Equal(t, 4000, cfg.Port)
		assert.Equal(t, "./specs", cfg.SpecPath)
		require.NotNil(t, cfg.Seed)
		assert.Equal(t, uint64(7), *cfg.Seed)
		assert.Equal(t, "https://app.example.com", cfg.CORSOrigin)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, config.SourceFlag, cfg.Sources["port"])
		assert.Equal(t, config.SourceFlag, cfg.Sources["seed"])
	})

	t.Run("flags override the config file", func(t *testing.T) {
		t.Parallel()
		file := writeFile(t, t.TempDir(), "restmock.yaml", "port: 5000\npath: ./from-file\n")
		cmd, opts := parseServeFlags(t, "--config", file, "--port", "6000")

		cfg, err := resolveConfig(cmd, opts)
		require.NoError(t, err)
		assert.Equal(t, 6000, cfg.Port)
		assert.Equal(t, "./from-file", cfg.SpecPath)
		assert.Equal(t, config.SourceFlag, cfg.Sources["port"])
		assert.Equal(t, config.SourceFile, cfg.Sources["path"])
	})

	for _, port := range []string{"abc", "0", "65536", "-1"} {
		t.Run("invalid port "+port, func(t *testing.T) {
			t.Parallel()
			cmd, opts := parseServeFlags(t, "--port="+port)

			_, err := resolveConfig(cmd, opts)
			require.ErrorIs(t, err, config.ErrInvalidPort)
			assert.Equal(t, "Port must be a valid number between 1 and 65535", err.Error())
		})
	}
}

func TestServe_FailsBeforeListening(t *testing.T) {
	t.Parallel()

	_, err := run(t, "serve", "--port", "99999")
	require.ErrorIs(t, err, config.ErrInvalidPort)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err = run(t, "--path", missing, "--log-level", "silent")
	var perr *spec.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, missing, perr.Path)
}

func TestRoot_RejectsArguments(t *testing.T) {
	t.Parallel()

	_, err := run(t, "bogus")
	require.Error(t, err)
}
