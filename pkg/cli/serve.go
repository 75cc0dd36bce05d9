package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"

	"github.com/getmockd/restmock/pkg/config"
	"github.com/getmockd/restmock/pkg/engine"
	"github.com/getmockd/restmock/pkg/logging"
	"github.com/getmockd/restmock/pkg/spec"
)

// serveOptions are the values bound to the serve flags.
type serveOptions struct {
	configFile string
	port       string
	specPath   string
	logLevel   string
	logFormat  string
	corsOrigin string
	seed       uint64
	metrics    bool
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the mock server (default command)",
		Long: `Load the OpenAPI documents at --path (a file, or a directory searched
recursively for .yaml, .yml and .json files), merge them, and serve a mock
response for every declared operation until interrupted.`,
		Example: `  # Serve ./openapi.yaml on port 3000
  restmock serve

  # Serve every spec below ./specs on port 4000
  restmock serve --path ./specs -p 4000

  # Reproducible responses with metrics
  restmock serve --seed 42 --metrics

  # Use a config file
  restmock serve -c restmock.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	addServeFlags(cmd, opts)
	return cmd
}

func addServeFlags(cmd *cobra.Command, o *serveOptions) {
	f := cmd.Flags()
	f.StringVarP(&o.port, "port", "p", strconv.Itoa(config.DefaultPort), "HTTP server port")
	f.StringVar(&o.specPath, "path", config.DefaultSpecPath, "OpenAPI spec file or directory")
	f.StringVarP(&o.configFile, "config", "c", "", "Path to YAML configuration file")
	f.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error, silent)")
	f.StringVar(&o.logFormat, "log-format", string(logging.FormatText), "Log format (text, json)")
	f.Uint64Var(&o.seed, "seed", 0, "Seed for reproducible responses")
	f.StringVar(&o.corsOrigin, "cors-origin", config.DefaultCORSOrigin, "Access-Control-Allow-Origin value")
	f.BoolVar(&o.metrics, "metrics", false, "Expose Prometheus metrics")
}

// resolveConfig layers the flags set on cmd over the config file and the
// environment, then validates the result.
func resolveConfig(cmd *cobra.Command, o *serveOptions) (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("port") {
		port, err := strconv.Atoi(strings.TrimSpace(o.port))
		if err != nil {
			return nil, config.ErrInvalidPort
		}
		cfg.Port = port
		cfg.MarkSource("port", config.SourceFlag)
	}
	if changed("path") {
		cfg.SpecPath = o.specPath
		cfg.MarkSource("path", config.SourceFlag)
	}
	if changed("log-level") {
		cfg.Log.Level = o.logLevel
		cfg.MarkSource("log.level", config.SourceFlag)
	}
	if changed("log-format") {
		cfg.Log.Format = o.logFormat
		cfg.MarkSource("log.format", config.SourceFlag)
	}
	if changed("seed") {
		seed := o.seed
		cfg.Seed = &seed
		cfg.MarkSource("seed", config.SourceFlag)
	}
	if changed("cors-origin") {
		cfg.CORSOrigin = o.corsOrigin
		cfg.MarkSource("corsOrigin", config.SourceFlag)
	}
	if changed("metrics") {
		cfg.Metrics.Enabled = o.metrics
		cfg.MarkSource("metrics.enabled", config.SourceFlag)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, o *serveOptions) error {
	cfg, err := resolveConfig(cmd, o)
	if err != nil {
		return err
	}

	lc := cfg.Logging()
	lc.Output = cmd.ErrOrStderr()
	log := logging.New(lc)
	log.Debug("configuration resolved",
		"port", cfg.Port,
		"path", cfg.SpecPath,
		"sources", cfg.Sources,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := loadDocument(ctx, cfg.SpecPath, log)
	if err != nil {
		return err
	}

	srv, err := engine.NewServer(doc, cfg, engine.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info("serving OpenAPI document",
		"title", doc.Info.Title,
		"routes", len(srv.Routes()),
		"docs", engine.DocsPath,
	)
	return srv.ListenAndServe(ctx)
}

// loadDocument loads every spec at path and merges them into one document.
func loadDocument(ctx context.Context, path string, log *slog.Logger) (*openapi3.T, error) {
	docs, err := spec.LoadPath(ctx, path, spec.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return spec.Merge(docs, spec.WithLogger(log))
}
