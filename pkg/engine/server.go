package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	mathrand "math/rand/v2"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gorilla/mux"

	"github.com/getmockd/restmock/pkg/auth"
	"github.com/getmockd/restmock/pkg/config"
	"github.com/getmockd/restmock/pkg/logging"
	"github.com/getmockd/restmock/pkg/metrics"
	"github.com/getmockd/restmock/pkg/mockgen"
)

// shutdownTimeout bounds graceful shutdown once the serve context is done.
const shutdownTimeout = 10 * time.Second

// Server is the mock HTTP server for one OpenAPI document.
type Server struct {
	doc *openapi3.T
	cfg *config.Config
	log *slog.Logger
	now func() time.Time

	auth     *auth.Evaluator
	registry *metrics.Registry
	metrics  *metrics.HTTPMetrics

	routes  []Route
	handler http.Handler

	// seed is the master source for seeded runs; nil means unseeded.
	seedMu sync.Mutex
	seed   *mathrand.Rand
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock sets the time source used for date and date-time values.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRegistry exposes metrics on reg instead of a registry owned by the
// server. Metrics must also be enabled in the config.
func WithRegistry(reg *metrics.Registry) ServerOption {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewServer builds the routes for doc. A nil cfg uses config.Default.
func NewServer(doc *openapi3.T, cfg *config.Config, opts ...ServerOption) (*Server, error) {
	if doc == nil {
		return nil, errors.New("engine: nil OpenAPI document")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		doc: doc,
		cfg: cfg,
		log: logging.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.auth = auth.NewEvaluator(auth.WithLogger(s.log))
	if cfg.Seed != nil {
		s.seed = mathrand.New(mathrand.NewPCG(*cfg.Seed, *cfg.Seed))
	}
	if cfg.Metrics.Enabled {
		if s.registry == nil {
			s.registry = metrics.NewRegistry()
			metrics.RegisterRuntime(s.registry)
		}
		s.metrics = metrics.NewHTTPMetrics(s.registry)
	}

	router := mux.NewRouter()
	notFound := s.instrument("unmatched", http.HandlerFunc(notFoundHandler))
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notFound

	if s.registry != nil {
		router.Handle(cfg.Metrics.Path, s.registry.Handler()).Methods(http.MethodGet)
	}
	if err := s.registerDocs(router); err != nil {
		return nil, err
	}
	s.registerRoutes(router)

	if s.metrics != nil {
		_ = s.metrics.Routes.Set(float64(len(s.routes)))
	}

	var h http.Handler = router
	h = recoverer(h, s.log)
	h = requestLogger(h, s.log)
	h = corsMiddleware(h, cfg.CORSOrigin)
	s.handler = h

	return s, nil
}

// Handler returns the server's root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Routes returns the registered operations in registration order.
func (s *Server) Routes() []Route {
	return append([]Route(nil), s.routes...)
}

// Registry returns the metrics registry, or nil when metrics are disabled.
func (s *Server) Registry() *metrics.Registry {
	return s.registry
}

// ListenAndServe listens on the configured port and serves until ctx is
// done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
// ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeoutDuration(),
		ReadHeaderTimeout: s.cfg.ReadTimeoutDuration(),
		WriteTimeout:      s.cfg.WriteTimeoutDuration(),
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("mock server listening", "addr", ln.Addr().String(), "routes", len(s.routes))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down mock server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	return nil
}

// generator returns a Generator for one request. Seeded servers derive a
// child source from the master so each request owns its randomness.
func (s *Server) generator() *mockgen.Generator {
	opts := []mockgen.Option{
		mockgen.WithClock(s.now),
		mockgen.WithArrayLength(s.cfg.ArrayLength),
	}
	if s.seed != nil {
		s.seedMu.Lock()
		child := mathrand.New(mathrand.NewPCG(s.seed.Uint64(), s.seed.Uint64()))
		s.seedMu.Unlock()
		opts = append(opts, mockgen.WithRand(child))
	}
	return mockgen.New(opts...)
}
