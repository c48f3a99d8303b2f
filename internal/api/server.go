package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/deltaddl/deltaddl/internal/config"
	"github.com/deltaddl/deltaddl/internal/typemap"
)

// Server is the REST API server exposing DDL generation over HTTP.
type Server struct {
	logger  *slog.Logger
	port    int
	server  *http.Server
	cfg     *config.Config
	typeMap *typemap.TypeMap
	devMode bool

	// ellieBaseURL overrides the Ellie.ai origin, for tests.
	ellieBaseURL string
}

// Option configures the API server.
type Option func(*Server)

// WithConfig supplies defaults (Ellie environment/token, generation options)
// for requests that omit them.
func WithConfig(cfg *config.Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithTypeMap sets a custom type mapping.
func WithTypeMap(tm *typemap.TypeMap) Option {
	return func(s *Server) {
		s.typeMap = tm
	}
}

// WithDevMode enables CORS for development.
func WithDevMode(dev bool) Option {
	return func(s *Server) {
		s.devMode = dev
	}
}

// New creates a new API server.
func New(logger *slog.Logger, port int, opts ...Option) *Server {
	s := &Server{
		logger: logger,
		port:   port,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	var handler http.Handler = requestLogger(s.logger, mux)
	if s.devMode {
		handler = s.corsMiddleware(handler)
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: handler,
	}

	s.logger.Info("starting API server", "port", s.port, "dev_mode", s.devMode)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/sample", s.handleSample)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/fetch", s.handleFetch)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
