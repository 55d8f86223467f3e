package mcp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/occupation-insights/internal/config"
	"github.com/honeycarbs/occupation-insights/internal/mcp/tools"
	"github.com/honeycarbs/occupation-insights/internal/proxy"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

const (
	// StreamRoute is the MCP streamable HTTP endpoint
	StreamRoute = "/mcp/stream"
	// ResultsRoute serves the report handed off for a session
	ResultsRoute = "/api/results/{socCode}"
)

// Server hosts the dataset proxy, the results reader and the MCP tools
type Server struct {
	logger *logging.Logger
	config config.Config

	router  chi.Router
	srv     *http.Server
	started atomic.Bool
}

// NewServer constructs the HTTP server and registers every tool backed by res
func NewServer(log *logging.Logger, cfg config.Config, res *Resources) *Server {
	impl := &sdkmcp.Implementation{
		Name:    "occupation-insights",
		Version: "0.1.0",
	}

	mcpServer := sdkmcp.NewServer(impl, nil)
	tools.Register(mcpServer, log, toolOptions(res)...)

	streamHandler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log.Named("http")))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	proxy.NewHandler(res.Dataset, log).Register(r)
	r.Get(ResultsRoute, resultsHandler{store: res.Handoff, logger: log.Named("results")}.handle)
	r.Handle(StreamRoute, streamHandler)

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		logger: log,
		config: cfg,
		router: r,
		srv:    httpSrv,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr, "mcp", StreamRoute, "dataset", proxy.DatasetRoute)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
