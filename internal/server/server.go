// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     server
// Description: HTTP and WebSocket server exposing the tokenizer
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/cmdline/foundation/cmdline"
	mdwerror "github.com/msto63/cmdline/foundation/core/error"
	"github.com/msto63/cmdline/internal/history/store"
	"github.com/msto63/cmdline/pkg/core/cache"
	"github.com/msto63/cmdline/pkg/core/health"
	"github.com/msto63/cmdline/pkg/core/logging"
	"github.com/msto63/cmdline/pkg/core/version"
)

// maxBodyBytes limits the size of a tokenize request body
const maxBodyBytes = 1 << 20

// Server is the tokenizer HTTP server
type Server struct {
	httpServer *http.Server
	recorder   *store.Recorder
	results    *cache.Cache[cmdline.Arguments]
	health     *health.Registry
	logger     *logging.Logger
	config     Config

	mu       sync.Mutex
	listener net.Listener
	conns    map[*websocket.Conn]struct{}
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PingInterval time.Duration
	Version      string

	// Tokenize results are cached per command line and options
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         8370,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PingInterval: 30 * time.Second,
		Version:      version.Server,
		CacheSize:    1000,
		CacheTTL:     5 * time.Minute,
	}
}

// New creates a new server. recorder may be nil to disable history.
func New(cfg Config, recorder *store.Recorder, logger *logging.Logger) *Server {
	defaults := DefaultConfig()
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaults.PingInterval
	}
	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaults.CacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}
	if logger == nil {
		logger = logging.New("server")
	}

	s := &Server{
		recorder: recorder,
		logger:   logger,
		config:   cfg,
		conns:    make(map[*websocket.Conn]struct{}),
	}

	s.results = cache.New[cmdline.Arguments](cache.Config{
		MaxItems:        cfg.CacheSize,
		TTL:             cfg.CacheTTL,
		CleanupInterval: time.Minute,
	})

	s.health = health.NewRegistry("cmdline", cfg.Version)
	s.health.Register(health.AlwaysHealthy("tokenizer", "ready"))
	s.health.RegisterFunc("cache", func(ctx context.Context) health.CheckResult {
		stats := s.results.Stats()
		return health.CheckResult{
			Status:  health.StatusHealthy,
			Message: fmt.Sprintf("%d entries, %.1f%% hits", stats.Size, stats.HitRate),
			Details: map[string]interface{}{
				"size":   stats.Size,
				"hits":   stats.Hits,
				"misses": stats.Misses,
			},
		}
	})
	if history := recorder.Store(); history != nil {
		s.health.RegisterFunc("history", func(ctx context.Context) health.CheckResult {
			n, err := history.Count(ctx)
			if err != nil {
				return health.CheckResult{
					Status:  health.StatusUnhealthy,
					Message: err.Error(),
				}
			}
			return health.CheckResult{
				Status:  health.StatusHealthy,
				Message: fmt.Sprintf("%d entries", n),
				Details: map[string]interface{}{"entries": n},
			}
		})
	}

	s.httpServer = &http.Server{
		Addr:         s.Address(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	s.httpServer.RegisterOnShutdown(s.closeWebSockets)

	return s
}

// Handler returns the routed HTTP handler with request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /v1/tokenize", s.handleTokenize)
	mux.HandleFunc("GET /v1/ws", s.handleWebSocket)
	return loggingMiddleware(s.logger, mux)
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start).String(),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for the WebSocket upgrade
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, mdwerror.New("response writer does not support hijacking").
			WithCode(mdwerror.CodeInternal).
			WithOperation("server.Hijack")
	}
	return h.Hijack()
}

// Start listens on the configured address and serves until Shutdown
func (s *Server) Start() error {
	if err := s.listen(); err != nil {
		return err
	}
	return s.serve()
}

// StartAsync binds the listener and serves in the background
func (s *Server) StartAsync() error {
	if err := s.listen(); err != nil {
		return err
	}

	go func() {
		if err := s.serve(); err != nil {
			s.logger.ErrorWithErr("HTTP server error", err)
		}
	}()

	return nil
}

func (s *Server) listen() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return mdwerror.Wrap(err, "failed to listen").
			WithCode(mdwerror.CodeServiceInitialization).
			WithOperation("server.Start").
			WithDetail("address", s.httpServer.Addr)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("Starting tokenizer server",
		"address", ln.Addr().String(),
		"version", s.config.Version,
	)
	return nil
}

func (s *Server) serve() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return mdwerror.Wrap(err, "server stopped").
			WithCode(mdwerror.CodeNetworkError).
			WithOperation("server.Serve")
	}
	return nil
}

// Shutdown gracefully stops the server and closes open WebSocket connections
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping tokenizer server")
	defer s.results.Close()
	return s.httpServer.Shutdown(ctx)
}

// Address returns the bound address once listening, else the configured one
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

func (s *Server) trackConn(conn *websocket.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrackConn(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// closeWebSockets sends a going-away close frame to every open connection
func (s *Server) closeWebSockets() {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	for _, c := range conns {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		c.WriteControl(websocket.CloseMessage, msg, deadline)
		c.Close()
	}
}
