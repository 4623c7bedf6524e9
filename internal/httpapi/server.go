// Package httpapi exposes the gateway over HTTP: the fetch-and-parse
// endpoint, the bookmark and history library, health and metrics.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gopher-gateway/internal/config"
	"gopher-gateway/internal/interfaces"
	"gopher-gateway/internal/library"
)

type Server struct {
	browser     interfaces.Browser
	library     *library.Library
	gatherer    prometheus.Gatherer
	logger      *zap.Logger
	defaultPort int
	origin      string
	listenAddr  string

	srv      *http.Server
	listener net.Listener
}

func NewServer(
	cfg *config.Config,
	browser interfaces.Browser,
	lib *library.Library,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *Server {
	return &Server{
		browser:     browser,
		library:     lib,
		gatherer:    gatherer,
		logger:      logger.With(zap.String("component", "http")),
		defaultPort: cfg.Gopher.DefaultPort,
		origin:      cfg.Server.AllowedOrigin,
		listenAddr:  cfg.Server.ListenAddr,
	}
}

// Handler returns the routed handler with CORS, logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("/api/gopher", s.handleGopher)

	mux.HandleFunc("GET /api/bookmarks", s.handleListBookmarks)
	mux.HandleFunc("POST /api/bookmarks", s.handleAddBookmark)
	mux.HandleFunc("DELETE /api/bookmarks/{id}", s.handleRemoveBookmark)

	mux.HandleFunc("GET /api/history", s.handleListHistory)
	mux.HandleFunc("POST /api/history", s.handleRecordVisit)
	mux.HandleFunc("DELETE /api/history", s.handleClearHistory)

	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return s.recoverer(s.logRequests(s.cors(mux)))
}

// Start begins listening; it returns once the socket is bound.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.listenAddr, err)
	}
	s.listener = ln

	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped unexpectedly", zap.Error(err))
		}
	}()

	s.logger.Info("gopher gateway listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("endpoint", "/api/gopher"))

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Addr is the bound address, available after Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
