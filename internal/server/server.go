// Package server provides the HTTP extraction API for doctext.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/doctext/internal/config"
	"github.com/hyperjump/doctext/internal/extract"
	"go.uber.org/zap"
)

// Server is the HTTP server for the extraction API.
type Server struct {
	extractor *extract.Extractor
	probe     func(extract.Format) error
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies. A nil extractor uses the defaults.
func NewServer(extractor *extract.Extractor, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	if extractor == nil {
		extractor = extract.NewExtractor()
	}
	return &Server{
		extractor: extractor,
		probe:     extract.Probe,
		config:    cfg,
		logger:    logger,
	}
}

// Router returns the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/api/v1/extract", s.handleExtract)
	r.Get("/api/v1/formats", s.handleFormats)
	r.Get("/health", s.handleHealth)
	return r
}

// requestLogger logs one line per request through zap, so request logs follow the
// logger's output (stderr) instead of chi's default stdout logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// Start starts the HTTP server and blocks until it stops.
// It returns http.ErrServerClosed after Stop.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
