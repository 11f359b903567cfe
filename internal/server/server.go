// Package server exposes the aggregation service over HTTP. The transport is
// thin glue: all behavior lives in the trends service.
package server

import (
	"context"
	"net/http"
	"time"

	"trendlens/internal/config"
	"trendlens/internal/keys"
	"trendlens/internal/trends"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the HTTP front of the aggregation service.
type Server struct {
	http *http.Server
}

// New builds the router and wires the handlers.
func New(cfg config.ServerConfig, svc *trends.Service, keyStore *keys.Store) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(120 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &handler{svc: svc, keys: keyStore}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	router.Route("/api", func(r chi.Router) {
		r.Post("/trends", h.postTrends)
		r.Post("/summary", h.postSummary)
		r.Route("/keys", func(r chi.Router) {
			r.Get("/", h.getKeys)
			r.Post("/", h.postKeys)
		})
	})

	return &Server{
		http: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 150 * time.Second,
		},
	}
}

// Start blocks serving requests until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
