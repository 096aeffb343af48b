// Package server exposes the conversion pipeline over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/romanch203/DataConverterPro/config"
	"github.com/romanch203/DataConverterPro/pipeline"
	"github.com/romanch203/DataConverterPro/store"
)

// Server wires the pipeline, the conversion ledger, and the HTTP layer.
type Server struct {
	cfg   config.Server
	log   zerolog.Logger
	pipe  *pipeline.Pipeline
	store *store.Store
}

// New builds a server around an initialized pipeline and ledger.
func New(cfg config.Server, log zerolog.Logger, pipe *pipeline.Pipeline, st *store.Store) *Server {
	return &Server{
		cfg:   cfg,
		log:   log.With().Str("component", "server").Logger(),
		pipe:  pipe,
		store: st,
	}
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Post("/batch-convert", s.handleBatchConvert)
		r.Get("/download/{id}", s.handleDownload)
		r.Get("/status", s.handleStatus)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}
