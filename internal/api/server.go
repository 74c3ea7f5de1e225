// Package api serves the converter over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"go_mdconv/internal/app"
	"go_mdconv/internal/config"
	"go_mdconv/internal/logging"
)

// Server is the HTTP front of one shared converter.
type Server struct {
	router chi.Router
	app    *app.App
	log    *slog.Logger
	cfg    config.Config
}

// NewServer builds the converter described by cfg and wires the routes.
func NewServer(cfg config.Config, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = logging.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	conv, err := cfg.NewConverter()
	if err != nil {
		return nil, err
	}
	s := &Server{
		app: app.New(conv, log),
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/convert", s.handleConvert)
	r.Post("/sections", s.handleSections)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
