// Package api exposes dependency trees and icon references over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udisondev/craftdex/internal/icon"
	"github.com/udisondev/craftdex/internal/model"
	"github.com/udisondev/craftdex/internal/recipe"
)

// EntitySource looks up NPCs and compendium entries; both return nil when absent.
type EntitySource interface {
	NPC(id string) *model.NPC
	CompendiumEntry(id string) *model.CompendiumEntry
}

// Config wires the handler's collaborators.
type Config struct {
	Builder  *recipe.Builder
	Items    recipe.ItemSource // icon identifiers for tree rows
	Entities EntitySource      // nil: NPC and compendium routes answer 404
	Profiles map[string]*icon.Profile
	IconSize int
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Server serves the HTTP API.
type Server struct {
	builder  *recipe.Builder
	items    recipe.ItemSource
	entities EntitySource
	profiles map[string]*icon.Profile
	iconSize int
	metrics  *Metrics
	registry *prometheus.Registry
	log      *slog.Logger
}

// NewServer creates a Server. A nil registry gets a fresh one.
func NewServer(cfg Config) *Server {
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]*icon.Profile{
			icon.ItemProfile.Name:  icon.ItemProfile,
			icon.LargeProfile.Name: icon.LargeProfile,
		}
	}
	return &Server{
		builder:  cfg.Builder,
		items:    cfg.Items,
		entities: cfg.Entities,
		profiles: cfg.Profiles,
		iconSize: cfg.IconSize,
		metrics:  NewMetrics(cfg.Registry),
		registry: cfg.Registry,
		log:      cfg.Logger,
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.countRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/recipes/{itemID}/dependencies", s.handleDependencies)
		r.Get("/recipes/{itemID}/tree", s.handleTree)
		r.Get("/icons/{profile}/{identifier}", s.handleIcon)
		r.Get("/npcs/{id}", s.handleNPC)
		r.Get("/compendium/{id}", s.handleCompendium)
	})
	return r
}

// countRequests records every response by matched route pattern.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("writing response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
