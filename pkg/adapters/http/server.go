// Package http serves read-only debug overlay endpoints over published snapshots.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/statesync"
	"github.com/aretw0/statesync/pkg/domain"
	"github.com/aretw0/statesync/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Server exposes an OverlayStore over HTTP. It never touches a Machine:
// the frame loop publishes snapshots, handlers only read them.
type Server struct {
	Store   ports.OverlayStore
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts h (usually promhttp.Handler) at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the overlay store.
func NewHandler(store ports.OverlayStore, opts ...Option) http.Handler {
	server := &Server{Store: store}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/machines", server.ListMachines)
	r.Route("/machines/{machine}", func(r chi.Router) {
		r.Get("/", server.GetSnapshot)
		r.Get("/layers", server.GetLayers)
		r.Get("/layers/{index}", server.GetLayer)
		r.Get("/states/{name}", server.GetState)
	})
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// load fetches the snapshot named in the route and writes the error response itself.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (domain.Snapshot, bool) {
	machine := chi.URLParam(r, "machine")
	snap, err := s.Store.Load(r.Context(), machine)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			http.Error(w, "machine not found", http.StatusNotFound)
			return domain.Snapshot{}, false
		}
		http.Error(w, "failed to load snapshot", http.StatusInternalServerError)
		slog.Error("snapshot load failed", "machine", machine, "error", err)
		return domain.Snapshot{}, false
	}
	return snap, true
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "statesync-overlay",
		"version": statesync.Version,
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	machines, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list machines", http.StatusInternalServerError)
		slog.Error("ListMachines failed", "error", err)
		return
	}
	writeJSON(w, machines)
}

// GetSnapshot handles the GET /machines/{machine} request.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, snap)
}

// GetLayers handles the GET /machines/{machine}/layers request.
func (s *Server) GetLayers(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, snap.Layers)
}

// GetLayer handles the GET /machines/{machine}/layers/{index} request.
func (s *Server) GetLayer(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid layer index", http.StatusBadRequest)
		return
	}
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	layer, found := snap.Layer(index)
	if !found {
		http.Error(w, "layer not found", http.StatusNotFound)
		return
	}
	writeJSON(w, layer)
}

// GetState handles the GET /machines/{machine}/states/{name} request.
// Names match kinds ignoring case, like relay resolution.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	view, found := snap.State(chi.URLParam(r, "name"))
	if !found {
		http.Error(w, "state not found", http.StatusNotFound)
		return
	}
	writeJSON(w, view)
}
