// Package http exposes navigation sessions over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/wayfinder/internal/logging"
	mermaid "github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/graph"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves one navigator at the root and, optionally, managed sessions
// under /sessions/{id}.
type Server struct {
	Navigator ports.Navigator
	Sessions  *session.Manager
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithSessions mounts the session routes.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.Sessions = m
	}
}

// WithMetrics exposes GET /metrics from g.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// PathResponse is the body of GET /path.
type PathResponse struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Path []string `json:"path"`
	Hops int      `json:"hops"`
}

// GotoRequest is the body of POST /goto.
type GotoRequest struct {
	To string `json:"to"`
}

// GotoResponse is the body returned by POST /goto.
type GotoResponse struct {
	Reached  bool     `json:"reached"`
	Position string   `json:"position"`
	Hops     []string `json:"hops"`
	Error    string   `json:"error,omitempty"`
}

// PositionResponse is the body of GET /position.
type PositionResponse struct {
	Position string `json:"position"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type resolver func(r *http.Request) (ports.Navigator, error)

// NewHandler creates a new HTTP handler. nav may be nil when only managed
// sessions are served.
func NewHandler(nav ports.Navigator, opts ...Option) http.Handler {
	s := &Server{Navigator: nav}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()

	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	if nav != nil {
		s.mount(r, func(*http.Request) (ports.Navigator, error) { return s.Navigator, nil })
	}

	if s.Sessions != nil {
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessions)
			r.Post("/", s.openSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", s.closeSession)
				s.mount(r, func(req *http.Request) (ports.Navigator, error) {
					return s.Sessions.Get(chi.URLParam(req, "id"))
				})
			})
		})
	}

	return enableCORS(r)
}

func (s *Server) mount(r chi.Router, resolve resolver) {
	r.Get("/graph", s.withNavigator(resolve, s.getGraph))
	r.Get("/path", s.withNavigator(resolve, s.getPath))
	r.Get("/records", s.withNavigator(resolve, s.getRecords))
	r.Get("/position", s.withNavigator(resolve, s.getPosition))
	r.Post("/goto", s.withNavigator(resolve, s.postGoto))
}

func (s *Server) withNavigator(resolve resolver, h func(http.ResponseWriter, *http.Request, ports.Navigator)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nav, err := resolve(r)
		if err != nil {
			s.fail(w, http.StatusNotFound, err)
			return
		}
		h(w, r, nav)
	}
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request, nav ports.Navigator) {
	position := nav.Position()
	var overlay *mermaid.GraphOverlay
	if position != nil {
		overlay = &mermaid.GraphOverlay{Current: position.ID()}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, mermaid.GenerateMermaid(nav.Graph(), "", overlay))
}

func (s *Server) getPath(w http.ResponseWriter, r *http.Request, nav ports.Navigator) {
	g := nav.Graph()
	to, err := lookup(g, r.URL.Query().Get("to"))
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	from := nav.Position()
	if id := r.URL.Query().Get("from"); id != "" {
		if from, err = lookup(g, id); err != nil {
			s.fail(w, http.StatusBadRequest, err)
			return
		}
	}
	if from == nil {
		s.fail(w, http.StatusConflict, domain.ErrUnknownPosition)
		return
	}

	path := graph.IDs(g.ShortestPath(from, to))
	s.respond(w, http.StatusOK, PathResponse{
		From: from.ID(),
		To:   to.ID(),
		Path: path,
		Hops: len(path),
	})
}

func (s *Server) getRecords(w http.ResponseWriter, r *http.Request, nav ports.Navigator) {
	records, err := nav.Records(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []domain.StateRecord{}
	}
	s.respond(w, http.StatusOK, records)
}

func (s *Server) getPosition(w http.ResponseWriter, r *http.Request, nav ports.Navigator) {
	s.respond(w, http.StatusOK, PositionResponse{Position: domain.IDOf(nav.Position())})
}

func (s *Server) postGoto(w http.ResponseWriter, r *http.Request, nav ports.Navigator) {
	var body GotoRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	dest, err := lookup(nav.Graph(), body.To)
	if err != nil {
		s.fail(w, http.StatusNotFound, err)
		return
	}

	hops, err := nav.NavigateTo(r.Context(), dest)
	resp := GotoResponse{
		Reached:  err == nil,
		Position: domain.IDOf(nav.Position()),
		Hops:     graph.IDs(hops),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	s.respond(w, gotoStatus(err), resp)
}

func gotoStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrUnknownPosition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSignalNotConfigured):
		return http.StatusInternalServerError
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	return http.StatusUnprocessableEntity
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.Sessions.List())
}

func (s *Server) openSession(w http.ResponseWriter, r *http.Request) {
	id, _, err := s.Sessions.Open(r.Context(), r.URL.Query().Get("id"))
	switch {
	case errors.Is(err, session.ErrSessionExists):
		s.fail(w, http.StatusConflict, err)
	case err != nil:
		s.fail(w, http.StatusInternalServerError, err)
	default:
		s.respond(w, http.StatusCreated, map[string]string{"id": id})
	}
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func lookup(g *graph.Graph, id string) (domain.Navigable, error) {
	if id == "" {
		return nil, errors.New("missing navigable id")
	}
	n, ok := g.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown navigable %q", id)
	}
	return n, nil
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "status", status, "err", err)
	}
	s.respond(w, status, errorResponse{Error: err.Error()})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
