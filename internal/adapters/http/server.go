package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/ali/internal/logging"
	"github.com/aretw0/ali/internal/runtime"
	"github.com/aretw0/ali/pkg/domain"
)

// Engine is the part of the interpreter the HTTP surface needs.
type Engine interface {
	Trace(ctx context.Context, raw string) (*domain.Resolution, error)
	Catalog() *runtime.Catalog
}

// Server serves command resolution over HTTP.
type Server struct {
	Engine  Engine
	Version string
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.Version = v }
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// ResolveRequest is the body of POST /resolve.
type ResolveRequest struct {
	Command string `json:"command"`
}

// ResolveResponse is returned by POST /resolve on success and on failure.
type ResolveResponse struct {
	Input   string            `json:"input"`
	Command string            `json:"command,omitempty"`
	Verb    string            `json:"verb,omitempty"`
	Plugin  string            `json:"plugin,omitempty"`
	Fields  domain.FieldState `json:"fields,omitempty"`
	Outcome string            `json:"outcome"`
	Error   string            `json:"error,omitempty"`
	Suggest []string          `json:"suggestions,omitempty"`
}

// VerbInfo is one entry of GET /verbs.
type VerbInfo struct {
	Verb   string `json:"verb"`
	Plugin string `json:"plugin"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Version: "dev",
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/verbs", s.ListVerbs)
	r.Post("/resolve", s.Resolve)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "ali-http",
		"version": s.Version,
	})
}

// ListVerbs handles GET /verbs.
func (s *Server) ListVerbs(w http.ResponseWriter, r *http.Request) {
	catalog := s.Engine.Catalog()
	verbs := catalog.Verbs()
	out := make([]VerbInfo, 0, len(verbs))
	for _, v := range verbs {
		out = append(out, VerbInfo{Verb: v, Plugin: catalog.Owner(v)})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// Resolve handles POST /resolve.
func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	var body ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Resolve: Invalid request body", "error", err)
		return
	}

	res, err := s.Engine.Trace(r.Context(), body.Command)
	resp := ResolveResponse{
		Input:   body.Command,
		Verb:    res.Verb,
		Plugin:  res.RuleSet,
		Fields:  res.Fields,
		Command: res.Command,
		Outcome: domain.OutcomeOf(err),
	}
	if err != nil {
		resp.Error = domain.FormatResult(err)
		var unknown *domain.UnknownVerbError
		if errors.As(err, &unknown) {
			resp.Suggest = unknown.Suggestions
		}
	}
	s.writeJSON(w, statusFor(err), resp)
}

// statusFor maps pipeline failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrUnknownVerb):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyCommand),
		errors.Is(err, domain.ErrUnexpectedTokens),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNoMatchingCommand),
		errors.Is(err, domain.ErrMissingService):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
