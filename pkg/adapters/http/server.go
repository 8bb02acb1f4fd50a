package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/voltcraft/troubleshoot"
	"github.com/voltcraft/troubleshoot/internal/logging"
	"github.com/voltcraft/troubleshoot/internal/presentation/graph"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/observability"
	"github.com/voltcraft/troubleshoot/pkg/ports"
	"github.com/voltcraft/troubleshoot/pkg/session"
)

// Server exposes the wizard over a JSON API. Sessions live in a session.Manager.
type Server struct {
	wizard   ports.Wizard
	sessions *session.Manager
	metrics  *observability.Metrics
	streams  *StreamManager
	logger   *slog.Logger
	origin   string
	spec     *openapi3.T
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics records request durations and serves /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCORSOrigin sets Access-Control-Allow-Origin. Empty disables CORS headers.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.origin = origin
	}
}

// NewServer validates the embedded OpenAPI document and builds a Server.
func NewServer(wizard ports.Wizard, sessions *session.Manager, opts ...Option) (*Server, error) {
	doc, err := Spec()
	if err != nil {
		return nil, err
	}
	s := &Server{
		wizard:   wizard,
		sessions: sessions,
		logger:   logging.NewNop(),
		origin:   "*",
		spec:     doc,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	return s, nil
}

// Streams returns the SSE fan-out of state diffs.
func (s *Server) Streams() *StreamManager {
	return s.streams
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(s.cors)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.listCategories)
		r.Get("/{category}", s.getCategory)
		r.Get("/{category}/graph", s.getCategoryGraph)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/start", s.startSession)
			r.Post("/select", s.selectOption)
			r.Post("/back", s.goBack)
			r.Post("/reset", s.resetSession)
			r.Get("/events", s.subscribeEvents)
		})
	})

	return r
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		if s.metrics != nil {
			s.metrics.ObserveRequest(r.Method, route, status, elapsed)
		}
		s.logger.Debug("request handled",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Troubleshooting Wizard API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// SessionResponse is returned by every session endpoint.
type SessionResponse struct {
	State   *domain.State     `json:"state"`
	View    domain.View       `json:"view"`
	Changes *domain.StateDiff `json:"changes,omitempty"`
}

type startRequest struct {
	Category string `json:"category"`
}

type selectRequest struct {
	Option *int `json:"option"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "troubleshoot",
		"version":     troubleshoot.Version,
		"api_version": s.spec.Info.Version,
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.wizard.Categories())
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	tree, err := s.wizard.Tree(chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) getCategoryGraph(w http.ResponseWriter, r *http.Request) {
	tree, err := s.wizard.Tree(chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var overlay *graph.Overlay
	if id := r.URL.Query().Get("session_id"); id != "" {
		state, err := s.sessions.Load(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if state.Category == tree.Category {
			overlay = graph.OverlayFromState(state)
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(tree, overlay)))
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SessionsCreated.Inc()
	}
	s.respond(w, r, http.StatusCreated, state, domain.Diff(nil, state))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, state, nil)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var body startRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Category == "" {
		s.writeBadRequest(w, r, "request body must be {\"category\": \"...\"}", err)
		return
	}
	s.transition(w, r, func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.wizard.Start(ctx, state, body.Category)
	})
}

func (s *Server) selectOption(w http.ResponseWriter, r *http.Request) {
	var body selectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Option == nil {
		s.writeBadRequest(w, r, "request body must be {\"option\": n}", err)
		return
	}
	s.transition(w, r, func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.wizard.Select(ctx, state, *body.Option)
	})
}

func (s *Server) goBack(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.wizard.Back)
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.wizard.Reset)
}

// transition applies op under the session lock, then publishes the diff to SSE subscribers.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, *domain.State) (*domain.State, error)) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	before, after, err := s.sessions.Update(ctx, id, func(state *domain.State) (*domain.State, error) {
		return op(ctx, state)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	diff := domain.Diff(before, after)
	if diff != nil {
		if data, err := json.Marshal(diff); err == nil {
			s.streams.Broadcast(id, string(data))
		}
	}
	s.respond(w, r, http.StatusOK, after, diff)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, state *domain.State, diff *domain.StateDiff) {
	view, err := s.wizard.Render(state)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, SessionResponse{State: state, View: view, Changes: diff})
}

// subscribeEvents streams the diffs of a session as Server-Sent Events.
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.sessions.Load(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, unsubscribe := s.streams.Subscribe(id)
	defer unsubscribe()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var integrity *domain.IntegrityError
	switch {
	case errors.As(err, &integrity):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOptionOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoActiveQuestion):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
