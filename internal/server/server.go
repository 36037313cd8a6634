// Package server exposes the assistant over HTTP.
package server

// #region imports
import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/assistant"
	"github.com/kazifarms/hr-assistant/internal/logger"
	"github.com/kazifarms/hr-assistant/internal/metrics"
	"github.com/kazifarms/hr-assistant/internal/retrieval"
	"github.com/kazifarms/hr-assistant/internal/store"
)

// #endregion

const maxQueryBytes = 8 << 10

// Asker answers one conversational turn.
type Asker interface {
	Ask(ctx context.Context, sessionID, query string) (assistant.Answer, error)
}

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// #region server

// Server holds the HTTP handlers. memory may be nil.
type Server struct {
	asker  Asker
	memory *store.Store
	checks map[string]Pinger
	base   *zap.Logger
	log    *zap.Logger
}

// New creates a Server.
func New(asker Asker, memory *store.Store, checks map[string]Pinger, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{asker: asker, memory: memory, checks: checks, base: log, log: log.Named("http")}
}

// Router returns the chi router with middleware and routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.log))
	r.Use(chiMiddleware.RequestID)
	r.Use(accessLog(s.base))
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/ask", s.ask)
		r.Get("/sessions", s.listSessions)
		r.Get("/sessions/{id}/messages", s.messages)
		r.Delete("/sessions/{id}", s.clearSession)
	})
	return r
}

// #endregion

// #region handlers

type askRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type askResponse struct {
	Answer     string              `json:"answer"`
	Confidence float64             `json:"confidence"`
	Sources    []retrieval.Passage `json:"sources"`
	QueryType  string              `json:"query_type,omitempty"`
	Followup   string              `json:"followup,omitempty"`
	Terminal   string              `json:"terminal"`
	SessionID  string              `json:"session_id,omitempty"`
	RunID      string              `json:"run_id,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	ans, err := s.asker.Ask(r.Context(), req.SessionID, req.Query)
	switch {
	case errors.Is(err, assistant.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "validation_failed", "Query is required")
		return
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", "Session not found")
		return
	case err != nil:
		logger.Scoped(r.Context(), "http", s.log).Error("ask failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	resp := askResponse{
		Answer:     ans.FinalResponse,
		Confidence: ans.ConfidenceScore,
		Sources:    ans.SourceDocuments,
		Followup:   ans.FollowupSuggestion,
		Terminal:   string(ans.Terminal),
		SessionID:  ans.SessionID,
		RunID:      ans.RunID,
	}
	if ans.QueryAnalysis != nil {
		resp.QueryType = string(ans.QueryAnalysis.QueryType)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	if s.memory == nil {
		writeError(w, http.StatusNotImplemented, "memory_disabled", "Conversation memory is disabled")
		return
	}
	sessions, err := s.memory.ListSessions(r.Context())
	if err != nil {
		s.log.Error("list sessions failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) messages(w http.ResponseWriter, r *http.Request) {
	if s.memory == nil {
		writeError(w, http.StatusNotImplemented, "memory_disabled", "Conversation memory is disabled")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "validation_failed", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	id := chi.URLParam(r, "id")
	msgs, err := s.memory.History(r.Context(), id, limit)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found", "Session not found")
		return
	}
	if err != nil {
		s.log.Error("history failed", zap.String("session_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session_id": id, "messages": msgs})
}

func (s *Server) clearSession(w http.ResponseWriter, r *http.Request) {
	if s.memory == nil {
		writeError(w, http.StatusNotImplemented, "memory_disabled", "Conversation memory is disabled")
		return
	}
	err := s.memory.ClearSession(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found", "Session not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	checks := make(map[string]string, len(s.checks))
	for name, p := range s.checks {
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}

// #endregion

// #region helpers

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// jsonRecoverer returns a JSON 500 instead of a plain text stacktrace.
func jsonRecoverer(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error("panic recovered", zap.Any("panic", rvr), zap.Stack("stacktrace"))
					writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog emits one line per request, echoes X-Request-ID and hands
// downstream code a logger carrying the request id.
func accessLog(base *zap.Logger) func(next http.Handler) http.Handler {
	log := base.Named("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}
			reqLog := base.With(zap.String("request_id", requestID))
			r = r.WithContext(logger.ContextWithLogger(r.Context(), reqLog))

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info("http_request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

// #endregion
