// Package api serves the JSON REST interface over the store.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// listCacheTTL bounds staleness for reads that bypass this process's
// invalidation, like the monthly adjuster writing balances directly.
const listCacheTTL = 30 * time.Second

// MutationPublisher receives an event for every successful write. The server
// treats publish failures as non-fatal; the write already happened.
type MutationPublisher interface {
	PublishMutation(ctx context.Context, entity, op string, id int64) error
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishMutation(context.Context, string, string, int64) error { return nil }

type Server struct {
	http.Server
	store     storage.Store
	publisher MutationPublisher
	logger    *log.Logger

	usersCache *cache.LRU[[]core.User]
	txnsCache  *cache.LRU[[]core.Transaction]
	goalsCache *cache.LRU[[]core.Goal]
}

func NewServer(addr string, store storage.Store, publisher MutationPublisher, logger *log.Logger) *Server {
	if publisher == nil {
		publisher = NopPublisher{}
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:      store,
		publisher:  publisher,
		logger:     logger.WithComponent(log.ComponentAPI),
		usersCache: cache.NewLRU[[]core.User](1, listCacheTTL),
		txnsCache:  cache.NewLRU[[]core.Transaction](100, listCacheTTL),
		goalsCache: cache.NewLRU[[]core.Goal](100, listCacheTTL),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /users", s.withMiddleware(s.handleListUsers))
	mux.HandleFunc("POST /users", s.withMiddleware(s.handleCreateUser))
	mux.HandleFunc("GET /users/{id}", s.withMiddleware(s.handleGetUser))
	mux.HandleFunc("PATCH /users/{id}", s.withMiddleware(s.handleUpdateUser))
	mux.HandleFunc("DELETE /users/{id}", s.withMiddleware(s.handleDeleteUser))
	mux.HandleFunc("GET /users/transactions/{user_id}", s.withMiddleware(s.handleListUserTransactions))
	mux.HandleFunc("GET /users/goals/{user_id}", s.withMiddleware(s.handleListUserGoals))

	mux.HandleFunc("POST /transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("GET /transactions/{id}", s.withMiddleware(s.handleGetTransaction))
	mux.HandleFunc("PATCH /transactions/{id}", s.withMiddleware(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("POST /goals", s.withMiddleware(s.handleCreateGoal))
	mux.HandleFunc("GET /goals/{id}", s.withMiddleware(s.handleGetGoal))
	mux.HandleFunc("PATCH /goals/{id}", s.withMiddleware(s.handleUpdateGoal))
	mux.HandleFunc("DELETE /goals/{id}", s.withMiddleware(s.handleDeleteGoal))

	return s
}

// Handler exposes the routed handler for tests that mount the server on an
// httptest.Server instead of binding a port.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// withMiddleware adds request logging and metrics around a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(rw, r)

		duration := time.Since(start)
		route := r.Method + " " + r.URL.Path
		observeRequest(r.Method, r.URL.Path, rw.statusCode, duration)
		s.logger.Debug("Request completed",
			"route", route,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// publish emits a mutation event, logging instead of failing the request.
func (s *Server) publish(ctx context.Context, entity, op string, id int64) {
	if err := s.publisher.PublishMutation(ctx, entity, op, id); err != nil {
		s.logger.Error("Failed to publish mutation event",
			"error", err, "entity", entity, "op", op, "id", id)
	}
}
