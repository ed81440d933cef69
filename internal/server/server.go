package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/planner"
	"github.com/aretesun/hey-there/internal/repository"
)

// maxBodySize limits request bodies.
const maxBodySize = 1 << 20

const shutdownTimeout = 5 * time.Second

// PlannerFactory returns a fresh planner for one request. Planners hold a
// single current plan so they are never shared between requests.
type PlannerFactory func() *planner.Planner

// Server exposes plan generation and editing over HTTP. Generation progress
// is streamed as Server-Sent Events.
type Server struct {
	newPlanner PlannerFactory
	repo       repository.TripRepository
	metrics    http.Handler
	logger     *slog.Logger
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetricsHandler serves h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

func New(newPlanner PlannerFactory, repo repository.TripRepository, opts ...Option) *Server {
	s := &Server{
		newPlanner: newPlanner,
		repo:       repo,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// POST /api/plans - generate a plan, streamed as SSE
	mux.HandleFunc("POST /api/plans", s.handleCreate)

	// GET /api/plans/{id} - archived plan by id or id prefix
	mux.HandleFunc("GET /api/plans/{id}", s.handleGet)

	// POST /api/plans/{id}/edits - apply an instruction to an archived plan
	mux.HandleFunc("POST /api/plans/{id}/edits", s.handleEdit)

	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// EditRequest is the body of POST /api/plans/{id}/edits.
type EditRequest struct {
	Instruction string `json:"instruction"`
}

// EditResponse carries the edited plan and the planner's reply.
type EditResponse struct {
	TripID string       `json:"tripId"`
	Plan   *domain.Plan `json:"plan"`
	Reply  string       `json:"reply"`
}

// PlanResponse is returned by GET /api/plans/{id}.
type PlanResponse struct {
	TripID       string        `json:"tripId"`
	CreatedAt    time.Time     `json:"createdAt"`
	Plan         *domain.Plan  `json:"plan"`
	Conversation []domain.Turn `json:"conversation"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.TripRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	p := s.newPlanner()
	stream, err := p.Start(r.Context(), req)
	if err != nil {
		s.logger.Error("Failed to start generation", "error", err)
		s.writeError(w, http.StatusBadGateway, "failed to start generation")
		return
	}
	defer func() {
		stream.Cancel()
		for range stream.Events {
		}
		<-stream.Done
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	var id uint64
	for e := range stream.Events {
		id++
		name, data := sseEvent(e)
		if err := s.sendSSEEvent(w, flusher, id, name, data); err != nil {
			s.logger.Debug("Client disconnected during stream", "error", err)
			return
		}
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	trip, err := s.repo.GetTripByPartialID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	p, err := trip.Plan()
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, PlanResponse{
		TripID:       trip.ID.String(),
		CreatedAt:    trip.CreatedAt,
		Plan:         p,
		Conversation: trip.Conversation(),
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req EditRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := s.newPlanner()
	if _, err := p.Load(r.Context(), r.PathValue("id")); err != nil {
		s.writeLookupError(w, err)
		return
	}

	edited, reply, err := p.Edit(r.Context(), req.Instruction)
	switch {
	case errors.Is(err, planner.ErrEmptyInstruction):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Warn("Edit failed", "error", err)
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, EditResponse{
		TripID: p.TripID().String(),
		Plan:   edited,
		Reply:  reply,
	})
}

func (s *Server) writeLookupError(w http.ResponseWriter, err error) {
	if domain.IsNoPlanError(err) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("Failed to look up trip", "error", err)
	s.writeError(w, http.StatusInternalServerError, "failed to look up trip")
}

// sendSSEEvent writes one event and flushes it. A write error means the
// client went away.
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, id uint64, eventType string, data any) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn("Failed to marshal SSE data", "error", err)
		return nil
	}
	if _, err := fmt.Fprintf(w, "event: %s\nid: %d\ndata: %s\n\n", eventType, id, dataBytes); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	flusher.Flush()
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
