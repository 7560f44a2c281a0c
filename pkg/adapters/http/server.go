package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/internal/logging"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/ports"
	"github.com/aretw0/handik/pkg/runner"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds request bodies. Input arguments are a handful of numbers.
const maxBodySize = 64 << 10

// Server serves a running engine over HTTP.
type Server struct {
	Runner  *runner.Runner
	Store   ports.SnapshotStore
	Streams *StreamManager
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the snapshot endpoints.
func WithStore(store ports.SnapshotStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithStreams serves transition events from sm on GET /events.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) { s.Streams = sm }
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// NewHandler creates the HTTP handler for a runner.
func NewHandler(r *runner.Runner, opts ...Option) http.Handler {
	s := &Server{Runner: r, Logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	mux := chi.NewRouter()
	mux.Get("/healthz", s.GetHealth)
	mux.Get("/info", s.GetInfo)
	mux.Get("/state", s.GetState)
	mux.Post("/input/{kind}", s.PostInput)
	mux.Patch("/modes", s.PatchModes)
	if s.Store != nil {
		mux.Get("/snapshot", s.ListSnapshots)
		mux.Post("/snapshot/{profile}", s.SaveSnapshot)
		mux.Put("/snapshot/{profile}", s.RestoreSnapshot)
		mux.Delete("/snapshot/{profile}", s.DeleteSnapshot)
	}
	if s.Streams != nil {
		mux.Get("/events", s.SubscribeEvents)
	}
	if s.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return enableCORS(mux)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.Runner.Done():
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "stopped"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "handik-http",
		"version": handik.Version,
	})
}

// GetState handles GET /state with the state published after the last frame.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Runner.Snapshot())
}

// InputResponse reports whether an input call reached the generators.
type InputResponse struct {
	Kind      string `json:"kind"`
	Forwarded bool   `json:"forwarded"`
}

// PostInput handles POST /input/{kind}. The body is a JSON object with the
// arguments of the kind, e.g. {"x":0.1,"y":0.2} for mouse_move.
func (s *Server) PostInput(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	args, err := decodeArgs(r)
	if err != nil {
		s.fail(w, "PostInput", http.StatusBadRequest, err)
		return
	}

	cmd, err := handik.DecodeCommand(kind, args)
	if err != nil {
		s.fail(w, "PostInput", http.StatusBadRequest, err)
		return
	}

	var (
		forwarded bool
		applyErr  error
	)
	if err := s.Runner.Submit(r.Context(), func(e *handik.Engine) {
		forwarded, applyErr = e.Apply(cmd)
	}); err != nil {
		s.fail(w, "PostInput", statusFor(err), err)
		return
	}
	if applyErr != nil {
		s.fail(w, "PostInput", http.StatusBadRequest, applyErr)
		return
	}

	writeJSON(w, http.StatusOK, InputResponse{Kind: kind, Forwarded: forwarded})
}

// PatchModes handles PATCH /modes. Unknown keys are rejected; out-of-range
// indices are ignored like the setters ignore them.
func (s *Server) PatchModes(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeArgs(r)
	if err != nil {
		s.fail(w, "PatchModes", http.StatusBadRequest, err)
		return
	}
	patch, err := handik.DecodeModesPatch(raw)
	if err != nil {
		s.fail(w, "PatchModes", http.StatusBadRequest, err)
		return
	}

	var modes domain.Modes
	if err := s.Runner.Submit(r.Context(), func(e *handik.Engine) {
		modes = e.PatchModes(patch)
	}); err != nil {
		s.fail(w, "PatchModes", statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, modes)
}

// ListSnapshots handles GET /snapshot.
func (s *Server) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, "ListSnapshots", statusFor(err), err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// SaveSnapshot handles POST /snapshot/{profile}.
func (s *Server) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")

	var snap domain.Snapshot
	if err := s.Runner.Submit(r.Context(), func(e *handik.Engine) {
		snap = e.Snapshot(profile)
	}); err != nil {
		s.fail(w, "SaveSnapshot", statusFor(err), err)
		return
	}
	if err := s.Store.Save(r.Context(), snap); err != nil {
		s.fail(w, "SaveSnapshot", statusFor(err), err)
		return
	}

	s.Logger.Info("snapshot saved", "profile", profile)
	writeJSON(w, http.StatusCreated, snap)
}

// RestoreSnapshot handles PUT /snapshot/{profile}. Only the modes are restored.
func (s *Server) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")

	snap, err := s.Store.Load(r.Context(), profile)
	if err != nil {
		s.fail(w, "RestoreSnapshot", statusFor(err), err)
		return
	}

	var modes domain.Modes
	if err := s.Runner.Submit(r.Context(), func(e *handik.Engine) {
		e.RestoreModes(snap)
		modes = e.Modes()
	}); err != nil {
		s.fail(w, "RestoreSnapshot", statusFor(err), err)
		return
	}

	s.Logger.Info("snapshot restored", "profile", profile)
	writeJSON(w, http.StatusOK, modes)
}

// DeleteSnapshot handles DELETE /snapshot/{profile}.
func (s *Server) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "profile")); err != nil {
		s.fail(w, "DeleteSnapshot", statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles GET /events (SSE). Each accepted hand transition is
// sent as one JSON data line.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.Runner.Done():
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

func (s *Server) fail(w http.ResponseWriter, op string, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" rejected", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRunnerStopped):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// decodeArgs reads an optional JSON object body.
func decodeArgs(r *http.Request) (map[string]any, error) {
	args := map[string]any{}
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&args)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return args, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// StreamManager fans transition events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 16)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Slow client.
			sm.logger.Warn("SSE: client buffer full, dropping message")
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every transition.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(e *domain.TransitionEvent) {
			data, err := json.Marshal(transitionMessage{
				Timestamp: e.Timestamp,
				Hand:      e.Hand.String(),
				From:      e.From.String(),
				To:        e.To.String(),
			})
			if err != nil {
				return
			}
			sm.Broadcast(string(data))
		},
	}
}

type transitionMessage struct {
	Timestamp time.Time `json:"timestamp"`
	Hand      string    `json:"hand"`
	From      string    `json:"from"`
	To        string    `json:"to"`
}
