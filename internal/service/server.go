// Package service hosts the orchestrator over HTTP for callers that
// prefer a service boundary to the in-process library.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vietddude/outcall/internal/core/request"
	"github.com/vietddude/outcall/internal/infra/transport"
	"github.com/vietddude/outcall/internal/orchestrate"
)

// Server exposes POST /call plus health and metrics endpoints. Each
// request runs its own orchestration call; calls only share the
// underlying transport, which is safe for concurrent use.
type Server struct {
	orch           *orchestrate.Orchestrator
	monitor        *transport.Monitor
	server         *http.Server
	defaultTimeout int64 // millis applied when the caller omits one
	logger         *slog.Logger
}

// NewServer creates a call server on the given port.
func NewServer(orch *orchestrate.Orchestrator, monitor *transport.Monitor, port int, defaultTimeoutMillis int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	s := &Server{
		orch:           orch,
		monitor:        monitor,
		defaultTimeout: defaultTimeoutMillis,
		logger:         logger,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/call", s.handleCall)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/health/detailed", s.handleDetailed)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("Call server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var raw request.Raw
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if raw.TimeoutMillis == 0 {
		raw.TimeoutMillis = s.defaultTimeout
	}

	desc, err := request.Validate(raw)
	if err != nil {
		var verr *request.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":  verr.Error(),
				"reason": string(verr.Reason),
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// The orchestration completing is a 200 regardless of its outcome;
	// the outcome field carries the verdict.
	result := s.orch.Execute(r.Context(), desc)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	var stats transport.Stats
	if s.monitor != nil {
		stats = s.monitor.Stats()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"transport": stats,
		"time":      time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
