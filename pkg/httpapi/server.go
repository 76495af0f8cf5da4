// Package httpapi exposes correlation jobs over HTTP: event ingestion,
// job submission, and run history, backed by Temporal workflows.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/leowmjw/tempocorrelate/pkg/hcl"
	"github.com/leowmjw/tempocorrelate/pkg/jobstore"
	"github.com/leowmjw/tempocorrelate/pkg/temporal"
)

// Server is the HTTP front end for the correlation service.
type Server struct {
	logger         *slog.Logger
	temporalClient client.Client
	jobs           *jobstore.Store
	addr           string
	taskQueue      string
}

// NewServer builds a Server. jobs may be nil, in which case the run-history
// endpoints respond 503.
func NewServer(logger *slog.Logger, temporalClient client.Client, jobs *jobstore.Store, addr, taskQueue string) *Server {
	return &Server{
		logger:         logger,
		temporalClient: temporalClient,
		jobs:           jobs,
		addr:           addr,
		taskQueue:      taskQueue,
	}
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /sources/{source}/events", s.handleIngestEvents)
	mux.HandleFunc("POST /jobs/{id}/run", s.handleRunJob)
	mux.HandleFunc("POST /jobs/{id}/stream", s.handleStartStream)
	mux.HandleFunc("POST /jobs/{id}/signal/run-now", s.handleSignalRunNow)
	mux.HandleFunc("GET /jobs/{id}/runs", s.handleListRuns)
	mux.HandleFunc("GET /health", s.handleHealth)

	handler := s.loggingMiddleware(mux)

	server := &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}

	s.logger.Info("starting HTTP server", "addr", s.addr)

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

// handleIngestEvents validates a batch of events posted for a named source,
// logs it and acknowledges it with 202 Accepted. It does not store the
// events or forward them to any workflow.
func (s *Server) handleIngestEvents(w http.ResponseWriter, r *http.Request) {
	source := r.PathValue("source")
	if source == "" {
		s.respondError(w, http.StatusBadRequest, "source is required")
		return
	}

	var events []temporal.JobEvent
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(events) == 0 {
		s.respondError(w, http.StatusBadRequest, "at least one event is required")
		return
	}

	s.logger.Info("ingesting events", "source", source, "count", len(events))
	s.respondJSON(w, http.StatusAccepted, map[string]any{
		"source":      source,
		"event_count": len(events),
	})
}

// decodeJobSpec reads r's body and decodes it into a JobSpec, accepting
// either an HCL job block or a JSON object depending on the Content-Type
// header and, failing that, content sniffing.
func decodeJobSpec(r *http.Request) (temporal.JobSpec, error) {
	contentType, err := hcl.DetectContentType(r)
	if err != nil {
		return temporal.JobSpec{}, fmt.Errorf("read request body: %w", err)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return temporal.JobSpec{}, fmt.Errorf("read request body: %w", err)
	}

	if contentType == hcl.ContentTypeHCL {
		spec, err := hcl.ParseJobSpec(string(body), "job.hcl")
		if err != nil {
			return temporal.JobSpec{}, fmt.Errorf("parse HCL body: %w", err)
		}
		return *spec, nil
	}

	var spec temporal.JobSpec
	if err := json.Unmarshal(body, &spec); err != nil {
		return temporal.JobSpec{}, fmt.Errorf("parse JSON body: %w", err)
	}
	return spec, nil
}

// handleRunJob starts a batch CorrelationWorkflow and waits for its result.
func (s *Server) handleRunJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		s.respondError(w, http.StatusBadRequest, "job id is required")
		return
	}

	spec, err := decodeJobSpec(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	spec.JobID = jobID

	workflowID := temporal.GenerateCorrelationWorkflowID(jobID)
	run, err := s.temporalClient.ExecuteWorkflow(
		r.Context(),
		client.StartWorkflowOptions{ID: workflowID, TaskQueue: s.taskQueue},
		temporal.CorrelationWorkflow,
		spec,
	)
	if err != nil {
		s.logger.Error("failed to start correlation workflow", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to start job")
		return
	}

	var result *temporal.JobResult
	if err := run.Get(r.Context(), &result); err != nil {
		s.logger.Error("correlation workflow failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "job execution failed")
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

// handleStartStream starts a long-running StreamingCorrelationWorkflow for
// jobID, idempotently: a second call targeting the same job is a no-op if
// the workflow is already running.
func (s *Server) handleStartStream(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		s.respondError(w, http.StatusBadRequest, "job id is required")
		return
	}

	spec, err := decodeJobSpec(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	spec.JobID = jobID

	workflowID := temporal.GenerateStreamWorkflowID(jobID)
	_, err = s.temporalClient.ExecuteWorkflow(
		r.Context(),
		client.StartWorkflowOptions{ID: workflowID, TaskQueue: s.taskQueue},
		temporal.StreamingCorrelationWorkflow,
		spec,
	)
	if err != nil {
		s.logger.Error("failed to start streaming workflow", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to start stream")
		return
	}

	s.respondJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID, "workflow_id": workflowID})
}

// handleSignalRunNow signals a running StreamingCorrelationWorkflow to run a
// correlation pass; the workflow runs a pass only when this signal arrives.
func (s *Server) handleSignalRunNow(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		s.respondError(w, http.StatusBadRequest, "job id is required")
		return
	}

	workflowID := temporal.GenerateStreamWorkflowID(jobID)
	if err := s.temporalClient.SignalWorkflow(r.Context(), workflowID, "", temporal.RunNowSignalName, nil); err != nil {
		s.logger.Error("failed to signal workflow", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to signal job")
		return
	}

	s.respondJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

// handleListRuns returns the recorded run history for a job.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		s.respondError(w, http.StatusBadRequest, "job id is required")
		return
	}
	if s.jobs == nil {
		s.respondError(w, http.StatusServiceUnavailable, "run history is not available")
		return
	}

	runs, err := s.jobs.ListRuns(r.Context(), jobID)
	if err != nil {
		s.logger.Error("failed to list runs", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	s.respondJSON(w, http.StatusOK, runs)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
			"user_agent", r.UserAgent(),
		)
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.logger.Warn("http error response", "status", status, "message", message)
	s.respondJSON(w, status, map[string]string{"error": message})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
