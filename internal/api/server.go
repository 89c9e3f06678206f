// Package api exposes the pipeline over HTTP. The route layer stays
// thin: decode, run, record, encode.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrosight/agrosight/internal/models"
	"github.com/agrosight/agrosight/internal/notify"
	"github.com/agrosight/agrosight/internal/pipeline"
	"github.com/agrosight/agrosight/internal/store"
)

type Server struct {
	pipeline *pipeline.Pipeline
	store    *store.Store
	policy   *notify.Policy
	port     string
}

func NewServer(p *pipeline.Pipeline, st *store.Store, policy *notify.Policy, port string) *Server {
	return &Server{pipeline: p, store: st, policy: policy, port: port}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/pipeline", s.handleRunPipeline)
	mux.HandleFunc("GET /api/v1/runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /api/v1/farmers/{id}/runs", s.handleListRuns)
	mux.HandleFunc("POST /api/v1/admin/notifications/reset", s.handleResetNotifications)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("api: listening on :%s", s.port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleRunPipeline(w http.ResponseWriter, r *http.Request) {
	var input models.FarmerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if input.FarmerID == "" {
		writeError(w, http.StatusBadRequest, "farmerId is required")
		return
	}

	result := s.pipeline.Execute(r.Context(), input)

	if s.store != nil {
		if err := s.store.SaveResult(result); err != nil {
			log.Printf("api: save result %s: %v", result.PipelineID, err)
		}
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run history not enabled")
		return
	}
	run, err := s.store.GetRun(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run.Result)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run history not enabled")
		return
	}
	runs, err := s.store.ListRunsByFarmer(r.PathValue("id"), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type runSummary struct {
		PipelineID string    `json:"pipelineId"`
		Success    bool      `json:"success"`
		CreatedAt  time.Time `json:"createdAt"`
	}
	out := make([]runSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, runSummary{PipelineID: run.PipelineID, Success: run.Success, CreatedAt: run.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleResetNotifications clears the daily SMS limit breaker. This is
// the explicit admin reset path; the breaker otherwise holds until
// process restart.
func (s *Server) handleResetNotifications(w http.ResponseWriter, r *http.Request) {
	if s.policy == nil {
		writeError(w, http.StatusNotFound, "notifications not configured")
		return
	}
	s.policy.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
