package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgallion1/docprox/internal/config"
	"github.com/dgallion1/docprox/internal/pipeline"
	"github.com/dgallion1/docprox/internal/report"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// queryRequest is the body of POST /api/query.
type queryRequest struct {
	Corpus []string `json:"corpus"`
	config.QuerySpec
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)

	var req queryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", s.cfg.MaxRequestBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	ids := make([]string, 0, len(req.Corpus))
	for _, id := range req.Corpus {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		jsonError(w, "corpus must list at least one document", http.StatusBadRequest)
		return
	}
	if len(ids) > s.cfg.MaxCorpusSize {
		jsonError(w, fmt.Sprintf("corpus exceeds %d documents", s.cfg.MaxCorpusSize), http.StatusRequestEntityTooLarge)
		return
	}

	q, err := req.QuerySpec.Build()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(uuid.NewString(), q, ids)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.log.Info("query submitted", "job_id", job.ID, "documents", len(ids), "strategy", q.Matcher.Strategy)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":     job.ID,
		"status":     pipeline.StatusQueued,
		"poll_url":   fmt.Sprintf("/api/query/%s/status", job.ID),
		"result_url": fmt.Sprintf("/api/query/%s/result", job.ID),
	})
}

func (s *Server) handleQueryStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleQueryResult(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap := job.Snapshot()
	res := job.Result()
	if res == nil {
		code := http.StatusConflict
		msg := fmt.Sprintf("job is %s", snap.Status)
		if snap.Status == pipeline.StatusFailed {
			code = http.StatusUnprocessableEntity
			if n := len(snap.Progress.Errors); n > 0 {
				msg = "job failed: " + snap.Progress.Errors[n-1]
			}
		}
		jsonError(w, msg, code)
		return
	}

	q, _ := job.Query()
	rep := report.Build(res, report.Options{Excerpts: q.Excerpts})
	w.Header().Set("Content-Type", format.ContentType())
	if err := report.Write(w, rep, format); err != nil {
		s.log.Error("write result", "job_id", job.ID, "error", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
