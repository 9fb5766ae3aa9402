package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/repository"
	"github.com/stridelog/stridelog/internal/service"
	"github.com/stridelog/stridelog/internal/stats"
)

type RunHandler struct {
	runService *service.RunService
}

func NewRunHandler(runService *service.RunService) *RunHandler {
	return &RunHandler{
		runService: runService,
	}
}

type createRunRequest struct {
	Date            string  `json:"date"`
	DistanceKm      float64 `json:"distance_km"`
	DurationSeconds int     `json:"duration_seconds"`
}

type runResponse struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	DistanceKm      float64 `json:"distance_km"`
	DurationSeconds int     `json:"duration_seconds"`
	PaceMinPerKm    float64 `json:"pace_min_per_km"`
}

func toRunResponse(run *model.Run) runResponse {
	return runResponse{
		ID:              run.ID,
		Date:            run.Date,
		DistanceKm:      run.DistanceKm,
		DurationSeconds: run.DurationSeconds,
		PaceMinPerKm:    run.PaceMinPerKm,
	}
}

func (h *RunHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	if !stats.ValidDay(req.Date) {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if req.DistanceKm <= 0 || req.DurationSeconds <= 0 {
		respondError(w, http.StatusBadRequest, "distance_km and duration_seconds must be positive")
		return
	}

	run, err := h.runService.LogRun(req.Date, req.DistanceKm, req.DurationSeconds)
	if err != nil {
		slog.Error("failed to log run", "error", err, "date", req.Date)
		respondError(w, http.StatusInternalServerError, "failed to log run")
		return
	}

	respondJSON(w, http.StatusCreated, toRunResponse(run))
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to := rangeParams(r)

	runs, err := h.runService.Runs(from, to)
	if err != nil {
		slog.Error("failed to list runs", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	resp := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, toRunResponse(run))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *RunHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.runService.Delete(id)
	if errors.Is(err, repository.ErrRunNotFound) {
		respondError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete run", "error", err, "run_id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete run")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
