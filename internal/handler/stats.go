package handler

import (
	"log/slog"
	"net/http"

	"github.com/stridelog/stridelog/internal/service"
	"github.com/stridelog/stridelog/internal/stats"
)

type StatsHandler struct {
	runService *service.RunService
}

func NewStatsHandler(runService *service.RunService) *StatsHandler {
	return &StatsHandler{
		runService: runService,
	}
}

type summaryResponse struct {
	From                 string  `json:"from"`
	To                   string  `json:"to"`
	TotalRuns            int     `json:"total_runs"`
	TotalDistanceKm      float64 `json:"total_distance_km"`
	TotalDurationSeconds int     `json:"total_duration_seconds"`
	AvgPaceMinPerKm      float64 `json:"avg_pace_min_per_km"`
}

func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to := rangeParams(r)

	runs, err := h.runService.Runs(from, to)
	if err != nil {
		slog.Error("failed to load runs for summary", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}

	resp := summaryResponse{
		From:                 from,
		To:                   to,
		TotalRuns:            len(runs),
		TotalDistanceKm:      stats.SumDistance(runs),
		TotalDurationSeconds: stats.SumDuration(runs),
	}
	if resp.TotalDistanceKm > 0 {
		resp.AvgPaceMinPerKm = stats.Pace(resp.TotalDistanceKm, resp.TotalDurationSeconds)
	}

	respondJSON(w, http.StatusOK, resp)
}
