package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/service"
	"github.com/stridelog/stridelog/internal/stats"
)

type StreakHandler struct {
	streakService *service.StreakService

	// Configured qualification defaults, overridable per request.
	minDistanceKm      float64
	minDurationSeconds int
}

func NewStreakHandler(streakService *service.StreakService, minDistanceKm float64, minDurationSeconds int) *StreakHandler {
	return &StreakHandler{
		streakService:      streakService,
		minDistanceKm:      minDistanceKm,
		minDurationSeconds: minDurationSeconds,
	}
}

type streakResponse struct {
	Length int                `json:"length"`
	Streak *streakRowResponse `json:"streak"`
}

type streakRowResponse struct {
	ID            string  `json:"id"`
	StartDate     string  `json:"start_date"`
	EndDate       *string `json:"end_date"`
	CurrentLength int     `json:"current_length"`
	FreezesUsed   int     `json:"freezes_used"`
}

func (h *StreakHandler) Current(w http.ResponseWriter, r *http.Request) {
	minDistance := h.minDistanceKm
	minDuration := h.minDurationSeconds
	if v := r.URL.Query().Get("min_distance_km"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid min_distance_km")
			return
		}
		minDistance = f
	}
	if v := r.URL.Query().Get("min_duration_seconds"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid min_duration_seconds")
			return
		}
		minDuration = n
	}

	length, err := h.streakService.ComputeCurrentStreak(minDistance, minDuration)
	if err != nil {
		slog.Error("failed to compute streak", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to compute streak")
		return
	}

	streak, err := h.streakService.Active()
	if err != nil {
		slog.Error("failed to load active streak", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load streak")
		return
	}

	resp := streakResponse{Length: length}
	if streak != nil {
		resp.Streak = toStreakRowResponse(streak)
	}

	respondJSON(w, http.StatusOK, resp)
}

func toStreakRowResponse(streak *model.Streak) *streakRowResponse {
	return &streakRowResponse{
		ID:            streak.ID,
		StartDate:     streak.StartDate,
		EndDate:       streak.EndDate,
		CurrentLength: streak.CurrentLength,
		FreezesUsed:   streak.FreezesUsed,
	}
}

type useFreezeRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (h *StreakHandler) UseFreeze(w http.ResponseWriter, r *http.Request) {
	var req useFreezeRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	if !stats.ValidDay(req.Date) {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	ok, err := h.streakService.UseStreakFreeze(req.Date, req.Reason)
	if err != nil {
		slog.Error("failed to use streak freeze", "error", err, "date", req.Date)
		respondError(w, http.StatusInternalServerError, "failed to use streak freeze")
		return
	}
	if !ok {
		respondError(w, http.StatusConflict, "no active streak or monthly freeze quota spent")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *StreakHandler) End(w http.ResponseWriter, r *http.Request) {
	ok, err := h.streakService.EndStreak()
	if err != nil {
		slog.Error("failed to end streak", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to end streak")
		return
	}
	if !ok {
		respondError(w, http.StatusConflict, "no active streak")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
