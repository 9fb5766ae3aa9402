package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stridelog/stridelog/internal/repository"
	"github.com/stridelog/stridelog/internal/service"
	"github.com/stridelog/stridelog/internal/stats"
)

type WorkoutHandler struct {
	workoutService *service.WorkoutService
}

func NewWorkoutHandler(workoutService *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
	}
}

type createWorkoutRequest struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

type workoutResponse struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	if !stats.ValidDay(req.Date) {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	workout, err := h.workoutService.CreateWorkout(req.Date, req.Notes)
	if err != nil {
		slog.Error("failed to create workout", "error", err, "date", req.Date)
		respondError(w, http.StatusInternalServerError, "failed to create workout")
		return
	}

	respondJSON(w, http.StatusCreated, workoutResponse{
		ID:    workout.ID,
		Date:  workout.Date,
		Notes: workout.Notes,
	})
}

type logSetRequest struct {
	ExerciseID string   `json:"exercise_id"`
	WeightKg   float64  `json:"weight_kg"`
	Reps       int      `json:"reps"`
	RPE        *float64 `json:"rpe"`
	IsWarmup   bool     `json:"is_warmup"`
}

type setResponse struct {
	ID         string   `json:"id"`
	WorkoutID  string   `json:"workout_id"`
	ExerciseID string   `json:"exercise_id"`
	WeightKg   float64  `json:"weight_kg"`
	Reps       int      `json:"reps"`
	RPE        *float64 `json:"rpe,omitempty"`
	IsWarmup   bool     `json:"is_warmup"`
}

func (h *WorkoutHandler) LogSet(w http.ResponseWriter, r *http.Request) {
	workoutID := r.PathValue("id")

	var req logSetRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	if req.WeightKg < 0 || req.Reps <= 0 {
		respondError(w, http.StatusBadRequest, "weight_kg must be non-negative and reps positive")
		return
	}
	if req.RPE != nil && (*req.RPE < 1 || *req.RPE > 10) {
		respondError(w, http.StatusBadRequest, "rpe must be between 1 and 10")
		return
	}

	set, err := h.workoutService.LogSet(workoutID, req.ExerciseID, req.WeightKg, req.Reps, req.RPE, req.IsWarmup)
	if errors.Is(err, repository.ErrWorkoutNotFound) || errors.Is(err, repository.ErrExerciseNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to log set", "error", err, "workout_id", workoutID)
		respondError(w, http.StatusInternalServerError, "failed to log set")
		return
	}

	respondJSON(w, http.StatusCreated, setResponse{
		ID:         set.ID,
		WorkoutID:  set.WorkoutID,
		ExerciseID: set.ExerciseID,
		WeightKg:   set.WeightKg,
		Reps:       set.Reps,
		RPE:        set.RPE,
		IsWarmup:   set.IsWarmup,
	})
}
