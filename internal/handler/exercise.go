package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/repository"
	"github.com/stridelog/stridelog/internal/service"
)

type ExerciseHandler struct {
	workoutService     *service.WorkoutService
	progressionService *service.ProgressionService
}

func NewExerciseHandler(workoutService *service.WorkoutService, progressionService *service.ProgressionService) *ExerciseHandler {
	return &ExerciseHandler{
		workoutService:     workoutService,
		progressionService: progressionService,
	}
}

type createExerciseRequest struct {
	Name       string `json:"name"`
	IsCompound bool   `json:"is_compound"`
}

type exerciseResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsCompound bool   `json:"is_compound"`
}

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	exercise, err := h.workoutService.CreateExercise(req.Name, req.IsCompound)
	if err != nil {
		slog.Error("failed to create exercise", "error", err, "name", req.Name)
		respondError(w, http.StatusInternalServerError, "failed to create exercise")
		return
	}

	respondJSON(w, http.StatusCreated, exerciseResponse{
		ID:         exercise.ID,
		Name:       exercise.Name,
		IsCompound: exercise.IsCompound,
	})
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.workoutService.Exercises()
	if err != nil {
		slog.Error("failed to list exercises", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list exercises")
		return
	}

	resp := make([]exerciseResponse, 0, len(exercises))
	for _, exercise := range exercises {
		resp = append(resp, exerciseResponse{
			ID:         exercise.ID,
			Name:       exercise.Name,
			IsCompound: exercise.IsCompound,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *ExerciseHandler) Recommendation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := h.progressionService.CalculateProgressionRecommendation(id)
	if errors.Is(err, repository.ErrExerciseNotFound) {
		respondError(w, http.StatusNotFound, "exercise not found")
		return
	}
	if err != nil {
		slog.Error("failed to calculate recommendation", "error", err, "exercise_id", id)
		respondError(w, http.StatusInternalServerError, "failed to calculate recommendation")
		return
	}
	if rec == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

type recordResponse struct {
	RecordType string  `json:"record_type"`
	Value      float64 `json:"value"`
	WeightKg   float64 `json:"weight_kg"`
	Reps       int     `json:"reps"`
	Date       string  `json:"date"`
}

func (h *ExerciseHandler) Records(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	records, err := h.progressionService.Records(id)
	if errors.Is(err, repository.ErrExerciseNotFound) {
		respondError(w, http.StatusNotFound, "exercise not found")
		return
	}
	if err != nil {
		slog.Error("failed to list records", "error", err, "exercise_id", id)
		respondError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	resp := make([]recordResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, toRecordResponse(record))
	}

	respondJSON(w, http.StatusOK, resp)
}

func toRecordResponse(record *model.PersonalRecord) recordResponse {
	return recordResponse{
		RecordType: record.RecordType,
		Value:      record.Value,
		WeightKg:   record.WeightKg,
		Reps:       record.Reps,
		Date:       record.Date,
	}
}
