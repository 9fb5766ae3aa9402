package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/repository"
)

// WorkoutService persists workouts and sets and triggers the
// personal-record check after each non-warmup set.
type WorkoutService struct {
	workouts    repository.WorkoutRepository
	sets        repository.WorkoutSetRepository
	exercises   repository.ExerciseRepository
	progression *ProgressionService
	now         func() time.Time
}

func NewWorkoutService(
	workouts repository.WorkoutRepository,
	sets repository.WorkoutSetRepository,
	exercises repository.ExerciseRepository,
	progression *ProgressionService,
) *WorkoutService {
	return &WorkoutService{
		workouts:    workouts,
		sets:        sets,
		exercises:   exercises,
		progression: progression,
		now:         time.Now,
	}
}

func (s *WorkoutService) CreateWorkout(date, notes string) (*model.Workout, error) {
	workout := &model.Workout{
		ID:        uuid.New().String(),
		Date:      date,
		Notes:     notes,
		CreatedAt: s.now(),
	}

	err := s.workouts.Create(workout)
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	return workout, nil
}

// LogSet records one set. Warm-up sets are stored but never checked
// against personal records.
func (s *WorkoutService) LogSet(workoutID, exerciseID string, weightKg float64, reps int, rpe *float64, isWarmup bool) (*model.WorkoutSet, error) {
	workout, err := s.workouts.ByID(workoutID)
	if err != nil {
		return nil, err
	}
	_, err = s.exercises.ByID(exerciseID)
	if err != nil {
		return nil, err
	}

	set := &model.WorkoutSet{
		ID:         uuid.New().String(),
		WorkoutID:  workout.ID,
		ExerciseID: exerciseID,
		WeightKg:   weightKg,
		Reps:       reps,
		RPE:        rpe,
		IsWarmup:   isWarmup,
		CreatedAt:  s.now(),
	}

	err = s.sets.Create(set)
	if err != nil {
		return nil, fmt.Errorf("create set: %w", err)
	}

	if !isWarmup {
		err = s.progression.CheckAndUpdatePR(exerciseID, weightKg, reps, workout.Date, workout.ID, set.ID)
		if err != nil {
			return nil, err
		}
	}

	return set, nil
}

func (s *WorkoutService) CreateExercise(name string, isCompound bool) (*model.Exercise, error) {
	exercise := &model.Exercise{
		ID:         uuid.New().String(),
		Name:       name,
		IsCompound: isCompound,
		CreatedAt:  s.now(),
	}

	err := s.exercises.Create(exercise)
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}

	return exercise, nil
}

func (s *WorkoutService) Exercises() ([]*model.Exercise, error) {
	return s.exercises.All()
}
