package service

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/repository"
	"github.com/stridelog/stridelog/internal/stats"
)

const (
	// defaultRPE is assumed for sets that report no perceived effort.
	defaultRPE = 7.0
	// consistencyTolerance is the max relative deviation of a
	// session's top weight from the window mean.
	consistencyTolerance = 0.05
	// regressionThreshold marks a volume trend as regressing.
	regressionThreshold = -0.10
	// brzyckiMaxReps bounds the rep range the 1RM estimate is valid
	// for; the formula divides by (37 - reps).
	brzyckiMaxReps = 36

	compoundIncrementKg  = 5.0
	isolationIncrementKg = 2.5
	deloadFactor         = 0.6
)

// ProgressionService recommends the next training adjustment for an
// exercise and detects broken personal records. Like the streak
// engine it is single-writer: CheckAndUpdatePR reads the current best
// before inserting, with no protection against overlapping calls.
type ProgressionService struct {
	exercises       repository.ExerciseRepository
	sets            repository.WorkoutSetRepository
	records         repository.PersonalRecordRepository
	historySessions int
	now             func() time.Time
}

func NewProgressionService(
	exercises repository.ExerciseRepository,
	sets repository.WorkoutSetRepository,
	records repository.PersonalRecordRepository,
	historySessions int,
) *ProgressionService {
	return &ProgressionService{
		exercises:       exercises,
		sets:            sets,
		records:         records,
		historySessions: historySessions,
		now:             time.Now,
	}
}

// CalculateProgressionRecommendation inspects the exercise's recent
// session history and picks the first matching row of the decision
// table: deload or hold when volume regresses, push weight/reps/sets
// when performance is consistent, otherwise hold.
func (s *ProgressionService) CalculateProgressionRecommendation(exerciseID string) (*model.Recommendation, error) {
	exercise, err := s.exercises.ByID(exerciseID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sets.History(exerciseID, s.historySessions)
	if err != nil {
		return nil, fmt.Errorf("load session history: %w", err)
	}

	rec := &model.Recommendation{
		ExerciseID:   exercise.ID,
		ExerciseName: exercise.Name,
	}

	if len(sessions) < 2 {
		rec.Action = model.ActionMaintain
		rec.Reason = "insufficient data"
		return rec, nil
	}

	// Averages over the most recent 3 sessions.
	window := sessions
	if len(window) > 3 {
		window = window[len(window)-3:]
	}

	var sumMax, sumVolume float64
	var sumReps, sumSets int
	for _, sess := range window {
		sumMax += sess.MaxWeight
		sumVolume += sess.TotalVolume
		sumReps += sess.TotalReps
		sumSets += len(sess.Sets)
	}
	n := float64(len(window))
	avgMax := sumMax / n
	avgReps := float64(sumReps) / n
	avgSets := float64(sumSets) / n
	avgRPE := averageRPE(window)

	consistent := isConsistent(window, avgMax)
	regressing := volumeTrend(window) < regressionThreshold

	switch {
	case regressing && avgRPE > 8.5:
		rec.Action = model.ActionDeload
		rec.Reason = "volume regressing at high effort"
		suggested := math.Round(avgMax * deloadFactor)
		rec.SuggestedWeightKg = &suggested
	case regressing:
		rec.Action = model.ActionMaintain
		rec.Reason = "volume regressing, hold and recover"
	case consistent && avgRPE < 7:
		rec.Action = model.ActionAddWeight
		rec.Reason = "consistent with effort to spare"
		increment := isolationIncrementKg
		if exercise.IsCompound {
			increment = compoundIncrementKg
		}
		suggested := stats.RoundToHalf(avgMax + increment)
		rec.SuggestedWeightKg = &suggested
	case consistent && avgRPE < 8:
		rec.Action = model.ActionAddReps
		rec.Reason = "consistent at moderate effort"
		suggested := int(math.Round(avgReps)) + 1
		rec.SuggestedReps = &suggested
	case consistent && avgRPE < 9:
		rec.Action = model.ActionAddSets
		rec.Reason = "consistent at high effort"
		suggested := int(math.Round(avgSets)) + 1
		rec.SuggestedSets = &suggested
	case avgRPE >= 9:
		rec.Action = model.ActionMaintain
		rec.Reason = "intensity too high"
	default:
		rec.Action = model.ActionMaintain
		rec.Reason = "build consistency"
	}

	return rec, nil
}

// CheckAndUpdatePR runs after every non-warmup set. For each tracked
// category it compares against the current best on file and inserts a
// new record only on a strict improvement; record history is
// append-only.
func (s *ProgressionService) CheckAndUpdatePR(exerciseID string, weightKg float64, reps int, date, workoutID, setID string) error {
	if reps <= 0 || reps > brzyckiMaxReps {
		slog.Warn("skipping record check, reps outside estimable range",
			"exercise_id", exerciseID, "reps", reps)
		return nil
	}

	oneRM := stats.Estimate1RM(weightKg, reps)

	candidates := []struct {
		recordType string
		minReps    int
		value      float64
	}{
		{model.RecordTypeMaxWeight, 1, weightKg},
		{model.RecordType1RM, 1, oneRM},
		{model.RecordType3RM, 3, weightKg},
		{model.RecordType5RM, 5, weightKg},
		{model.RecordType10RM, 10, weightKg},
	}

	for _, c := range candidates {
		if reps < c.minReps {
			continue
		}

		best, ok, err := s.records.BestValue(exerciseID, c.recordType)
		if err != nil {
			return fmt.Errorf("load best %s: %w", c.recordType, err)
		}
		if ok && c.value <= best {
			continue
		}

		record := &model.PersonalRecord{
			ID:         uuid.New().String(),
			ExerciseID: exerciseID,
			RecordType: c.recordType,
			Value:      c.value,
			WeightKg:   weightKg,
			Reps:       reps,
			Date:       date,
			WorkoutID:  workoutID,
			SetID:      setID,
			CreatedAt:  s.now(),
		}
		err = s.records.Create(record)
		if err != nil {
			return fmt.Errorf("insert %s record: %w", c.recordType, err)
		}

		slog.Info("personal record",
			"exercise_id", exerciseID, "type", c.recordType, "value", c.value)
	}

	return nil
}

// Records returns the full record history for an exercise.
func (s *ProgressionService) Records(exerciseID string) ([]*model.PersonalRecord, error) {
	_, err := s.exercises.ByID(exerciseID)
	if err != nil {
		return nil, err
	}
	return s.records.ByExercise(exerciseID)
}

// averageRPE averages the reported efforts across all sets in the
// window, defaulting to 7 when nothing is reported.
func averageRPE(window []*model.ExerciseSession) float64 {
	var sum float64
	var count int
	for _, sess := range window {
		for _, set := range sess.Sets {
			if set.RPE != nil {
				sum += *set.RPE
				count++
			}
		}
	}
	if count == 0 {
		return defaultRPE
	}
	return sum / float64(count)
}

// isConsistent reports whether every session's top weight sits within
// 5% of the window mean.
func isConsistent(window []*model.ExerciseSession, avgMax float64) bool {
	if avgMax == 0 {
		return true
	}
	for _, sess := range window {
		if math.Abs(sess.MaxWeight-avgMax)/avgMax > consistencyTolerance {
			return false
		}
	}
	return true
}

// volumeTrend compares the mean volume of the two most recent sessions
// against the two oldest in the window.
func volumeTrend(window []*model.ExerciseSession) float64 {
	if len(window) < 2 {
		return 0
	}
	older := (window[0].TotalVolume + window[1].TotalVolume) / 2
	recent := (window[len(window)-1].TotalVolume + window[len(window)-2].TotalVolume) / 2
	if older == 0 {
		return 0
	}
	return (recent - older) / older
}
