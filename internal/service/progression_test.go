package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/repository"
	"github.com/stridelog/stridelog/internal/testsupport"
)

type progressionFixture struct {
	svc       *ProgressionService
	exercises repository.ExerciseRepository
	workouts  repository.WorkoutRepository
	sets      repository.WorkoutSetRepository
	records   repository.PersonalRecordRepository
	now       time.Time
}

func newProgressionFixture(t *testing.T) *progressionFixture {
	t.Helper()

	database := testsupport.NewDB(t)
	exercises := repository.NewExerciseRepository(database)
	workouts := repository.NewWorkoutRepository(database)
	sets := repository.NewWorkoutSetRepository(database)
	records := repository.NewPersonalRecordRepository(database)

	return &progressionFixture{
		svc:       NewProgressionService(exercises, sets, records, 5),
		exercises: exercises,
		workouts:  workouts,
		sets:      sets,
		records:   records,
		now:       time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (f *progressionFixture) addExercise(t *testing.T, name string, compound bool) *model.Exercise {
	t.Helper()

	exercise := &model.Exercise{
		ID:         uuid.New().String(),
		Name:       name,
		IsCompound: compound,
		CreatedAt:  f.now,
	}
	require.NoError(t, f.exercises.Create(exercise))
	return exercise
}

// addSession logs one workout with numSets straight sets of
// weight x reps, all at the given RPE (nil for unreported).
func (f *progressionFixture) addSession(t *testing.T, exerciseID, date string, weight float64, reps, numSets int, rpe *float64) {
	t.Helper()

	workout := &model.Workout{
		ID:        uuid.New().String(),
		Date:      date,
		CreatedAt: f.now,
	}
	require.NoError(t, f.workouts.Create(workout))

	for i := 0; i < numSets; i++ {
		set := &model.WorkoutSet{
			ID:         uuid.New().String(),
			WorkoutID:  workout.ID,
			ExerciseID: exerciseID,
			WeightKg:   weight,
			Reps:       reps,
			RPE:        rpe,
			CreatedAt:  f.now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, f.sets.Create(set))
	}
}

func rpe(v float64) *float64 { return &v }

func TestRecommendationInsufficientData(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Bench Press", true)

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, model.ActionMaintain, rec.Action)
	assert.Equal(t, "insufficient data", rec.Reason)

	// One session is still not enough.
	f.addSession(t, ex.ID, "2025-06-10", 100, 5, 3, rpe(7))
	rec, err = f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionMaintain, rec.Action)
	assert.Equal(t, "insufficient data", rec.Reason)
}

func TestRecommendationUnknownExercise(t *testing.T) {
	f := newProgressionFixture(t)

	_, err := f.svc.CalculateProgressionRecommendation("missing")
	assert.ErrorIs(t, err, repository.ErrExerciseNotFound)
}

func TestRecommendationAddWeightCompound(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Squat", true)

	// Three consistent sessions, easy effort.
	f.addSession(t, ex.ID, "2025-06-08", 135, 5, 3, rpe(6))
	f.addSession(t, ex.ID, "2025-06-10", 135, 5, 3, rpe(6))
	f.addSession(t, ex.ID, "2025-06-12", 135, 5, 3, rpe(6))

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddWeight, rec.Action)
	require.NotNil(t, rec.SuggestedWeightKg)
	// avg max 135 + compound increment 5.
	assert.InDelta(t, 140, *rec.SuggestedWeightKg, 1e-9)
}

func TestRecommendationAddWeightRoundsToHalf(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Overhead Press", false)

	f.addSession(t, ex.ID, "2025-06-08", 50, 8, 3, rpe(6))
	f.addSession(t, ex.ID, "2025-06-10", 50, 8, 3, rpe(6))
	f.addSession(t, ex.ID, "2025-06-12", 52, 8, 3, rpe(6))

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddWeight, rec.Action)
	require.NotNil(t, rec.SuggestedWeightKg)
	// avg max 50.667 + isolation increment 2.5 = 53.167 -> 53.0
	assert.InDelta(t, 53.0, *rec.SuggestedWeightKg, 1e-9)
}

func TestRecommendationAddReps(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Curl", false)

	f.addSession(t, ex.ID, "2025-06-08", 20, 8, 3, rpe(7.5))
	f.addSession(t, ex.ID, "2025-06-10", 20, 8, 3, rpe(7.5))
	f.addSession(t, ex.ID, "2025-06-12", 20, 8, 3, rpe(7.5))

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddReps, rec.Action)
	require.NotNil(t, rec.SuggestedReps)
	// 24 reps per session on average, plus one.
	assert.Equal(t, 25, *rec.SuggestedReps)
}

func TestRecommendationAddRepsWhenRPEUnreported(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Row", true)

	// No RPE anywhere: assumed 7, which lands in the add-reps band.
	f.addSession(t, ex.ID, "2025-06-08", 80, 6, 3, nil)
	f.addSession(t, ex.ID, "2025-06-10", 80, 6, 3, nil)

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddReps, rec.Action)
}

func TestRecommendationAddSets(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Deadlift", true)

	f.addSession(t, ex.ID, "2025-06-08", 180, 3, 3, rpe(8.5))
	f.addSession(t, ex.ID, "2025-06-10", 180, 3, 3, rpe(8.5))
	f.addSession(t, ex.ID, "2025-06-12", 180, 3, 3, rpe(8.5))

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddSets, rec.Action)
	require.NotNil(t, rec.SuggestedSets)
	assert.Equal(t, 4, *rec.SuggestedSets)
}

func TestRecommendationDeloadOnRegression(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Bench Press", true)

	// Volume falling well past 10% with brutal effort.
	f.addSession(t, ex.ID, "2025-06-08", 100, 10, 3, rpe(9))
	f.addSession(t, ex.ID, "2025-06-10", 100, 8, 3, rpe(9))
	f.addSession(t, ex.ID, "2025-06-12", 100, 6, 3, rpe(9))

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionDeload, rec.Action)
	require.NotNil(t, rec.SuggestedWeightKg)
	// round(100 * 0.6)
	assert.InDelta(t, 60, *rec.SuggestedWeightKg, 1e-9)
}

func TestRecommendationMaintainOnManageableRegression(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Bench Press", true)

	f.addSession(t, ex.ID, "2025-06-08", 100, 10, 3, rpe(7))
	f.addSession(t, ex.ID, "2025-06-10", 100, 8, 3, rpe(7))
	f.addSession(t, ex.ID, "2025-06-12", 100, 6, 3, rpe(7))

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionMaintain, rec.Action)
	assert.Equal(t, "volume regressing, hold and recover", rec.Reason)
}

func TestRecommendationMaintainIntensityTooHigh(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Squat", true)

	f.addSession(t, ex.ID, "2025-06-08", 160, 5, 3, rpe(9.5))
	f.addSession(t, ex.ID, "2025-06-10", 160, 5, 3, rpe(9.5))
	f.addSession(t, ex.ID, "2025-06-12", 160, 5, 3, rpe(9.5))

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionMaintain, rec.Action)
	assert.Equal(t, "intensity too high", rec.Reason)
}

func TestRecommendationMaintainBuildConsistency(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Squat", true)

	// Weights all over the place at moderate effort.
	f.addSession(t, ex.ID, "2025-06-08", 100, 5, 3, rpe(7.5))
	f.addSession(t, ex.ID, "2025-06-10", 120, 5, 3, rpe(7.5))
	f.addSession(t, ex.ID, "2025-06-12", 140, 5, 3, rpe(7.5))

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionMaintain, rec.Action)
	assert.Equal(t, "build consistency", rec.Reason)
}

func TestRecommendationWindowIgnoresOlderSessions(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Squat", true)

	// Two wild early sessions followed by a clean consistent block:
	// only the most recent three matter.
	f.addSession(t, ex.ID, "2025-06-02", 60, 5, 3, rpe(6))
	f.addSession(t, ex.ID, "2025-06-04", 200, 5, 3, rpe(6))
	f.addSession(t, ex.ID, "2025-06-08", 135, 5, 3, rpe(6))
	f.addSession(t, ex.ID, "2025-06-10", 135, 5, 3, rpe(6))
	f.addSession(t, ex.ID, "2025-06-12", 135, 5, 3, rpe(6))

	rec, err := f.svc.CalculateProgressionRecommendation(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddWeight, rec.Action)
	require.NotNil(t, rec.SuggestedWeightKg)
	assert.InDelta(t, 140, *rec.SuggestedWeightKg, 1e-9)
}

func TestCheckAndUpdatePRFirstSet(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Bench Press", true)

	err := f.svc.CheckAndUpdatePR(ex.ID, 100, 5, "2025-06-12", "w1", "s1")
	require.NoError(t, err)

	records, err := f.records.ByExercise(ex.ID)
	require.NoError(t, err)
	// max_weight, 1rm, 3rm, 5rm; reps < 10 so no 10rm.
	assert.Len(t, records, 4)

	types := map[string]float64{}
	for _, r := range records {
		types[r.RecordType] = r.Value
	}
	assert.InDelta(t, 100, types[model.RecordTypeMaxWeight], 1e-9)
	assert.InDelta(t, 112.5, types[model.RecordType1RM], 1e-9)
	assert.InDelta(t, 100, types[model.RecordType3RM], 1e-9)
	assert.InDelta(t, 100, types[model.RecordType5RM], 1e-9)
	assert.NotContains(t, types, model.RecordType10RM)
}

func TestCheckAndUpdatePROnlyStrictImprovements(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Bench Press", true)

	require.NoError(t, f.svc.CheckAndUpdatePR(ex.ID, 100, 5, "2025-06-12", "w1", "s1"))

	// Lighter set: nothing new.
	require.NoError(t, f.svc.CheckAndUpdatePR(ex.ID, 90, 5, "2025-06-13", "w2", "s2"))
	records, err := f.records.ByExercise(ex.ID)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	// Equal weight is not a new record either; history is strict.
	require.NoError(t, f.svc.CheckAndUpdatePR(ex.ID, 100, 5, "2025-06-14", "w3", "s3"))
	records, err = f.records.ByExercise(ex.ID)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	// Heavier double: beats max_weight but its 1RM estimate
	// (102.5 * 36/35) stays under the stored 112.5, and reps < 3
	// leaves the rep records alone.
	require.NoError(t, f.svc.CheckAndUpdatePR(ex.ID, 102.5, 2, "2025-06-15", "w4", "s4"))
	records, err = f.records.ByExercise(ex.ID)
	require.NoError(t, err)
	assert.Len(t, records, 5)

	best, ok, err := f.records.BestValue(ex.ID, model.RecordTypeMaxWeight)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 102.5, best, 1e-9)

	best, ok, err = f.records.BestValue(ex.ID, model.RecordType1RM)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 112.5, best, 1e-9)
}

func TestCheckAndUpdatePRMonotonicBest(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Squat", true)

	weights := []float64{100, 110, 105, 120, 95}
	var prevBest float64
	for i, w := range weights {
		require.NoError(t, f.svc.CheckAndUpdatePR(ex.ID, w, 5, "2025-06-12", "w", string(rune('a'+i))))

		best, ok, err := f.records.BestValue(ex.ID, model.RecordTypeMaxWeight)
		require.NoError(t, err)
		require.True(t, ok)
		assert.GreaterOrEqual(t, best, prevBest)
		prevBest = best
	}
	assert.InDelta(t, 120, prevBest, 1e-9)
}

func TestCheckAndUpdatePRSkipsOutOfRangeReps(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Curl", false)

	// Brzycki divides by (37 - reps); 37+ reps are not estimable.
	require.NoError(t, f.svc.CheckAndUpdatePR(ex.ID, 20, 37, "2025-06-12", "w1", "s1"))
	require.NoError(t, f.svc.CheckAndUpdatePR(ex.ID, 20, 0, "2025-06-12", "w1", "s2"))

	records, err := f.records.ByExercise(ex.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWorkoutServiceLogSetTriggersPRCheck(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Bench Press", true)
	workoutSvc := NewWorkoutService(f.workouts, f.sets, f.exercises, f.svc)

	workout, err := workoutSvc.CreateWorkout("2025-06-12", "push day")
	require.NoError(t, err)

	// Warm-up sets never touch the record history.
	_, err = workoutSvc.LogSet(workout.ID, ex.ID, 200, 5, nil, true)
	require.NoError(t, err)
	records, err := f.records.ByExercise(ex.ID)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = workoutSvc.LogSet(workout.ID, ex.ID, 100, 10, rpe(8), false)
	require.NoError(t, err)
	records, err = f.records.ByExercise(ex.ID)
	require.NoError(t, err)
	// max_weight, 1rm, 3rm, 5rm, 10rm all newly set.
	assert.Len(t, records, 5)
}

func TestWorkoutServiceLogSetUnknownWorkout(t *testing.T) {
	f := newProgressionFixture(t)
	ex := f.addExercise(t, "Bench Press", true)
	workoutSvc := NewWorkoutService(f.workouts, f.sets, f.exercises, f.svc)

	_, err := workoutSvc.LogSet("missing", ex.ID, 100, 5, nil, false)
	assert.ErrorIs(t, err, repository.ErrWorkoutNotFound)
}
