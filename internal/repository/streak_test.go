package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/testsupport"
)

func activeStreak() *model.Streak {
	now := time.Now()
	return &model.Streak{
		ID:        uuid.New().String(),
		StartDate: "2025-06-01",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStreakActiveEmpty(t *testing.T) {
	repo := NewStreakRepository(testsupport.NewDB(t))

	_, err := repo.Active()
	assert.ErrorIs(t, err, ErrNoActiveStreak)

	count, err := repo.CountActive()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStreakSingleActiveEnforced(t *testing.T) {
	repo := NewStreakRepository(testsupport.NewDB(t))

	require.NoError(t, repo.Create(activeStreak()))

	// The partial unique index rejects a second active row.
	err := repo.Create(activeStreak())
	assert.Error(t, err)
}

func TestStreakEndThenStartNew(t *testing.T) {
	repo := NewStreakRepository(testsupport.NewDB(t))

	first := activeStreak()
	require.NoError(t, repo.Create(first))

	endDate := "2025-06-10"
	first.IsActive = false
	first.EndDate = &endDate
	require.NoError(t, repo.Update(first))

	// Ended streaks don't block a new active one.
	require.NoError(t, repo.Create(activeStreak()))

	count, err := repo.CountActive()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFreezeCountInMonth(t *testing.T) {
	database := testsupport.NewDB(t)
	streaks := NewStreakRepository(database)
	freezes := NewFreezeRepository(database)

	streak := activeStreak()
	require.NoError(t, streaks.Create(streak))

	for _, date := range []string{"2025-06-01", "2025-06-30", "2025-05-31", "2025-07-01"} {
		require.NoError(t, freezes.Create(&model.StreakFreeze{
			ID:        uuid.New().String(),
			StreakID:  streak.ID,
			Date:      date,
			CreatedAt: time.Now(),
		}))
	}

	count, err := freezes.CountInMonth(streak.ID, "2025-06")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = freezes.CountInMonth("other-streak", "2025-06")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPersonalRecordBestValue(t *testing.T) {
	database := testsupport.NewDB(t)
	exercises := NewExerciseRepository(database)
	records := NewPersonalRecordRepository(database)

	exercise := &model.Exercise{ID: uuid.New().String(), Name: "Bench Press", CreatedAt: time.Now()}
	require.NoError(t, exercises.Create(exercise))

	_, ok, err := records.BestValue(exercise.ID, model.RecordTypeMaxWeight)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, v := range []float64{100, 110, 105} {
		require.NoError(t, records.Create(&model.PersonalRecord{
			ID:         uuid.New().String(),
			ExerciseID: exercise.ID,
			RecordType: model.RecordTypeMaxWeight,
			Value:      v,
			WeightKg:   v,
			Reps:       1,
			Date:       "2025-06-12",
			WorkoutID:  "w",
			SetID:      "s",
			CreatedAt:  time.Now(),
		}))
	}

	best, ok, err := records.BestValue(exercise.ID, model.RecordTypeMaxWeight)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 110, best, 1e-9)
}
