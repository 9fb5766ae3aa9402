package model

import (
	"time"
)

// Workout is one training session on a calendar day.
type Workout struct {
	ID        string    `db:"id"`
	Date      string    `db:"date"`
	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}

// WorkoutSet is a single set of an exercise within a workout. RPE is
// the lifter's 1-10 perceived-effort rating and is optional. Warm-up
// sets are excluded from volume and personal-record checks.
type WorkoutSet struct {
	ID         string    `db:"id"`
	WorkoutID  string    `db:"workout_id"`
	ExerciseID string    `db:"exercise_id"`
	WeightKg   float64   `db:"weight_kg"`
	Reps       int       `db:"reps"`
	RPE        *float64  `db:"rpe"`
	IsWarmup   bool      `db:"is_warmup"`
	CreatedAt  time.Time `db:"created_at"`
}

// ExerciseSession is one workout's aggregated performance for a single
// exercise. It is derived on read from the set rows and never stored.
type ExerciseSession struct {
	Date        string
	TotalVolume float64
	MaxWeight   float64
	TotalReps   int
	Sets        []WorkoutSet
}
