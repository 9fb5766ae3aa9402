package model

import (
	"time"
)

const (
	RecordTypeMaxWeight = "max_weight"
	RecordType1RM       = "1rm"
	RecordType3RM       = "3rm"
	RecordType5RM       = "5rm"
	RecordType10RM      = "10rm"
)

// PersonalRecord is one broken record. History is append-only: a new
// row is inserted only when the value strictly exceeds the current
// best, and rows are never updated or deleted. The current best for an
// (exercise, record type) pair is the max value on file.
type PersonalRecord struct {
	ID         string    `db:"id"`
	ExerciseID string    `db:"exercise_id"`
	RecordType string    `db:"record_type"`
	Value      float64   `db:"value"`
	WeightKg   float64   `db:"weight_kg"`
	Reps       int       `db:"reps"`
	Date       string    `db:"date"`
	WorkoutID  string    `db:"workout_id"`
	SetID      string    `db:"set_id"`
	CreatedAt  time.Time `db:"created_at"`
}
