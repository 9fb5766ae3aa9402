package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/stridelog/stridelog/internal/model"
)

type PersonalRecordRepository interface {
	Create(record *model.PersonalRecord) error
	// BestValue returns the current best value for an exercise and
	// record type. ok is false when no record exists yet.
	BestValue(exerciseID, recordType string) (value float64, ok bool, err error)
	ByExercise(exerciseID string) ([]*model.PersonalRecord, error)
}

type personalRecordRepository struct {
	db *sqlx.DB
}

func NewPersonalRecordRepository(db *sqlx.DB) PersonalRecordRepository {
	return &personalRecordRepository{db: db}
}

func (r *personalRecordRepository) Create(record *model.PersonalRecord) error {
	query := `INSERT INTO personal_records (id, exercise_id, record_type, value, weight_kg, reps, date, workout_id, set_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		record.ID,
		record.ExerciseID,
		record.RecordType,
		record.Value,
		record.WeightKg,
		record.Reps,
		record.Date,
		record.WorkoutID,
		record.SetID,
		record.CreatedAt,
	)

	return err
}

func (r *personalRecordRepository) BestValue(exerciseID, recordType string) (float64, bool, error) {
	var best sql.NullFloat64
	query := `SELECT MAX(value) FROM personal_records WHERE exercise_id = $1 AND record_type = $2`

	err := r.db.QueryRow(query, exerciseID, recordType).Scan(&best)
	if err != nil {
		return 0, false, err
	}
	if !best.Valid {
		return 0, false, nil
	}

	return best.Float64, true, nil
}

func (r *personalRecordRepository) ByExercise(exerciseID string) ([]*model.PersonalRecord, error) {
	var records []*model.PersonalRecord
	query := `SELECT * FROM personal_records WHERE exercise_id = $1 ORDER BY date DESC, created_at DESC`

	err := r.db.Select(&records, query, exerciseID)
	if err != nil {
		return nil, err
	}

	return records, nil
}
