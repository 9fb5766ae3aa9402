package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stridelog/stridelog/internal/model"
	"github.com/stridelog/stridelog/internal/stats"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
)

type WorkoutRepository interface {
	Create(workout *model.Workout) error
	ByID(id string) (*model.Workout, error)
}

type WorkoutSetRepository interface {
	Create(set *model.WorkoutSet) error
	// History returns the exercise's most recent sessions, one per
	// workout, oldest first. Sessions are derived on read from the
	// set rows; they are never stored.
	History(exerciseID string, limit int) ([]*model.ExerciseSession, error)
}

type workoutRepository struct {
	db *sqlx.DB
}

func NewWorkoutRepository(db *sqlx.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(workout *model.Workout) error {
	query := `INSERT INTO workouts (id, date, notes, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query,
		workout.ID,
		workout.Date,
		workout.Notes,
		workout.CreatedAt,
	)

	return err
}

func (r *workoutRepository) ByID(id string) (*model.Workout, error) {
	workout := &model.Workout{}
	query := `SELECT * FROM workouts WHERE id = $1`

	err := r.db.Get(workout, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrWorkoutNotFound
	}

	return workout, err
}

type workoutSetRepository struct {
	db *sqlx.DB
}

func NewWorkoutSetRepository(db *sqlx.DB) WorkoutSetRepository {
	return &workoutSetRepository{db: db}
}

func (r *workoutSetRepository) Create(set *model.WorkoutSet) error {
	query := `INSERT INTO workout_sets (id, workout_id, exercise_id, weight_kg, reps, rpe, is_warmup, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		set.ID,
		set.WorkoutID,
		set.ExerciseID,
		set.WeightKg,
		set.Reps,
		set.RPE,
		set.IsWarmup,
		set.CreatedAt,
	)

	return err
}

type setWithDate struct {
	model.WorkoutSet
	WorkoutDate string `db:"workout_date"`
}

func (r *workoutSetRepository) History(exerciseID string, limit int) ([]*model.ExerciseSession, error) {
	var rows []setWithDate
	query := `SELECT ws.*, w.date AS workout_date
	          FROM workout_sets ws
	          JOIN workouts w ON w.id = ws.workout_id
	          WHERE ws.exercise_id = $1
	          ORDER BY w.date DESC, w.created_at DESC, ws.created_at ASC`

	err := r.db.Select(&rows, query, exerciseID)
	if err != nil {
		return nil, err
	}

	// Group sets by workout, newest workout first, keeping at most
	// limit workouts.
	var sessions []*model.ExerciseSession
	byWorkout := make(map[string]*model.ExerciseSession)
	for _, row := range rows {
		session, ok := byWorkout[row.WorkoutID]
		if !ok {
			if limit > 0 && len(sessions) >= limit {
				continue
			}
			session = &model.ExerciseSession{Date: row.WorkoutDate}
			byWorkout[row.WorkoutID] = session
			sessions = append(sessions, session)
		}
		session.Sets = append(session.Sets, row.WorkoutSet)
	}

	for _, session := range sessions {
		session.TotalVolume = stats.Volume(session.Sets)
		session.MaxWeight = stats.MaxWeight(session.Sets)
		session.TotalReps = stats.TotalReps(session.Sets)
	}

	// Oldest first for the trend math.
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}

	return sessions, nil
}
