package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stridelog/stridelog/internal/model"
)

var (
	ErrRunNotFound = errors.New("run not found")
)

type RunRepository interface {
	Create(run *model.Run) error
	ByID(id string) (*model.Run, error)
	OnDate(date string) ([]*model.Run, error)
	InRange(from, to string) ([]*model.Run, error)
	Delete(id string) error
}

type runRepository struct {
	db *sqlx.DB
}

func NewRunRepository(db *sqlx.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(run *model.Run) error {
	query := `INSERT INTO runs (id, date, distance_km, duration_seconds, pace_min_per_km, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		run.ID,
		run.Date,
		run.DistanceKm,
		run.DurationSeconds,
		run.PaceMinPerKm,
		run.CreatedAt,
	)

	return err
}

func (r *runRepository) ByID(id string) (*model.Run, error) {
	run := &model.Run{}
	query := `SELECT * FROM runs WHERE id = $1`

	err := r.db.Get(run, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}

	return run, err
}

func (r *runRepository) OnDate(date string) ([]*model.Run, error) {
	var runs []*model.Run
	query := `SELECT * FROM runs WHERE date = $1 ORDER BY created_at ASC`

	err := r.db.Select(&runs, query, date)
	if err != nil {
		return nil, err
	}

	return runs, nil
}

func (r *runRepository) InRange(from, to string) ([]*model.Run, error) {
	var runs []*model.Run
	query := `SELECT * FROM runs WHERE date >= $1 AND date <= $2 ORDER BY date ASC, created_at ASC`

	err := r.db.Select(&runs, query, from, to)
	if err != nil {
		return nil, err
	}

	return runs, nil
}

func (r *runRepository) Delete(id string) error {
	query := `DELETE FROM runs WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRunNotFound
	}

	return nil
}
