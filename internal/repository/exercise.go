package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stridelog/stridelog/internal/model"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
)

type ExerciseRepository interface {
	Create(exercise *model.Exercise) error
	ByID(id string) (*model.Exercise, error)
	All() ([]*model.Exercise, error)
}

type exerciseRepository struct {
	db *sqlx.DB
}

func NewExerciseRepository(db *sqlx.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(exercise *model.Exercise) error {
	query := `INSERT INTO exercises (id, name, is_compound, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query,
		exercise.ID,
		exercise.Name,
		exercise.IsCompound,
		exercise.CreatedAt,
	)

	return err
}

func (r *exerciseRepository) ByID(id string) (*model.Exercise, error) {
	exercise := &model.Exercise{}
	query := `SELECT * FROM exercises WHERE id = $1`

	err := r.db.Get(exercise, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrExerciseNotFound
	}

	return exercise, err
}

func (r *exerciseRepository) All() ([]*model.Exercise, error) {
	var exercises []*model.Exercise
	query := `SELECT * FROM exercises ORDER BY LOWER(name) ASC`

	err := r.db.Select(&exercises, query)
	if err != nil {
		return nil, err
	}

	return exercises, nil
}
