package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stridelog/stridelog/internal/model"
)

var (
	ErrNoActiveStreak = errors.New("no active streak")
	ErrStreakNotFound = errors.New("streak not found")
)

type StreakRepository interface {
	Create(streak *model.Streak) error
	Active() (*model.Streak, error)
	CountActive() (int, error)
	Update(streak *model.Streak) error
}

type streakRepository struct {
	db *sqlx.DB
}

func NewStreakRepository(db *sqlx.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) Create(streak *model.Streak) error {
	query := `INSERT INTO streaks (id, start_date, end_date, current_length, is_active, freezes_used, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		streak.ID,
		streak.StartDate,
		streak.EndDate,
		streak.CurrentLength,
		streak.IsActive,
		streak.FreezesUsed,
		streak.CreatedAt,
		streak.UpdatedAt,
	)

	return err
}

func (r *streakRepository) Active() (*model.Streak, error) {
	streak := &model.Streak{}
	query := `SELECT * FROM streaks WHERE is_active = TRUE LIMIT 1`

	err := r.db.Get(streak, query)
	if err == sql.ErrNoRows {
		return nil, ErrNoActiveStreak
	}

	return streak, err
}

func (r *streakRepository) CountActive() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM streaks WHERE is_active = TRUE`
	err := r.db.QueryRow(query).Scan(&count)
	return count, err
}

func (r *streakRepository) Update(streak *model.Streak) error {
	query := `UPDATE streaks
	          SET start_date = $1, end_date = $2, current_length = $3, is_active = $4, freezes_used = $5, updated_at = $6
	          WHERE id = $7`

	result, err := r.db.Exec(query,
		streak.StartDate,
		streak.EndDate,
		streak.CurrentLength,
		streak.IsActive,
		streak.FreezesUsed,
		time.Now(),
		streak.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStreakNotFound
	}

	return nil
}
