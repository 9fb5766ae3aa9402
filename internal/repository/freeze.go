package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/stridelog/stridelog/internal/model"
)

type FreezeRepository interface {
	Create(freeze *model.StreakFreeze) error
	OnDate(streakID, date string) ([]*model.StreakFreeze, error)
	// CountInMonth counts freeze rows for a streak dated within the
	// given YYYY-MM month. The row count is the source of truth for
	// the monthly quota; streaks.freezes_used is display-only.
	CountInMonth(streakID, month string) (int, error)
}

type freezeRepository struct {
	db *sqlx.DB
}

func NewFreezeRepository(db *sqlx.DB) FreezeRepository {
	return &freezeRepository{db: db}
}

func (r *freezeRepository) Create(freeze *model.StreakFreeze) error {
	query := `INSERT INTO streak_freezes (id, streak_id, date, reason, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		freeze.ID,
		freeze.StreakID,
		freeze.Date,
		freeze.Reason,
		freeze.CreatedAt,
	)

	return err
}

func (r *freezeRepository) OnDate(streakID, date string) ([]*model.StreakFreeze, error) {
	var freezes []*model.StreakFreeze
	query := `SELECT * FROM streak_freezes WHERE streak_id = $1 AND date = $2`

	err := r.db.Select(&freezes, query, streakID, date)
	if err != nil {
		return nil, err
	}

	return freezes, nil
}

func (r *freezeRepository) CountInMonth(streakID, month string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM streak_freezes WHERE streak_id = $1 AND substr(date, 1, 7) = $2`
	err := r.db.QueryRow(query, streakID, month).Scan(&count)
	return count, err
}
