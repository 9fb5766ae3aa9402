package model

import (
	"time"
)

// Streak tracks a consecutive-day run streak. At most one streak is
// active at a time; the schema enforces this with a partial unique
// index and the streak service re-checks it before creating a new one.
//
// CurrentLength is a cached value. The authoritative streak length is
// always the backward walk over runs and freezes performed by the
// streak service.
type Streak struct {
	ID            string    `db:"id"`
	StartDate     string    `db:"start_date"`
	EndDate       *string   `db:"end_date"`
	CurrentLength int       `db:"current_length"`
	IsActive      bool      `db:"is_active"`
	FreezesUsed   int       `db:"freezes_used"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// StreakFreeze exempts one calendar day from breaking a streak.
// Duplicate freezes for the same (streak, date) are allowed by the
// schema; they are wasteful but harmless since the walk only asks
// whether any freeze exists on a day.
type StreakFreeze struct {
	ID        string    `db:"id"`
	StreakID  string    `db:"streak_id"`
	Date      string    `db:"date"`
	Reason    *string   `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}
