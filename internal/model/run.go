package model

import (
	"time"
)

// Run is a single recorded run. Dates are calendar-day strings
// (YYYY-MM-DD) with no time component, so streak math never has to
// reason about timezones. Rows are immutable once created except for
// deletion.
type Run struct {
	ID              string    `db:"id"`
	Date            string    `db:"date"`
	DistanceKm      float64   `db:"distance_km"`
	DurationSeconds int       `db:"duration_seconds"`
	PaceMinPerKm    float64   `db:"pace_min_per_km"`
	CreatedAt       time.Time `db:"created_at"`
}

// Qualifies reports whether the run counts toward a streak under the
// given minimum distance (km) and duration (seconds).
func (r *Run) Qualifies(minDistanceKm float64, minDurationSeconds int) bool {
	return r.DistanceKm >= minDistanceKm && r.DurationSeconds >= minDurationSeconds
}
