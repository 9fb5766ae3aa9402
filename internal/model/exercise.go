package model

import (
	"time"
)

// Exercise is a catalog entry for a strength exercise. IsCompound
// controls the weight increment the progression engine suggests.
type Exercise struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	IsCompound bool      `db:"is_compound"`
	CreatedAt  time.Time `db:"created_at"`
}
