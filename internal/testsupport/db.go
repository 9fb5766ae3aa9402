// Package testsupport provides shared test fixtures.
package testsupport

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/stridelog/stridelog/internal/db"
)

// NewDB opens a migrated in-memory SQLite database. The pool is
// pinned to one connection because each in-memory connection is its
// own database.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}
