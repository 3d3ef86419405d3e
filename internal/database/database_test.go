package database_test

import (
	"path/filepath"
	"testing"

	"github.com/mkarlsen/swiss-gambit/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDBCreatesSchema(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	for _, table := range []string{"players", "tournaments", "entrants", "matches", "metrics"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		assert.NoError(t, err, "expected table %s to exist", table)
	}
}

func TestInitDBIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "swiss.db")

	db, teardown, err := database.InitDB(dbPath, "", "", "../../migrations")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO players (name) VALUES ('Alice')")
	require.NoError(t, err)
	teardown()

	// Reopening the same file must not re-run migrations or lose data.
	db, teardown, err = database.InitDB(dbPath, "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	var count int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM players").Scan(&count))
	assert.Equal(t, 1, count)
}
