package swiss_test

import (
	"testing"

	"github.com/mkarlsen/swiss-gambit/internal/database"
	"github.com/mkarlsen/swiss-gambit/internal/metrics"
	"github.com/mkarlsen/swiss-gambit/internal/swiss"
	"github.com/mkarlsen/swiss-gambit/internal/tournament"
	"github.com/stretchr/testify/require"
)

// setupTestEngine wires an engine to a real in-memory store.
func setupTestEngine(t *testing.T) (*swiss.Engine, tournament.Store, *metrics.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := tournament.New(db)
	mock := metrics.NewMock()
	engine := swiss.New(store, mock)

	return engine, store, mock, dbTeardown
}

// enterPlayers registers the named players and enters them all into a new
// tournament, returning the tournament id and player ids in order.
func enterPlayers(t *testing.T, store tournament.Store, names ...string) (int64, []int64) {
	t.Helper()

	tournamentID, err := store.CreateTournament("Test Swiss", len(names))
	require.NoError(t, err)

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		playerID, err := store.RegisterPlayer(name)
		require.NoError(t, err)
		require.NoError(t, store.AddEntrant(playerID, tournamentID))
		ids = append(ids, playerID)
	}
	return tournamentID, ids
}
