package tournament_test

import (
	"database/sql"
	"testing"

	"github.com/mkarlsen/swiss-gambit/internal/database"
	"github.com/mkarlsen/swiss-gambit/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (tournament.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := tournament.New(db)
	teardown := func() {
		dbTeardown()
	}

	return store, db, teardown
}

// enter registers a player and adds them to the tournament.
func enter(t *testing.T, store tournament.Store, name string, tournamentID int64) int64 {
	t.Helper()
	playerID, err := store.RegisterPlayer(name)
	require.NoError(t, err)
	require.NoError(t, store.AddEntrant(playerID, tournamentID))
	return playerID
}

func TestRegisterAndCountPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	count, err := store.CountPlayers()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	id1, err := store.RegisterPlayer("Bruno Walton")
	require.NoError(t, err)
	id2, err := store.RegisterPlayer("Boots O'Neal")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	count, err = store.CountPlayers()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddEntrant(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tournamentID, err := store.CreateTournament("Club Open", 8)
	require.NoError(t, err)
	playerID, err := store.RegisterPlayer("Cathy Burton")
	require.NoError(t, err)

	require.NoError(t, store.AddEntrant(playerID, tournamentID))

	ok, err := store.IsEntrant(playerID, tournamentID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.IsEntrant(playerID, tournamentID+1)
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("unknown player", func(t *testing.T) {
		err := store.AddEntrant(999, tournamentID)
		assert.ErrorIs(t, err, tournament.ErrEntrantNotFound)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		err := store.AddEntrant(playerID, 999)
		assert.ErrorIs(t, err, tournament.ErrEntrantNotFound)
	})
}

func TestStandingsScopedToTournament(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	t1, err := store.CreateTournament("Spring", 4)
	require.NoError(t, err)
	t2, err := store.CreateTournament("Autumn", 4)
	require.NoError(t, err)

	enter(t, store, "Alice", t1)
	enter(t, store, "Bob", t1)
	p3 := enter(t, store, "Carol", t2)

	standings, err := store.Standings(t1)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	for _, st := range standings {
		assert.NotEqual(t, p3, st.PlayerID)
		assert.Zero(t, st.Wins)
		assert.Zero(t, st.Matches)
	}

	all, err := store.AllStandings()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStandingsSortedByWins(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tid, err := store.CreateTournament("Ladder", 4)
	require.NoError(t, err)
	p1 := enter(t, store, "Alice", tid)
	p2 := enter(t, store, "Bob", tid)
	p3 := enter(t, store, "Carol", tid)
	p4 := enter(t, store, "Dave", tid)

	_, err = store.Record(tid, tournament.Played{Winner: p3, Loser: p1})
	require.NoError(t, err)
	_, err = store.Record(tid, tournament.Played{Winner: p3, Loser: p2})
	require.NoError(t, err)
	_, err = store.Record(tid, tournament.Played{Winner: p4, Loser: p1})
	require.NoError(t, err)

	standings, err := store.Standings(tid)
	require.NoError(t, err)
	require.Len(t, standings, 4)
	assert.Equal(t, p3, standings[0].PlayerID)
	assert.Equal(t, p4, standings[1].PlayerID)
	for i := 1; i < len(standings); i++ {
		assert.GreaterOrEqual(t, standings[i-1].Wins, standings[i].Wins)
	}
}

func TestRecordPlayedMatch(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	tid, err := store.CreateTournament("Club Open", 4)
	require.NoError(t, err)
	winner := enter(t, store, "Alice", tid)
	loser := enter(t, store, "Bob", tid)

	matchID, err := store.Record(tid, tournament.Played{Winner: winner, Loser: loser})
	require.NoError(t, err)
	require.NotEmpty(t, matchID)

	// Two rows share the match id, with complementary result kinds.
	rows, err := db.Query("SELECT player_id, result FROM matches WHERE id = ?", matchID)
	require.NoError(t, err)
	defer rows.Close()

	results := make(map[int64]string)
	for rows.Next() {
		var playerID int64
		var result string
		require.NoError(t, rows.Scan(&playerID, &result))
		results[playerID] = result
	}
	require.Len(t, results, 2)
	assert.Equal(t, "WIN", results[winner])
	assert.Equal(t, "LOSS", results[loser])

	standings, err := store.Standings(tid)
	require.NoError(t, err)
	for _, st := range standings {
		assert.Equal(t, 1, st.Matches)
		if st.PlayerID == winner {
			assert.Equal(t, 1, st.Wins)
		} else {
			assert.Equal(t, 0, st.Wins)
		}
	}
}

func TestRecordTie(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	tid, err := store.CreateTournament("Club Open", 4)
	require.NoError(t, err)
	p1 := enter(t, store, "Alice", tid)
	p2 := enter(t, store, "Bob", tid)

	matchID, err := store.Record(tid, tournament.Played{Winner: p1, Loser: p2, Tie: true})
	require.NoError(t, err)

	var tieRows int
	require.NoError(t, db.QueryRow(
		"SELECT count(*) FROM matches WHERE id = ? AND result = 'TIE'", matchID,
	).Scan(&tieRows))
	assert.Equal(t, 2, tieRows)

	// Ties count as wins for both players.
	standings, err := store.Standings(tid)
	require.NoError(t, err)
	for _, st := range standings {
		assert.Equal(t, 1, st.Wins)
		assert.Equal(t, 1, st.Matches)
	}
}

func TestRecordMatchNonEntrantRollsBack(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	tid, err := store.CreateTournament("Club Open", 4)
	require.NoError(t, err)
	entrant := enter(t, store, "Alice", tid)
	outsider, err := store.RegisterPlayer("Mallory")
	require.NoError(t, err)

	_, err = store.Record(tid, tournament.Played{Winner: entrant, Loser: outsider})
	assert.ErrorIs(t, err, tournament.ErrEntrantNotFound)

	var matchRows int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM matches").Scan(&matchRows))
	assert.Equal(t, 0, matchRows)

	standings, err := store.Standings(tid)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Zero(t, standings[0].Matches)
}

func TestRecordBye(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	tid, err := store.CreateTournament("Club Open", 4)
	require.NoError(t, err)
	playerID := enter(t, store, "Alice", tid)

	byed, err := store.HasBye(playerID, tid)
	require.NoError(t, err)
	assert.False(t, byed)

	matchID, err := store.Record(tid, tournament.Bye{Player: playerID})
	require.NoError(t, err)

	byed, err = store.HasBye(playerID, tid)
	require.NoError(t, err)
	assert.True(t, byed)

	// A bye is a single row with no opponent.
	var byeRows int
	require.NoError(t, db.QueryRow(
		"SELECT count(*) FROM matches WHERE id = ?", matchID,
	).Scan(&byeRows))
	assert.Equal(t, 1, byeRows)

	standings, err := store.Standings(tid)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, 1, standings[0].Wins)
	assert.Equal(t, 1, standings[0].Matches)

	t.Run("second bye is rejected", func(t *testing.T) {
		_, err := store.Record(tid, tournament.Bye{Player: playerID})
		assert.ErrorIs(t, err, tournament.ErrByeAlreadyReceived)
	})

	t.Run("bye for non-entrant", func(t *testing.T) {
		_, err := store.Record(tid, tournament.Bye{Player: 999})
		assert.ErrorIs(t, err, tournament.ErrEntrantNotFound)
	})

	t.Run("bye flag for non-entrant", func(t *testing.T) {
		_, err := store.HasBye(999, tid)
		assert.ErrorIs(t, err, tournament.ErrEntrantNotFound)
	})
}

func TestOpponents(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tid, err := store.CreateTournament("Club Open", 4)
	require.NoError(t, err)
	p1 := enter(t, store, "Alice", tid)
	p2 := enter(t, store, "Bob", tid)
	p3 := enter(t, store, "Carol", tid)

	opponents, err := store.Opponents(p1, tid)
	require.NoError(t, err)
	assert.Empty(t, opponents)

	_, err = store.Record(tid, tournament.Played{Winner: p1, Loser: p2})
	require.NoError(t, err)
	_, err = store.Record(tid, tournament.Played{Winner: p3, Loser: p1})
	require.NoError(t, err)
	_, err = store.Record(tid, tournament.Bye{Player: p1})
	require.NoError(t, err)

	opponents, err = store.Opponents(p1, tid)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{p2, p3}, opponents)

	opponents, err = store.Opponents(p2, tid)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{p1}, opponents)
}

func TestSumWins(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tid, err := store.CreateTournament("Club Open", 4)
	require.NoError(t, err)
	p1 := enter(t, store, "Alice", tid)
	p2 := enter(t, store, "Bob", tid)
	p3 := enter(t, store, "Carol", tid)

	_, err = store.Record(tid, tournament.Played{Winner: p1, Loser: p2})
	require.NoError(t, err)
	_, err = store.Record(tid, tournament.Played{Winner: p3, Loser: p2})
	require.NoError(t, err)

	sum, err := store.SumWins([]int64{p1, p3})
	require.NoError(t, err)
	assert.Equal(t, 2, sum)

	sum, err = store.SumWins([]int64{p2})
	require.NoError(t, err)
	assert.Equal(t, 0, sum)

	t.Run("empty id list", func(t *testing.T) {
		sum, err := store.SumWins(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, sum)
	})
}

func TestClear(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	tid, err := store.CreateTournament("Club Open", 4)
	require.NoError(t, err)
	p1 := enter(t, store, "Alice", tid)
	p2 := enter(t, store, "Bob", tid)
	_, err = store.Record(tid, tournament.Played{Winner: p1, Loser: p2})
	require.NoError(t, err)

	t.Run("clear matches resets counters and byes", func(t *testing.T) {
		deleted, err := store.ClearMatches()
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		standings, err := store.Standings(tid)
		require.NoError(t, err)
		for _, st := range standings {
			assert.Zero(t, st.Wins)
			assert.Zero(t, st.Matches)
		}
	})

	t.Run("clear everything", func(t *testing.T) {
		store.Clear()
		for _, table := range []string{"players", "tournaments", "entrants", "matches"} {
			var count int
			require.NoError(t, db.QueryRow("SELECT count(*) FROM "+table).Scan(&count))
			assert.Zero(t, count, "table %s not empty", table)
		}
	})
}
