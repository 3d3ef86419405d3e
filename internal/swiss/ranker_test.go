package swiss_test

import (
	"testing"

	"github.com/mkarlsen/swiss-gambit/internal/metrics"
	"github.com/mkarlsen/swiss-gambit/internal/swiss"
	"github.com/mkarlsen/swiss-gambit/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rankerEngine builds an engine over a scripted store: each player's
// opponents and every player's win count are fixed up front.
func rankerEngine(opponents map[int64][]int64, wins map[int64]int) *swiss.Engine {
	mockStore := tournament.NewMock()
	mockStore.OpponentsFunc = func(playerID, tournamentID int64) ([]int64, error) {
		return opponents[playerID], nil
	}
	mockStore.SumWinsFunc = func(playerIDs []int64) (int, error) {
		sum := 0
		for _, id := range playerIDs {
			sum += wins[id]
		}
		return sum, nil
	}
	return swiss.New(mockStore, metrics.NewMock())
}

func TestOpponentMatchWinsZeroWithoutMatches(t *testing.T) {
	engine, store, _, teardown := setupTestEngine(t)
	defer teardown()

	tid, ids := enterPlayers(t, store, "Alice")

	omw, err := engine.OpponentMatchWins(ids[0], tid)
	require.NoError(t, err)
	assert.Equal(t, 0, omw)
}

func TestRankReordersEqualWinsByOMW(t *testing.T) {
	// Players 2 and 3 both hold 1 win. Player 3 has faced a 2-win opponent,
	// player 2 only a 1-win opponent, so player 3 ranks first despite
	// arriving second.
	engine := rankerEngine(
		map[int64][]int64{
			2: {10},
			3: {11},
		},
		map[int64]int{10: 1, 11: 2},
	)

	standings := []tournament.Standing{
		{PlayerID: 1, Name: "Alice", Wins: 2},
		{PlayerID: 2, Name: "Bob", Wins: 1},
		{PlayerID: 3, Name: "Carol", Wins: 1},
		{PlayerID: 4, Name: "Dave", Wins: 0},
	}

	ranked, err := engine.Rank(standings, 1)
	require.NoError(t, err)

	got := make([]int64, len(ranked))
	for i, st := range ranked {
		got[i] = st.PlayerID
	}
	assert.Equal(t, []int64{1, 3, 2, 4}, got)

	// The input slice is left untouched.
	assert.Equal(t, int64(2), standings[1].PlayerID)
}

func TestRankPreservesOrderOnEqualOMW(t *testing.T) {
	engine := rankerEngine(
		map[int64][]int64{
			1: {10},
			2: {11},
			3: {12},
		},
		map[int64]int{10: 1, 11: 1, 12: 1},
	)

	standings := []tournament.Standing{
		{PlayerID: 1, Name: "Alice", Wins: 1},
		{PlayerID: 2, Name: "Bob", Wins: 1},
		{PlayerID: 3, Name: "Carol", Wins: 1},
	}

	ranked, err := engine.Rank(standings, 1)
	require.NoError(t, err)

	got := make([]int64, len(ranked))
	for i, st := range ranked {
		got[i] = st.PlayerID
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestRankNeverCrossesWinGroups(t *testing.T) {
	// A huge OMW cannot promote a player past someone with more wins.
	engine := rankerEngine(
		map[int64][]int64{
			2: {10},
			3: {11},
		},
		map[int64]int{10: 100, 11: 100},
	)

	standings := []tournament.Standing{
		{PlayerID: 1, Name: "Alice", Wins: 2},
		{PlayerID: 2, Name: "Bob", Wins: 1},
		{PlayerID: 3, Name: "Carol", Wins: 1},
	}

	ranked, err := engine.Rank(standings, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ranked[0].PlayerID)
}

func TestRankSkipsOMWForUniqueWinCounts(t *testing.T) {
	mockStore := tournament.NewMock()
	engine := swiss.New(mockStore, metrics.NewMock())

	standings := []tournament.Standing{
		{PlayerID: 1, Name: "Alice", Wins: 3},
		{PlayerID: 2, Name: "Bob", Wins: 2},
		{PlayerID: 3, Name: "Carol", Wins: 1},
	}

	ranked, err := engine.Rank(standings, 1)
	require.NoError(t, err)
	assert.Len(t, ranked, 3)
	assert.Empty(t, mockStore.OpponentsCalls)
}

func TestRankByOpponentMatchWinsIntegration(t *testing.T) {
	engine, store, _, teardown := setupTestEngine(t)
	defer teardown()

	tid, ids := enterPlayers(t, store, "Alice", "Bob", "Carol", "Dave")
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]

	// Round 1: A beats B, C beats D. Round 2: A beats C.
	_, err := engine.ReportMatch(a, b, tid, false)
	require.NoError(t, err)
	_, err = engine.ReportMatch(c, d, tid, false)
	require.NoError(t, err)
	_, err = engine.ReportMatch(a, c, tid, false)
	require.NoError(t, err)

	// B and D are tied at zero wins, but B lost to the 2-win player.
	omwB, err := engine.OpponentMatchWins(b, tid)
	require.NoError(t, err)
	omwD, err := engine.OpponentMatchWins(d, tid)
	require.NoError(t, err)
	assert.Equal(t, 2, omwB)
	assert.Equal(t, 1, omwD)

	standings, err := store.Standings(tid)
	require.NoError(t, err)
	ranked, err := engine.Rank(standings, tid)
	require.NoError(t, err)

	require.Len(t, ranked, 4)
	assert.Equal(t, a, ranked[0].PlayerID)
	assert.Equal(t, c, ranked[1].PlayerID)
	assert.Equal(t, b, ranked[2].PlayerID)
	assert.Equal(t, d, ranked[3].PlayerID)
}
