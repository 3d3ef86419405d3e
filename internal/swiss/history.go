package swiss

import (
	"errors"
	"fmt"

	"github.com/mkarlsen/swiss-gambit/internal/tournament"
)

// Opponents returns the set of distinct players that playerID has faced in
// non-bye matches within the tournament. The set is empty if none were played.
func (e *Engine) Opponents(playerID, tournamentID int64) (map[int64]struct{}, error) {
	ids, err := e.store.Opponents(playerID, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	opponents := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		opponents[id] = struct{}{}
	}
	return opponents, nil
}

// HasReceivedBye reports whether the entrant already holds a bye.
func (e *Engine) HasReceivedBye(playerID, tournamentID int64) (bool, error) {
	byed, err := e.store.HasBye(playerID, tournamentID)
	if err != nil {
		if errors.Is(err, tournament.ErrEntrantNotFound) {
			return false, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return false, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return byed, nil
}

// OpponentMatchWins sums the current win counts of every opponent the player
// has faced in the tournament. A player with no recorded non-bye matches has
// an OMW of 0, not undefined.
func (e *Engine) OpponentMatchWins(playerID, tournamentID int64) (int, error) {
	ids, err := e.store.Opponents(playerID, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	sum, err := e.store.SumWins(ids)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return sum, nil
}
