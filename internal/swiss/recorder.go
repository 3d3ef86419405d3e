package swiss

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mkarlsen/swiss-gambit/internal/tournament"
)

// ReportMatch records the outcome of a single match between two entrants.
// In the event of a tie both players are considered winners. It returns the
// shared id of the recorded match.
func (e *Engine) ReportMatch(winnerID, loserID, tournamentID int64, tie bool) (string, error) {
	for _, playerID := range []int64{winnerID, loserID} {
		ok, err := e.store.IsEntrant(playerID, tournamentID)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStore, err)
		}
		if !ok {
			return "", fmt.Errorf("player %d in tournament %d: %w", playerID, tournamentID, ErrNotFound)
		}
	}

	matchID, err := e.store.Record(tournamentID, tournament.Played{Winner: winnerID, Loser: loserID, Tie: tie})
	if err != nil {
		return "", mapStoreError(err)
	}

	e.metrics.IncMatchesRecorded()
	log.Info("Reported match", "matchID", matchID, "winner", winnerID, "loser", loserID, "tournamentID", tournamentID, "tie", tie)
	return matchID, nil
}

// ReportBye grants a bye to an entrant. At most one bye per player per
// tournament; the store re-validates the flag even though callers are
// expected to check first.
func (e *Engine) ReportBye(playerID, tournamentID int64) error {
	byed, err := e.HasReceivedBye(playerID, tournamentID)
	if err != nil {
		return err
	}
	if byed {
		return fmt.Errorf("player %d in tournament %d: %w", playerID, tournamentID, ErrAlreadyByed)
	}

	if _, err := e.store.Record(tournamentID, tournament.Bye{Player: playerID}); err != nil {
		return mapStoreError(err)
	}

	e.metrics.IncByesGranted()
	log.Info("Reported bye", "playerID", playerID, "tournamentID", tournamentID)
	return nil
}

// mapStoreError translates store sentinels into the engine's domain errors.
// Anything unexpected is surfaced as a store failure.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, tournament.ErrEntrantNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, tournament.ErrByeAlreadyReceived):
		return fmt.Errorf("%w: %v", ErrAlreadyByed, err)
	default:
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
}
