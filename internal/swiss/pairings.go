package swiss

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkarlsen/swiss-gambit/internal/tournament"
)

// Pairing is one matchup of the next round.
type Pairing struct {
	PlayerID     int64  `json:"player_id"`
	PlayerName   string `json:"player_name"`
	OpponentID   int64  `json:"opponent_id"`
	OpponentName string `json:"opponent_name"`
}

// Pairings computes the next round of a tournament. Players are paired with
// an opponent of equal or nearly-equal win record and never face the same
// opponent twice. If the field is odd, the lowest-ranked player without a bye
// is granted one before pairing.
//
// Granting the bye mutates standings, so a successful call is not a pure read
// on odd fields.
func (e *Engine) Pairings(tournamentID int64) ([]Pairing, error) {
	start := time.Now()

	standings, err := e.store.Standings(tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	ranked, err := e.Rank(standings, tournamentID)
	if err != nil {
		return nil, err
	}

	if len(ranked)%2 != 0 {
		ranked, err = e.grantByeFromBottom(ranked, tournamentID)
		if err != nil {
			return nil, err
		}
	}

	pairings := make([]Pairing, 0, len(ranked)/2)
	pool := ranked
	for len(pool) > 0 {
		player := pool[0]
		pool = pool[1:]

		faced, err := e.Opponents(player.PlayerID, tournamentID)
		if err != nil {
			return nil, err
		}

		matched := false
		for i, candidate := range pool {
			if _, rematch := faced[candidate.PlayerID]; rematch {
				continue
			}
			pairings = append(pairings, Pairing{
				PlayerID:     player.PlayerID,
				PlayerName:   player.Name,
				OpponentID:   candidate.PlayerID,
				OpponentName: candidate.Name,
			})
			pool = append(pool[:i], pool[i+1:]...)
			matched = true
			break
		}
		if !matched {
			return nil, fmt.Errorf("player %d (%s) has faced every remaining candidate: %w",
				player.PlayerID, player.Name, ErrNoValidPairing)
		}
	}

	e.metrics.IncPairingsComputed()
	e.metrics.ObservePairingDuration(time.Since(start).Seconds())
	log.Info("Computed pairings", "tournamentID", tournamentID, "pairs", len(pairings))
	return pairings, nil
}

// grantByeFromBottom scans the ranked list from the end and gives a bye to
// the first player who does not already hold one, removing them from the
// round.
func (e *Engine) grantByeFromBottom(ranked []tournament.Standing, tournamentID int64) ([]tournament.Standing, error) {
	for i := len(ranked) - 1; i >= 0; i-- {
		byed, err := e.HasReceivedBye(ranked[i].PlayerID, tournamentID)
		if err != nil {
			return nil, err
		}
		if byed {
			continue
		}
		if err := e.ReportBye(ranked[i].PlayerID, tournamentID); err != nil {
			return nil, err
		}
		return append(ranked[:i:i], ranked[i+1:]...), nil
	}
	return nil, fmt.Errorf("tournament %d: %w", tournamentID, ErrNoEligiblePlayer)
}
