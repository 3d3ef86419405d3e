package swiss

import (
	"sort"

	"github.com/mkarlsen/swiss-gambit/internal/tournament"
)

// Rank re-orders players with equal win counts by the strength of the
// opponents they have faced, measured as the sum of those opponents' match
// wins (OMW).
//
// The comparator is deliberately one-sided: A ranks before B only when their
// wins are equal and A's OMW is strictly greater. Equal OMW and unequal wins
// both leave the incoming order untouched. This is not a total order, so the
// result depends on sort stability; the incoming relative order (wins
// descending, store tie order) is preserved wherever the comparator does not
// strictly prefer one player.
func (e *Engine) Rank(standings []tournament.Standing, tournamentID int64) ([]tournament.Standing, error) {
	// OMW only matters inside equal-wins groups, so skip the lookups for
	// players whose win count is unique.
	winCounts := make(map[int]int, len(standings))
	for _, st := range standings {
		winCounts[st.Wins]++
	}

	omw := make(map[int64]int, len(standings))
	for _, st := range standings {
		if winCounts[st.Wins] < 2 {
			continue
		}
		wins, err := e.OpponentMatchWins(st.PlayerID, tournamentID)
		if err != nil {
			return nil, err
		}
		omw[st.PlayerID] = wins
	}

	ranked := make([]tournament.Standing, len(standings))
	copy(ranked, standings)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Wins == ranked[j].Wins &&
			omw[ranked[i].PlayerID] > omw[ranked[j].PlayerID]
	})

	return ranked, nil
}
