package tournament

// Store defines the interface for interacting with tournament data.
type Store interface {
	RegisterPlayer(name string) (int64, error)
	CountPlayers() (int, error)
	CreateTournament(name string, capacity int) (int64, error)
	AddEntrant(playerID, tournamentID int64) error
	IsEntrant(playerID, tournamentID int64) (bool, error)

	// Standings returns the entrants of a tournament sorted descending by
	// wins. Ties are broken arbitrarily by the store.
	Standings(tournamentID int64) ([]Standing, error)
	// AllStandings returns every registered player sorted descending by wins.
	AllStandings() ([]Standing, error)

	HasBye(playerID, tournamentID int64) (bool, error)
	Opponents(playerID, tournamentID int64) ([]int64, error)
	SumWins(playerIDs []int64) (int, error)

	// Record persists an outcome atomically: match rows, counter updates and
	// (for byes) the entrant flag either all land or none do.
	Record(tournamentID int64, outcome Outcome) (string, error)

	ClearMatches() (int64, error)
	ClearPlayers() (int64, error)
	Clear()
}
