package tournament

import (
	"database/sql"
	"sync"
)

// store handles all database operations for tournaments.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Result is the outcome kind recorded on a single match row.
type Result string

const (
	ResultWin  Result = "WIN"
	ResultLoss Result = "LOSS"
	ResultTie  Result = "TIE"
	ResultBye  Result = "BYE"
)

// Standing is one row of the standings for a tournament. It is derived from
// player state on every query, never stored.
type Standing struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Matches  int    `json:"matches"`
}

// Outcome is the domain-level representation of a reported result. The store
// translates it into physical match rows: two rows sharing an id for a played
// match, a single BYE row for a bye.
type Outcome interface {
	outcome()
}

// Played is a completed match between two players. In the event of a tie both
// players are considered winners.
type Played struct {
	Winner int64
	Loser  int64
	Tie    bool
}

// Bye is a free win granted to a player with no opponent in a round.
type Bye struct {
	Player int64
}

func (Played) outcome() {}
func (Bye) outcome()    {}
