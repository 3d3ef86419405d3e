package tournament

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	ErrEntrantNotFound    = errors.New("entrant not found")
	ErrByeAlreadyReceived = errors.New("bye already received")
)

// New creates a new tournament Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) RegisterPlayer(name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("INSERT INTO players (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("failed to register player: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Info("Registered player", "playerID", id, "name", name)
	return id, nil
}

func (s *store) CountPlayers() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT count(id) FROM players").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (s *store) CreateTournament(name string, capacity int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("INSERT INTO tournaments (name, capacity) VALUES (?, ?)", name, capacity)
	if err != nil {
		return 0, fmt.Errorf("failed to create tournament: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Info("Created tournament", "tournamentID", id, "name", name, "capacity", capacity)
	return id, nil
}

func (s *store) AddEntrant(playerID, tournamentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("player %d: %w", playerID, ErrEntrantNotFound)
	}
	err = s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM tournaments WHERE id = ?)", tournamentID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("tournament %d: %w", tournamentID, ErrEntrantNotFound)
	}

	_, err = s.db.Exec("INSERT INTO entrants (player_id, tournament_id) VALUES (?, ?)", playerID, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to add entrant: %w", err)
	}
	log.Info("Added entrant", "playerID", playerID, "tournamentID", tournamentID)
	return nil
}

func (s *store) IsEntrant(playerID, tournamentID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM entrants WHERE player_id = ? AND tournament_id = ?)",
		playerID, tournamentID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *store) Standings(tournamentID int64) ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.wins, p.matches
		FROM players p
		JOIN entrants e ON p.id = e.player_id
		WHERE e.tournament_id = ?
		ORDER BY p.wins DESC
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	return scanStandings(rows)
}

func (s *store) AllStandings() ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, wins, matches FROM players ORDER BY wins DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	return scanStandings(rows)
}

func scanStandings(rows *sql.Rows) ([]Standing, error) {
	var standings []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.PlayerID, &st.Name, &st.Wins, &st.Matches); err != nil {
			return nil, err
		}
		standings = append(standings, st)
	}
	return standings, rows.Err()
}

func (s *store) HasBye(playerID, tournamentID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bye bool
	err := s.db.QueryRow(
		"SELECT bye FROM entrants WHERE player_id = ? AND tournament_id = ?",
		playerID, tournamentID,
	).Scan(&bye)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, fmt.Errorf("player %d in tournament %d: %w", playerID, tournamentID, ErrEntrantNotFound)
		}
		return false, err
	}
	return bye, nil
}

// Opponents returns the distinct players faced in non-bye matches. Bye rows
// never join against a second row, so they drop out naturally.
func (s *store) Opponents(playerID, tournamentID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT DISTINCT other.player_id
		FROM matches own
		JOIN matches other ON own.id = other.id AND other.player_id != own.player_id
		WHERE own.player_id = ? AND own.tournament_id = ?
	`, playerID, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query opponents: %w", err)
	}
	defer rows.Close()

	var opponents []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		opponents = append(opponents, id)
	}
	return opponents, rows.Err()
}

func (s *store) SumWins(playerIDs []int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(playerIDs) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(wins), 0) FROM players WHERE id IN (%s)",
		placeholders(len(playerIDs)),
	)
	var sum int
	if err := s.db.QueryRow(query, toAnySlice(playerIDs)...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum wins: %w", err)
	}
	return sum, nil
}

func (s *store) Record(tournamentID int64, outcome Outcome) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch o := outcome.(type) {
	case Played:
		return s.recordPlayed(tournamentID, o)
	case Bye:
		return s.recordBye(tournamentID, o)
	default:
		return "", fmt.Errorf("unknown outcome type %T", outcome)
	}
}

func (s *store) recordPlayed(tournamentID int64, o Played) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}

	for _, playerID := range []int64{o.Winner, o.Loser} {
		var exists bool
		err := tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM entrants WHERE player_id = ? AND tournament_id = ?)",
			playerID, tournamentID,
		).Scan(&exists)
		if err != nil {
			tx.Rollback()
			return "", err
		}
		if !exists {
			tx.Rollback()
			return "", fmt.Errorf("player %d in tournament %d: %w", playerID, tournamentID, ErrEntrantNotFound)
		}
	}

	winnerResult, loserResult := ResultWin, ResultLoss
	if o.Tie {
		winnerResult, loserResult = ResultTie, ResultTie
	}

	// Two rows share the match id, one per participant.
	matchID := uuid.New().String()
	if err := insertMatchRow(tx, matchID, o.Winner, tournamentID, winnerResult); err != nil {
		tx.Rollback()
		return "", err
	}
	if err := insertMatchRow(tx, matchID, o.Loser, tournamentID, loserResult); err != nil {
		tx.Rollback()
		return "", err
	}

	if err := incrementMatchesPlayed(tx, o.Winner, o.Loser); err != nil {
		tx.Rollback()
		return "", err
	}
	if err := incrementWins(tx, o.Winner); err != nil {
		tx.Rollback()
		return "", err
	}
	// Ties count as wins for both players.
	if o.Tie {
		if err := incrementWins(tx, o.Loser); err != nil {
			tx.Rollback()
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	log.Info("Recorded match", "matchID", matchID, "winner", o.Winner, "loser", o.Loser, "tournamentID", tournamentID, "tie", o.Tie)
	return matchID, nil
}

func (s *store) recordBye(tournamentID int64, o Bye) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}

	// Idempotent set-true. Zero rows affected means the entrant is missing
	// or already holds a bye.
	res, err := tx.Exec(
		"UPDATE entrants SET bye = 1 WHERE player_id = ? AND tournament_id = ? AND bye = 0",
		o.Player, tournamentID,
	)
	if err != nil {
		tx.Rollback()
		return "", err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return "", err
	}
	if affected == 0 {
		var exists bool
		err := tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM entrants WHERE player_id = ? AND tournament_id = ?)",
			o.Player, tournamentID,
		).Scan(&exists)
		tx.Rollback()
		if err != nil {
			return "", err
		}
		if !exists {
			return "", fmt.Errorf("player %d in tournament %d: %w", o.Player, tournamentID, ErrEntrantNotFound)
		}
		return "", fmt.Errorf("player %d in tournament %d: %w", o.Player, tournamentID, ErrByeAlreadyReceived)
	}

	matchID := uuid.New().String()
	if err := insertMatchRow(tx, matchID, o.Player, tournamentID, ResultBye); err != nil {
		tx.Rollback()
		return "", err
	}

	// A bye counts as a free win.
	if err := incrementMatchesPlayed(tx, o.Player); err != nil {
		tx.Rollback()
		return "", err
	}
	if err := incrementWins(tx, o.Player); err != nil {
		tx.Rollback()
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	log.Info("Recorded bye", "matchID", matchID, "playerID", o.Player, "tournamentID", tournamentID)
	return matchID, nil
}

func insertMatchRow(tx *sql.Tx, matchID string, playerID, tournamentID int64, result Result) error {
	_, err := tx.Exec(
		"INSERT INTO matches (id, player_id, tournament_id, result) VALUES (?, ?, ?, ?)",
		matchID, playerID, tournamentID, result,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match row: %w", err)
	}
	return nil
}

// incrementMatchesPlayed issues one single-row update per player inside the
// enclosing transaction.
func incrementMatchesPlayed(tx *sql.Tx, playerIDs ...int64) error {
	for _, playerID := range playerIDs {
		_, err := tx.Exec("UPDATE players SET matches = matches + 1 WHERE id = ?", playerID)
		if err != nil {
			return fmt.Errorf("failed to update matches played for player %d: %w", playerID, err)
		}
	}
	return nil
}

func incrementWins(tx *sql.Tx, playerID int64) error {
	_, err := tx.Exec("UPDATE players SET wins = wins + 1 WHERE id = ?", playerID)
	if err != nil {
		return fmt.Errorf("failed to update wins for player %d: %w", playerID, err)
	}
	return nil
}

func (s *store) ClearMatches() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	res, err := tx.Exec("DELETE FROM matches")
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	if _, err := tx.Exec("UPDATE entrants SET bye = 0"); err != nil {
		tx.Rollback()
		return 0, err
	}
	if _, err := tx.Exec("UPDATE players SET wins = 0, matches = 0"); err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info("Cleared matches", "deleted", deleted)
	return deleted, nil
}

func (s *store) ClearPlayers() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM players")
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	log.Info("Cleared players", "deleted", deleted)
	return deleted, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"matches", "entrants", "tournaments", "players", "metrics"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
