package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mkarlsen/swiss-gambit/internal/swiss"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StandingsHandler returns per-tournament standings when a 'tournament' query
// parameter is given, otherwise the global standings across all players.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok, err := tournamentParam(r)
		if err != nil {
			http.Error(w, "Invalid tournament id", http.StatusBadRequest)
			return
		}

		standings, err := s.standingsFor(tournamentID, ok)
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}
		writeJSON(w, standings)
	}
}

func (s *Server) standingsFor(tournamentID int64, scoped bool) (any, error) {
	if scoped {
		return s.Store.Standings(tournamentID)
	}
	return s.Store.AllStandings()
}

func (s *Server) PairingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok, err := tournamentParam(r)
		if err != nil || !ok {
			http.Error(w, "Missing or invalid tournament id", http.StatusBadRequest)
			return
		}

		pairings, err := s.Engine.Pairings(tournamentID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		s.Counters.Increment("pairings_computed")
		writeJSON(w, pairings)
	}
}

func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			standings, err := s.Store.AllStandings()
			if err != nil {
				http.Error(w, "Failed to get players", http.StatusInternalServerError)
				log.Error("Failed to get players from store", "error", err)
				return
			}
			writeJSON(w, standings)
		case http.MethodPost:
			var req struct {
				Name string `json:"name"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
			id, err := s.Store.RegisterPlayer(req.Name)
			if err != nil {
				http.Error(w, "Failed to register player", http.StatusInternalServerError)
				log.Error("Failed to register player", "error", err, "name", req.Name)
				return
			}
			writeJSONStatus(w, http.StatusCreated, map[string]int64{"player_id": id})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Name     string `json:"name"`
			Capacity int    `json:"capacity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		id, err := s.Store.CreateTournament(req.Name, req.Capacity)
		if err != nil {
			http.Error(w, "Failed to create tournament", http.StatusInternalServerError)
			log.Error("Failed to create tournament", "error", err, "name", req.Name)
			return
		}
		writeJSONStatus(w, http.StatusCreated, map[string]int64{"tournament_id": id})
	}
}

func (s *Server) EnterTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			PlayerID     int64 `json:"player_id"`
			TournamentID int64 `json:"tournament_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := s.Store.AddEntrant(req.PlayerID, req.TournamentID); err != nil {
			http.Error(w, "Failed to add entrant", http.StatusInternalServerError)
			log.Error("Failed to add entrant", "error", err, "playerID", req.PlayerID, "tournamentID", req.TournamentID)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

func (s *Server) ReportMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			WinnerID     int64 `json:"winner_id"`
			LoserID      int64 `json:"loser_id"`
			TournamentID int64 `json:"tournament_id"`
			Tie          bool  `json:"tie"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		matchID, err := s.Engine.ReportMatch(req.WinnerID, req.LoserID, req.TournamentID, req.Tie)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		s.Counters.Increment("matches_recorded")
		writeJSONStatus(w, http.StatusCreated, map[string]string{"match_id": matchID})
	}
}

func (s *Server) ReportByeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			PlayerID     int64 `json:"player_id"`
			TournamentID int64 `json:"tournament_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := s.Engine.ReportBye(req.PlayerID, req.TournamentID); err != nil {
			writeEngineError(w, err)
			return
		}
		s.Counters.Increment("byes_granted")
		w.WriteHeader(http.StatusCreated)
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Counters.GetAll()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get stats from store", "error", err)
			return
		}
		writeJSON(w, stats)
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := r.URL.Query().Get("scope")
		switch scope {
		case "matches":
			deleted, err := s.Store.ClearMatches()
			if err != nil {
				http.Error(w, "Failed to clear matches", http.StatusInternalServerError)
				log.Error("Failed to clear matches", "error", err)
				return
			}
			fmt.Fprintf(w, "Cleared %d match rows!", deleted)
		case "players":
			deleted, err := s.Store.ClearPlayers()
			if err != nil {
				http.Error(w, "Failed to clear players", http.StatusInternalServerError)
				log.Error("Failed to clear players", "error", err)
				return
			}
			fmt.Fprintf(w, "Cleared %d players!", deleted)
		default:
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			fmt.Fprint(w, "Store cleared!")
		}
	}
}

// writeEngineError maps engine domain errors onto HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, swiss.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, swiss.ErrAlreadyByed),
		errors.Is(err, swiss.ErrNoEligiblePlayer),
		errors.Is(err, swiss.ErrNoValidPairing):
		status = http.StatusConflict
	}
	log.Error("Engine operation failed", "error", err, "status", status)
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func tournamentParam(r *http.Request) (int64, bool, error) {
	raw := r.URL.Query().Get("tournament")
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
