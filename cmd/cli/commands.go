package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	tournamentID int64
	playerID     int64
	winnerID     int64
	loserID      int64
	tie          bool
	playerName   string
	capacity     int
	clearScope   string
)

func init() {
	standingsCmd.Flags().Int64Var(&tournamentID, "tournament", 0, "Tournament id (omit for global standings)")
	pairingsCmd.Flags().Int64Var(&tournamentID, "tournament", 0, "Tournament id")
	pairingsCmd.MarkFlagRequired("tournament")

	registerCmd.Flags().StringVar(&playerName, "name", "", "Player name")
	registerCmd.MarkFlagRequired("name")

	createTournamentCmd.Flags().StringVar(&playerName, "name", "", "Tournament name")
	createTournamentCmd.Flags().IntVar(&capacity, "capacity", 0, "Entrant capacity")
	createTournamentCmd.MarkFlagRequired("name")

	enterCmd.Flags().Int64Var(&playerID, "player", 0, "Player id")
	enterCmd.Flags().Int64Var(&tournamentID, "tournament", 0, "Tournament id")
	enterCmd.MarkFlagRequired("player")
	enterCmd.MarkFlagRequired("tournament")

	reportCmd.Flags().Int64Var(&winnerID, "winner", 0, "Winner id")
	reportCmd.Flags().Int64Var(&loserID, "loser", 0, "Loser id")
	reportCmd.Flags().Int64Var(&tournamentID, "tournament", 0, "Tournament id")
	reportCmd.Flags().BoolVar(&tie, "tie", false, "Report the match as a tie")
	reportCmd.MarkFlagRequired("winner")
	reportCmd.MarkFlagRequired("loser")
	reportCmd.MarkFlagRequired("tournament")

	byeCmd.Flags().Int64Var(&playerID, "player", 0, "Player id")
	byeCmd.Flags().Int64Var(&tournamentID, "tournament", 0, "Tournament id")
	byeCmd.MarkFlagRequired("player")
	byeCmd.MarkFlagRequired("tournament")

	clearCmd.Flags().StringVar(&clearScope, "scope", "", "Limit clearing to 'matches' or 'players'")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(pairingsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(createTournamentCmd)
	rootCmd.AddCommand(enterCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(byeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(clearCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show standings, optionally scoped to a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/standings"
		if cmd.Flags().Changed("tournament") {
			endpoint = fmt.Sprintf("/standings?tournament=%d", tournamentID)
		}
		return performGetRequest(endpoint)
	},
}

var pairingsCmd = &cobra.Command{
	Use:   "pairings",
	Short: "Compute the next round's pairings for a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/pairings?tournament=%d", tournamentID))
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List all registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players", map[string]any{"name": playerName})
	},
}

var createTournamentCmd = &cobra.Command{
	Use:   "create-tournament",
	Short: "Create a new tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/tournaments", map[string]any{"name": playerName, "capacity": capacity})
	},
}

var enterCmd = &cobra.Command{
	Use:   "enter",
	Short: "Enter a player into a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/tournaments/enter", map[string]any{
			"player_id":     playerID,
			"tournament_id": tournamentID,
		})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report the outcome of a match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches", map[string]any{
			"winner_id":     winnerID,
			"loser_id":      loserID,
			"tournament_id": tournamentID,
			"tie":           tie,
		})
	},
}

var byeCmd = &cobra.Command{
	Use:   "bye",
	Short: "Grant a bye to a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/byes", map[string]any{
			"player_id":     playerID,
			"tournament_id": tournamentID,
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get lifetime application counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the store (all tables, or a single scope)",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/clear"
		if clearScope != "" {
			endpoint = "/clear?scope=" + clearScope
		}
		return performGetRequest(endpoint)
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload map[string]any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
