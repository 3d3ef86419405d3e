package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mkarlsen/swiss-gambit/internal/database"
	"github.com/mkarlsen/swiss-gambit/internal/metrics"
	"github.com/mkarlsen/swiss-gambit/internal/swiss"
	"github.com/mkarlsen/swiss-gambit/internal/tournament"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "swiss-gambit.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], "", "", cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := tournament.New(db)
	engine := swiss.New(store, metrics.NewService())

	tournamentID, err := store.CreateTournament("Friday Night Swiss", 8)
	if err != nil {
		log.Fatalf("Failed to create tournament: %s", err)
	}

	names := []string{
		"Bruno Walton",
		"Boots O'Neal",
		"Cathy Burton",
		"Diane Grant",
		"Melpomene Murray",
	}
	for _, name := range names {
		playerID, err := store.RegisterPlayer(name)
		if err != nil {
			log.Fatalf("Failed to register player %s: %s", name, err)
		}
		if err := store.AddEntrant(playerID, tournamentID); err != nil {
			log.Fatalf("Failed to enter player %s: %s", name, err)
		}
	}
	log.Info("Seeded demo entrants", "count", len(names), "tournamentID", tournamentID)

	// Play a synthetic first round so standings have some texture.
	pairings, err := engine.Pairings(tournamentID)
	if err != nil {
		log.Fatalf("Failed to pair the first round: %s", err)
	}
	for _, pairing := range pairings {
		matchID, err := engine.ReportMatch(pairing.PlayerID, pairing.OpponentID, tournamentID, false)
		if err != nil {
			log.Fatalf("Failed to report match: %s", err)
		}
		log.Info("Seeded match result", "matchID", matchID, "winner", pairing.PlayerName, "loser", pairing.OpponentName)
	}

	standings, err := store.Standings(tournamentID)
	if err != nil {
		log.Fatalf("Failed to read standings: %s", err)
	}
	for _, st := range standings {
		log.Info("Standing", "player", st.Name, "wins", st.Wins, "matches", st.Matches)
	}
	log.Info("Seeder finished.")
}
