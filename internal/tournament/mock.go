package tournament

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	RegisterPlayerFunc   func(name string) (int64, error)
	CountPlayersFunc     func() (int, error)
	CreateTournamentFunc func(name string, capacity int) (int64, error)
	AddEntrantFunc       func(playerID, tournamentID int64) error
	IsEntrantFunc        func(playerID, tournamentID int64) (bool, error)
	StandingsFunc        func(tournamentID int64) ([]Standing, error)
	AllStandingsFunc     func() ([]Standing, error)
	HasByeFunc           func(playerID, tournamentID int64) (bool, error)
	OpponentsFunc        func(playerID, tournamentID int64) ([]int64, error)
	SumWinsFunc          func(playerIDs []int64) (int, error)
	RecordFunc           func(tournamentID int64, outcome Outcome) (string, error)
	ClearMatchesFunc     func() (int64, error)
	ClearPlayersFunc     func() (int64, error)
	ClearFunc            func()

	// Call records
	RecordCalls []struct {
		TournamentID int64
		Outcome      Outcome
	}
	StandingsCalls []int64
	HasByeCalls    []struct {
		PlayerID     int64
		TournamentID int64
	}
	OpponentsCalls []struct {
		PlayerID     int64
		TournamentID int64
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) RegisterPlayer(name string) (int64, error) {
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(name)
	}
	return 0, nil
}

func (m *MockStore) CountPlayers() (int, error) {
	if m.CountPlayersFunc != nil {
		return m.CountPlayersFunc()
	}
	return 0, nil
}

func (m *MockStore) CreateTournament(name string, capacity int) (int64, error) {
	if m.CreateTournamentFunc != nil {
		return m.CreateTournamentFunc(name, capacity)
	}
	return 0, nil
}

func (m *MockStore) AddEntrant(playerID, tournamentID int64) error {
	if m.AddEntrantFunc != nil {
		return m.AddEntrantFunc(playerID, tournamentID)
	}
	return nil
}

func (m *MockStore) IsEntrant(playerID, tournamentID int64) (bool, error) {
	if m.IsEntrantFunc != nil {
		return m.IsEntrantFunc(playerID, tournamentID)
	}
	return true, nil
}

func (m *MockStore) Standings(tournamentID int64) ([]Standing, error) {
	m.mu.Lock()
	m.StandingsCalls = append(m.StandingsCalls, tournamentID)
	m.mu.Unlock()
	if m.StandingsFunc != nil {
		return m.StandingsFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) AllStandings() ([]Standing, error) {
	if m.AllStandingsFunc != nil {
		return m.AllStandingsFunc()
	}
	return nil, nil
}

func (m *MockStore) HasBye(playerID, tournamentID int64) (bool, error) {
	m.mu.Lock()
	m.HasByeCalls = append(m.HasByeCalls, struct {
		PlayerID     int64
		TournamentID int64
	}{playerID, tournamentID})
	m.mu.Unlock()
	if m.HasByeFunc != nil {
		return m.HasByeFunc(playerID, tournamentID)
	}
	return false, nil
}

func (m *MockStore) Opponents(playerID, tournamentID int64) ([]int64, error) {
	m.mu.Lock()
	m.OpponentsCalls = append(m.OpponentsCalls, struct {
		PlayerID     int64
		TournamentID int64
	}{playerID, tournamentID})
	m.mu.Unlock()
	if m.OpponentsFunc != nil {
		return m.OpponentsFunc(playerID, tournamentID)
	}
	return nil, nil
}

func (m *MockStore) SumWins(playerIDs []int64) (int, error) {
	if m.SumWinsFunc != nil {
		return m.SumWinsFunc(playerIDs)
	}
	return 0, nil
}

func (m *MockStore) Record(tournamentID int64, outcome Outcome) (string, error) {
	m.mu.Lock()
	m.RecordCalls = append(m.RecordCalls, struct {
		TournamentID int64
		Outcome      Outcome
	}{tournamentID, outcome})
	m.mu.Unlock()
	if m.RecordFunc != nil {
		return m.RecordFunc(tournamentID, outcome)
	}
	return "", nil
}

func (m *MockStore) ClearMatches() (int64, error) {
	if m.ClearMatchesFunc != nil {
		return m.ClearMatchesFunc()
	}
	return 0, nil
}

func (m *MockStore) ClearPlayers() (int64, error) {
	if m.ClearPlayersFunc != nil {
		return m.ClearPlayersFunc()
	}
	return 0, nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
