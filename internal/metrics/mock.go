package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	matchesRecorded  int
	byesGranted      int
	pairingsComputed int
	pairingDurations []float64
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		pairingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncByesGranted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byesGranted++
}

func (m *Mock) IncPairingsComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingsComputed++
}

func (m *Mock) ObservePairingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingDurations = append(m.pairingDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// ByesGranted returns the number of times IncByesGranted was called.
func (m *Mock) ByesGranted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byesGranted
}

// PairingsComputed returns the number of times IncPairingsComputed was called.
func (m *Mock) PairingsComputed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairingsComputed
}

// PairingDurations returns the observed pairing durations.
func (m *Mock) PairingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.pairingDurations...)
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
