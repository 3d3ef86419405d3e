package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncByesGranted()
	IncPairingsComputed()
	ObservePairingDuration(duration float64)
	SetStartupTime(duration float64)
}

// MetricsStore persists lifetime counters in the database so they survive
// process restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
