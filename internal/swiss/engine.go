package swiss

import (
	"github.com/mkarlsen/swiss-gambit/internal/metrics"
	"github.com/mkarlsen/swiss-gambit/internal/tournament"
)

// Engine implements the Swiss-system logic: recording results, tie-breaking
// standings by opponent match wins and pairing the next round. It is purely
// functional over store snapshots and holds no state of its own; every call
// re-reads the store.
type Engine struct {
	store   tournament.Store
	metrics metrics.Metrics
}

// New creates a new Engine.
func New(store tournament.Store, m metrics.Metrics) *Engine {
	return &Engine{
		store:   store,
		metrics: m,
	}
}
