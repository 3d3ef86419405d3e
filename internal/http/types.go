package http

import (
	"net/http"

	"github.com/mkarlsen/swiss-gambit/internal/config"
	"github.com/mkarlsen/swiss-gambit/internal/metrics"
	"github.com/mkarlsen/swiss-gambit/internal/swiss"
	"github.com/mkarlsen/swiss-gambit/internal/tournament"
)

type Server struct {
	Store          tournament.Store
	Engine         *swiss.Engine
	Metrics        metrics.Metrics
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
