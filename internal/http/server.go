package http

import (
	"net/http"

	"github.com/mkarlsen/swiss-gambit/internal/config"
	"github.com/mkarlsen/swiss-gambit/internal/metrics"
	"github.com/mkarlsen/swiss-gambit/internal/swiss"
	"github.com/mkarlsen/swiss-gambit/internal/tournament"
)

func NewServer(store tournament.Store, engine *swiss.Engine, metricsSvc metrics.Metrics, counters metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Engine:         engine,
		Metrics:        metricsSvc,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/pairings", Chain(s.PairingsHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.PlayersHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments", Chain(s.CreateTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/enter", Chain(s.EnterTournamentHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ReportMatchHandler(), paramsMiddleware))
	s.Router.Handle("/byes", Chain(s.ReportByeHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
