package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-possession-sim/internal/app/games"
	"github.com/preston-bernstein/nba-possession-sim/internal/app/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/config"
	httpserver "github.com/preston-bernstein/nba-possession-sim/internal/http"
	"github.com/preston-bernstein/nba-possession-sim/internal/http/handlers"
	"github.com/preston-bernstein/nba-possession-sim/internal/http/middleware"
	"github.com/preston-bernstein/nba-possession-sim/internal/logging"
	"github.com/preston-bernstein/nba-possession-sim/internal/metrics"
	"github.com/preston-bernstein/nba-possession-sim/internal/providers"
	"github.com/preston-bernstein/nba-possession-sim/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         gameStore
	gamesService  *games.Service
	teamsService  *teams.Service
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured roster provider and store. Rosters are loaded
// before New returns so the first request can simulate.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.RosterProvider) (*Server, error) {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.RosterProvider, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		var err error
		if provider, err = factory.build(cfg); err != nil {
			return nil, err
		}
	} else {
		provider = factory.wrap(cfg, provider)
	}

	tune, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		return nil, err
	}

	teamSvc := teams.NewService(store.NewTeamStore())
	if err := teamSvc.Load(context.Background(), provider); err != nil {
		return nil, err
	}

	gameStore, ready, err := buildStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	gameSvc, err := games.NewService(gameStore, teamSvc, games.Options{
		Tuning:   tune,
		Logger:   logger,
		Metrics:  recorder,
		Workers:  cfg.Simulation.Workers,
		MaxBatch: cfg.Simulation.MaxBatch,
	})
	if err != nil {
		_ = gameStore.Close()
		return nil, fmt.Errorf("build simulation service: %w", err)
	}

	httpSrv := buildHTTPServer(cfg, gameSvc, teamSvc, provider, ready, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         gameStore,
		gamesService:  gameSvc,
		teamsService:  teamSvc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, gameSvc *games.Service, httpSrv httpServer) *Server {
	return &Server{
		cfg:          cfg,
		logger:       logger,
		gamesService: gameSvc,
		httpServer:   httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, gameSvc *games.Service, teamSvc *teams.Service, provider providers.RosterProvider, ready func(context.Context) error, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(gameSvc, teamSvc, logger, ready)
	var admin *handlers.AdminHandler
	// Only mount the admin reload endpoint if a token is set.
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(teamSvc, provider, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)

	limiter := middleware.NewLimiter(cfg.Simulation.RatePerSec, cfg.Simulation.Burst)
	limited := middleware.RateLimitMiddleware(limiter, logger, recorder, router)
	wrapped := middleware.LoggingMiddleware(logger, recorder, limited)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	// The store closes after in-flight requests drain.
	if s.store != nil {
		if err := s.store.Close(); err != nil && s.logger != nil {
			s.logger.Warn("store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := cfg.Metrics.Telemetry()

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
