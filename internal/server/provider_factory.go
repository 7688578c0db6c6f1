package server

import (
	"errors"
	"log/slog"

	"github.com/preston-bernstein/nba-possession-sim/internal/config"
	"github.com/preston-bernstein/nba-possession-sim/internal/metrics"
	"github.com/preston-bernstein/nba-possession-sim/internal/providers"
	"github.com/preston-bernstein/nba-possession-sim/internal/providers/file"
	"github.com/preston-bernstein/nba-possession-sim/internal/providers/fixture"
)

var errMissingRosterPath = errors.New("ROSTER_PATH is required for the file provider")

// providerFactory assembles the roster provider with shared wrappers (metrics + validation).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) (providers.RosterProvider, error) {
	base, err := selectProvider(cfg, f.logger)
	if err != nil {
		return nil, err
	}
	return f.wrap(cfg, base), nil
}

func (f providerFactory) wrap(cfg config.Config, base providers.RosterProvider) providers.RosterProvider {
	name := normalizeProviderName(cfg.Provider, base)
	return providers.NewValidatingProvider(providers.NewInstrumentedProvider(base, name, f.metrics), name, f.logger)
}

func selectProvider(cfg config.Config, logger *slog.Logger) (providers.RosterProvider, error) {
	switch cfg.Provider {
	case fixture.Name, "":
		return fixture.New(), nil
	case file.Name:
		if cfg.RosterPath == "" {
			return nil, errMissingRosterPath
		}
		return file.New(cfg.RosterPath), nil
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New(), nil
	}
}
