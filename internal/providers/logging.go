package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/logging"
)

// validatingProvider validates and logs every fetch of the wrapped provider.
type validatingProvider struct {
	inner  RosterProvider
	name   string
	logger *slog.Logger
}

// NewValidatingProvider wraps inner so callers only ever see simulatable rosters.
func NewValidatingProvider(inner RosterProvider, name string, logger *slog.Logger) RosterProvider {
	return &validatingProvider{inner: inner, name: name, logger: logger}
}

func (p *validatingProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	start := time.Now()
	items, err := p.inner.FetchTeams(ctx)
	if err == nil {
		err = Validate(p.name, items)
	}
	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelError, p.name, "roster fetch failed", "err", err)
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelInfo, p.name, "rosters loaded",
		logging.FieldCount, len(items),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return items, nil
}

// logWithProvider emits a log entry if logger is non-nil and always includes provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}
