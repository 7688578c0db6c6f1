package games

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	domaingames "github.com/preston-bernstein/nba-possession-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/logging"
	"github.com/preston-bernstein/nba-possession-sim/internal/metrics"
	"github.com/preston-bernstein/nba-possession-sim/internal/possession"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

// DefaultWorkers bounds how many games SimulateBatch runs at once.
const DefaultWorkers = 4

var (
	// ErrInvalidRequest reports a request that cannot describe a game.
	ErrInvalidRequest = errors.New("invalid simulation request")
	// ErrBatchTooLarge reports a batch over the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
)

// Store defines the contract for persisting and retrieving simulated games.
type Store interface {
	SaveGame(ctx context.Context, game domaingames.Game, plays []possession.Play) error
	GetGame(ctx context.Context, id string) (domaingames.Game, error)
	ListGames(ctx context.Context) ([]domaingames.Game, error)
	GamePlays(ctx context.Context, id string) ([]possession.Play, error)
}

// Rosters resolves team ids to rosters.
type Rosters interface {
	TeamByID(id string) (teams.Team, error)
}

// Options configures a Service. Zero values select defaults.
type Options struct {
	Tuning        tuning.Tuning
	Collaborators possession.Collaborators
	Logger        *slog.Logger
	Metrics       *metrics.Recorder
	Workers       int
	MaxBatch      int
	Now           func() time.Time
	NewID         func() string
}

// Service simulates games and keeps their results in a Store.
type Service struct {
	store    Store
	rosters  Rosters
	engine   *possession.Engine
	tuning   tuning.Tuning
	collab   possession.Collaborators
	logger   *slog.Logger
	metrics  *metrics.Recorder
	workers  int
	maxBatch int
	now      func() time.Time
	newID    func() string
}

// NewService constructs a Service. A zero Tuning selects tuning.Default().
func NewService(store Store, rosters Rosters, opts Options) (*Service, error) {
	t := opts.Tuning
	if t == (tuning.Tuning{}) {
		t = tuning.Default()
	}
	engine, err := possession.NewEngine(t, opts.Collaborators, opts.Logger)
	if err != nil {
		return nil, err
	}
	s := &Service{
		store:    store,
		rosters:  rosters,
		engine:   engine,
		tuning:   t,
		collab:   opts.Collaborators,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		workers:  opts.Workers,
		maxBatch: opts.MaxBatch,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if s.workers <= 0 {
		s.workers = DefaultWorkers
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s, nil
}

// Simulate plays out one game and stores it.
func (s *Service) Simulate(ctx context.Context, req Request) (domaingames.Game, error) {
	start := time.Now()
	game, plays, err := s.simulate(ctx, req)
	s.metrics.RecordGame(time.Since(start), err)
	if err != nil {
		logging.Warn(s.logger, "simulation failed",
			logging.FieldTeamID, req.HomeTeamID+"/"+req.AwayTeamID,
			"err", err,
		)
		return domaingames.Game{}, err
	}
	if err := s.store.SaveGame(ctx, game, plays); err != nil {
		return domaingames.Game{}, fmt.Errorf("save simulation: %w", err)
	}
	logging.Info(logging.ForSimulation(s.logger, game.ID, game.Seed), "simulation completed",
		logging.FieldCount, game.Possessions,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
		"home", game.Score.Home,
		"away", game.Score.Away,
	)
	return game, nil
}

// SimulateBatch runs the requests concurrently and returns the games in request order. The first
// failure cancels the rest.
func (s *Service) SimulateBatch(ctx context.Context, reqs []Request) ([]domaingames.Game, error) {
	if s.maxBatch > 0 && len(reqs) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d requests, limit %d", ErrBatchTooLarge, len(reqs), s.maxBatch)
	}
	out := make([]domaingames.Game, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, req := range reqs {
		g.Go(func() error {
			game, err := s.Simulate(gctx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			out[i] = game
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Games returns every stored game.
func (s *Service) Games(ctx context.Context) ([]domaingames.Game, error) {
	return s.store.ListGames(ctx)
}

// GameByID returns a single stored game or domaingames.ErrNotFound.
func (s *Service) GameByID(ctx context.Context, id string) (domaingames.Game, error) {
	return s.store.GetGame(ctx, id)
}

// Plays returns a stored game's play log.
func (s *Service) Plays(ctx context.Context, id string) ([]possession.Play, error) {
	return s.store.GamePlays(ctx, id)
}

// Tuning returns the coefficients the service simulates with.
func (s *Service) Tuning() tuning.Tuning {
	return s.tuning
}

func seedFromID(id string) uint64 {
	u, err := uuid.Parse(id)
	if err != nil {
		u = uuid.NewSHA1(uuid.NameSpaceOID, []byte(id))
	}
	return binary.BigEndian.Uint64(u[:8])
}
