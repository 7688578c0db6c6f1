package store

import (
	"context"
	"slices"
	"sync"

	domaingames "github.com/preston-bernstein/nba-possession-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-possession-sim/internal/possession"
)

type entry struct {
	game  domaingames.Game
	plays []possession.Play
}

// MemoryStore keeps simulated games and their play logs in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]entry
	order []string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]entry),
	}
}

// SaveGame stores a game, replacing any game with the same id.
func (s *MemoryStore) SaveGame(ctx context.Context, game domaingames.Game, plays []possession.Play) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[game.ID]; !ok {
		s.order = append(s.order, game.ID)
	}
	s.games[game.ID] = entry{game: cloneGame(game), plays: slices.Clone(plays)}
	return nil
}

// ListGames returns copies of the stored games in insertion order.
func (s *MemoryStore) ListGames(ctx context.Context) ([]domaingames.Game, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domaingames.Game, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, cloneGame(s.games[id].game))
	}
	return result, nil
}

// GetGame retrieves a game by ID.
func (s *MemoryStore) GetGame(ctx context.Context, id string) (domaingames.Game, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[id]
	if !ok {
		return domaingames.Game{}, domaingames.ErrNotFound
	}
	return cloneGame(e.game), nil
}

// GamePlays returns a copy of a game's play log.
func (s *MemoryStore) GamePlays(ctx context.Context, id string) ([]possession.Play, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[id]
	if !ok {
		return nil, domaingames.ErrNotFound
	}
	return slices.Clone(e.plays), nil
}

// Close is a no-op so MemoryStore satisfies the same lifecycle as SQLiteStore.
func (s *MemoryStore) Close() error {
	return nil
}

func cloneGame(g domaingames.Game) domaingames.Game {
	g.Players = slices.Clone(g.Players)
	return g
}
