package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/providers"
)

// ErrNotFound is returned for an unknown team id.
var ErrNotFound = errors.New("team not found")

// Store defines the contract for persisting and retrieving teams.
type Store interface {
	ListTeams() []teams.Team
	GetTeam(id string) (teams.Team, bool)
	SetTeams([]teams.Team)
}

// Service coordinates roster operations using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Load fetches rosters from provider and replaces the stored snapshot.
func (s *Service) Load(ctx context.Context, provider providers.RosterProvider) error {
	items, err := provider.FetchTeams(ctx)
	if err != nil {
		return fmt.Errorf("load rosters: %w", err)
	}
	s.ReplaceTeams(items)
	return nil
}

// Teams returns the current set of teams.
func (s *Service) Teams() []teams.Team {
	return s.store.ListTeams()
}

// TeamByID returns a single team or ErrNotFound.
func (s *Service) TeamByID(id string) (teams.Team, error) {
	t, ok := s.store.GetTeam(id)
	if !ok {
		return teams.Team{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return t, nil
}

// ReplaceTeams swaps the stored teams with a new snapshot.
func (s *Service) ReplaceTeams(items []teams.Team) {
	s.store.SetTeams(items)
}
