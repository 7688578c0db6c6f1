package store

import (
	"slices"
	"sync"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
)

// TeamStore keeps a thread-safe snapshot of rosters in memory.
type TeamStore struct {
	mu    sync.RWMutex
	teams map[string]teams.Team
	order []string
}

// NewTeamStore constructs an empty TeamStore.
func NewTeamStore() *TeamStore {
	return &TeamStore{teams: make(map[string]teams.Team)}
}

// ListTeams returns the teams in the order they were set.
func (s *TeamStore) ListTeams() []teams.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]teams.Team, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, cloneTeam(s.teams[id]))
	}
	return result
}

// GetTeam retrieves a team by ID.
func (s *TeamStore) GetTeam(id string) (teams.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	return cloneTeam(t), ok
}

// SetTeams replaces the existing teams with a new snapshot.
func (s *TeamStore) SetTeams(items []teams.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams = make(map[string]teams.Team, len(items))
	s.order = s.order[:0]
	for _, t := range items {
		if _, ok := s.teams[t.ID]; !ok {
			s.order = append(s.order, t.ID)
		}
		s.teams[t.ID] = cloneTeam(t)
	}
}

func cloneTeam(t teams.Team) teams.Team {
	t.Players = slices.Clone(t.Players)
	return t
}
