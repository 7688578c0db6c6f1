package teams

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
)

type stubTeamStore struct {
	items []teams.Team
	byID  map[string]teams.Team
}

func (s *stubTeamStore) ListTeams() []teams.Team { return s.items }
func (s *stubTeamStore) GetTeam(id string) (teams.Team, bool) {
	val, ok := s.byID[id]
	return val, ok
}
func (s *stubTeamStore) SetTeams(items []teams.Team) { s.items = items }

type stubProvider struct {
	items []teams.Team
	err   error
}

func (p stubProvider) FetchTeams(context.Context) ([]teams.Team, error) { return p.items, p.err }

func TestTeamsService(t *testing.T) {
	store := &stubTeamStore{
		items: []teams.Team{{ID: "t1"}},
		byID:  map[string]teams.Team{"t1": {ID: "t1"}},
	}
	svc := NewService(store)

	if len(svc.Teams()) != 1 {
		t.Fatalf("expected teams from store")
	}
	if _, err := svc.TeamByID("t1"); err != nil {
		t.Fatalf("expected team by id, got %v", err)
	}
	if _, err := svc.TeamByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	svc.ReplaceTeams([]teams.Team{{ID: "t2"}})
	if len(store.items) != 1 || store.items[0].ID != "t2" {
		t.Fatalf("expected replace to set store items")
	}
}

func TestLoad(t *testing.T) {
	store := &stubTeamStore{}
	svc := NewService(store)
	if err := svc.Load(context.Background(), stubProvider{items: []teams.Team{{ID: "a"}, {ID: "b"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.items) != 2 {
		t.Fatalf("expected loaded teams stored, got %d", len(store.items))
	}

	boom := errors.New("boom")
	if err := svc.Load(context.Background(), stubProvider{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if len(store.items) != 2 {
		t.Fatalf("expected failed load to keep the previous snapshot")
	}
}
