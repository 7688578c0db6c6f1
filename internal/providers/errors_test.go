package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/testutil"
)

func roster(id string, n int) teams.Team {
	t := teams.Team{ID: id}
	for i := 0; i < n; i++ {
		t.Players = append(t.Players, players.Player{ID: fmt.Sprintf("%s-%d", id, i)})
	}
	return t
}

func TestValidate(t *testing.T) {
	if err := Validate("p", []teams.Team{roster("a", 5), roster("b", 8)}); err != nil {
		t.Fatalf("expected valid rosters, got %v", err)
	}

	short := Validate("p", []teams.Team{roster("a", 4)})
	rErr, ok := AsRosterError(short)
	if !ok || rErr.TeamID != "a" {
		t.Fatalf("expected roster error for short team, got %v", short)
	}
	if !strings.Contains(rErr.Error(), "need 5") {
		t.Fatalf("unexpected message %q", rErr.Error())
	}

	b := roster("b", 5)
	b.Players[2].ID = "a-1"
	if _, ok := AsRosterError(Validate("p", []teams.Team{roster("a", 5), b})); !ok {
		t.Fatalf("expected duplicate player to be rejected")
	}
	if _, ok := AsRosterError(Validate("p", []teams.Team{roster("a", 5), roster("a", 5)})); !ok {
		t.Fatalf("expected duplicate team to be rejected")
	}
	if got := (&RosterError{Provider: "p", Reason: "x"}).Error(); got != "p: invalid roster: x" {
		t.Fatalf("unexpected message %q", got)
	}
}

type staticProvider struct {
	items []teams.Team
	err   error
}

func (s staticProvider) FetchTeams(context.Context) ([]teams.Team, error) {
	return s.items, s.err
}

func TestValidatingProvider(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	p := NewValidatingProvider(staticProvider{items: []teams.Team{roster("a", 5)}}, "static", logger)
	items, err := p.FetchTeams(context.Background())
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one team, got %v %v", items, err)
	}
	if !strings.Contains(buf.String(), "rosters loaded") || !strings.Contains(buf.String(), "provider=static") {
		t.Fatalf("expected load log, got %s", buf.String())
	}

	p = NewValidatingProvider(staticProvider{items: []teams.Team{roster("a", 3)}}, "static", nil)
	if _, err := p.FetchTeams(context.Background()); err == nil {
		t.Fatalf("expected validation error")
	}

	boom := errors.New("boom")
	p = NewValidatingProvider(staticProvider{err: boom}, "static", logger)
	if _, err := p.FetchTeams(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
