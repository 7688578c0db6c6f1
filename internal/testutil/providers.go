package testutil

import (
	"context"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
)

// StubRosterProvider returns Teams or Err and counts calls.
type StubRosterProvider struct {
	Teams []teams.Team
	Err   error
	Calls int
}

func (p *StubRosterProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	p.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Teams, nil
}
