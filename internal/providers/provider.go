package providers

import (
	"context"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
)

// RosterProvider supplies the teams a simulation can use. Each team's roster is ordered: the
// first five players start and the first of them brings the ball up.
type RosterProvider interface {
	FetchTeams(ctx context.Context) ([]teams.Team, error)
}
