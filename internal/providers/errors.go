package providers

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
)

// RosterError reports a team a provider returned that cannot be simulated.
type RosterError struct {
	Provider string
	TeamID   string
	Reason   string
}

func (e *RosterError) Error() string {
	if e.TeamID == "" {
		return fmt.Sprintf("%s: invalid roster: %s", e.Provider, e.Reason)
	}
	return fmt.Sprintf("%s: invalid roster for %s: %s", e.Provider, e.TeamID, e.Reason)
}

// AsRosterError attempts to unwrap an error into a RosterError.
func AsRosterError(err error) (*RosterError, bool) {
	var rErr *RosterError
	if errors.As(err, &rErr) {
		return rErr, true
	}
	return nil, false
}

// Validate checks the invariants the engine relies on: unique team ids, at least five players
// per team and player ids unique across the league.
func Validate(provider string, items []teams.Team) error {
	teamIDs := make(map[string]bool, len(items))
	playerIDs := make(map[string]string)
	for _, t := range items {
		if t.ID == "" {
			return &RosterError{Provider: provider, Reason: "team without id"}
		}
		if teamIDs[t.ID] {
			return &RosterError{Provider: provider, TeamID: t.ID, Reason: "duplicate team id"}
		}
		teamIDs[t.ID] = true
		if len(t.Players) < teams.OnCourt {
			return &RosterError{Provider: provider, TeamID: t.ID, Reason: fmt.Sprintf("%d players, need %d", len(t.Players), teams.OnCourt)}
		}
		for _, p := range t.Players {
			if p.ID == "" {
				return &RosterError{Provider: provider, TeamID: t.ID, Reason: "player without id"}
			}
			if owner, ok := playerIDs[p.ID]; ok {
				return &RosterError{Provider: provider, TeamID: t.ID, Reason: fmt.Sprintf("player %s already on %s", p.ID, owner)}
			}
			playerIDs[p.ID] = t.ID
		}
	}
	return nil
}
