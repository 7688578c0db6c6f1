package possession

import (
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/formation"
	"github.com/preston-bernstein/nba-possession-sim/internal/scheme"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

// Swap turns a finished possession into the next one for the other team. The score view is
// flipped rather than recomputed, the ball goes to the new offense's primary handler, and both
// formations and the assignments are rebuilt for the new sides. A possession that ran out the
// quarter hands the ball over at the start of the next one. The new offense's trip up the floor
// comes off both clocks before its first action.
func Swap(final State, newOffense, newDefense teams.Team, s scheme.Scheme, set formation.Set, t tuning.Tuning) (State, error) {
	clock := final.Clock
	if clock.QuarterRemaining(t.Clock) <= 0 && clock.Quarter < t.Clock.Quarters {
		clock.Quarter++
	}
	advance := BringUp(final.EndReason, clock, t.Clock)
	clock.Seconds -= advance

	return NewState(newOffense, newDefense, Setup{
		GameID:      final.GameID,
		Possession:  final.Possession + 1,
		GameSeed:    final.Seed,
		OffenseSide: final.OffenseSide.Opposite(),
		Clock:       clock,
		ShotClock:   t.Clock.ShotClock - advance,
		Score:       final.Score.Flip(),
		Scheme:      s,
		Set:         set,
		Fatigue:     final.Fatigue,
		TeamFouls:   final.TeamFouls,
		PlayerFouls: final.PlayerFouls,
	}, t)
}

// BringUp is the time the next offense needs to get into its set after a possession ended for
// reason. Rebounds and turnovers are live balls and go the other way on the outlet; everything
// else is inbounded. The trip never takes more than half of what is left in the quarter.
func BringUp(reason EndReason, c Clock, t tuning.Clock) float64 {
	advance := t.Inbound
	if reason == EndDefensiveRebound || reason == EndTurnover {
		advance = t.Outlet
	}
	return min(advance, c.QuarterRemaining(t)/2)
}
