package possession

import (
	"math"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/probability"
	"github.com/preston-bernstein/nba-possession-sim/internal/rng"
)

// Sink receives the possession's side effects. The engine keeps no aggregate statistics.
type Sink interface {
	RecordPlay(p Play)
	RecordAssist(passerID, scorerID string)
	RecordFreeThrows(shooterID string, attempts, made int)
	UpdatePossessions(teamID string)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordPlay(Play)                   {}
func (NopSink) RecordAssist(string, string)       {}
func (NopSink) RecordFreeThrows(string, int, int) {}
func (NopSink) UpdatePossessions(string)          {}

// FreeThrowShooter simulates a trip to the line and returns the number made.
type FreeThrowShooter interface {
	ShootFreeThrows(shooter players.Player, attempts int, g *rng.RNG) int
}

// AssistModel is the chance a made basket is credited to the last passer.
type AssistModel interface {
	AssistProbability(passer, scorer players.Player, dribbles int, zone court.Zone) float64
}

// Collaborators are the pluggable models the engine calls but does not own. Nil fields use the
// skill-based defaults.
type Collaborators struct {
	FreeThrows FreeThrowShooter
	Assists    AssistModel
}

func (c Collaborators) withDefaults() Collaborators {
	if c.FreeThrows == nil {
		c.FreeThrows = SkillFreeThrows{}
	}
	if c.Assists == nil {
		c.Assists = SkillAssists{}
	}
	return c
}

// SkillFreeThrows rolls each attempt against the shooter's free-throw rating.
type SkillFreeThrows struct{}

func (SkillFreeThrows) ShootFreeThrows(shooter players.Player, attempts int, g *rng.RNG) int {
	p := probability.FreeThrow(shooter.Ratings.FreeThrow)
	made := 0
	for i := 0; i < attempts; i++ {
		if g.Bernoulli(p) {
			made++
		}
	}
	return made
}

// SkillAssists favors good passers, catch-and-finish plays and shots at the rim.
type SkillAssists struct{}

func (SkillAssists) AssistProbability(passer, _ players.Player, dribbles int, zone court.Zone) float64 {
	p := 0.7 + 0.08*probability.RatingZ(passer.Ratings.Passing) - 0.05*float64(dribbles)
	switch {
	case zone.IsThree():
		p += 0.15
	case zone == court.ZoneRestricted:
		p += 0.05
	}
	return math.Min(math.Max(p, 0.05), 0.95)
}
