package testutil

import (
	"fmt"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
)

// SampleRatings returns ratings with every attribute set to level.
func SampleRatings(level int) players.Ratings {
	return players.Ratings{
		CloseShot: level, MidRange: level, ThreePoint: level, FreeThrow: level, ShotIQ: level,
		Layup: level, Dunk: level, PostControl: level,
		BallHandle: level, Passing: level, Vision: level,
		Perimeter: level, Interior: level, Steal: level, Block: level, HelpIQ: level,
		OffRebound: level, DefRebound: level, BoxOut: level,
		Speed: level, Acceleration: level, Strength: level, Vertical: level, Stamina: level,
		Clutch: level,
	}
}

// SampleTendencies returns an even spread across actions, zones and off-ball roles.
func SampleTendencies() players.Tendencies {
	return players.Tendencies{
		Actions: players.ActionTendencies{CatchShoot: 1, Pullup: 1, Stepback: 1, Post: 1, Drive: 1, Pass: 1, Reset: 1},
		Zones:   players.ZoneTendencies{Rim: 1, Mid: 1, Three: 1},
		OffBall: players.OffBallTendencies{Spot: 1, Cut: 1, Screen: 1},
	}
}

// SampleTeam returns a five-man roster with player ids "<id>-1" through "<id>-5".
func SampleTeam(id string, level int) teams.Team {
	team := teams.Team{ID: id, Name: "Team " + id, Abbreviation: id, City: "City " + id}
	for i := 0; i < teams.OnCourt; i++ {
		team.Players = append(team.Players, players.Player{
			ID:           fmt.Sprintf("%s-%d", id, i+1),
			FirstName:    "Player",
			LastName:     fmt.Sprintf("%s%d", id, i+1),
			HeightInches: 74 + 2*i,
			WeightPounds: 190 + 10*i,
			Ratings:      SampleRatings(level + i),
			Tendencies:   SampleTendencies(),
		})
	}
	return team
}

// SampleLeague returns two sample teams, "home" and "away".
func SampleLeague() []teams.Team {
	return []teams.Team{SampleTeam("home", 60), SampleTeam("away", 58)}
}
