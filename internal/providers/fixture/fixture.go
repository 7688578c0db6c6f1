package fixture

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
)

// Name identifies the provider in logs and config.
const Name = "fixture"

// Provider returns a static league that is useful for local testing and bootstrapping.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// role shapes a player's ratings and tendencies around the team's level.
type role string

const (
	roleGuard   role = "guard"
	roleWing    role = "wing"
	roleForward role = "forward"
	roleBig     role = "big"
)

type seat struct {
	first, last string
	position    string
	role        role
	height      int
	weight      int
	// delta shifts the player off the team level.
	delta int
}

// starters and bench are the same for every fixture team; only the names and level change.
var lineup = []struct {
	role     role
	position string
	height   int
	weight   int
	delta    int
}{
	{roleGuard, "PG", 75, 190, 6},
	{roleWing, "SG", 78, 205, 2},
	{roleWing, "SF", 80, 220, 3},
	{roleForward, "PF", 81, 235, 0},
	{roleBig, "C", 84, 255, 1},
	{roleGuard, "G", 76, 195, -6},
	{roleForward, "F", 80, 225, -7},
	{roleBig, "C", 83, 245, -8},
}

type teamSeed struct {
	team  teams.Team
	level int
	names [][2]string
}

var league = []teamSeed{
	{
		team:  teams.Team{ID: "bos", Name: "Celtics", Abbreviation: "BOS", City: "Boston"},
		level: 66,
		names: [][2]string{{"Jay", "Hollis"}, {"Derrick", "Marsh"}, {"Jalen", "Okafor"}, {"Al", "Brogdon"}, {"Kristof", "Vesely"}, {"Payton", "Ruiz"}, {"Sam", "Hauser"}, {"Luke", "Kornet"}},
	},
	{
		team:  teams.Team{ID: "lal", Name: "Lakers", Abbreviation: "LAL", City: "Los Angeles"},
		level: 63,
		names: [][2]string{{"Austin", "Reeves"}, {"Dalton", "Knecht"}, {"Rui", "Hamada"}, {"Jarred", "Vando"}, {"Anthony", "Davison"}, {"Gabe", "Vincent"}, {"Cam", "Reddish"}, {"Jaxson", "Hayes"}},
	},
	{
		team:  teams.Team{ID: "gsw", Name: "Warriors", Abbreviation: "GSW", City: "San Francisco"},
		level: 61,
		names: [][2]string{{"Stephen", "Carr"}, {"Brandin", "Podz"}, {"Andrew", "Wiggs"}, {"Draymond", "Greer"}, {"Kevon", "Looney"}, {"Buddy", "Hield"}, {"Jonathan", "Kuminga"}, {"Trayce", "Jackson"}},
	},
	{
		team:  teams.Team{ID: "mia", Name: "Heat", Abbreviation: "MIA", City: "Miami"},
		level: 60,
		names: [][2]string{{"Tyler", "Hearn"}, {"Terry", "Rozier"}, {"Jimmy", "Boyle"}, {"Nikola", "Jovic"}, {"Bam", "Addo"}, {"Jaime", "Jaquez"}, {"Haywood", "Highsmith"}, {"Kel'el", "Ware"}},
	},
}

// FetchTeams returns a deterministic set of teams with full rosters.
func (p *Provider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	out := make([]teams.Team, 0, len(league))
	for _, ts := range league {
		team := ts.team
		team.Players = make([]players.Player, 0, len(lineup))
		for i, slot := range lineup {
			s := seat{
				first:    ts.names[i][0],
				last:     ts.names[i][1],
				position: slot.position,
				role:     slot.role,
				height:   slot.height,
				weight:   slot.weight,
				delta:    slot.delta,
			}
			team.Players = append(team.Players, build(team.ID, i+1, ts.level, s))
		}
		out = append(out, team)
	}
	return out, nil
}

func build(teamID string, n, level int, s seat) players.Player {
	return players.Player{
		ID:           fmt.Sprintf("%s-%02d", teamID, n),
		FirstName:    s.first,
		LastName:     s.last,
		Position:     s.position,
		HeightInches: s.height,
		WeightPounds: s.weight,
		Ratings:      ratingsFor(s.role, level+s.delta),
		Tendencies:   tendenciesFor(s.role),
	}
}

func ratingsFor(r role, base int) players.Ratings {
	at := func(offset int) int {
		return min(max(base+offset, 25), 99)
	}
	rt := players.Ratings{
		CloseShot: at(0), MidRange: at(0), ThreePoint: at(0), FreeThrow: at(4), ShotIQ: at(2),
		Layup: at(0), Dunk: at(0), PostControl: at(0),
		BallHandle: at(0), Passing: at(0), Vision: at(0),
		Perimeter: at(0), Interior: at(0), Steal: at(0), Block: at(0), HelpIQ: at(0),
		OffRebound: at(0), DefRebound: at(0), BoxOut: at(0),
		Speed: at(0), Acceleration: at(0), Strength: at(0), Vertical: at(0), Stamina: at(8),
		Clutch: at(0),
	}
	switch r {
	case roleGuard:
		rt.ThreePoint, rt.MidRange, rt.BallHandle, rt.Passing, rt.Vision = at(10), at(6), at(18), at(14), at(14)
		rt.Perimeter, rt.Steal, rt.Speed, rt.Acceleration = at(6), at(8), at(14), at(14)
		rt.Interior, rt.Block, rt.PostControl, rt.Dunk = at(-20), at(-22), at(-20), at(-14)
		rt.OffRebound, rt.DefRebound, rt.BoxOut, rt.Strength = at(-20), at(-12), at(-14), at(-14)
	case roleWing:
		rt.ThreePoint, rt.MidRange, rt.Perimeter, rt.Layup = at(8), at(6), at(10), at(4)
		rt.BallHandle, rt.Speed, rt.Vertical = at(4), at(6), at(6)
		rt.Interior, rt.Block, rt.PostControl = at(-10), at(-10), at(-8)
		rt.OffRebound, rt.DefRebound = at(-8), at(-4)
	case roleForward:
		rt.CloseShot, rt.Layup, rt.Dunk, rt.PostControl = at(4), at(4), at(6), at(6)
		rt.Interior, rt.HelpIQ, rt.Strength = at(6), at(6), at(8)
		rt.OffRebound, rt.DefRebound, rt.BoxOut = at(6), at(8), at(8)
		rt.BallHandle, rt.ThreePoint, rt.Speed = at(-8), at(-4), at(-4)
	case roleBig:
		rt.CloseShot, rt.Dunk, rt.Layup, rt.PostControl = at(12), at(16), at(6), at(10)
		rt.Interior, rt.Block, rt.HelpIQ = at(16), at(18), at(8)
		rt.OffRebound, rt.DefRebound, rt.BoxOut, rt.Strength, rt.Vertical = at(18), at(20), at(16), at(16), at(4)
		rt.ThreePoint, rt.MidRange, rt.BallHandle, rt.Passing = at(-24), at(-12), at(-26), at(-12)
		rt.Perimeter, rt.Steal, rt.Speed, rt.Acceleration, rt.FreeThrow = at(-12), at(-10), at(-14), at(-14), at(-14)
	}
	return rt
}

func tendenciesFor(r role) players.Tendencies {
	switch r {
	case roleGuard:
		return players.Tendencies{
			Actions: players.ActionTendencies{CatchShoot: 0.12, Pullup: 0.18, Stepback: 0.12, Post: 0.02, Drive: 0.22, Pass: 0.28, Reset: 0.06},
			Zones:   players.ZoneTendencies{Rim: 0.3, Mid: 0.25, Three: 0.45},
			OffBall: players.OffBallTendencies{Spot: 0.6, Cut: 0.3, Screen: 0.1},
		}
	case roleWing:
		return players.Tendencies{
			Actions: players.ActionTendencies{CatchShoot: 0.28, Pullup: 0.12, Stepback: 0.06, Post: 0.04, Drive: 0.2, Pass: 0.24, Reset: 0.06},
			Zones:   players.ZoneTendencies{Rim: 0.3, Mid: 0.2, Three: 0.5},
			OffBall: players.OffBallTendencies{Spot: 0.6, Cut: 0.35, Screen: 0.05},
		}
	case roleForward:
		return players.Tendencies{
			Actions: players.ActionTendencies{CatchShoot: 0.18, Pullup: 0.06, Stepback: 0.02, Post: 0.14, Drive: 0.18, Pass: 0.34, Reset: 0.08},
			Zones:   players.ZoneTendencies{Rim: 0.45, Mid: 0.25, Three: 0.3},
			OffBall: players.OffBallTendencies{Spot: 0.35, Cut: 0.35, Screen: 0.3},
		}
	default:
		return players.Tendencies{
			Actions: players.ActionTendencies{CatchShoot: 0.06, Pullup: 0.02, Stepback: 0, Post: 0.3, Drive: 0.16, Pass: 0.38, Reset: 0.08},
			Zones:   players.ZoneTendencies{Rim: 0.75, Mid: 0.2, Three: 0.05},
			OffBall: players.OffBallTendencies{Spot: 0.1, Cut: 0.3, Screen: 0.6},
		}
	}
}
