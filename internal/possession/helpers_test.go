package possession

import (
	"fmt"
	"testing"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

func ratings(level int) players.Ratings {
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

func balanced() players.Tendencies {
	return players.Tendencies{
		Actions: players.ActionTendencies{CatchShoot: 0.2, Pullup: 0.12, Stepback: 0.08, Post: 0.08, Drive: 0.2, Pass: 0.25, Reset: 0.07},
		Zones:   players.ZoneTendencies{Rim: 0.4, Mid: 0.2, Three: 0.4},
		OffBall: players.OffBallTendencies{Spot: 0.5, Cut: 0.3, Screen: 0.2},
	}
}

func newTeam(id string, level int) teams.Team {
	t := teams.Team{ID: id, Name: id}
	for i := 1; i <= 5; i++ {
		t.Players = append(t.Players, players.Player{
			ID:           fmt.Sprintf("%s-%d", id, i),
			LastName:     fmt.Sprintf("Player%d", i),
			HeightInches: 74 + 2*i,
			Ratings:      ratings(level + i),
			Tendencies:   balanced(),
		})
	}
	return t
}

// only returns tendencies that put all weight on one action.
func only(set func(*players.ActionTendencies)) players.Tendencies {
	tend := players.Tendencies{}
	set(&tend.Actions)
	return tend
}

func withTendencies(t teams.Team, tend players.Tendencies) teams.Team {
	out := t
	out.Players = make([]players.Player, len(t.Players))
	copy(out.Players, t.Players)
	for i := range out.Players {
		out.Players[i].Tendencies = tend
	}
	return out
}

func mustEngine(t *testing.T, tun tuning.Tuning) *Engine {
	t.Helper()
	e, err := NewEngine(tun, Collaborators{}, nil)
	if err != nil {
		t.Fatalf("unexpected engine error: %v", err)
	}
	return e
}

func mustState(t *testing.T, off, def teams.Team, s Setup, tun tuning.Tuning) State {
	t.Helper()
	if s.OffenseSide == "" {
		s.OffenseSide = court.Home
	}
	st, err := NewState(off, def, s, tun)
	if err != nil {
		t.Fatalf("unexpected state error: %v", err)
	}
	return st
}

// forcing makes the policy follow tendencies almost exclusively.
func forcing() tuning.Tuning {
	tun := tuning.Default()
	tun.Policy.TendencyWeight = 50
	return tun
}

type recordingSink struct {
	plays       []Play
	assists     [][2]string
	freeThrows  []int
	possessions []string
}

func (s *recordingSink) RecordPlay(p Play) { s.plays = append(s.plays, p) }
func (s *recordingSink) RecordAssist(passerID, scorerID string) {
	s.assists = append(s.assists, [2]string{passerID, scorerID})
}
func (s *recordingSink) RecordFreeThrows(_ string, attempts, made int) {
	s.freeThrows = append(s.freeThrows, attempts, made)
}
func (s *recordingSink) UpdatePossessions(teamID string) { s.possessions = append(s.possessions, teamID) }
