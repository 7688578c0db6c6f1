// Package rebound resolves the contest for a missed shot among all ten players on the floor.
package rebound

import (
	"errors"
	"math"
	"sort"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/formation"
	"github.com/preston-bernstein/nba-possession-sim/internal/probability"
	"github.com/preston-bernstein/nba-possession-sim/internal/rng"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

// ErrNoParticipants is returned when neither team has a player on the floor.
var ErrNoParticipants = errors.New("rebound has no participants")

const (
	landingJitter   = 35 * math.Pi / 180
	fallbackContest = 0.25
)

// Scene is everything the resolver knows about a miss. Shot is nil when the shot location is
// unknown, which selects the simplified weighting.
type Scene struct {
	Offense     teams.Team
	Defense     teams.Team
	OffenseSide court.Side
	OffenseForm formation.Formation
	DefenseForm formation.Formation
	Shot        *court.Position
	Zone        court.Zone
	Quality     float64
}

// Participant is one player's stake in the contest.
type Participant struct {
	PlayerID string  `json:"playerId"`
	TeamID   string  `json:"teamId"`
	Offense  bool    `json:"offense"`
	Weight   float64 `json:"weight"`
	BoxedOut bool    `json:"boxedOut"`
	// BoxingOut is the offensive player this defender has sealed, if any.
	BoxingOut string  `json:"boxingOut,omitempty"`
	Distance  float64 `json:"distance"`
}

// Result names the rebounder. OffenseWon is derived from the winner's team.
type Result struct {
	WinnerID     string          `json:"winnerId"`
	WinnerTeamID string          `json:"winnerTeamId"`
	OffenseWon   bool            `json:"offenseWon"`
	Contested    bool            `json:"contested"`
	Fallback     bool            `json:"fallback"`
	Landing      *court.Position `json:"landing,omitempty"`
	Participants []Participant   `json:"participants"`
}

type entrant struct {
	player  players.Player
	teamID  string
	offense bool
	pos     court.Position
}

// Resolve picks the rebounder with draws from g only. The fallback path draws once; the full path
// draws three times (landing angle, landing distance, winner).
func Resolve(t tuning.Rebound, s Scene, g *rng.RNG) (Result, error) {
	rim := court.AttackedBasket(s.OffenseSide)
	entrants := gather(s, rim)
	if len(entrants) == 0 {
		return Result{}, ErrNoParticipants
	}
	if s.Shot == nil {
		return fallback(t, entrants, rim, g), nil
	}
	return full(t, s, entrants, rim, g), nil
}

func gather(s Scene, rim court.Position) []entrant {
	var out []entrant
	add := func(team teams.Team, f formation.Formation, offense bool) {
		for _, p := range team.Lineup() {
			pos, ok := f.Position(p.ID)
			if !ok {
				pos = rim
			}
			out = append(out, entrant{player: p, teamID: team.ID, offense: offense, pos: pos})
		}
	}
	add(s.Offense, s.OffenseForm, true)
	add(s.Defense, s.DefenseForm, false)
	return out
}

func fallback(t tuning.Rebound, entrants []entrant, rim court.Position, g *rng.RNG) Result {
	parts := make([]Participant, len(entrants))
	weights := make([]float64, len(entrants))
	for i, e := range entrants {
		d := court.Distance(e.pos, rim)
		w, _ := probability.ReboundWeight(t, probability.ReboundInput{
			Ratings:      e.player.Ratings,
			HeightInches: e.player.HeightInches,
			Offense:      e.offense,
			Distance:     d,
		})
		parts[i] = participant(e, w, d)
		weights[i] = w
	}
	winner := g.Pick(weights)
	res := result(parts, winner)
	res.Fallback = true
	res.Contested = closeContest(parts)
	return res
}

func full(t tuning.Rebound, s Scene, entrants []entrant, rim court.Position, g *rng.RNG) Result {
	landing := Landing(rim, *s.Shot, s.Zone, s.Quality, g)
	boxers := boxOuts(t, entrants, rim)

	parts := make([]Participant, len(entrants))
	weights := make([]float64, len(entrants))
	for i, e := range entrants {
		d := court.Distance(e.pos, landing)
		w, _ := probability.ReboundWeight(t, probability.ReboundInput{
			Ratings:      e.player.Ratings,
			HeightInches: e.player.HeightInches,
			Offense:      e.offense,
		})
		w *= math.Exp(-d / t.LandingFalloff)
		p := participant(e, 0, d)
		if target, ok := boxers[e.player.ID]; ok {
			p.BoxingOut = target
			w *= 1 + t.BoxOutBonus*float64(e.player.Ratings.BoxOut)/99
		}
		if sealed(boxers, e.player.ID) {
			p.BoxedOut = true
			w *= t.BoxedOutPenalty
		}
		p.Weight = w
		parts[i] = p
		weights[i] = w
	}

	winner := g.Pick(weights)
	res := result(parts, winner)
	res.Landing = &landing
	res.Contested = opponentNear(entrants, winner, landing, t.ContestedRadius)
	return res
}

// Landing projects where a miss comes down. Threes and poor looks bounce long. It draws twice:
// angle jitter, then distance jitter.
func Landing(rim, shot court.Position, zone court.Zone, quality float64, g *rng.RNG) court.Position {
	base := 6.0
	switch {
	case zone == court.ZoneRestricted:
		base = 4
	case zone == court.ZoneHeave:
		base = 15
	case zone.IsThree():
		base = 12
	case zone == court.ZoneShortMid || zone == court.ZoneLongMid:
		base = 9
	}
	dist := base * (1 + 0.5*(1-probability.Clamp01(quality)))
	angle := court.Angle(rim, shot)
	if shot == rim {
		angle = court.Angle(rim, court.Position{X: court.Length / 2, Y: rim.Y})
	}
	angle += g.Range(-landingJitter, landingJitter)
	dist *= g.Range(0.7, 1.3)
	return court.Clamp(court.Offset(rim, angle, dist))
}

// boxOuts pairs defenders near the rim, nearest first, with the nearest offensive player not yet
// sealed. The result maps defender id to offensive id.
func boxOuts(t tuning.Rebound, entrants []entrant, rim court.Position) map[string]string {
	var defenders, offenders []int
	for i, e := range entrants {
		if e.offense {
			offenders = append(offenders, i)
		} else if court.Distance(e.pos, rim) <= t.BoxOutRadius {
			defenders = append(defenders, i)
		}
	}
	sort.SliceStable(defenders, func(a, b int) bool {
		return court.Distance(entrants[defenders[a]].pos, rim) < court.Distance(entrants[defenders[b]].pos, rim)
	})

	out := make(map[string]string, len(defenders))
	taken := make(map[int]bool, len(offenders))
	for _, d := range defenders {
		best, bestDist := -1, math.Inf(1)
		for _, o := range offenders {
			if taken[o] {
				continue
			}
			if dist := court.Distance(entrants[d].pos, entrants[o].pos); dist < bestDist {
				best, bestDist = o, dist
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		out[entrants[d].player.ID] = entrants[best].player.ID
	}
	return out
}

func sealed(boxers map[string]string, id string) bool {
	for _, target := range boxers {
		if target == id {
			return true
		}
	}
	return false
}

func participant(e entrant, w, d float64) Participant {
	return Participant{PlayerID: e.player.ID, TeamID: e.teamID, Offense: e.offense, Weight: w, Distance: d}
}

func result(parts []Participant, winner int) Result {
	w := parts[winner]
	return Result{
		WinnerID:     w.PlayerID,
		WinnerTeamID: w.TeamID,
		OffenseWon:   w.Offense,
		Participants: parts,
	}
}

// closeContest reports whether the two heaviest participants are on opposite teams and within
// 25% of each other.
func closeContest(parts []Participant) bool {
	first, second := -1, -1
	for i, p := range parts {
		switch {
		case first < 0 || p.Weight > parts[first].Weight:
			first, second = i, first
		case second < 0 || p.Weight > parts[second].Weight:
			second = i
		}
	}
	if first < 0 || second < 0 {
		return false
	}
	a, b := parts[first], parts[second]
	return a.Offense != b.Offense && b.Weight >= a.Weight*(1-fallbackContest)
}

func opponentNear(entrants []entrant, winner int, landing court.Position, radius float64) bool {
	for i, e := range entrants {
		if i == winner || e.offense == entrants[winner].offense {
			continue
		}
		if court.Distance(e.pos, landing) <= radius {
			return true
		}
	}
	return false
}
