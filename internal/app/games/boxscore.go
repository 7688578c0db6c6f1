package games

import (
	domaingames "github.com/preston-bernstein/nba-possession-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/possession"
)

// QuickFreeThrowRate is the flat make rate the quick box-score line credits on shooting-foul
// free throws. The engine itself simulates every attempt from the shooter's rating, so
// TeamLine.QuickPoints and TeamLine.Points can disagree.
const QuickFreeThrowRate = 0.75

// boxScore aggregates one game's plays. It is the possession.Sink of the game runner and is
// used from a single goroutine.
type boxScore struct {
	teamOf  map[string]string
	teams   map[string]*domaingames.TeamLine
	players map[string]*domaingames.PlayerLine
	// order keeps player rows in roster order, home first.
	order []string
}

func newBoxScore(home, away teams.Team) *boxScore {
	b := &boxScore{
		teamOf:  make(map[string]string),
		teams:   make(map[string]*domaingames.TeamLine),
		players: make(map[string]*domaingames.PlayerLine),
	}
	for _, t := range []teams.Team{home, away} {
		b.teams[t.ID] = &domaingames.TeamLine{TeamID: t.ID}
		for _, p := range t.Lineup() {
			b.teamOf[p.ID] = t.ID
			b.players[p.ID] = &domaingames.PlayerLine{PlayerID: p.ID, TeamID: t.ID}
			b.order = append(b.order, p.ID)
		}
	}
	return b
}

func (b *boxScore) RecordPlay(p possession.Play) {
	switch p.Type {
	case possession.PlayRebound:
		if p.Rebound == nil {
			return
		}
		b.each(p.ActorID, func(l *domaingames.Line) {
			if p.Rebound.OffenseWon {
				l.OffensiveRebounds++
			} else {
				l.DefensiveRebounds++
			}
		})
		return
	}

	switch o := p.Outcome.(type) {
	case possession.ShotOutcome:
		if o.Turnover {
			b.each(p.ActorID, func(l *domaingames.Line) { l.Turnovers++ })
			return
		}
		// A shooting foul on a miss is not a field goal attempt.
		if o.Make || !o.Foul {
			b.fieldGoal(p.ActorID, o.Make, o.Three)
		}
		b.scored(p, o.Points, o.FreeThrows, o.FreeThrowsMade)
		if o.Foul {
			b.each(p.DefenderID, func(l *domaingames.Line) { l.Fouls++ })
		}
	case possession.DriveOutcome:
		switch {
		case o.Turnover:
			b.each(p.ActorID, func(l *domaingames.Line) { l.Turnovers++ })
			return
		case o.Foul:
			b.each(p.DefenderID, func(l *domaingames.Line) { l.Fouls++ })
		case o.Blowby:
			b.fieldGoal(p.ActorID, o.Make, false)
		}
		b.scored(p, o.Points, o.FreeThrows, o.FreeThrowsMade)
	case possession.PassOutcome:
		if o.Turnover {
			b.each(p.ActorID, func(l *domaingames.Line) { l.Turnovers++ })
		}
	}
}

func (b *boxScore) RecordAssist(passerID, scorerID string) {
	_ = scorerID
	b.each(passerID, func(l *domaingames.Line) { l.Assists++ })
}

func (b *boxScore) RecordFreeThrows(shooterID string, attempts, made int) {
	b.each(shooterID, func(l *domaingames.Line) {
		l.FreeThrowsAttempted += attempts
		l.FreeThrowsMade += made
	})
}

func (b *boxScore) UpdatePossessions(teamID string) {
	if t, ok := b.teams[teamID]; ok {
		t.Possessions++
	}
}

func (b *boxScore) fieldGoal(playerID string, made, three bool) {
	b.each(playerID, func(l *domaingames.Line) {
		l.FieldGoalsAttempted++
		if three {
			l.ThreesAttempted++
		}
		if made {
			l.FieldGoalsMade++
			if three {
				l.ThreesMade++
			}
		}
	})
}

func (b *boxScore) scored(p possession.Play, points, freeThrows, freeThrowsMade int) {
	b.each(p.ActorID, func(l *domaingames.Line) { l.Points += points })
	if t, ok := b.teams[b.teamOf[p.ActorID]]; ok {
		t.QuickPoints += float64(points-freeThrowsMade) + QuickFreeThrowRate*float64(freeThrows)
	}
}

// each applies fn to the player's line and to the line of the player's team.
func (b *boxScore) each(playerID string, fn func(*domaingames.Line)) {
	pl, ok := b.players[playerID]
	if !ok {
		return
	}
	fn(&pl.Line)
	fn(&b.teams[pl.TeamID].Line)
}

func (b *boxScore) team(id string) domaingames.TeamLine {
	if t, ok := b.teams[id]; ok {
		return *t
	}
	return domaingames.TeamLine{TeamID: id}
}

func (b *boxScore) playerLines() []domaingames.PlayerLine {
	out := make([]domaingames.PlayerLine, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.players[id])
	}
	return out
}
