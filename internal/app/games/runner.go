package games

import (
	"context"
	"errors"
	"fmt"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	domaingames "github.com/preston-bernstein/nba-possession-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/formation"
	"github.com/preston-bernstein/nba-possession-sim/internal/possession"
	"github.com/preston-bernstein/nba-possession-sim/internal/scheme"
)

// maxPossessions bounds a game. Regulation with the default tuning runs close to two hundred
// possessions, split evenly between the teams.
const maxPossessions = 2000

// MaxQuarters is the longest game a request may ask for.
const MaxQuarters = 8

// ErrRunaway is returned when a game does not finish within maxPossessions.
var ErrRunaway = errors.New("game did not finish")

// Request describes one game. Schemes are what each team plays on defense; sets are what each
// team runs on offense. Scheme applies to whichever side leaves its own scheme empty. A zero seed
// draws a fresh one.
type Request struct {
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	Seed       uint64 `json:"seed,omitempty"`
	Scheme     string `json:"scheme,omitempty"`
	HomeScheme string `json:"homeScheme,omitempty"`
	AwayScheme string `json:"awayScheme,omitempty"`
	HomeSet    string `json:"homeSet,omitempty"`
	AwaySet    string `json:"awaySet,omitempty"`
	Quarters   int    `json:"quarters,omitempty"`
}

// plan is a validated Request.
type plan struct {
	home, away             teams.Team
	homeScheme, awayScheme scheme.Scheme
	homeSet, awaySet       formation.Set
	quarters               int
}

func (s *Service) plan(req Request) (plan, error) {
	if req.HomeTeamID == "" || req.AwayTeamID == "" {
		return plan{}, fmt.Errorf("%w: homeTeamId and awayTeamId are required", ErrInvalidRequest)
	}
	if req.HomeTeamID == req.AwayTeamID {
		return plan{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidRequest)
	}
	if req.Quarters < 0 || req.Quarters > MaxQuarters {
		return plan{}, fmt.Errorf("%w: quarters must be between 1 and %d", ErrInvalidRequest, MaxQuarters)
	}

	var (
		p   plan
		err error
	)
	if p.home, err = s.rosters.TeamByID(req.HomeTeamID); err != nil {
		return plan{}, err
	}
	if p.away, err = s.rosters.TeamByID(req.AwayTeamID); err != nil {
		return plan{}, err
	}
	if p.homeScheme, err = scheme.Parse(orDefault(req.HomeScheme, req.Scheme)); err != nil {
		return plan{}, err
	}
	if p.awayScheme, err = scheme.Parse(orDefault(req.AwayScheme, req.Scheme)); err != nil {
		return plan{}, err
	}
	if p.homeSet, err = formation.ParseSet(req.HomeSet); err != nil {
		return plan{}, err
	}
	if p.awaySet, err = formation.ParseSet(req.AwaySet); err != nil {
		return plan{}, err
	}
	p.quarters = req.Quarters
	if p.quarters == 0 {
		p.quarters = s.tuning.Clock.Quarters
	}
	return p, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// defending returns the scheme and set for a possession in which offense has the ball.
func (p plan) defending(offense teams.Team) (scheme.Scheme, formation.Set) {
	if offense.ID == p.home.ID {
		return p.awayScheme, p.homeSet
	}
	return p.homeScheme, p.awaySet
}

// simulate chains possessions from the opening tip to the final buzzer. Home has the first
// possession; possessions alternate after every change of possession and quarters continue with
// the team that was due the ball.
func (s *Service) simulate(ctx context.Context, req Request) (domaingames.Game, []possession.Play, error) {
	p, err := s.plan(req)
	if err != nil {
		return domaingames.Game{}, nil, err
	}

	t := s.tuning
	engine := s.engine
	if p.quarters != t.Clock.Quarters {
		t.Clock.Quarters = p.quarters
		if engine, err = possession.NewEngine(t, s.collab, s.logger); err != nil {
			return domaingames.Game{}, nil, err
		}
	}

	id := s.newID()
	seed := req.Seed
	if seed == 0 {
		seed = seedFromID(id)
	}

	box := newBoxScore(p.home, p.away)
	offense, defense := p.home, p.away
	sch, set := p.defending(offense)
	st, err := possession.NewState(offense, defense, possession.Setup{
		GameID:      id,
		Possession:  1,
		GameSeed:    seed,
		OffenseSide: court.Home,
		Clock:       possession.Clock{Quarter: 1, Seconds: float64(t.Clock.Quarters) * t.Clock.QuarterSeconds},
		Scheme:      sch,
		Set:         set,
	}, t)
	if err != nil {
		return domaingames.Game{}, nil, err
	}

	var (
		plays []possession.Play
		score domaingames.Score
	)
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return domaingames.Game{}, nil, err
		}
		if n >= maxPossessions {
			return domaingames.Game{}, nil, fmt.Errorf("%w after %d possessions", ErrRunaway, n)
		}

		sch, _ := p.defending(offense)
		final, ps, err := engine.Run(offense, defense, st, sch, box)
		if err != nil {
			return domaingames.Game{}, nil, fmt.Errorf("possession %d: %w", st.Possession, err)
		}
		plays = append(plays, ps...)
		s.metrics.RecordPossession(offense.ID, string(final.EndReason), final.Score.Offense-st.Score.Offense)

		if offense.ID == p.home.ID {
			score = domaingames.Score{Home: final.Score.Offense, Away: final.Score.Defense}
		} else {
			score = domaingames.Score{Home: final.Score.Defense, Away: final.Score.Offense}
		}

		if final.Clock.Quarter >= t.Clock.Quarters && final.Clock.QuarterRemaining(t.Clock) <= 0 {
			break
		}

		nextSch, nextSet := p.defending(defense)
		next, err := possession.Swap(final, defense, offense, nextSch, nextSet, t)
		if err != nil {
			return domaingames.Game{}, nil, err
		}
		st = next
		offense, defense = defense, offense
	}

	home, away := box.team(p.home.ID), box.team(p.away.ID)
	game := domaingames.Game{
		ID:          id,
		Seed:        seed,
		HomeTeamID:  p.home.ID,
		AwayTeamID:  p.away.ID,
		HomeScheme:  string(p.homeScheme),
		AwayScheme:  string(p.awayScheme),
		Quarters:    p.quarters,
		Status:      domaingames.StatusFinal,
		Score:       score,
		Possessions: home.Possessions + away.Possessions,
		Plays:       len(plays),
		Home:        home,
		Away:        away,
		Players:     box.playerLines(),
		CreatedAt:   s.now().UTC(),
	}
	return game, plays, nil
}
