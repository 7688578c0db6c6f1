// Package movement resolves on-ball dribble moves.
package movement

import (
	"math"

	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/probability"
	"github.com/preston-bernstein/nba-possession-sim/internal/rng"
)

// Kind is a dribble move.
type Kind string

const (
	Drive      Kind = "drive"
	Crossover  Kind = "crossover"
	Hesitation Kind = "hesitation"
	Stepback   Kind = "stepback"
	Spin       Kind = "spin"
)

type profile struct {
	lo, hi float64
	// dribbles, seconds, and feet are what a successful move costs and gains.
	dribbles   int
	seconds    float64
	advance    float64
	separation float64
}

var profiles = map[Kind]profile{
	Drive:      {lo: 0.65, hi: 0.90, dribbles: 3, seconds: 2.5, advance: 12, separation: 3},
	Crossover:  {lo: 0.60, hi: 0.88, dribbles: 2, seconds: 1.5, advance: 4, separation: 2.5},
	Hesitation: {lo: 0.70, hi: 0.92, dribbles: 2, seconds: 1.2, advance: 3, separation: 1.5},
	Stepback:   {lo: 0.60, hi: 0.90, dribbles: 3, seconds: 1.8, advance: -3, separation: 4},
	Spin:       {lo: 0.55, hi: 0.85, dribbles: 2, seconds: 1.6, advance: 5, separation: 3},
}

const (
	minSuccess  = 0.1
	maxSuccess  = 0.95
	maxTurnover = 0.35
	// retrySeconds is what a move costs on top of its profile when the defender stays in front.
	retrySeconds = 0.5
)

// Context is the situation a move is attempted in.
type Context struct {
	Player players.Player
	// DefenderDistance is the distance to the nearest defender in feet.
	DefenderDistance float64
	OpenLanes        float64
	Spacing          float64
	Fatigue          float64
}

// Outcome is the result of one move. PositionDelta is the distance gained toward the rim in feet;
// negative values move away from it. TimeElapsed is charged to both clocks by the engine.
type Outcome struct {
	Kind             Kind    `json:"kind"`
	Success          bool    `json:"success"`
	DribblesUsed     int     `json:"dribblesUsed"`
	TimeElapsed      float64 `json:"timeElapsed"`
	PositionDelta    float64 `json:"positionDelta"`
	SeparationGained float64 `json:"separationGained"`
	Turnover         bool    `json:"turnover"`
	SuccessChance    float64 `json:"successChance"`
	TurnoverChance   float64 `json:"turnoverChance"`
}

// SuccessChance is the probability that kind beats the defender in ctx.
func SuccessChance(kind Kind, ctx Context) float64 {
	p, ok := profiles[kind]
	if !ok {
		p = profiles[Drive]
	}
	handle := float64(ctx.Player.Ratings.BallHandle)
	chance := p.lo + (p.hi-p.lo)*handle/99

	switch {
	case ctx.DefenderDistance < 3:
		chance *= 0.7
	case ctx.DefenderDistance < 6:
		chance *= 0.85
	}
	chance *= 1 + 0.10*probability.Clamp01(ctx.OpenLanes)
	chance *= 1 + 0.05*probability.Clamp01(ctx.Spacing)
	chance *= 1 - 0.20*probability.Clamp01(ctx.Fatigue)
	return math.Min(math.Max(chance, minSuccess), maxSuccess)
}

// TurnoverChance is the probability a move loses the ball. It grows with dribbles, pressure and
// fatigue and shrinks with handle.
func TurnoverChance(dribbles int, handle int, defenderDistance, fatigue float64) float64 {
	pressure := court.Contest(defenderDistance)
	p := 0.01 * float64(dribbles) * float64(119-handle) / 99 * (1 + pressure) * (1 + 0.5*probability.Clamp01(fatigue))
	return math.Min(math.Max(p, 0), maxTurnover)
}

// Execute resolves a move. It always draws exactly twice from g: success, then turnover.
func Execute(kind Kind, ctx Context, g *rng.RNG) Outcome {
	p, ok := profiles[kind]
	if !ok {
		kind, p = Drive, profiles[Drive]
	}
	out := Outcome{
		Kind:           kind,
		DribblesUsed:   p.dribbles,
		TimeElapsed:    p.seconds,
		SuccessChance:  SuccessChance(kind, ctx),
		TurnoverChance: TurnoverChance(p.dribbles, ctx.Player.Ratings.BallHandle, ctx.DefenderDistance, ctx.Fatigue),
	}
	out.Success = g.Bernoulli(out.SuccessChance)
	out.Turnover = g.Bernoulli(out.TurnoverChance)

	if out.Success {
		out.PositionDelta = p.advance
		out.SeparationGained = p.separation
	} else {
		out.PositionDelta = p.advance * 0.25
		out.TimeElapsed += retrySeconds
	}
	return out
}

var baseDribbles = map[actions.Action]int{
	actions.CatchShoot:  0,
	actions.Pullup:      2,
	actions.Desperation: 2,
	actions.Stepback:    3,
	actions.Drive:       3,
	actions.Post:        2,
	actions.Pass:        1,
	actions.Reset:       2,
}

// CalculateDribblesForAction is the number of dribbles an action takes. Pressure in [0,1] adds up
// to two; an elite handle saves one. A catch-and-shoot never dribbles.
func CalculateDribblesForAction(a actions.Action, handle int, pressure float64) int {
	if a == actions.CatchShoot {
		return 0
	}
	n := baseDribbles[a] + int(math.Ceil(probability.Clamp01(pressure)*2))
	if handle >= 85 {
		n--
	}
	if n < 0 {
		return 0
	}
	return n
}
