package possession

import (
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/defense"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/formation"
	"github.com/preston-bernstein/nba-possession-sim/internal/logging"
	"github.com/preston-bernstein/nba-possession-sim/internal/movement"
	"github.com/preston-bernstein/nba-possession-sim/internal/probability"
	"github.com/preston-bernstein/nba-possession-sim/internal/rng"
	"github.com/preston-bernstein/nba-possession-sim/internal/scheme"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

// maxIterations bounds the loop. The clocks end every possession long before it.
const maxIterations = 1000

const (
	clutchSeconds = 120
	clutchMargin  = 5
)

// Engine runs possessions. It holds no per-possession state and is safe for concurrent use.
type Engine struct {
	tuning tuning.Tuning
	collab Collaborators
	logger *slog.Logger
}

// NewEngine validates the tuning and fills in default collaborators.
func NewEngine(t tuning.Tuning, collab Collaborators, logger *slog.Logger) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Engine{tuning: t, collab: collab.withDefaults(), logger: logger}, nil
}

// Tuning returns the coefficients the engine runs with.
func (e *Engine) Tuning() tuning.Tuning {
	return e.tuning
}

// Run plays st to its end against s and returns the final state and the play log. A scheme that
// differs from the state's rebuilds the defense before the first action; an empty scheme keeps it.
// The input state is not modified.
func (e *Engine) Run(offense, defenseTeam teams.Team, st State, s scheme.Scheme, sink Sink) (State, []Play, error) {
	if offense.ID != st.OffenseID || defenseTeam.ID != st.DefenseID {
		return st, nil, fmt.Errorf("%w: got %s vs %s", ErrTeamMismatch, offense.ID, defenseTeam.ID)
	}
	if st.Phase == Ended {
		return st, nil, ErrPossessionEnded
	}
	if err := validateTeams(offense, defenseTeam); err != nil {
		return st, nil, err
	}
	if !offense.Has(st.BallHandlerID) {
		return st, nil, fmt.Errorf("%w: %q on %s", ErrUnknownBallHandler, st.BallHandlerID, offense.ID)
	}
	if sink == nil {
		sink = NopSink{}
	}

	st = st.clone()
	if s != "" && s != st.Scheme {
		parsed, err := scheme.Parse(string(s))
		if err != nil {
			return st, nil, err
		}
		st.Scheme = parsed
	}
	off := st.OffenseFormation
	if len(off.Spots) == 0 {
		var err error
		off, err = formation.CreateOffensive(offense, st.OffenseSide, formation.Context{Set: st.Set, BallHandlerID: st.BallHandlerID})
		if err != nil {
			return st, nil, err
		}
	}
	if err := st.rebuild(offense, defenseTeam, off); err != nil {
		return st, nil, err
	}

	r := &run{
		e:       e,
		t:       e.tuning,
		offense: offense,
		defense: defenseTeam,
		st:      &st,
		g:       rng.ForPossession(st.Seed, st.Possession),
		sink:    sink,
	}
	sink.UpdatePossessions(st.OffenseID)

	for i := 0; st.Phase == Live; i++ {
		if i >= maxIterations {
			r.end(EndIterationLimit)
			break
		}
		if err := r.step(); err != nil {
			return st, r.plays, err
		}
	}
	logging.Debug(e.logger, "possession ended",
		logging.FieldGameID, st.GameID,
		logging.FieldPossession, st.Possession,
		logging.FieldTeamID, st.OffenseID,
		logging.FieldEndReason, string(st.EndReason),
	)
	return st, r.plays, nil
}

// run is the mutable context of one Run call.
type run struct {
	e       *Engine
	t       tuning.Tuning
	offense teams.Team
	defense teams.Team
	st      *State
	g       *rng.RNG
	sink    Sink
	plays   []Play
}

func (r *run) step() error {
	st := r.st
	if st.Clock.QuarterRemaining(r.t.Clock) <= 0 {
		r.end(EndQuarter)
		return nil
	}
	if st.ShotClock <= 0 {
		return r.shoot(actions.Desperation, "")
	}

	handler := r.handler()
	pos := r.handlerPos()
	epv := EPV(r.t.EPV, Situation{
		Spacing:   st.Spacing,
		ShotClock: st.ShotClock,
		Margin:    st.Score.Margin(),
		Three:     court.Classify(st.OffenseSide, pos).IsThree(),
	})
	chosen := ChooseAction(r.t.Policy, epv, handler.Tendencies.Actions, r.g)
	a, from := Convert(chosen, st.OffenseSide, pos, st.JustReceived)

	switch a.Kind() {
	case actions.KindShot:
		return r.shoot(a, from)
	case actions.KindDrive:
		return r.drive(from)
	case actions.KindPass:
		if a == actions.Reset {
			return r.reset()
		}
		return r.pass(from)
	}
	return fmt.Errorf("unhandled action %q", a)
}

func (r *run) handler() players.Player {
	p, _ := r.offense.Player(r.st.BallHandlerID)
	return p
}

func (r *run) handlerPos() court.Position {
	pos, ok := r.st.OffenseFormation.Position(r.st.BallHandlerID)
	if !ok {
		return r.st.OffenseFormation.Ball
	}
	return pos
}

// matchup returns the defender responsible for id. The second result reports the documented
// first-defender fallback.
func (r *run) matchup(id string) (players.Player, bool) {
	defID, fellBack := defense.DefenderFor(id, r.st.Assignments)
	p, ok := r.defense.Player(defID)
	if !ok {
		p, fellBack = r.defense.Lineup()[0], true
	}
	if fellBack {
		logging.Debug(r.e.logger, "no matched defender, using default",
			logging.FieldGameID, r.st.GameID,
			logging.FieldPlayerID, id,
			logging.FieldScheme, string(r.st.Scheme),
		)
	}
	return p, fellBack
}

// rimProtector is the defender closest to the basket under attack.
func (r *run) rimProtector() players.Player {
	_, idx := court.Nearest(court.AttackedBasket(r.st.OffenseSide), r.st.DefenseFormation.Positions())
	if idx >= 0 {
		if p, ok := r.defense.Player(r.st.DefenseFormation.Spots[idx].PlayerID); ok {
			return p
		}
	}
	return r.defense.Lineup()[0]
}

func (r *run) pressure(pos court.Position, defenders []court.Position) float64 {
	d, _ := court.Nearest(pos, defenders)
	return court.Contest(d)
}

func (r *run) moveContext(p players.Player, pos court.Position, defenders []court.Position) movement.Context {
	d, _ := court.Nearest(pos, defenders)
	return movement.Context{
		Player:           p,
		DefenderDistance: d,
		OpenLanes:        r.st.Spacing.OpenLanes,
		Spacing:          probability.Clamp01(formation.Analyze(r.st.OffenseFormation).Spacing - 1),
		Fatigue:          r.st.Fatigue[p.ID],
	}
}

func (r *run) clutch() bool {
	st := r.st
	margin := st.Score.Margin()
	if margin < 0 {
		margin = -margin
	}
	return st.Clock.Quarter >= r.t.Clock.Quarters &&
		st.Clock.QuarterRemaining(r.t.Clock) <= clutchSeconds &&
		margin <= clutchMargin
}

// elapsed is the time an action takes, cut short by the shot clock or the end of the quarter.
// moved is the time of the dribble move the action was built on.
func (r *run) elapsed(a actions.Action, moved float64) float64 {
	return min(r.t.Clock.Drain.For(a)+moved, r.st.ShotClock, r.st.Clock.QuarterRemaining(r.t.Clock))
}

func (r *run) drain(elapsed float64) {
	st := r.st
	st.ShotClock = max(st.ShotClock-elapsed, 0)
	st.Clock.Seconds = max(st.Clock.Seconds-elapsed, st.Clock.QuarterFloor(r.t.Clock))
}

// tire charges the actor for the action and everyone else for the time it took.
func (r *run) tire(actorID string, extra, elapsed float64) {
	st := r.st
	for _, team := range []teams.Team{r.offense, r.defense} {
		for _, p := range team.Lineup() {
			cost := r.t.Fatigue.OffBallPerSecond * elapsed
			if p.ID == actorID {
				cost = (r.t.Fatigue.Action + extra) * (1.5 - float64(p.Ratings.Stamina)/99)
			}
			st.Fatigue[p.ID] = probability.Clamp01(st.Fatigue[p.ID] + cost)
		}
	}
}

func (r *run) install(off formation.Formation) error {
	return r.st.rebuild(r.offense, r.defense, off)
}

func (r *run) foul(defenderID string) {
	r.st.PlayerFouls[defenderID]++
	r.st.TeamFouls[r.st.DefenseID]++
}

func (r *run) freeThrows(shooter players.Player, attempts int) int {
	made := r.e.collab.FreeThrows.ShootFreeThrows(shooter, attempts, r.g)
	made = min(max(made, 0), attempts)
	r.sink.RecordFreeThrows(shooter.ID, attempts, made)
	return made
}

// assist rolls for assist credit on a made field goal and returns the passer credited.
func (r *run) assist(scorer players.Player, zone court.Zone) string {
	st := r.st
	if st.LastPasserID == "" || st.LastPasserID == scorer.ID || st.DribblesSincePass > r.t.Assist.DribbleThreshold {
		return ""
	}
	passer, ok := r.offense.Player(st.LastPasserID)
	if !ok {
		return ""
	}
	p := r.e.collab.Assists.AssistProbability(passer, scorer, st.DribblesSincePass, zone)
	if !r.g.Bernoulli(probability.Clamp01(p)) {
		return ""
	}
	r.sink.RecordAssist(passer.ID, scorer.ID)
	return passer.ID
}

func (r *run) emit(p Play) {
	st := r.st
	p.Seq = len(r.plays) + 1
	p.GameID = st.GameID
	p.Possession = st.Possession
	if p.Side == "" {
		p.Side = st.OffenseSide
	}
	p.Quarter = st.Clock.Quarter
	p.GameClock = st.Clock.Seconds
	p.ShotClock = st.ShotClock
	if p.Outcome != nil {
		p.Points = p.Outcome.Scored()
	}
	r.plays = append(r.plays, p)
	r.sink.RecordPlay(p)
}

func (r *run) end(reason EndReason) {
	r.st.Phase = Ended
	r.st.EndReason = reason
}
