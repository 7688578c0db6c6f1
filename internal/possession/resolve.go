package possession

import (
	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/formation"
	"github.com/preston-bernstein/nba-possession-sim/internal/movement"
	"github.com/preston-bernstein/nba-possession-sim/internal/probability"
	"github.com/preston-bernstein/nba-possession-sim/internal/rebound"
)

// separationQuality converts contest removed by separation into shot quality, matching the
// openness share of court.ShotQuality.
const separationQuality = 0.45

// shoot resolves a field goal attempt. Draws: stepback movement (two, stepbacks only), foul, make,
// then assist and free throws as they apply, then the rebound on a miss.
func (r *run) shoot(a actions.Action, from actions.Action) error {
	st, t := r.st, r.t
	shooter := r.handler()
	pos, located := st.OffenseFormation.Position(shooter.ID)
	if !located {
		pos = st.OffenseFormation.Ball
	}
	defender, fellBack := r.matchup(shooter.ID)
	defenders := st.DefenseFormation.Positions()
	out := ShotOutcome{Desperation: a == actions.Desperation}

	separation := 0.0
	if a == actions.Stepback {
		m := movement.Execute(movement.Stepback, r.moveContext(shooter, pos, defenders), r.g)
		out.Movement = &m
		out.Turnover = m.Turnover
		pos = court.Clamp(court.Toward(pos, court.AttackedBasket(st.OffenseSide), m.PositionDelta))
		separation = m.SeparationGained
		st.DribblesSincePass += m.DribblesUsed
	} else {
		st.DribblesSincePass += movement.CalculateDribblesForAction(a, shooter.Ratings.BallHandle, r.pressure(pos, defenders))
	}

	nearest, _ := court.Nearest(pos, defenders)
	out.Zone = court.Classify(st.OffenseSide, pos)
	out.Three = out.Zone.IsThree()
	out.Contest = court.Contest(nearest + separation)
	out.Quality = probability.Clamp01(court.ShotQuality(st.OffenseSide, pos, defenders) +
		separationQuality*(court.Contest(nearest)-out.Contest))

	if out.Turnover {
		out.Explain = probability.Fixed("turnover", out.Movement.TurnoverChance)
	} else {
		out.FoulExplain = probability.Foul(t.Fouls, probability.FoulInput{
			Base:             t.Fouls.Shot.For(out.Zone),
			Contest:          out.Contest,
			ShooterStrength:  shooter.Ratings.Strength,
			DefenderStrength: defender.Ratings.Strength,
		})
		out.Explain = probability.ShotMake(t.Shooting, probability.ShotInput{
			Zone:        out.Zone,
			Shooter:     shooter.Ratings,
			Defender:    probability.DefendingRating(defender.Ratings, out.Zone),
			Quality:     out.Quality,
			Contest:     out.Contest,
			Fatigue:     st.Fatigue[shooter.ID],
			Post:        a == actions.Post,
			Clutch:      r.clutch(),
			Desperation: out.Desperation,
		})
		out.Foul = r.g.Bernoulli(out.FoulExplain.Probability)
		out.Make = r.g.Bernoulli(out.Explain.Probability)
	}

	moved := 0.0
	if out.Movement != nil {
		moved = out.Movement.TimeElapsed
	}
	elapsed := r.elapsed(a, moved)
	r.tire(shooter.ID, t.Fatigue.Shot, elapsed)
	if out.Movement != nil {
		if err := r.install(st.OffenseFormation.WithPosition(shooter.ID, pos)); err != nil {
			return err
		}
	}
	r.drain(elapsed)
	st.JustReceived = false

	play := Play{
		Type:          PlayAction,
		ActorID:       shooter.ID,
		TeamID:        st.OffenseID,
		DefenderID:    defender.ID,
		Action:        a,
		ConvertedFrom: from,
		Position:      pos,
		Fallback:      fellBack,
	}

	switch {
	case out.Turnover:
		play.Outcome = out
		r.emit(play)
		r.end(EndTurnover)
		return nil
	case out.Make || out.Foul:
		if out.Make {
			out.Points = out.Zone.Points()
			play.AssistID = r.assist(shooter, out.Zone)
		}
		if out.Foul {
			r.foul(defender.ID)
			out.FreeThrows = out.Zone.Points()
			if out.Make {
				out.FreeThrows = 1
			}
			out.FreeThrowsMade = r.freeThrows(shooter, out.FreeThrows)
			out.Points += out.FreeThrowsMade
		}
		st.Score.Offense += out.Points
		play.Outcome = out
		r.emit(play)
		if out.Foul {
			r.end(EndFreeThrows)
		} else {
			r.end(EndMadeBasket)
		}
		return nil
	}

	play.Outcome = out
	r.emit(play)
	if out.Desperation {
		r.end(EndShotClock)
		return nil
	}
	var shot *court.Position
	if located {
		shot = &pos
	}
	return r.rebound(shot, out.Zone, out.Quality)
}

// drive resolves a drive. Draws: movement (two), foul unless turned over, finish on a blow-by,
// then assist and free throws as they apply, then the rebound on a missed finish.
func (r *run) drive(from actions.Action) error {
	st, t := r.st, r.t
	handler := r.handler()
	pos := r.handlerPos()
	defender, fellBack := r.matchup(handler.ID)
	defenders := st.DefenseFormation.Positions()

	m := movement.Execute(movement.Drive, r.moveContext(handler, pos, defenders), r.g)
	out := DriveOutcome{Movement: m, Turnover: m.Turnover}
	next := court.Clamp(court.Toward(pos, court.AttackedBasket(st.OffenseSide), m.PositionDelta))
	st.DribblesSincePass += m.DribblesUsed

	switch {
	case out.Turnover:
		out.Explain = probability.Fixed("turnover", m.TurnoverChance)
	default:
		nearest, _ := court.Nearest(next, defenders)
		contest := court.Contest(nearest + m.SeparationGained)
		out.FoulExplain = probability.Foul(t.Fouls, probability.FoulInput{
			Base:             t.Fouls.Drive,
			Contest:          contest,
			ShooterStrength:  handler.Ratings.Strength,
			DefenderStrength: defender.Ratings.Strength,
		})
		out.Foul = r.g.Bernoulli(out.FoulExplain.Probability)
		out.Explain = probability.Fixed("drive", m.SuccessChance)
		if out.Foul {
			out.Explain = out.FoulExplain
		}
		if !out.Foul && m.Success {
			out.Blowby = true
			protector := r.rimProtector()
			out.Explain = probability.DriveFinish(t.Shooting, probability.FinishInput{
				Finisher:  handler.Ratings,
				RimDefend: max(protector.Ratings.Block, protector.Ratings.Interior),
				Contest:   contest,
				Fatigue:   st.Fatigue[handler.ID],
			})
			out.Make = r.g.Bernoulli(out.Explain.Probability)
		}
	}

	elapsed := r.elapsed(actions.Drive, m.TimeElapsed)
	r.tire(handler.ID, t.Fatigue.Drive, elapsed)
	if err := r.install(st.OffenseFormation.WithPosition(handler.ID, next)); err != nil {
		return err
	}
	r.drain(elapsed)
	st.JustReceived = false

	play := Play{
		Type:          PlayAction,
		ActorID:       handler.ID,
		TeamID:        st.OffenseID,
		DefenderID:    defender.ID,
		Action:        actions.Drive,
		ConvertedFrom: from,
		Position:      next,
		Fallback:      fellBack,
	}

	switch {
	case out.Turnover:
		play.Outcome = out
		r.emit(play)
		r.end(EndTurnover)
	case out.Foul:
		r.foul(defender.ID)
		out.FreeThrows = 2
		out.FreeThrowsMade = r.freeThrows(handler, out.FreeThrows)
		out.Points = out.FreeThrowsMade
		st.Score.Offense += out.Points
		play.Outcome = out
		r.emit(play)
		r.end(EndFreeThrows)
	case out.Make:
		out.Points = 2
		play.AssistID = r.assist(handler, court.Classify(st.OffenseSide, next))
		st.Score.Offense += out.Points
		play.Outcome = out
		r.emit(play)
		r.end(EndMadeBasket)
	case out.Blowby:
		play.Outcome = out
		r.emit(play)
		return r.rebound(&next, court.Classify(st.OffenseSide, next), court.ShotQuality(st.OffenseSide, next, defenders))
	default:
		play.Outcome = out
		r.emit(play)
	}
	return nil
}

// pass resolves a pass. Draws: receiver, then turnover.
func (r *run) pass(from actions.Action) error {
	st, t := r.st, r.t
	passer := r.handler()
	pos := r.handlerPos()
	defenders := st.DefenseFormation.Positions()

	var (
		receivers []string
		spots     []court.Position
		weights   []float64
	)
	for _, p := range r.offense.Lineup() {
		if p.ID == passer.ID {
			continue
		}
		rp, ok := st.OffenseFormation.Position(p.ID)
		if !ok {
			continue
		}
		d, _ := court.Nearest(rp, defenders)
		receivers = append(receivers, p.ID)
		spots = append(spots, rp)
		weights = append(weights, 0.25+(1-court.Contest(d))+0.5*court.ShotQuality(st.OffenseSide, rp, defenders))
	}
	if len(receivers) == 0 {
		return r.reset()
	}

	idx := r.g.Pick(weights)
	receiver, _ := r.offense.Player(receivers[idx])
	stealer, fellBack := r.matchup(receiver.ID)
	out := PassOutcome{ReceiverID: receiver.ID, Distance: court.Distance(pos, spots[idx])}
	out.Explain = probability.PassTurnover(t.Passing, probability.PassInput{
		Passer:   passer.Ratings,
		Steal:    stealer.Ratings.Steal,
		Pressure: r.pressure(pos, defenders),
		Distance: out.Distance,
	})
	out.Turnover = r.g.Bernoulli(out.Explain.Probability)
	out.Complete = !out.Turnover

	elapsed := r.elapsed(actions.Pass, 0)
	r.tire(passer.ID, 0, elapsed)
	if out.Complete {
		st.BallHandlerID = receiver.ID
		st.LastPasserID = passer.ID
		st.DribblesSincePass = 0
		st.JustReceived = true
		st.Spacing.BallMovement = min(st.Spacing.BallMovement+t.Passing.BallMovementGain, 1)
		if err := r.install(st.OffenseFormation.WithBall(receiver.ID)); err != nil {
			return err
		}
	}
	r.drain(elapsed)

	r.emit(Play{
		Type:          PlayAction,
		ActorID:       passer.ID,
		TeamID:        st.OffenseID,
		DefenderID:    stealer.ID,
		Action:        actions.Pass,
		ConvertedFrom: from,
		Outcome:       out,
		Position:      pos,
		Fallback:      fellBack,
	})
	if out.Turnover {
		r.end(EndTurnover)
	}
	return nil
}

// reset takes the ball back out and re-runs the set. It draws nothing.
func (r *run) reset() error {
	st, t := r.st, r.t
	handler := r.handler()
	pos := r.handlerPos()

	elapsed := r.elapsed(actions.Reset, 0)
	r.tire(handler.ID, 0, elapsed)
	st.DribblesSincePass += movement.CalculateDribblesForAction(actions.Reset, handler.Ratings.BallHandle, r.pressure(pos, st.DefenseFormation.Positions()))
	st.JustReceived = false
	st.Spacing.BallMovement = min(st.Spacing.BallMovement+t.Passing.BallMovementGain/2, 1)

	off, err := formation.CreateOffensive(r.offense, st.OffenseSide, formation.Context{
		Set:           st.Set,
		BallHandlerID: handler.ID,
		Version:       st.OffenseFormation.Version + 1,
	})
	if err != nil {
		return err
	}
	if err := r.install(off); err != nil {
		return err
	}
	r.drain(elapsed)

	r.emit(Play{
		Type:     PlayAction,
		ActorID:  handler.ID,
		TeamID:   st.OffenseID,
		Action:   actions.Reset,
		Outcome:  PassOutcome{Complete: true, Reset: true, Explain: probability.Fixed("reset", 1)},
		Position: r.handlerPos(),
	})
	return nil
}

// rebound resolves a miss. shot is nil when the shot location is unknown.
func (r *run) rebound(shot *court.Position, zone court.Zone, quality float64) error {
	st := r.st
	res, err := rebound.Resolve(r.t.Rebound, rebound.Scene{
		Offense:     r.offense,
		Defense:     r.defense,
		OffenseSide: st.OffenseSide,
		OffenseForm: st.OffenseFormation,
		DefenseForm: st.DefenseFormation,
		Shot:        shot,
		Zone:        zone,
		Quality:     quality,
	}, r.g)
	if err != nil {
		return err
	}

	play := Play{
		Type:     PlayRebound,
		ActorID:  res.WinnerID,
		TeamID:   res.WinnerTeamID,
		Rebound:  &res,
		Position: court.AttackedBasket(st.OffenseSide),
		Fallback: res.Fallback,
	}
	if res.Landing != nil {
		play.Position = *res.Landing
	}
	if !res.OffenseWon {
		play.Side = st.OffenseSide.Opposite()
		r.emit(play)
		r.end(EndDefensiveRebound)
		return nil
	}

	st.ShotClock = max(st.ShotClock, r.t.Clock.OffensiveReboundFloor)
	st.BallHandlerID = res.WinnerID
	st.LastPasserID = ""
	st.DribblesSincePass = 0
	st.JustReceived = false
	off := st.OffenseFormation
	if res.Landing != nil {
		off = off.WithPosition(res.WinnerID, *res.Landing)
	}
	if err := r.install(off.WithBall(res.WinnerID)); err != nil {
		return err
	}
	r.emit(play)
	return nil
}
