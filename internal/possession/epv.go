package possession

import (
	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

// Situation is what the EPV estimate looks at.
type Situation struct {
	Spacing   Spacing
	ShotClock float64
	Margin    int
	// Three is set when the ball handler is spotted up beyond the arc.
	Three bool
}

// EPV estimates the expected points of each selectable action.
func EPV(t tuning.EPV, s Situation) map[actions.Action]float64 {
	out := make(map[actions.Action]float64, len(actions.Selectable))
	for _, a := range actions.Selectable {
		v := t.Base.For(a)
		switch {
		case a.IsShot():
			v *= 1 + t.ShotQualityWeight*(s.Spacing.ShotQuality-0.5)
			if a == actions.CatchShoot {
				v *= 1 + t.BallMovementBonus*s.Spacing.BallMovement
			}
		case a == actions.Drive:
			v *= 1 + t.OpenLaneWeight*(s.Spacing.OpenLanes-0.5)
		case a.IsBallMovement():
			v *= 1 - t.BallMovementBonus*s.Spacing.BallMovement
		}

		if tier, ok := clockTier(t, s.ShotClock); ok {
			if a.IsBallMovement() {
				v *= tier.Move
			} else {
				v *= tier.Shoot
			}
		}
		if tier, ok := scoreTier(t, s.Margin); ok {
			switch {
			case a.IsBallMovement():
				v *= tier.Move
			case isThreeAttempt(a, s.Three):
				v *= tier.Three
			default:
				v *= tier.Shoot
			}
		}
		out[a] = v
	}
	return out
}

func clockTier(t tuning.EPV, shotClock float64) (tuning.ClockTier, bool) {
	switch {
	case shotClock < t.FinalClock.Seconds:
		return t.FinalClock, true
	case shotClock < t.LateClock.Seconds:
		return t.LateClock, true
	case t.EarlyClock.Seconds > 0 && shotClock >= t.EarlyClock.Seconds:
		return t.EarlyClock, true
	default:
		return tuning.ClockTier{}, false
	}
}

// scoreTier picks blowout safety when leading big and aggression when trailing big.
func scoreTier(t tuning.EPV, margin int) (tuning.ScoreTier, bool) {
	switch {
	case margin >= t.Blowout.Margin:
		return t.Blowout, true
	case -margin >= t.Trailing.Margin:
		return t.Trailing, true
	default:
		return tuning.ScoreTier{}, false
	}
}

func isThreeAttempt(a actions.Action, beyondArc bool) bool {
	switch a {
	case actions.Stepback:
		return true
	case actions.CatchShoot, actions.Pullup:
		return beyondArc
	default:
		return false
	}
}
