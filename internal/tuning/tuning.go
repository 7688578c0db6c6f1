// Package tuning holds the empirically chosen coefficients of the simulation. They are data, not
// code: config.LoadTuning overlays a YAML file onto Default().
package tuning

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
)

// ActionValues carries one number per on-ball action.
type ActionValues struct {
	CatchShoot float64 `yaml:"catch_shoot" json:"catchShoot"`
	Pullup     float64 `yaml:"pullup" json:"pullup"`
	Stepback   float64 `yaml:"stepback" json:"stepback"`
	Post       float64 `yaml:"post" json:"post"`
	Drive      float64 `yaml:"drive" json:"drive"`
	Pass       float64 `yaml:"pass" json:"pass"`
	Reset      float64 `yaml:"reset" json:"reset"`
}

// ZoneValues carries one number per shot zone.
type ZoneValues struct {
	Restricted float64 `yaml:"restricted" json:"restricted"`
	Paint      float64 `yaml:"paint" json:"paint"`
	ShortMid   float64 `yaml:"short_mid" json:"shortMid"`
	LongMid    float64 `yaml:"long_mid" json:"longMid"`
	Corner3    float64 `yaml:"corner_three" json:"cornerThree"`
	AboveBreak float64 `yaml:"above_break_three" json:"aboveBreakThree"`
	Heave      float64 `yaml:"heave" json:"heave"`
}

// ClockTier scales shooting and ball-movement actions once the shot clock drops under Seconds.
// The early tier applies from Seconds upward instead.
type ClockTier struct {
	Seconds float64 `yaml:"seconds"`
	Shoot   float64 `yaml:"shoot"`
	Move    float64 `yaml:"move"`
}

// ScoreTier scales actions once the score margin reaches Margin.
type ScoreTier struct {
	Margin int     `yaml:"margin"`
	Shoot  float64 `yaml:"shoot"`
	Three  float64 `yaml:"three"`
	Move   float64 `yaml:"move"`
}

type EPV struct {
	Base              ActionValues `yaml:"base"`
	ShotQualityWeight float64      `yaml:"shot_quality_weight"`
	OpenLaneWeight    float64      `yaml:"open_lane_weight"`
	BallMovementBonus float64      `yaml:"ball_movement_bonus"`
	EarlyClock        ClockTier    `yaml:"early_clock"`
	LateClock         ClockTier    `yaml:"late_clock"`
	FinalClock        ClockTier    `yaml:"final_clock"`
	Blowout           ScoreTier    `yaml:"blowout"`
	Trailing          ScoreTier    `yaml:"trailing"`
}

type Policy struct {
	Temperature    float64 `yaml:"temperature"`
	TendencyWeight float64 `yaml:"tendency_weight"`
}

// Clock holds the clock lengths and how fast play burns them. Inbound and Outlet are the seconds
// the next offense spends getting into its set after a dead ball and after a live-ball change of
// possession. Drain for drives and stepbacks is the time on top of the dribble move itself.
type Clock struct {
	ShotClock             float64      `yaml:"shot_clock"`
	OffensiveReboundFloor float64      `yaml:"offensive_rebound_floor"`
	QuarterSeconds        float64      `yaml:"quarter_seconds"`
	Quarters              int          `yaml:"quarters"`
	Inbound               float64      `yaml:"inbound"`
	Outlet                float64      `yaml:"outlet"`
	Drain                 ActionValues `yaml:"drain"`
}

type Fatigue struct {
	Action           float64 `yaml:"action"`
	Shot             float64 `yaml:"shot"`
	Drive            float64 `yaml:"drive"`
	OffBallPerSecond float64 `yaml:"off_ball_per_second"`
}

type Fouls struct {
	Shot           ZoneValues `yaml:"shot"`
	Drive          float64    `yaml:"drive"`
	ContestWeight  float64    `yaml:"contest_weight"`
	StrengthWeight float64    `yaml:"strength_weight"`
}

type Shooting struct {
	Bias               ZoneValues `yaml:"bias"`
	RatingWeight       float64    `yaml:"rating_weight"`
	QualityWeight      float64    `yaml:"quality_weight"`
	ContestWeight      float64    `yaml:"contest_weight"`
	DefenderWeight     float64    `yaml:"defender_weight"`
	FatigueWeight      float64    `yaml:"fatigue_weight"`
	ClutchWeight       float64    `yaml:"clutch_weight"`
	DesperationPenalty float64    `yaml:"desperation_penalty"`
	FinishBias         float64    `yaml:"finish_bias"`
}

type Passing struct {
	TurnoverBias     float64 `yaml:"turnover_bias"`
	PassingWeight    float64 `yaml:"passing_weight"`
	VisionWeight     float64 `yaml:"vision_weight"`
	StealWeight      float64 `yaml:"steal_weight"`
	PressureWeight   float64 `yaml:"pressure_weight"`
	DistanceWeight   float64 `yaml:"distance_weight"`
	BallMovementGain float64 `yaml:"ball_movement_gain"`
}

type Rebound struct {
	RatingWeight       float64 `yaml:"rating_weight"`
	HeightWeight       float64 `yaml:"height_weight"`
	StrengthWeight     float64 `yaml:"strength_weight"`
	DefensiveAdvantage float64 `yaml:"defensive_advantage"`
	DistanceWeight     float64 `yaml:"distance_weight"`
	BoxOutRadius       float64 `yaml:"box_out_radius"`
	BoxedOutPenalty    float64 `yaml:"boxed_out_penalty"`
	BoxOutBonus        float64 `yaml:"box_out_bonus"`
	LandingFalloff     float64 `yaml:"landing_falloff"`
	ContestedRadius    float64 `yaml:"contested_radius"`
}

type Assist struct {
	DribbleThreshold int `yaml:"dribble_threshold"`
}

// Tuning is the full coefficient set.
type Tuning struct {
	EPV      EPV      `yaml:"epv"`
	Policy   Policy   `yaml:"policy"`
	Clock    Clock    `yaml:"clock"`
	Fatigue  Fatigue  `yaml:"fatigue"`
	Fouls    Fouls    `yaml:"fouls"`
	Shooting Shooting `yaml:"shooting"`
	Passing  Passing  `yaml:"passing"`
	Rebound  Rebound  `yaml:"rebound"`
	Assist   Assist   `yaml:"assist"`
}

// ErrInvalid reports an unusable tuning value.
var ErrInvalid = errors.New("invalid tuning")

// Default returns the stock coefficients.
func Default() Tuning {
	return Tuning{
		EPV: EPV{
			Base: ActionValues{
				CatchShoot: 1.08,
				Pullup:     0.90,
				Stepback:   0.93,
				Post:       0.92,
				Drive:      1.04,
				Pass:       0.98,
				Reset:      0.88,
			},
			ShotQualityWeight: 0.5,
			OpenLaneWeight:    0.3,
			BallMovementBonus: 0.12,
			EarlyClock:        ClockTier{Seconds: 14, Shoot: 0.6, Move: 1.35},
			LateClock:         ClockTier{Seconds: 8, Shoot: 1.15, Move: 0.8},
			FinalClock:        ClockTier{Seconds: 4, Shoot: 1.35, Move: 0.5},
			Blowout:           ScoreTier{Margin: 15, Shoot: 0.95, Three: 0.9, Move: 1.1},
			Trailing:          ScoreTier{Margin: 10, Shoot: 1.05, Three: 1.12, Move: 0.95},
		},
		Policy: Policy{Temperature: 0.35, TendencyWeight: 1.0},
		Clock: Clock{
			ShotClock:             24,
			OffensiveReboundFloor: 14,
			QuarterSeconds:        720,
			Quarters:              4,
			Inbound:               8,
			Outlet:                5.5,
			Drain: ActionValues{
				CatchShoot: 3.0,
				Pullup:     4.0,
				Stepback:   3.0,
				Post:       5.0,
				Drive:      1.0,
				Pass:       2.5,
				Reset:      2.5,
			},
		},
		Fatigue: Fatigue{Action: 0.004, Shot: 0.003, Drive: 0.002, OffBallPerSecond: 0.0004},
		Fouls: Fouls{
			Shot: ZoneValues{
				Restricted: 0.16,
				Paint:      0.12,
				ShortMid:   0.06,
				LongMid:    0.04,
				Corner3:    0.02,
				AboveBreak: 0.02,
				Heave:      0.01,
			},
			Drive:          0.10,
			ContestWeight:  0.6,
			StrengthWeight: 0.15,
		},
		Shooting: Shooting{
			Bias: ZoneValues{
				Restricted: 0.95,
				Paint:      0.16,
				ShortMid:   0.04,
				LongMid:    -0.05,
				Corner3:    -0.09,
				AboveBreak: -0.21,
				Heave:      -3.1,
			},
			RatingWeight:       0.22,
			QualityWeight:      1.2,
			ContestWeight:      -0.9,
			DefenderWeight:     -0.08,
			FatigueWeight:      -0.6,
			ClutchWeight:       0.08,
			DesperationPenalty: -0.8,
			FinishBias:         1.4,
		},
		Passing: Passing{
			TurnoverBias:     -3.5,
			PassingWeight:    -0.35,
			VisionWeight:     -0.2,
			StealWeight:      0.3,
			PressureWeight:   1.2,
			DistanceWeight:   0.03,
			BallMovementGain: 0.15,
		},
		Rebound: Rebound{
			RatingWeight:       0.45,
			HeightWeight:       0.12,
			StrengthWeight:     0.15,
			DefensiveAdvantage: 0.9,
			DistanceWeight:     0.08,
			BoxOutRadius:       12,
			BoxedOutPenalty:    0.55,
			BoxOutBonus:        0.25,
			LandingFalloff:     8,
			ContestedRadius:    4,
		},
		Assist: Assist{DribbleThreshold: 4},
	}
}

// Validate rejects values the engine cannot run with.
func (t Tuning) Validate() error {
	if t.Policy.Temperature <= 0 {
		return fmt.Errorf("%w: policy.temperature must be positive", ErrInvalid)
	}
	if t.Clock.ShotClock <= 0 || t.Clock.QuarterSeconds <= 0 || t.Clock.Quarters <= 0 {
		return fmt.Errorf("%w: clock lengths must be positive", ErrInvalid)
	}
	if t.Clock.OffensiveReboundFloor <= 0 || t.Clock.OffensiveReboundFloor > t.Clock.ShotClock {
		return fmt.Errorf("%w: clock.offensive_rebound_floor must be in (0, shot_clock]", ErrInvalid)
	}
	for _, v := range []float64{t.Clock.Inbound, t.Clock.Outlet} {
		if v < 0 || v >= t.Clock.ShotClock {
			return fmt.Errorf("%w: clock.inbound and clock.outlet must be in [0, shot_clock)", ErrInvalid)
		}
	}
	d := t.Clock.Drain
	for _, v := range []float64{d.CatchShoot, d.Pullup, d.Stepback, d.Post, d.Drive, d.Pass, d.Reset} {
		if v <= 0 {
			return fmt.Errorf("%w: clock.drain values must be positive", ErrInvalid)
		}
	}
	if t.Rebound.LandingFalloff <= 0 {
		return fmt.Errorf("%w: rebound.landing_falloff must be positive", ErrInvalid)
	}
	if t.Assist.DribbleThreshold < 0 {
		return fmt.Errorf("%w: assist.dribble_threshold must not be negative", ErrInvalid)
	}
	return nil
}

// For returns the value for action a. Desperation shares the pull-up value.
func (v ActionValues) For(a actions.Action) float64 {
	switch a {
	case actions.CatchShoot:
		return v.CatchShoot
	case actions.Pullup, actions.Desperation:
		return v.Pullup
	case actions.Stepback:
		return v.Stepback
	case actions.Post:
		return v.Post
	case actions.Drive:
		return v.Drive
	case actions.Pass:
		return v.Pass
	case actions.Reset:
		return v.Reset
	default:
		return 0
	}
}

// For returns the value for zone z.
func (v ZoneValues) For(z court.Zone) float64 {
	switch z {
	case court.ZoneRestricted:
		return v.Restricted
	case court.ZonePaint:
		return v.Paint
	case court.ZoneShortMid:
		return v.ShortMid
	case court.ZoneLongMid:
		return v.LongMid
	case court.ZoneCorner3:
		return v.Corner3
	case court.ZoneAboveBreak:
		return v.AboveBreak
	case court.ZoneHeave:
		return v.Heave
	default:
		return 0
	}
}
