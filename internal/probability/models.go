package probability

import (
	"math"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

// ShotInput is the situation of a field goal attempt.
type ShotInput struct {
	Zone    court.Zone
	Shooter players.Ratings
	// Defender is the rating of the matched defender that applies to the zone.
	Defender int
	Quality  float64
	Contest  float64
	Fatigue  float64
	// Post blends post control into the shooting rating.
	Post        bool
	Clutch      bool
	Desperation bool
}

// ShootingRating picks the rating that governs a shot from zone.
func ShootingRating(r players.Ratings, zone court.Zone) int {
	switch zone {
	case court.ZoneRestricted:
		return max(r.Layup, r.Dunk)
	case court.ZonePaint:
		return r.CloseShot
	case court.ZoneShortMid, court.ZoneLongMid:
		return r.MidRange
	default:
		return r.ThreePoint
	}
}

// DefendingRating picks the defensive rating that contests a shot from zone.
func DefendingRating(r players.Ratings, zone court.Zone) int {
	switch zone {
	case court.ZoneRestricted, court.ZonePaint:
		return max(r.Interior, r.Block)
	default:
		return r.Perimeter
	}
}

// ShotMake is the probability a field goal attempt goes in.
func ShotMake(t tuning.Shooting, in ShotInput) Explain {
	rating := ShootingRating(in.Shooter, in.Zone)
	if in.Post {
		rating = (rating + in.Shooter.PostControl) / 2
	}
	terms := []Term{
		{Label: "zone:" + string(in.Zone), Value: t.Bias.For(in.Zone)},
		{Label: "rating", Value: t.RatingWeight * RatingZ(rating)},
		{Label: "quality", Value: t.QualityWeight * (in.Quality - 0.5)},
		{Label: "contest", Value: t.ContestWeight * Clamp01(in.Contest)},
		{Label: "defender", Value: t.DefenderWeight * RatingZ(in.Defender) * Clamp01(in.Contest)},
		{Label: "fatigue", Value: t.FatigueWeight * Clamp01(in.Fatigue)},
	}
	if in.Clutch {
		terms = append(terms, Term{Label: "clutch", Value: t.ClutchWeight * RatingZ(in.Shooter.Clutch)})
	}
	if in.Desperation {
		terms = append(terms, Term{Label: "desperation", Value: t.DesperationPenalty})
	}
	return Logit(terms...)
}

// FinishInput is a drive that has beaten its defender to the rim.
type FinishInput struct {
	Finisher  players.Ratings
	RimDefend int
	Contest   float64
	Fatigue   float64
}

// DriveFinish is the probability a blow-by ends in a made layup or dunk.
func DriveFinish(t tuning.Shooting, in FinishInput) Explain {
	return Logit(
		Term{Label: "finish", Value: t.FinishBias},
		Term{Label: "rating", Value: t.RatingWeight * RatingZ(max(in.Finisher.Layup, in.Finisher.Dunk))},
		Term{Label: "contest", Value: t.ContestWeight * Clamp01(in.Contest)},
		Term{Label: "defender", Value: t.DefenderWeight * RatingZ(in.RimDefend)},
		Term{Label: "fatigue", Value: t.FatigueWeight * Clamp01(in.Fatigue)},
	)
}

// FoulInput is the contact situation of a shot or drive.
type FoulInput struct {
	// Base is the league foul rate for the situation.
	Base             float64
	Contest          float64
	ShooterStrength  int
	DefenderStrength int
}

// Foul is the probability an attempt draws a shooting foul.
func Foul(t tuning.Fouls, in FoulInput) Explain {
	return Logit(
		Term{Label: "base", Value: LogOdds(in.Base)},
		Term{Label: "contest", Value: t.ContestWeight * Clamp01(in.Contest)},
		Term{Label: "strength", Value: t.StrengthWeight * (RatingZ(in.ShooterStrength) - RatingZ(in.DefenderStrength))},
	)
}

// PassInput is a pass from the ball handler to a teammate.
type PassInput struct {
	Passer   players.Ratings
	Steal    int
	Pressure float64
	Distance float64
}

// PassTurnover is the probability a pass is stolen or thrown away.
func PassTurnover(t tuning.Passing, in PassInput) Explain {
	return Logit(
		Term{Label: "base", Value: t.TurnoverBias},
		Term{Label: "passing", Value: t.PassingWeight * RatingZ(in.Passer.Passing)},
		Term{Label: "vision", Value: t.VisionWeight * RatingZ(in.Passer.Vision)},
		Term{Label: "steal", Value: t.StealWeight * RatingZ(in.Steal)},
		Term{Label: "pressure", Value: t.PressureWeight * Clamp01(in.Pressure)},
		Term{Label: "distance", Value: t.DistanceWeight * math.Max(in.Distance, 0)},
	)
}

// ReboundInput is one participant in a rebound contest.
type ReboundInput struct {
	Ratings      players.Ratings
	HeightInches int
	Offense      bool
	// Distance is the distance to the ball or the rim in feet.
	Distance float64
}

// averageHeight is the height in inches that carries no rebounding bonus.
const averageHeight = 78

// ReboundWeight returns a participant's unnormalized contest weight, exp(score), with the linear
// terms behind it. The Explain probability is the participant's chance in a one-on-one contest
// against an average player.
func ReboundWeight(t tuning.Rebound, in ReboundInput) (float64, Explain) {
	rating := in.Ratings.DefRebound
	if in.Offense {
		rating = in.Ratings.OffRebound
	}
	advantage := t.DefensiveAdvantage
	if in.Offense {
		advantage = 0
	}
	e := Logit(
		Term{Label: "rating", Value: t.RatingWeight * RatingZ(rating)},
		Term{Label: "height", Value: t.HeightWeight * float64(in.HeightInches-averageHeight) / 3},
		Term{Label: "strength", Value: t.StrengthWeight * RatingZ(in.Ratings.Strength)},
		Term{Label: "position", Value: advantage},
		Term{Label: "distance", Value: -t.DistanceWeight * math.Max(in.Distance, 0)},
	)
	return math.Exp(e.Score), e
}

// FreeThrow is the make probability of a single free throw.
func FreeThrow(rating int) float64 {
	return math.Min(math.Max(0.45+0.5*float64(rating)/99, 0.3), 0.95)
}
