package probability

import (
	"math"
	"testing"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

const tolerance = 1e-9

func TestClamp01(t *testing.T) {
	cases := map[float64]float64{-0.5: 0, 0.3: 0.3, 1.7: 1}
	for in, want := range cases {
		if got := Clamp01(in); got != want {
			t.Fatalf("expected Clamp01(%f)=%f, got %f", in, want, got)
		}
	}
	if Clamp01(math.NaN()) != 0 {
		t.Fatalf("expected NaN to clamp to 0")
	}
}

func TestLogitSumsTerms(t *testing.T) {
	e := Logit(Term{Label: "a", Value: 0.5}, Term{Label: "b", Value: -0.5})
	if e.Score != 0 || math.Abs(e.Probability-0.5) > tolerance {
		t.Fatalf("expected score 0 and probability 0.5, got %f/%f", e.Score, e.Probability)
	}
	if len(e.Terms) != 2 || e.Terms[0].Label != "a" {
		t.Fatalf("expected terms preserved in order, got %+v", e.Terms)
	}
}

func TestLogOddsInvertsLogistic(t *testing.T) {
	for _, p := range []float64{0.1, 0.5, 0.9} {
		if got := Logistic(LogOdds(p)); math.Abs(got-p) > 1e-9 {
			t.Fatalf("expected %f, got %f", p, got)
		}
	}
	if math.IsInf(LogOdds(0), 0) || math.IsInf(LogOdds(1), 0) {
		t.Fatalf("expected finite log odds at the bounds")
	}
}

func TestSoftmaxSumsToOne(t *testing.T) {
	inputs := [][]float64{
		{1, 2, 3},
		{1000, 1001, 999},
		{-5, math.NaN(), 2},
		{math.Inf(1), math.NaN()},
	}
	for _, in := range inputs {
		out := Softmax(in)
		sum := 0.0
		for _, p := range out {
			if p < 0 || math.IsNaN(p) {
				t.Fatalf("unexpected entry in %v", out)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("expected softmax of %v to sum to 1, got %f", in, sum)
		}
	}
	out := Softmax([]float64{0, 1})
	if out[1] <= out[0] {
		t.Fatalf("expected larger score to get more mass, got %v", out)
	}
	if len(Softmax(nil)) != 0 {
		t.Fatalf("expected empty output for empty input")
	}
}

func TestDirichletMean(t *testing.T) {
	out := DirichletMean([]float64{2, 6, 0, -1})
	if math.Abs(out[0]-0.25) > tolerance || math.Abs(out[1]-0.75) > tolerance {
		t.Fatalf("unexpected mean %v", out)
	}
	if out[2] != 0 || out[3] != 0 {
		t.Fatalf("expected non-positive entries to get no mass, got %v", out)
	}
	u := DirichletMean([]float64{0, 0, 0, 0})
	for _, p := range u {
		if math.Abs(p-0.25) > tolerance {
			t.Fatalf("expected uniform fallback, got %v", u)
		}
	}
}

func TestShotMakeRespondsToSituation(t *testing.T) {
	tun := tuning.Default().Shooting
	shooter := players.Ratings{ThreePoint: 80, MidRange: 70, Layup: 75, Dunk: 60}
	open := ShotMake(tun, ShotInput{Zone: court.ZoneAboveBreak, Shooter: shooter, Defender: 50, Quality: 0.6})
	contested := ShotMake(tun, ShotInput{Zone: court.ZoneAboveBreak, Shooter: shooter, Defender: 50, Quality: 0.6, Contest: 0.7})
	if contested.Probability >= open.Probability {
		t.Fatalf("expected contest to lower make probability")
	}
	rim := ShotMake(tun, ShotInput{Zone: court.ZoneRestricted, Shooter: shooter, Defender: 50, Quality: 0.6})
	if rim.Probability <= open.Probability {
		t.Fatalf("expected rim attempt to beat a three")
	}
	desperate := ShotMake(tun, ShotInput{Zone: court.ZoneAboveBreak, Shooter: shooter, Defender: 50, Quality: 0.6, Desperation: true})
	if desperate.Probability >= open.Probability {
		t.Fatalf("expected desperation penalty")
	}
	if desperate.Terms[len(desperate.Terms)-1].Label != "desperation" {
		t.Fatalf("expected desperation term last, got %+v", desperate.Terms)
	}
}

func TestShootingRatingByZone(t *testing.T) {
	r := players.Ratings{Layup: 60, Dunk: 80, CloseShot: 55, MidRange: 65, ThreePoint: 75}
	cases := map[court.Zone]int{
		court.ZoneRestricted: 80,
		court.ZonePaint:      55,
		court.ZoneLongMid:    65,
		court.ZoneCorner3:    75,
		court.ZoneHeave:      75,
	}
	for zone, want := range cases {
		if got := ShootingRating(r, zone); got != want {
			t.Fatalf("%s: expected %d, got %d", zone, want, got)
		}
	}
}

func TestDriveFinishIsLikely(t *testing.T) {
	e := DriveFinish(tuning.Default().Shooting, FinishInput{Finisher: players.Ratings{Layup: 50, Dunk: 50}, RimDefend: 50})
	if e.Probability < 0.7 {
		t.Fatalf("expected an uncontested blow-by to finish often, got %f", e.Probability)
	}
}

func TestFoulAnchorsOnBaseRate(t *testing.T) {
	e := Foul(tuning.Default().Fouls, FoulInput{Base: 0.1, ShooterStrength: 50, DefenderStrength: 50})
	if math.Abs(e.Probability-0.1) > 1e-6 {
		t.Fatalf("expected base rate without contest, got %f", e.Probability)
	}
	contested := Foul(tuning.Default().Fouls, FoulInput{Base: 0.1, Contest: 1, ShooterStrength: 50, DefenderStrength: 50})
	if contested.Probability <= e.Probability {
		t.Fatalf("expected contact to raise foul rate")
	}
}

func TestPassTurnoverRisesWithPressure(t *testing.T) {
	tun := tuning.Default().Passing
	passer := players.Ratings{Passing: 70, Vision: 70}
	calm := PassTurnover(tun, PassInput{Passer: passer, Steal: 50, Distance: 15})
	hounded := PassTurnover(tun, PassInput{Passer: passer, Steal: 50, Pressure: 1, Distance: 15})
	if hounded.Probability <= calm.Probability {
		t.Fatalf("expected pressure to raise turnover odds")
	}
	if calm.Probability > 0.2 {
		t.Fatalf("expected routine pass to be safe, got %f", calm.Probability)
	}
}

func TestReboundWeightFavorsDefense(t *testing.T) {
	tun := tuning.Default().Rebound
	r := players.Ratings{OffRebound: 50, DefRebound: 50, Strength: 50}
	off, _ := ReboundWeight(tun, ReboundInput{Ratings: r, HeightInches: 78, Offense: true, Distance: 5})
	def, e := ReboundWeight(tun, ReboundInput{Ratings: r, HeightInches: 78, Distance: 5})
	if def <= off {
		t.Fatalf("expected defensive positioning advantage")
	}
	if math.Abs(def-math.Exp(e.Score)) > tolerance {
		t.Fatalf("expected weight to be exp(score)")
	}
	far, _ := ReboundWeight(tun, ReboundInput{Ratings: r, HeightInches: 78, Distance: 25})
	if far >= def {
		t.Fatalf("expected distance to lower weight")
	}
}

func TestFreeThrowBounds(t *testing.T) {
	if FreeThrow(0) < 0.3 || FreeThrow(99) > 0.95 {
		t.Fatalf("expected free throw probability within bounds")
	}
	if FreeThrow(90) <= FreeThrow(60) {
		t.Fatalf("expected better shooters to make more")
	}
}
