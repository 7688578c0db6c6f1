package possession

import (
	"math"
	"testing"

	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/rng"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

func neutral() Situation {
	return Situation{Spacing: Spacing{OpenLanes: 0.5, ShotQuality: 0.5}, ShotClock: 10}
}

func TestEPVNeutralMatchesBase(t *testing.T) {
	tun := tuning.Default().EPV
	epv := EPV(tun, neutral())
	for _, a := range actions.Selectable {
		if math.Abs(epv[a]-tun.Base.For(a)) > 1e-9 {
			t.Fatalf("expected base value for %s, got %f", a, epv[a])
		}
	}
}

func TestEPVShotClockTiers(t *testing.T) {
	tun := tuning.Default().EPV
	early := neutral()
	early.ShotClock = 20
	mid := EPV(tun, neutral())
	late := neutral()
	late.ShotClock = 6
	final := neutral()
	final.ShotClock = 2

	earlyEPV, lateEPV, finalEPV := EPV(tun, early), EPV(tun, late), EPV(tun, final)
	if !(finalEPV[actions.Pullup] > lateEPV[actions.Pullup] && lateEPV[actions.Pullup] > mid[actions.Pullup] && mid[actions.Pullup] > earlyEPV[actions.Pullup]) {
		t.Fatalf("expected shooting to grow as the clock runs down")
	}
	if !(finalEPV[actions.Pass] < lateEPV[actions.Pass] && lateEPV[actions.Pass] < mid[actions.Pass] && mid[actions.Pass] < earlyEPV[actions.Pass]) {
		t.Fatalf("expected passing to shrink as the clock runs down")
	}
}

func TestEPVEarlyClockStartsAtItsThreshold(t *testing.T) {
	tun := tuning.Default().EPV
	at := neutral()
	at.ShotClock = tun.EarlyClock.Seconds
	below := neutral()
	below.ShotClock = tun.EarlyClock.Seconds - 0.1

	atEPV, belowEPV := EPV(tun, at), EPV(tun, below)
	if math.Abs(atEPV[actions.Drive]-belowEPV[actions.Drive]*tun.EarlyClock.Shoot) > 1e-9 {
		t.Fatalf("expected the early tier to scale drives by %f, got %f vs %f", tun.EarlyClock.Shoot, atEPV[actions.Drive], belowEPV[actions.Drive])
	}
	if math.Abs(atEPV[actions.Reset]-belowEPV[actions.Reset]*tun.EarlyClock.Move) > 1e-9 {
		t.Fatalf("expected the early tier to scale resets by %f", tun.EarlyClock.Move)
	}

	tun.EarlyClock = tuning.ClockTier{}
	if off := EPV(tun, at); math.Abs(off[actions.Drive]-belowEPV[actions.Drive]) > 1e-9 {
		t.Fatalf("expected a zero early tier to be ignored")
	}
}

func TestEPVScoreTiers(t *testing.T) {
	tun := tuning.Default().EPV
	base := EPV(tun, neutral())

	trailing := neutral()
	trailing.Margin = -12
	trailing.Three = true
	tr := EPV(tun, trailing)
	if tr[actions.CatchShoot] <= base[actions.CatchShoot] || tr[actions.Pass] >= base[actions.Pass] {
		t.Fatalf("expected trailing teams to hunt threes")
	}

	blowout := neutral()
	blowout.Margin = 20
	bo := EPV(tun, blowout)
	if bo[actions.Reset] <= base[actions.Reset] || bo[actions.Stepback] >= base[actions.Stepback] {
		t.Fatalf("expected leading teams to slow down")
	}
}

func TestEPVSpacingTerms(t *testing.T) {
	tun := tuning.Default().EPV
	open := neutral()
	open.Spacing = Spacing{OpenLanes: 1, ShotQuality: 1, BallMovement: 1}
	base, moved := EPV(tun, neutral()), EPV(tun, open)
	if moved[actions.Drive] <= base[actions.Drive] || moved[actions.CatchShoot] <= base[actions.CatchShoot] {
		t.Fatalf("expected open floor to raise drives and catch and shoot")
	}
	if moved[actions.Pass] >= base[actions.Pass] {
		t.Fatalf("expected ball movement to lower the value of another pass")
	}
}

func TestActionDistributionFollowsTendencies(t *testing.T) {
	tun := tuning.Default()
	epv := EPV(tun.EPV, neutral())
	dist := ActionDistribution(tun.Policy, epv, balanced().Actions)
	sum := 0.0
	for _, p := range dist {
		if p <= 0 {
			t.Fatalf("expected every action possible, got %v", dist)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("expected distribution to sum to 1, got %f", sum)
	}

	tend := balanced().Actions
	tend.Post = 0
	noPost := ActionDistribution(tun.Policy, epv, tend)
	if noPost[3] >= dist[3] {
		t.Fatalf("expected zero post tendency to make post-ups rarer")
	}
}

func TestChooseActionUsesOneDraw(t *testing.T) {
	tun := tuning.Default()
	g := rng.New(11)
	epv := EPV(tun.EPV, neutral())
	for i := 0; i < 20; i++ {
		a := ChooseAction(tun.Policy, epv, balanced().Actions, g)
		if !a.Valid() || a == actions.Desperation {
			t.Fatalf("unexpected action %s", a)
		}
	}
	if g.Draws() != 20 {
		t.Fatalf("expected one draw per choice, got %d", g.Draws())
	}
}

func TestConvert(t *testing.T) {
	rim := court.AttackedBasket(court.Home)
	atRim := court.Position{X: rim.X - 2, Y: rim.Y}
	wing := court.FromBasket(court.Home, 22, 15)
	elbow := court.FromBasket(court.Home, 10, 5)

	cases := []struct {
		name         string
		chosen       actions.Action
		pos          court.Position
		justReceived bool
		want         actions.Action
		wantFrom     actions.Action
	}{
		{"drive at rim becomes post", actions.Drive, atRim, false, actions.Post, actions.Drive},
		{"drive from wing stays", actions.Drive, wing, false, actions.Drive, ""},
		{"post from wing becomes pullup", actions.Post, wing, false, actions.Pullup, actions.Post},
		{"post inside range stays", actions.Post, elbow, false, actions.Post, ""},
		{"catch and shoot off the dribble becomes pullup", actions.CatchShoot, wing, false, actions.Pullup, actions.CatchShoot},
		{"catch and shoot after a pass stays", actions.CatchShoot, wing, true, actions.CatchShoot, ""},
		{"pass untouched", actions.Pass, atRim, false, actions.Pass, ""},
	}
	for _, tc := range cases {
		got, from := Convert(tc.chosen, court.Home, tc.pos, tc.justReceived)
		if got != tc.want || from != tc.wantFrom {
			t.Fatalf("%s: expected %s from %q, got %s from %q", tc.name, tc.want, tc.wantFrom, got, from)
		}
	}
}
