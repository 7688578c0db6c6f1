package possession

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/probability"
	"github.com/preston-bernstein/nba-possession-sim/internal/rng"
	"github.com/preston-bernstein/nba-possession-sim/internal/scheme"
	"github.com/preston-bernstein/nba-possession-sim/internal/testutil"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

func TestRunIsDeterministic(t *testing.T) {
	tun := tuning.Default()
	e := mustEngine(t, tun)
	off, def := newTeam("home", 60), newTeam("away", 58)

	for seed := uint64(1); seed <= 25; seed++ {
		st := mustState(t, off, def, Setup{GameID: "g", Possession: 3, GameSeed: seed}, tun)
		a, playsA, err := e.Run(off, def, st, scheme.Man, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, playsB, _ := e.Run(off, def, st, scheme.Man, nil)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("seed %d: final states differ", seed)
		}
		ja, _ := json.Marshal(playsA)
		jb, _ := json.Marshal(playsB)
		if !bytes.Equal(ja, jb) {
			t.Fatalf("seed %d: play logs differ", seed)
		}
	}
}

func TestRunLogsPossessionEndAtDebug(t *testing.T) {
	tun := tuning.Default()
	logger, buf := testutil.NewLevelBufferLogger(slog.LevelDebug)
	e, err := NewEngine(tun, Collaborators{}, logger)
	if err != nil {
		t.Fatalf("unexpected engine error: %v", err)
	}
	off, def := newTeam("home", 60), newTeam("away", 58)
	st := mustState(t, off, def, Setup{GameID: "g-log", Possession: 1, GameSeed: 5}, tun)

	final, _, err := e.Run(off, def, st, scheme.Man, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "possession ended") || !strings.Contains(out, "game_id=g-log") {
		t.Fatalf("expected debug end-of-possession log, got %q", out)
	}
	if !strings.Contains(out, "end_reason="+string(final.EndReason)) {
		t.Fatalf("expected end reason %s in log, got %q", final.EndReason, out)
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	tun := tuning.Default()
	e := mustEngine(t, tun)
	off, def := newTeam("home", 60), newTeam("away", 58)
	st := mustState(t, off, def, Setup{GameSeed: 4}, tun)
	before := st.clone()
	if _, _, err := e.Run(off, def, st, scheme.Man, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(before, st.clone()) {
		t.Fatalf("expected input state untouched")
	}
}

func TestClocksAndScoreAreMonotonic(t *testing.T) {
	tun := tuning.Default()
	e := mustEngine(t, tun)
	off, def := newTeam("home", 62), newTeam("away", 60)

	for _, sch := range scheme.All {
		for seed := uint64(0); seed < 40; seed++ {
			st := mustState(t, off, def, Setup{GameID: "g", GameSeed: seed, Score: Score{Offense: 10, Defense: 12}}, tun)
			final, plays, err := e.Run(off, def, st, sch, nil)
			if err != nil {
				t.Fatalf("%s/%d: unexpected error: %v", sch, seed, err)
			}
			if final.Phase != Ended || final.EndReason == "" || final.EndReason == EndIterationLimit {
				t.Fatalf("%s/%d: expected natural end, got %s/%s", sch, seed, final.Phase, final.EndReason)
			}

			gameClock, shotClock := st.Clock.Seconds, st.ShotClock
			points := 0
			for i, p := range plays {
				if p.GameClock > gameClock || p.GameClock < 0 {
					t.Fatalf("%s/%d: game clock went from %f to %f", sch, seed, gameClock, p.GameClock)
				}
				offensiveBoard := p.Type == PlayRebound && p.Rebound.OffenseWon
				if (p.ShotClock > shotClock && !offensiveBoard) || p.ShotClock < 0 {
					t.Fatalf("%s/%d: shot clock went from %f to %f at play %d", sch, seed, shotClock, p.ShotClock, i)
				}
				if offensiveBoard && p.ShotClock < tun.Clock.OffensiveReboundFloor {
					t.Fatalf("expected offensive rebound to reset the shot clock, got %f", p.ShotClock)
				}
				if p.Points < 0 {
					t.Fatalf("expected non-negative points")
				}
				gameClock, shotClock = p.GameClock, p.ShotClock
				points += p.Points
			}
			if final.Score.Offense != st.Score.Offense+points {
				t.Fatalf("%s/%d: expected score to move only by play points", sch, seed)
			}
			if final.Score.Defense != st.Score.Defense {
				t.Fatalf("%s/%d: expected defense score untouched", sch, seed)
			}
		}
	}
}

func TestMadeShotsScoreByZone(t *testing.T) {
	tun := tuning.Default()
	e := mustEngine(t, tun)
	off, def := newTeam("home", 75), newTeam("away", 45)

	seen := 0
	for seed := uint64(0); seed < 200; seed++ {
		st := mustState(t, off, def, Setup{GameSeed: seed}, tun)
		_, plays, _ := e.Run(off, def, st, scheme.Zone23, nil)
		for _, p := range plays {
			switch o := p.Outcome.(type) {
			case ShotOutcome:
				if !o.Make || o.Foul {
					continue
				}
				seen++
				want := 2
				if o.Three {
					want = 3
				}
				if p.Points != want {
					t.Fatalf("expected %d points for a make from %s, got %d", want, o.Zone, p.Points)
				}
			case DriveOutcome:
				if o.Make && p.Points != 2 {
					t.Fatalf("expected drive finish worth 2, got %d", p.Points)
				}
			}
		}
	}
	if seen == 0 {
		t.Fatalf("expected at least one made jumper")
	}
}

func TestCatchAndShootScenario(t *testing.T) {
	tun := tuning.Default().Shooting
	shooter := ratings(65)
	in := probability.ShotInput{Zone: court.ZoneAboveBreak, Shooter: shooter, Defender: 60, Quality: 0.6, Contest: 0.7}
	e := probability.ShotMake(tun, in)
	if e.Probability <= 0 || e.Probability >= 1 {
		t.Fatalf("expected a proper probability, got %f", e.Probability)
	}
	first := rng.New(2024).Bernoulli(e.Probability)
	for i := 0; i < 5; i++ {
		if got := rng.New(2024).Bernoulli(e.Probability); got != first {
			t.Fatalf("expected the same make/miss for the same seed")
		}
	}
}

func TestCatchAndShootPossession(t *testing.T) {
	tun := forcing()
	e := mustEngine(t, tun)
	shooters := withTendencies(newTeam("home", 65), only(func(a *players.ActionTendencies) { a.CatchShoot = 1 }))
	def := newTeam("away", 60)

	for seed := uint64(0); seed < 50; seed++ {
		st := mustState(t, shooters, def, Setup{GameSeed: seed, ShotClock: 24, Clock: Clock{Quarter: 1, Seconds: 2880}}, tun)
		st.JustReceived = true
		st.LastPasserID = "home-2"

		final, plays, err := e.Run(shooters, def, st, scheme.Man, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first := plays[0]
		if first.Action != actions.CatchShoot {
			t.Fatalf("expected a catch and shoot, got %s", first.Action)
		}
		shot := first.Outcome.(ShotOutcome)
		if shot.Make && !shot.Foul {
			want := 2
			if shot.Three {
				want = 3
			}
			if final.Score.Offense != want {
				t.Fatalf("expected score +%d, got %d", want, final.Score.Offense)
			}
			if final.EndReason != EndMadeBasket {
				t.Fatalf("expected made basket, got %s", final.EndReason)
			}
		}
		again, _, _ := e.Run(shooters, def, st, scheme.Man, nil)
		if !reflect.DeepEqual(final, again) {
			t.Fatalf("expected deterministic outcome for seed %d", seed)
		}
	}
}

func TestTerminatesWhenEveryShotMissesAndOffenseRebounds(t *testing.T) {
	tun := tuning.Default()
	tun.Shooting.Bias = tuning.ZoneValues{Restricted: -20, Paint: -20, ShortMid: -20, LongMid: -20, Corner3: -20, AboveBreak: -20, Heave: -20}
	tun.Shooting.FinishBias = -20
	tun.Fouls.Shot = tuning.ZoneValues{}
	tun.Fouls.Drive = 0
	tun.Passing.TurnoverBias = -20
	tun.Rebound.DefensiveAdvantage = -30
	e := mustEngine(t, tun)
	off, def := newTeam("home", 99), newTeam("away", 1)

	for seed := uint64(0); seed < 20; seed++ {
		st := mustState(t, off, def, Setup{GameSeed: seed}, tun)
		final, plays, err := e.Run(off, def, st, scheme.Man, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if final.EndReason == EndIterationLimit || final.Phase != Ended {
			t.Fatalf("expected the clocks to end the possession, got %s", final.EndReason)
		}
		if final.Score.Offense != 0 {
			t.Fatalf("expected no points, got %d", final.Score.Offense)
		}
		if len(plays) == 0 {
			t.Fatalf("expected plays")
		}
	}
}

func TestDesperationShotEndsPossession(t *testing.T) {
	tun := forcing()
	tun.Passing.TurnoverBias = -20
	e := mustEngine(t, tun)
	passers := withTendencies(newTeam("home", 60), only(func(a *players.ActionTendencies) { a.Pass = 1 }))
	def := newTeam("away", 60)

	st := mustState(t, passers, def, Setup{GameSeed: 3, ShotClock: 1}, tun)
	final, plays, err := e.Run(passers, def, st, scheme.Man, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plays[0].Action != actions.Pass || plays[0].ShotClock != 0 {
		t.Fatalf("expected a pass that runs out the shot clock, got %+v", plays[0])
	}
	last := plays[len(plays)-1]
	if last.Action != actions.Desperation {
		t.Fatalf("expected the possession to end on a desperation shot, got %s", last.Action)
	}
	if !last.Outcome.(ShotOutcome).Desperation {
		t.Fatalf("expected desperation flag")
	}
	switch final.EndReason {
	case EndShotClock, EndMadeBasket, EndFreeThrows:
	default:
		t.Fatalf("unexpected end reason %s", final.EndReason)
	}
}

func TestQuarterBoundaryEndsPossession(t *testing.T) {
	tun := forcing()
	tun.Passing.TurnoverBias = -20
	e := mustEngine(t, tun)
	passers := withTendencies(newTeam("home", 60), only(func(a *players.ActionTendencies) { a.Pass = 1 }))
	def := newTeam("away", 60)

	floor := 3 * tun.Clock.QuarterSeconds
	st := mustState(t, passers, def, Setup{GameSeed: 9, Clock: Clock{Quarter: 1, Seconds: floor + 1}}, tun)
	final, plays, err := e.Run(passers, def, st, scheme.Man, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.EndReason != EndQuarter {
		t.Fatalf("expected end of quarter, got %s", final.EndReason)
	}
	if final.Clock.Seconds != floor || len(plays) != 1 {
		t.Fatalf("expected the clock to stop at the quarter boundary, got %f after %d plays", final.Clock.Seconds, len(plays))
	}
}

func TestSinkSeesEveryPlay(t *testing.T) {
	tun := tuning.Default()
	e := mustEngine(t, tun)
	off, def := newTeam("home", 60), newTeam("away", 60)
	sink := &recordingSink{}

	for seed := uint64(0); seed < 10; seed++ {
		sink.plays = nil
		st := mustState(t, off, def, Setup{GameSeed: seed}, tun)
		_, plays, _ := e.Run(off, def, st, scheme.Switch, sink)
		if !reflect.DeepEqual(sink.plays, plays) {
			t.Fatalf("expected the sink to receive the returned log")
		}
		for i, p := range plays {
			if p.Seq != i+1 {
				t.Fatalf("expected sequential play numbers")
			}
		}
	}
	if len(sink.possessions) != 10 || sink.possessions[0] != "home" {
		t.Fatalf("expected one possession update per run, got %v", sink.possessions)
	}
	for i := 0; i < len(sink.freeThrows); i += 2 {
		if sink.freeThrows[i+1] > sink.freeThrows[i] {
			t.Fatalf("expected made free throws not to exceed attempts")
		}
	}
}

func TestPreconditions(t *testing.T) {
	tun := tuning.Default()
	off, def := newTeam("home", 60), newTeam("away", 60)

	if _, err := NewState(off, def, Setup{BallHandlerID: "ghost"}, tun); !errors.Is(err, ErrUnknownBallHandler) {
		t.Fatalf("expected ErrUnknownBallHandler, got %v", err)
	}
	short := off
	short.Players = off.Players[:4]
	if _, err := NewState(short, def, Setup{}, tun); !errors.Is(err, ErrShortRoster) {
		t.Fatalf("expected ErrShortRoster, got %v", err)
	}
	dup := def
	dup.Players = append([]players.Player{off.Players[0]}, def.Players[1:]...)
	if _, err := NewState(off, dup, Setup{}, tun); !errors.Is(err, ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
	if _, err := NewState(off, def, Setup{Scheme: "box-and-one"}, tun); !errors.Is(err, scheme.ErrUnknown) {
		t.Fatalf("expected unknown scheme error, got %v", err)
	}

	e := mustEngine(t, tun)
	st := mustState(t, off, def, Setup{}, tun)
	if _, _, err := e.Run(def, off, st, scheme.Man, nil); !errors.Is(err, ErrTeamMismatch) {
		t.Fatalf("expected ErrTeamMismatch, got %v", err)
	}
	bad := st
	bad.BallHandlerID = "away-1"
	if _, _, err := e.Run(off, def, bad, scheme.Man, nil); !errors.Is(err, ErrUnknownBallHandler) {
		t.Fatalf("expected ErrUnknownBallHandler, got %v", err)
	}
	ended := st
	ended.Phase = Ended
	if _, _, err := e.Run(off, def, ended, scheme.Man, nil); !errors.Is(err, ErrPossessionEnded) {
		t.Fatalf("expected ErrPossessionEnded, got %v", err)
	}
	if _, err := NewEngine(tuning.Tuning{}, Collaborators{}, nil); !errors.Is(err, tuning.ErrInvalid) {
		t.Fatalf("expected invalid tuning error, got %v", err)
	}
}

func TestSwapRebuildsForNewSides(t *testing.T) {
	tun := tuning.Default()
	e := mustEngine(t, tun)
	home, away := newTeam("home", 60), newTeam("away", 60)
	st := mustState(t, home, away, Setup{GameID: "g", Possession: 1, GameSeed: 5, Score: Score{Offense: 20, Defense: 17}}, tun)
	final, _, err := e.Run(home, away, st, scheme.Man, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, err := Swap(final, away, home, scheme.Zone32, "", tun)
	if err != nil {
		t.Fatalf("unexpected swap error: %v", err)
	}
	if next.Score != final.Score.Flip() {
		t.Fatalf("expected flipped score, got %+v from %+v", next.Score, final.Score)
	}
	if next.Possession != 2 || next.OffenseID != "away" || next.OffenseSide != court.Away {
		t.Fatalf("unexpected swapped header %+v", next)
	}
	advance := BringUp(final.EndReason, final.Clock, tun.Clock)
	if advance <= 0 {
		t.Fatalf("expected the trip up the floor to take time after %s", final.EndReason)
	}
	if next.ShotClock != tun.Clock.ShotClock-advance || next.BallHandlerID != "away-1" || next.Phase != Live {
		t.Fatalf("expected a fresh shot clock less the bring-up with the primary handler, got %f/%s", next.ShotClock, next.BallHandlerID)
	}
	if next.Clock.Quarter != final.Clock.Quarter || next.Clock.Seconds != final.Clock.Seconds-advance {
		t.Fatalf("expected the game clock to carry over less %f, got %+v from %+v", advance, next.Clock, final.Clock)
	}
	for _, spot := range next.OffenseFormation.Spots {
		if !court.InFrontcourt(court.Away, spot.Position) || !away.Has(spot.PlayerID) {
			t.Fatalf("expected away offense in its own frontcourt, got %+v", spot)
		}
	}
	for _, as := range next.Assignments.List {
		if !home.Has(as.DefenderID) {
			t.Fatalf("expected home players to defend, got %s", as.DefenderID)
		}
	}
	if next.Assignments.Scheme != scheme.Zone32 || next.DefenseFormation.Side != court.Home {
		t.Fatalf("expected rebuilt zone defense")
	}
}

func TestSwapChargesTheBringUp(t *testing.T) {
	tun := tuning.Default()
	home, away := newTeam("home", 60), newTeam("away", 60)
	q := tun.Clock.QuarterSeconds
	full := float64(tun.Clock.Quarters) * q

	cases := []struct {
		name        string
		reason      EndReason
		clock       Clock
		wantClock   Clock
		wantAdvance float64
	}{
		{"made basket", EndMadeBasket, Clock{Quarter: 1, Seconds: full - 100}, Clock{Quarter: 1, Seconds: full - 108}, tun.Clock.Inbound},
		{"free throws", EndFreeThrows, Clock{Quarter: 2, Seconds: full - q - 30}, Clock{Quarter: 2, Seconds: full - q - 38}, tun.Clock.Inbound},
		{"defensive rebound", EndDefensiveRebound, Clock{Quarter: 1, Seconds: full - 50}, Clock{Quarter: 1, Seconds: full - 55.5}, tun.Clock.Outlet},
		{"turnover", EndTurnover, Clock{Quarter: 3, Seconds: q + 200}, Clock{Quarter: 3, Seconds: q + 194.5}, tun.Clock.Outlet},
		{"end of quarter", EndQuarter, Clock{Quarter: 1, Seconds: full - q}, Clock{Quarter: 2, Seconds: full - q - 8}, tun.Clock.Inbound},
		{"closing seconds", EndMadeBasket, Clock{Quarter: 4, Seconds: 3}, Clock{Quarter: 4, Seconds: 1.5}, 1.5},
		{"final buzzer", EndQuarter, Clock{Quarter: 4, Seconds: 0}, Clock{Quarter: 4, Seconds: 0}, 0},
	}
	for _, tc := range cases {
		final := mustState(t, home, away, Setup{GameID: "g", Possession: 7, GameSeed: 2, Clock: tc.clock}, tun)
		final.Phase, final.EndReason = Ended, tc.reason

		next, err := Swap(final, away, home, scheme.Man, "", tun)
		if err != nil {
			t.Fatalf("%s: unexpected swap error: %v", tc.name, err)
		}
		if next.Clock != tc.wantClock {
			t.Fatalf("%s: expected clock %+v, got %+v", tc.name, tc.wantClock, next.Clock)
		}
		if want := tun.Clock.ShotClock - tc.wantAdvance; next.ShotClock != want {
			t.Fatalf("%s: expected shot clock %f, got %f", tc.name, want, next.ShotClock)
		}
	}
}

func TestDriveTimeComesFromTheMove(t *testing.T) {
	tun := forcing()
	e := mustEngine(t, tun)
	drivers := withTendencies(newTeam("home", 55), only(func(a *players.ActionTendencies) { a.Drive = 1 }))
	def := newTeam("away", 70)

	stopped := 0
	for seed := uint64(0); seed < 60; seed++ {
		st := mustState(t, drivers, def, Setup{GameSeed: seed}, tun)
		_, plays, err := e.Run(drivers, def, st, scheme.Man, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first := plays[0]
		drive, ok := first.Outcome.(DriveOutcome)
		if !ok {
			t.Fatalf("expected a drive, got %s", first.Action)
		}
		want := tun.Clock.Drain.Drive + drive.Movement.TimeElapsed
		if got := st.ShotClock - first.ShotClock; got != want {
			t.Fatalf("seed %d: expected the drive to take %f, got %f", seed, want, got)
		}
		if !drive.Movement.Success {
			stopped++
		}
	}
	if stopped == 0 {
		t.Fatalf("expected some drives to be stopped by the defender")
	}
}

func TestRunAppliesSchemeChange(t *testing.T) {
	tun := tuning.Default()
	e := mustEngine(t, tun)
	off, def := newTeam("home", 60), newTeam("away", 60)
	st := mustState(t, off, def, Setup{GameSeed: 1}, tun)
	final, _, err := e.Run(off, def, st, scheme.FullCourt, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Scheme != scheme.FullCourt || final.Assignments.Scheme != scheme.FullCourt {
		t.Fatalf("expected full court press, got %s", final.Scheme)
	}
	if _, _, err := e.Run(off, def, st, scheme.Scheme("junk"), nil); !errors.Is(err, scheme.ErrUnknown) {
		t.Fatalf("expected unknown scheme error, got %v", err)
	}
}

func TestAssistsRequireAPass(t *testing.T) {
	tun := forcing()
	tun.Fouls.Shot = tuning.ZoneValues{}
	e := mustEngine(t, tun)
	shooters := withTendencies(newTeam("home", 90), only(func(a *players.ActionTendencies) { a.CatchShoot = 1 }))
	def := newTeam("away", 30)
	sink := &recordingSink{}

	assisted := 0
	for seed := uint64(0); seed < 100; seed++ {
		st := mustState(t, shooters, def, Setup{GameSeed: seed}, tun)
		st.JustReceived = true
		st.LastPasserID = "home-2"
		_, plays, _ := e.Run(shooters, def, st, scheme.Man, sink)
		if plays[0].AssistID != "" {
			assisted++
			if plays[0].AssistID != "home-2" {
				t.Fatalf("expected assist to the last passer, got %s", plays[0].AssistID)
			}
		}

		st.LastPasserID = ""
		_, plays, _ = e.Run(shooters, def, st, scheme.Man, nil)
		if plays[0].AssistID != "" {
			t.Fatalf("expected no assist without a pass")
		}
	}
	if assisted == 0 || len(sink.assists) != assisted {
		t.Fatalf("expected assists recorded, got %d plays and %d sink calls", assisted, len(sink.assists))
	}
}

func TestPlayJSONKeepsOutcomeVariant(t *testing.T) {
	p := Play{Seq: 1, Type: PlayAction, Action: actions.Drive, Outcome: DriveOutcome{Blowby: true, Make: true, Points: 2}}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Play
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drive, ok := back.Outcome.(DriveOutcome)
	if !ok || !drive.Make || drive.Points != 2 {
		t.Fatalf("expected drive outcome back, got %#v", back.Outcome)
	}
	if err := json.Unmarshal([]byte(`{"outcomeKind":"dunk","outcome":{}}`), &back); err == nil {
		t.Fatalf("expected error for unknown outcome kind")
	}
}
