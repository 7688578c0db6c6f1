// Package possession runs one offensive possession from inbound to its terminal event.
package possession

import (
	"errors"
	"fmt"
	"maps"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/defense"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/formation"
	"github.com/preston-bernstein/nba-possession-sim/internal/scheme"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

var (
	// ErrUnknownBallHandler is returned when the ball handler is not on the offensive floor.
	ErrUnknownBallHandler = errors.New("ball handler not on offensive roster")
	// ErrShortRoster is returned when a team cannot field five players.
	ErrShortRoster = errors.New("team has fewer than five players")
	// ErrDuplicatePlayer is returned when a player id appears twice on the floor.
	ErrDuplicatePlayer = errors.New("duplicate player on the floor")
	// ErrTeamMismatch is returned when the teams passed to Run are not the ones in the state.
	ErrTeamMismatch = errors.New("teams do not match possession state")
	// ErrPossessionEnded is returned when Run is handed a state that is already over.
	ErrPossessionEnded = errors.New("possession already ended")
)

// Phase is the state machine position of a possession.
type Phase string

const (
	Live  Phase = "live"
	Ended Phase = "ended"
)

// EndReason describes how a possession ended.
type EndReason string

const (
	EndMadeBasket       EndReason = "made_basket"
	EndFreeThrows       EndReason = "free_throws"
	EndTurnover         EndReason = "turnover"
	EndDefensiveRebound EndReason = "defensive_rebound"
	EndShotClock        EndReason = "shot_clock"
	EndQuarter          EndReason = "end_of_quarter"
	EndIterationLimit   EndReason = "iteration_limit"
)

// Clock is the game clock. Seconds counts down the whole game, not the quarter.
type Clock struct {
	Quarter int     `json:"quarter"`
	Seconds float64 `json:"seconds"`
}

// QuarterFloor is the game-clock reading at which the current quarter ends.
func (c Clock) QuarterFloor(t tuning.Clock) float64 {
	floor := float64(t.Quarters-c.Quarter) * t.QuarterSeconds
	if floor < 0 {
		return 0
	}
	return floor
}

// QuarterRemaining is the time left in the current quarter.
func (c Clock) QuarterRemaining(t tuning.Clock) float64 {
	r := c.Seconds - c.QuarterFloor(t)
	if r < 0 {
		return 0
	}
	return r
}

// Score is always expressed from the current offense's point of view.
type Score struct {
	Offense int `json:"offense"`
	Defense int `json:"defense"`
}

// Flip returns the score seen from the other team.
func (s Score) Flip() Score {
	return Score{Offense: s.Defense, Defense: s.Offense}
}

// Margin is the offense's lead.
func (s Score) Margin() int {
	return s.Offense - s.Defense
}

// Spacing is derived from the current formations.
type Spacing struct {
	OpenLanes    float64 `json:"openLanes"`
	BallMovement float64 `json:"ballMovement"`
	ShotQuality  float64 `json:"shotQuality"`
}

// State is the single mutable aggregate of a possession.
type State struct {
	GameID     string `json:"gameId"`
	Possession int    `json:"possession"`

	// Seed is the game seed; the possession RNG is derived from it and Possession.
	Seed uint64 `json:"seed"`

	OffenseID     string     `json:"offenseId"`
	DefenseID     string     `json:"defenseId"`
	OffenseSide   court.Side `json:"offenseSide"`
	BallHandlerID string     `json:"ballHandlerId"`

	Clock     Clock   `json:"clock"`
	ShotClock float64 `json:"shotClock"`
	Score     Score   `json:"score"`

	Fatigue     map[string]float64 `json:"fatigue"`
	TeamFouls   map[string]int     `json:"teamFouls"`
	PlayerFouls map[string]int     `json:"playerFouls"`

	Scheme           scheme.Scheme       `json:"scheme"`
	Set              formation.Set       `json:"set"`
	OffenseFormation formation.Formation `json:"offenseFormation"`
	DefenseFormation formation.Formation `json:"defenseFormation"`
	Assignments      defense.Assignments `json:"assignments"`
	Spacing          Spacing             `json:"spacing"`

	// LastPasserID and DribblesSincePass feed assist credit.
	LastPasserID      string `json:"lastPasserId,omitempty"`
	DribblesSincePass int    `json:"dribblesSincePass"`
	JustReceived      bool   `json:"justReceived"`

	Phase     Phase     `json:"phase"`
	EndReason EndReason `json:"endReason,omitempty"`
}

// Setup is the caller-supplied starting point of a possession.
type Setup struct {
	GameID      string
	Possession  int
	GameSeed    uint64
	OffenseSide court.Side

	// BallHandlerID empty selects the offense's primary ball handler.
	BallHandlerID string

	// Clock zero selects the opening tip.
	Clock Clock

	// ShotClock zero selects a full shot clock.
	ShotClock float64

	Score       Score
	Scheme      scheme.Scheme
	Set         formation.Set
	Fatigue     map[string]float64
	TeamFouls   map[string]int
	PlayerFouls map[string]int
}

// NewState validates the matchup and builds the opening formations and assignments.
func NewState(offense, defenseTeam teams.Team, s Setup, t tuning.Tuning) (State, error) {
	if err := validateTeams(offense, defenseTeam); err != nil {
		return State{}, err
	}
	handler := s.BallHandlerID
	if handler == "" {
		primary, _ := offense.Primary()
		handler = primary.ID
	}
	if !offense.Has(handler) {
		return State{}, fmt.Errorf("%w: %q on %s", ErrUnknownBallHandler, handler, offense.ID)
	}
	sch, err := scheme.Parse(string(s.Scheme))
	if err != nil {
		return State{}, err
	}
	side := s.OffenseSide
	if !side.Valid() {
		side = court.Home
	}
	clock := s.Clock
	if clock.Quarter == 0 && clock.Seconds == 0 {
		clock = Clock{Quarter: 1, Seconds: float64(t.Clock.Quarters) * t.Clock.QuarterSeconds}
	}
	shotClock := s.ShotClock
	if shotClock <= 0 {
		shotClock = t.Clock.ShotClock
	}
	set := s.Set
	if set == "" {
		set = formation.DefaultSet
	}

	st := State{
		GameID:        s.GameID,
		Possession:    s.Possession,
		Seed:          s.GameSeed,
		OffenseID:     offense.ID,
		DefenseID:     defenseTeam.ID,
		OffenseSide:   side,
		BallHandlerID: handler,
		Clock:         clock,
		ShotClock:     shotClock,
		Score:         s.Score,
		Fatigue:       copyOrEmpty(s.Fatigue),
		TeamFouls:     copyOrEmpty(s.TeamFouls),
		PlayerFouls:   copyOrEmpty(s.PlayerFouls),
		Scheme:        sch,
		Set:           set,
		Phase:         Live,
	}
	off, err := formation.CreateOffensive(offense, side, formation.Context{Set: set, BallHandlerID: handler})
	if err != nil {
		return State{}, err
	}
	if err := st.rebuild(offense, defenseTeam, off); err != nil {
		return State{}, err
	}
	return st, nil
}

func validateTeams(offense, defenseTeam teams.Team) error {
	seen := make(map[string]bool, 2*teams.OnCourt)
	for _, team := range []teams.Team{offense, defenseTeam} {
		if len(team.Players) < teams.OnCourt {
			return fmt.Errorf("%w: %s has %d", ErrShortRoster, team.ID, len(team.Players))
		}
		for _, id := range team.IDs() {
			if seen[id] {
				return fmt.Errorf("%w: %q", ErrDuplicatePlayer, id)
			}
			seen[id] = true
		}
	}
	return nil
}

// rebuild installs a new offensive formation and derives everything that depends on it.
func (st *State) rebuild(offense, defenseTeam teams.Team, off formation.Formation) error {
	def := formation.CreateDefensive(defenseTeam, st.Scheme, off, st.OffenseSide.Opposite())
	assignments, err := defense.Assign(offense, defenseTeam, st.Scheme, off, def)
	if err != nil {
		return err
	}
	st.OffenseFormation = off
	st.DefenseFormation = def
	st.Assignments = assignments

	defenders := def.Positions()
	pos, ok := off.Position(st.BallHandlerID)
	if !ok {
		pos = off.Ball
	}
	st.Spacing.OpenLanes = court.OpenLanes(st.OffenseSide, pos, defenders)
	st.Spacing.ShotQuality = court.ShotQuality(st.OffenseSide, pos, defenders)
	return nil
}

func (st State) clone() State {
	next := st
	next.Fatigue = copyOrEmpty(st.Fatigue)
	next.TeamFouls = copyOrEmpty(st.TeamFouls)
	next.PlayerFouls = copyOrEmpty(st.PlayerFouls)
	return next
}

func copyOrEmpty[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	maps.Copy(out, in)
	return out
}
