package possession

import (
	"encoding/json"
	"fmt"

	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/rebound"
)

// PlayType separates action plays from rebounds.
type PlayType string

const (
	PlayAction  PlayType = "action"
	PlayRebound PlayType = "rebound"
)

// Play is one entry of the side-effect log: what happened, who did it, where and when.
type Play struct {
	Seq        int      `json:"seq"`
	GameID     string   `json:"gameId"`
	Possession int      `json:"possession"`
	Type       PlayType `json:"type"`

	ActorID    string     `json:"actorId"`
	TeamID     string     `json:"teamId"`
	DefenderID string     `json:"defenderId,omitempty"`
	AssistID   string     `json:"assistId,omitempty"`
	Side       court.Side `json:"side"`

	Action        actions.Action  `json:"action,omitempty"`
	ConvertedFrom actions.Action  `json:"convertedFrom,omitempty"`
	Outcome       Outcome         `json:"-"`
	Rebound       *rebound.Result `json:"rebound,omitempty"`

	Position  court.Position `json:"position"`
	Quarter   int            `json:"quarter"`
	GameClock float64        `json:"gameClock"`
	ShotClock float64        `json:"shotClock"`
	Points    int            `json:"points"`

	// Fallback marks a play resolved with a documented approximation: a default defender or the
	// simplified rebound weighting.
	Fallback bool `json:"fallback,omitempty"`
}

type playAlias Play

type playJSON struct {
	playAlias
	OutcomeKind actions.Kind    `json:"outcomeKind,omitempty"`
	OutcomeData json.RawMessage `json:"outcome,omitempty"`
}

// MarshalJSON tags the outcome with its kind so it can be decoded back.
func (p Play) MarshalJSON() ([]byte, error) {
	out := playJSON{playAlias: playAlias(p)}
	if p.Outcome != nil {
		data, err := json.Marshal(p.Outcome)
		if err != nil {
			return nil, err
		}
		out.OutcomeKind = p.Outcome.Kind()
		out.OutcomeData = data
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the outcome variant from its kind tag.
func (p *Play) UnmarshalJSON(data []byte) error {
	var in playJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Play(in.playAlias)
	if len(in.OutcomeData) == 0 {
		return nil
	}
	var err error
	switch in.OutcomeKind {
	case actions.KindShot:
		var o ShotOutcome
		err = json.Unmarshal(in.OutcomeData, &o)
		p.Outcome = o
	case actions.KindDrive:
		var o DriveOutcome
		err = json.Unmarshal(in.OutcomeData, &o)
		p.Outcome = o
	case actions.KindPass:
		var o PassOutcome
		err = json.Unmarshal(in.OutcomeData, &o)
		p.Outcome = o
	default:
		return fmt.Errorf("unknown outcome kind %q", in.OutcomeKind)
	}
	return err
}
