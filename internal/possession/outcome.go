package possession

import (
	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/movement"
	"github.com/preston-bernstein/nba-possession-sim/internal/probability"
)

// Outcome is the resolution of one action. The implementations are ShotOutcome, DriveOutcome
// and PassOutcome; the set is closed.
type Outcome interface {
	Kind() actions.Kind
	// Explanation is the record behind the deciding roll.
	Explanation() probability.Explain
	// Scored is the number of points the action produced, free throws included.
	Scored() int
	// Final reports whether the outcome ends the possession without a rebound.
	Final() bool
	outcome()
}

// ShotOutcome resolves a field goal attempt.
type ShotOutcome struct {
	Zone        court.Zone `json:"zone"`
	Make        bool       `json:"make"`
	Foul        bool       `json:"foul"`
	Three       bool       `json:"three"`
	Turnover    bool       `json:"turnover"`
	Desperation bool       `json:"desperation"`

	Quality        float64 `json:"quality"`
	Contest        float64 `json:"contest"`
	FreeThrows     int     `json:"freeThrows"`
	FreeThrowsMade int     `json:"freeThrowsMade"`
	Points         int     `json:"points"`

	Movement    *movement.Outcome   `json:"movement,omitempty"`
	Explain     probability.Explain `json:"explain"`
	FoulExplain probability.Explain `json:"foulExplain"`
}

func (ShotOutcome) Kind() actions.Kind                 { return actions.KindShot }
func (o ShotOutcome) Explanation() probability.Explain { return o.Explain }
func (o ShotOutcome) Scored() int                      { return o.Points }
func (o ShotOutcome) Final() bool                      { return o.Make || o.Foul || o.Turnover }
func (ShotOutcome) outcome()                           {}

// DriveOutcome resolves a drive. A drive that neither scores, fouls nor turns it over was
// stopped and the possession continues.
type DriveOutcome struct {
	Movement movement.Outcome `json:"movement"`
	Blowby   bool             `json:"blowby"`
	Make     bool             `json:"make"`
	Foul     bool             `json:"foul"`
	Turnover bool             `json:"turnover"`

	FreeThrows     int `json:"freeThrows"`
	FreeThrowsMade int `json:"freeThrowsMade"`
	Points         int `json:"points"`

	Explain     probability.Explain `json:"explain"`
	FoulExplain probability.Explain `json:"foulExplain"`
}

func (DriveOutcome) Kind() actions.Kind                 { return actions.KindDrive }
func (o DriveOutcome) Explanation() probability.Explain { return o.Explain }
func (o DriveOutcome) Scored() int                      { return o.Points }
func (o DriveOutcome) Final() bool                      { return o.Make || o.Foul || o.Turnover }
func (DriveOutcome) outcome()                           {}

// Missed reports whether the drive got to the rim and missed.
func (o DriveOutcome) Missed() bool {
	return o.Blowby && !o.Make && !o.Foul && !o.Turnover
}

// PassOutcome resolves a pass or a reset. A reset keeps the ball with the handler.
type PassOutcome struct {
	ReceiverID string  `json:"receiverId,omitempty"`
	Complete   bool    `json:"complete"`
	Turnover   bool    `json:"turnover"`
	Reset      bool    `json:"reset"`
	Distance   float64 `json:"distance"`

	Explain probability.Explain `json:"explain"`
}

func (PassOutcome) Kind() actions.Kind                 { return actions.KindPass }
func (o PassOutcome) Explanation() probability.Explain { return o.Explain }
func (PassOutcome) Scored() int                        { return 0 }
func (o PassOutcome) Final() bool                      { return o.Turnover }
func (PassOutcome) outcome()                           {}
