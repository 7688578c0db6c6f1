// Package actions enumerates the on-ball decisions a ball handler can make.
package actions

// Action is an on-ball decision.
type Action string

const (
	CatchShoot Action = "catch_shoot"
	Pullup     Action = "pullup"
	Stepback   Action = "stepback"
	Post       Action = "post"
	Drive      Action = "drive"
	Pass       Action = "pass"
	Reset      Action = "reset"
	// Desperation is forced by an expiring shot clock and never chosen by the policy.
	Desperation Action = "desperation"
)

// Kind groups actions by the outcome variant they resolve to.
type Kind string

const (
	KindShot  Kind = "shot"
	KindDrive Kind = "drive"
	KindPass  Kind = "pass"
)

// Selectable lists the actions the policy chooses between, in evaluation order.
var Selectable = []Action{CatchShoot, Pullup, Stepback, Post, Drive, Pass, Reset}

// Kind returns the outcome variant of a.
func (a Action) Kind() Kind {
	switch a {
	case Drive:
		return KindDrive
	case Pass, Reset:
		return KindPass
	default:
		return KindShot
	}
}

// IsShot reports whether a is a field goal attempt.
func (a Action) IsShot() bool {
	return a.Kind() == KindShot
}

// IsBallMovement reports whether a moves the ball without attacking the rim.
func (a Action) IsBallMovement() bool {
	return a == Pass || a == Reset
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	if a == Desperation {
		return true
	}
	for _, s := range Selectable {
		if s == a {
			return true
		}
	}
	return false
}
