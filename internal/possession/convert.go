package possession

import (
	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
)

// PostRange is the farthest from the rim a post-up can start, in feet.
const PostRange = 12.0

// conversion rewrites a chosen action that the situation does not allow.
type conversion struct {
	from, to actions.Action
	applies  func(c convertContext) bool
}

type convertContext struct {
	zone         court.Zone
	rimDistance  float64
	justReceived bool
}

// Conversions run in order, so a drive from the restricted area becomes a post-up and is then
// checked as one.
var conversions = []conversion{
	{from: actions.Drive, to: actions.Post, applies: func(c convertContext) bool { return c.zone == court.ZoneRestricted }},
	{from: actions.Post, to: actions.Pullup, applies: func(c convertContext) bool { return c.rimDistance > PostRange }},
	{from: actions.CatchShoot, to: actions.Pullup, applies: func(c convertContext) bool { return !c.justReceived }},
}

// Convert is the pre-resolution stage. It returns the action to resolve and, when it differs from
// chosen, the original choice.
func Convert(chosen actions.Action, side court.Side, handler court.Position, justReceived bool) (actions.Action, actions.Action) {
	ctx := convertContext{
		zone:         court.Classify(side, handler),
		rimDistance:  court.Distance(handler, court.AttackedBasket(side)),
		justReceived: justReceived,
	}
	a := chosen
	for _, c := range conversions {
		if a == c.from && c.applies(ctx) {
			a = c.to
		}
	}
	if a == chosen {
		return a, ""
	}
	return a, chosen
}
