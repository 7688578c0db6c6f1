package formation

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
)

// Set is a named offensive alignment.
type Set string

const (
	FiveOut      Set = "5-out"
	FourOutOneIn Set = "4-out-1-in"
	OneOutFour   Set = "1-out-4"
	DribbleDrive Set = "dribble-drive"
)

// DefaultSet is used when a context names no set.
const DefaultSet = FourOutOneIn

// ErrUnknownSet reports a set name with no layout.
var ErrUnknownSet = errors.New("unknown offensive set")

type offset struct {
	depth, lateral float64
}

// The first spot of each set is the ball handler's, at the top of the key inside the arc. The
// trip up the floor is charged to the clock, not walked.
var setLayouts = map[Set][]offset{
	FiveOut:      {{22, 0}, {20, -16}, {20, 16}, {2, -22}, {2, 22}},
	FourOutOneIn: {{21, 0}, {21, -15}, {21, 15}, {2, -22}, {6, 7}},
	OneOutFour:   {{22, 0}, {15, -12}, {15, 12}, {4, -8}, {4, 8}},
	DribbleDrive: {{23, 0}, {20, -19}, {20, 19}, {1, -22}, {1, 22}},
}

// Sets lists the supported offensive sets.
var Sets = []Set{FiveOut, FourOutOneIn, OneOutFour, DribbleDrive}

// ParseSet validates a set name. An empty name selects DefaultSet.
func ParseSet(name string) (Set, error) {
	if name == "" {
		return DefaultSet, nil
	}
	if _, ok := setLayouts[Set(name)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSet, name)
	}
	return Set(name), nil
}

// Context parameterizes an offensive layout.
type Context struct {
	Set Set
	// BallHandlerID takes the first spot of the set. Empty selects the team's primary.
	BallHandlerID string
	// Ball overrides the ball position; nil puts it in the handler's hands.
	Ball    *court.Position
	Version int
}

// CreateOffensive lays out team's lineup in a set play for a team attacking from side.
func CreateOffensive(team teams.Team, side court.Side, ctx Context) (Formation, error) {
	set := ctx.Set
	if set == "" {
		set = DefaultSet
	}
	layout, ok := setLayouts[set]
	if !ok {
		return Formation{}, fmt.Errorf("%w: %q", ErrUnknownSet, set)
	}

	ids := orderWithHandler(team.IDs(), ctx.BallHandlerID)
	f := Formation{Side: side, Name: string(set), Version: ctx.Version}
	for i, id := range ids {
		if i >= len(layout) {
			break
		}
		o := layout[i]
		f.Spots = append(f.Spots, Spot{PlayerID: id, Position: court.FromBasket(side, o.depth, o.lateral)})
	}
	if len(f.Spots) > 0 {
		f.BallHandlerID = f.Spots[0].PlayerID
		f.Ball = f.Spots[0].Position
	}
	if ctx.Ball != nil {
		f.Ball = court.Clamp(*ctx.Ball)
	}
	return f, nil
}

func orderWithHandler(ids []string, handler string) []string {
	if handler == "" {
		return ids
	}
	out := make([]string, 0, len(ids))
	found := false
	for _, id := range ids {
		if id == handler {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		return ids
	}
	return append([]string{handler}, out...)
}
