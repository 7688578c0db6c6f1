// Package formation lays out the ten players on the floor. Formations are values: every change
// produces a new Formation with a higher version.
package formation

import (
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
)

// Spot is one player's position.
type Spot struct {
	PlayerID string         `json:"playerId"`
	Position court.Position `json:"position"`
}

// Formation is the on-court layout of one team plus the ball.
type Formation struct {
	Side court.Side `json:"side"`
	// Name is the offensive set or the defensive scheme the layout came from.
	Name          string         `json:"name"`
	Spots         []Spot         `json:"spots"`
	Ball          court.Position `json:"ball"`
	BallHandlerID string         `json:"ballHandlerId,omitempty"`
	Version       int            `json:"version"`
}

// Position returns the position of a player in the formation.
func (f Formation) Position(id string) (court.Position, bool) {
	for _, s := range f.Spots {
		if s.PlayerID == id {
			return s.Position, true
		}
	}
	return court.Position{}, false
}

// Positions returns every spot's position in spot order.
func (f Formation) Positions() []court.Position {
	out := make([]court.Position, len(f.Spots))
	for i, s := range f.Spots {
		out[i] = s.Position
	}
	return out
}

// IDs returns the player ids in spot order.
func (f Formation) IDs() []string {
	out := make([]string, len(f.Spots))
	for i, s := range f.Spots {
		out[i] = s.PlayerID
	}
	return out
}

// Without returns the positions of every player except id.
func (f Formation) Without(id string) []court.Position {
	out := make([]court.Position, 0, len(f.Spots))
	for _, s := range f.Spots {
		if s.PlayerID != id {
			out = append(out, s.Position)
		}
	}
	return out
}

// WithBall hands the ball to id. The formation is unchanged if id is not in it.
func (f Formation) WithBall(id string) Formation {
	pos, ok := f.Position(id)
	if !ok {
		return f
	}
	next := f.clone()
	next.BallHandlerID = id
	next.Ball = pos
	return next
}

// WithPosition moves id to pos, carrying the ball along when id has it.
func (f Formation) WithPosition(id string, pos court.Position) Formation {
	next := f.clone()
	pos = court.Clamp(pos)
	for i := range next.Spots {
		if next.Spots[i].PlayerID == id {
			next.Spots[i].Position = pos
		}
	}
	if id == next.BallHandlerID {
		next.Ball = pos
	}
	return next
}

func (f Formation) clone() Formation {
	next := f
	next.Spots = make([]Spot, len(f.Spots))
	copy(next.Spots, f.Spots)
	next.Version = f.Version + 1
	return next
}
