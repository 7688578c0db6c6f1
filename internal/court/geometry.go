package court

import "math"

// Court dimensions in feet.
const (
	Length = 94.0
	Width  = 50.0

	// BasketInset is the distance from the baseline to the center of the rim.
	BasketInset = 5.25

	ThreePointRadius  = 23.75
	CornerThreeOffset = 22.0
	// CornerDepth is how far from the baseline the straight corner-three line runs.
	CornerDepth = 14.0

	RestrictedRadius = 4.0
	PaintHalfWidth   = 8.0
	PaintDepth       = 19.0
)

// Side identifies which basket a team attacks.
type Side string

const (
	// Home attacks the right basket.
	Home Side = "home"
	// Away attacks the left basket.
	Away Side = "away"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Home {
		return Away
	}
	return Home
}

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == Home || s == Away
}

// Position is a point on the court in feet, origin at the left baseline corner.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var (
	LeftBasket  = Position{X: BasketInset, Y: Width / 2}
	RightBasket = Position{X: Length - BasketInset, Y: Width / 2}
)

// AttackedBasket returns the rim a side shoots at.
func AttackedBasket(s Side) Position {
	if s == Away {
		return LeftBasket
	}
	return RightBasket
}

// Direction is +1 when the side attacks toward increasing X, -1 otherwise.
func Direction(s Side) float64 {
	if s == Away {
		return -1
	}
	return 1
}

// FromBasket converts an offset (depth toward midcourt, lateral from the rim line) into
// absolute court coordinates for the basket attacked by side.
func FromBasket(s Side, depth, lateral float64) Position {
	b := AttackedBasket(s)
	return Clamp(Position{
		X: b.X - Direction(s)*depth,
		Y: b.Y + lateral,
	})
}

// Distance is the Euclidean distance between two positions.
func Distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Angle returns the angle in radians from a to b.
func Angle(from, to Position) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Toward moves from a toward b by dist feet, stopping at b.
func Toward(a, b Position, dist float64) Position {
	d := Distance(a, b)
	if d == 0 || dist >= d {
		return b
	}
	t := dist / d
	return Position{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Offset returns the point dist feet away from p along angle.
func Offset(p Position, angle, dist float64) Position {
	return Position{X: p.X + math.Cos(angle)*dist, Y: p.Y + math.Sin(angle)*dist}
}

// Clamp keeps a position inside the court lines.
func Clamp(p Position) Position {
	return Position{X: clamp(p.X, 0, Length), Y: clamp(p.Y, 0, Width)}
}

// InFrontcourt reports whether p is on the half of the floor side attacks.
func InFrontcourt(s Side, p Position) bool {
	if s == Away {
		return p.X <= Length/2
	}
	return p.X >= Length/2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
