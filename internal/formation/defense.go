package formation

import (
	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/scheme"
)

const (
	// ManNudge is how far a man defender sits off his player toward the defended basket.
	ManNudge = 3.0
	// zoneShade is the fraction of the ball's lateral offset a zone slides toward.
	zoneShade = 0.25
)

// CreateDefensive lays out team defending against offense with the given scheme. side is the
// defending team's side; it defends the basket offense attacks. Unknown schemes fall back to man.
func CreateDefensive(team teams.Team, s scheme.Scheme, offense Formation, side court.Side) Formation {
	ids := team.IDs()
	f := Formation{Side: side, Name: string(s), Ball: offense.Ball, Version: offense.Version}
	basket := court.AttackedBasket(side.Opposite())

	var positions []court.Position
	switch {
	case s.IsZone():
		positions = zonePositions(s, offense.Ball, side.Opposite())
	case s == scheme.FullCourt:
		positions = pressPositions(offense.Ball, side.Opposite())
	default:
		positions = make([]court.Position, 0, len(offense.Spots))
		for _, spot := range offense.Spots {
			positions = append(positions, court.Toward(spot.Position, basket, ManNudge))
		}
	}

	for i, id := range ids {
		if i >= len(positions) {
			break
		}
		f.Spots = append(f.Spots, Spot{PlayerID: id, Position: court.Clamp(positions[i])})
	}
	return f
}

// zonePositions places the scheme's regions around the basket attacked by offenseSide, slid
// toward the ball.
func zonePositions(s scheme.Scheme, ball court.Position, offenseSide court.Side) []court.Position {
	basket := court.AttackedBasket(offenseSide)
	shift := zoneShade * (ball.Y - basket.Y)
	regions := s.Regions()
	out := make([]court.Position, len(regions))
	for i, r := range regions {
		out[i] = court.FromBasket(offenseSide, r.Depth, r.Lateral+shift)
	}
	return out
}

// pressPositions builds a press around the ball: one defender on the ball, a trapper beside
// him, two in the passing lanes behind and a safety back at the rim.
func pressPositions(ball court.Position, offenseSide court.Side) []court.Position {
	basket := court.AttackedBasket(offenseSide)
	dir := court.Direction(offenseSide)
	onBall := court.Toward(ball, basket, ManNudge)
	return []court.Position{
		onBall,
		{X: onBall.X, Y: onBall.Y + lateralAway(ball.Y, 6)},
		{X: ball.X + dir*12, Y: ball.Y - 12},
		{X: ball.X + dir*12, Y: ball.Y + 12},
		court.FromBasket(offenseSide, 10, 0),
	}
}

// lateralAway returns an offset of size toward the middle of the floor from y.
func lateralAway(y, size float64) float64 {
	if y > court.Width/2 {
		return -size
	}
	return size
}
