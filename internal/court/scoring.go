package court

import "math"

const (
	// ContestRange is the defender distance at which a shot is considered uncontested.
	ContestRange = 8.0
	laneCount    = 5
	laneSpread   = 40 * math.Pi / 180
	laneWidth    = 3.0
)

// Nearest returns the distance from p to the closest of others and its index.
// It returns (+Inf, -1) when others is empty.
func Nearest(p Position, others []Position) (float64, int) {
	best, idx := math.Inf(1), -1
	for i, o := range others {
		if d := Distance(p, o); d < best {
			best, idx = d, i
		}
	}
	return best, idx
}

// Contest maps a defender distance to a contest level in [0,1]: 1 is a hand in the face.
func Contest(defenderDistance float64) float64 {
	if math.IsNaN(defenderDistance) || defenderDistance >= ContestRange {
		return 0
	}
	if defenderDistance <= 0 {
		return 1
	}
	return 1 - defenderDistance/ContestRange
}

// ShotQuality scores a look from p in [0,1] from its distance to the rim and how much room the
// nearest defender gives.
func ShotQuality(s Side, p Position, defenders []Position) float64 {
	dist := Distance(p, AttackedBasket(s))
	var proximity float64
	switch z := Classify(s, p); {
	case z == ZoneRestricted:
		proximity = 1
	case z == ZoneHeave:
		proximity = 0.05
	case z.IsThree():
		// Threes are worth more, so the arc does not fall off a cliff.
		proximity = 0.62 - (dist-ThreePointRadius)*0.03
	default:
		proximity = 0.9 - dist*0.022
	}
	nearest, _ := Nearest(p, defenders)
	openness := 1 - Contest(nearest)
	q := 0.55*clamp(proximity, 0, 1) + 0.45*openness
	return clamp(q, 0, 1)
}

// OpenLanes returns the fraction of driving lanes from p toward the rim that no defender sits in.
// Lanes fan out over ±40 degrees around the straight line to the basket.
func OpenLanes(s Side, p Position, defenders []Position) float64 {
	basket := AttackedBasket(s)
	dist := Distance(p, basket)
	if dist < 1 {
		return 1
	}
	center := Angle(p, basket)
	open := 0
	for i := 0; i < laneCount; i++ {
		a := center - laneSpread + float64(i)*(2*laneSpread/float64(laneCount-1))
		end := Offset(p, a, dist)
		if !laneBlocked(p, end, defenders) {
			open++
		}
	}
	return float64(open) / laneCount
}

func laneBlocked(from, to Position, defenders []Position) bool {
	for _, d := range defenders {
		if segmentDistance(d, from, to) <= laneWidth {
			return true
		}
	}
	return false
}

// segmentDistance is the distance from p to the segment ab.
func segmentDistance(p, a, b Position) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = clamp(t, 0, 1)
	return Distance(p, Position{X: a.X + t*dx, Y: a.Y + t*dy})
}
