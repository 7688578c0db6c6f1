package court

import "math"

// Zone classifies a shot location relative to the attacked basket.
type Zone string

const (
	ZoneRestricted Zone = "restricted"
	ZonePaint      Zone = "paint"
	ZoneShortMid   Zone = "short_mid"
	ZoneLongMid    Zone = "long_mid"
	ZoneCorner3    Zone = "corner_three"
	ZoneAboveBreak Zone = "above_break_three"
	ZoneHeave      Zone = "heave"
)

// HeaveDistance is the distance beyond which a shot is treated as a heave.
const HeaveDistance = 35.0

// IsThree reports whether a made shot from the zone is worth three points.
func (z Zone) IsThree() bool {
	return z == ZoneCorner3 || z == ZoneAboveBreak || z == ZoneHeave
}

// Points returns the value of a made field goal from the zone.
func (z Zone) Points() int {
	if z.IsThree() {
		return 3
	}
	return 2
}

// Classify returns the shot zone of p for a team attacking side s.
func Classify(s Side, p Position) Zone {
	basket := AttackedBasket(s)
	dist := Distance(p, basket)
	depth := math.Abs(p.X - basket.X)
	lateral := math.Abs(p.Y - basket.Y)

	switch {
	case dist <= RestrictedRadius:
		return ZoneRestricted
	case depth <= PaintDepth-BasketInset && lateral <= PaintHalfWidth && dist < 16:
		return ZonePaint
	}

	if isThree(depth, lateral, dist) {
		if dist >= HeaveDistance {
			return ZoneHeave
		}
		if lateral >= CornerThreeOffset && depth <= CornerDepth-BasketInset {
			return ZoneCorner3
		}
		return ZoneAboveBreak
	}
	if dist < 14 {
		return ZoneShortMid
	}
	return ZoneLongMid
}

func isThree(depth, lateral, dist float64) bool {
	if depth <= CornerDepth-BasketInset {
		return lateral >= CornerThreeOffset
	}
	return dist >= ThreePointRadius
}
