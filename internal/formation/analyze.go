package formation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
)

// IdealSpacing is the pairwise distance in feet that counts as fully spaced.
const IdealSpacing = 15.0

// Analysis is a diagnostic summary of a formation. Spacing is the mean pairwise distance over
// IdealSpacing, so 1 is ideal; Balance and Coverage are in [0,1].
type Analysis struct {
	Spacing  float64 `json:"spacing"`
	Balance  float64 `json:"balance"`
	Coverage float64 `json:"coverage"`
}

// Analyze scores how well a formation uses the floor.
func Analyze(f Formation) Analysis {
	pos := f.Positions()
	if len(pos) < 2 {
		return Analysis{}
	}

	pairs := make([]float64, 0, len(pos)*(len(pos)-1)/2)
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			pairs = append(pairs, court.Distance(pos[i], pos[j]))
		}
	}

	ys := make([]float64, len(pos))
	for i, p := range pos {
		ys[i] = p.Y
	}

	return Analysis{
		Spacing:  stat.Mean(pairs, nil) / IdealSpacing,
		Balance:  math.Min(stat.StdDev(ys, nil)/(court.Width/4), 1),
		Coverage: coverage(f.Side, pos),
	}
}

// coverage is the share of six half-court regions (three lanes by two depths) with a player in
// them.
func coverage(side court.Side, pos []court.Position) float64 {
	basket := court.AttackedBasket(side)
	var occupied [6]bool
	for _, p := range pos {
		lane := 1
		switch {
		case p.Y < court.Width/3:
			lane = 0
		case p.Y > 2*court.Width/3:
			lane = 2
		}
		band := 0
		if math.Abs(p.X-basket.X) > court.PaintDepth-court.BasketInset {
			band = 1
		}
		occupied[band*3+lane] = true
	}
	n := 0
	for _, o := range occupied {
		if o {
			n++
		}
	}
	return float64(n) / float64(len(occupied))
}
