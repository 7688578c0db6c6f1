package possession

import (
	"math"

	"github.com/preston-bernstein/nba-possession-sim/internal/actions"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/players"
	"github.com/preston-bernstein/nba-possession-sim/internal/probability"
	"github.com/preston-bernstein/nba-possession-sim/internal/rng"
	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

const tendencyFloor = 1e-3

// ActionDistribution blends EPV with the player's tendencies through a softmax. The result is
// indexed like actions.Selectable.
func ActionDistribution(t tuning.Policy, epv map[actions.Action]float64, tend players.ActionTendencies) []float64 {
	prior := probability.DirichletMean([]float64{
		tend.CatchShoot, tend.Pullup, tend.Stepback, tend.Post, tend.Drive, tend.Pass, tend.Reset,
	})
	logits := make([]float64, len(actions.Selectable))
	for i, a := range actions.Selectable {
		logits[i] = epv[a]/t.Temperature + t.TendencyWeight*math.Log(prior[i]+tendencyFloor)
	}
	return probability.Softmax(logits)
}

// ChooseAction samples an action with one draw.
func ChooseAction(t tuning.Policy, epv map[actions.Action]float64, tend players.ActionTendencies, g *rng.RNG) actions.Action {
	idx := g.Pick(ActionDistribution(t, epv, tend))
	return actions.Selectable[idx]
}
