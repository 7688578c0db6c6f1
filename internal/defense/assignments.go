// Package defense decides who guards whom. Assignments are derived from a pair of formations
// and must be rebuilt whenever either formation changes.
package defense

import (
	"fmt"
	"math"
	"sort"

	"github.com/preston-bernstein/nba-possession-sim/internal/court"
	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/formation"
	"github.com/preston-bernstein/nba-possession-sim/internal/scheme"
)

// Kind is the type of responsibility a defender has.
type Kind string

const (
	KindMan  Kind = "man"
	KindZone Kind = "zone"
	KindHelp Kind = "help"
)

const (
	maxPriority      = 10
	zonePriority     = 5
	trapPriority     = 8
	priorityStepFeet = 3.0
)

// ErrUnknownScheme reports a scheme Assign cannot build.
var ErrUnknownScheme = scheme.ErrUnknown

// Assignment is one defender's responsibility: a player (TargetID) or a region (Zone).
type Assignment struct {
	DefenderID string `json:"defenderId"`
	TargetID   string `json:"targetId,omitempty"`
	Zone       string `json:"zone,omitempty"`
	Kind       Kind   `json:"kind"`
	Priority   int    `json:"priority"`
}

// Assignments is the full defensive plan for one formation pair.
type Assignments struct {
	Scheme scheme.Scheme `json:"scheme"`
	List   []Assignment  `json:"assignments"`
	// DefaultDefenderID guards anyone without a man assignment.
	DefaultDefenderID string `json:"defaultDefenderId"`
	FormationVersion  int    `json:"formationVersion"`
}

// Assign builds the assignments of defense against offense under scheme s. Player positions come
// from the two formations; roster order breaks ties.
func Assign(offense, defense teams.Team, s scheme.Scheme, offForm, defForm formation.Formation) (Assignments, error) {
	out := Assignments{Scheme: s, FormationVersion: offForm.Version}
	defenders := defense.IDs()
	if len(defenders) > 0 {
		out.DefaultDefenderID = defenders[0]
	}

	switch {
	case s == scheme.Man:
		out.List = assignMan(offense.IDs(), defenders, offForm, defForm, 0)
	case s == scheme.Switch:
		out.List = assignMan(offense.IDs(), defenders, offForm, defForm, 1)
	case s.IsZone():
		out.List = assignZone(defenders, s.Regions())
	case s == scheme.FullCourt:
		out.List = assignPress(offense.IDs(), defenders, offForm, defForm)
	default:
		return Assignments{}, fmt.Errorf("%w: %q", ErrUnknownScheme, s)
	}
	return out, nil
}

type pair struct {
	defender, offender int
	dist               float64
}

// assignMan matches each defender to its closest unassigned offender, closest pairs first.
// penalty is subtracted from every priority.
func assignMan(offenders, defenders []string, offForm, defForm formation.Formation, penalty int) []Assignment {
	offPos := positions(offenders, offForm)
	defPos := positions(defenders, defForm)

	pairs := make([]pair, 0, len(offenders)*len(defenders))
	for d := range defenders {
		if defPos[d] == nil {
			continue
		}
		for o := range offenders {
			if offPos[o] == nil {
				continue
			}
			pairs = append(pairs, pair{defender: d, offender: o, dist: court.Distance(*defPos[d], *offPos[o])})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].dist < pairs[j].dist })

	matched := make([]*Assignment, len(defenders))
	taken := make([]bool, len(offenders))
	for _, p := range pairs {
		if matched[p.defender] != nil || taken[p.offender] {
			continue
		}
		taken[p.offender] = true
		matched[p.defender] = &Assignment{
			DefenderID: defenders[p.defender],
			TargetID:   offenders[p.offender],
			Kind:       KindMan,
			Priority:   distancePriority(p.dist) - penalty,
		}
	}

	out := make([]Assignment, 0, len(defenders))
	for _, a := range matched {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// distancePriority is 10 for a defender within three feet, one less per further three feet, and
// never below 1.
func distancePriority(d float64) int {
	p := maxPriority - int(math.Floor(d/priorityStepFeet))
	if p < 1 {
		return 1
	}
	return p
}

func assignZone(defenders []string, regions []scheme.Region) []Assignment {
	out := make([]Assignment, 0, len(regions))
	for i, id := range defenders {
		if i >= len(regions) {
			break
		}
		out = append(out, Assignment{DefenderID: id, Zone: regions[i].Name, Kind: KindZone, Priority: zonePriority})
	}
	return out
}

// assignPress puts the nearest defender on the ball handler and sends the next nearest to trap.
// Everyone else is left unassigned.
func assignPress(offenders, defenders []string, offForm, defForm formation.Formation) []Assignment {
	offPos := positions(offenders, offForm)
	handler, handlerPos := -1, court.Position{}
	best := math.Inf(1)
	for i, p := range offPos {
		if p == nil {
			continue
		}
		if d := court.Distance(*p, offForm.Ball); d < best {
			best, handler, handlerPos = d, i, *p
		}
	}
	if handler < 0 {
		return nil
	}

	defPos := positions(defenders, defForm)
	order := make([]int, 0, len(defenders))
	for i, p := range defPos {
		if p != nil {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return court.Distance(*defPos[order[i]], handlerPos) < court.Distance(*defPos[order[j]], handlerPos)
	})

	var out []Assignment
	if len(order) > 0 {
		out = append(out, Assignment{DefenderID: defenders[order[0]], TargetID: offenders[handler], Kind: KindMan, Priority: maxPriority})
	}
	if len(order) > 1 {
		out = append(out, Assignment{DefenderID: defenders[order[1]], TargetID: offenders[handler], Kind: KindHelp, Priority: trapPriority})
	}
	return out
}

func positions(ids []string, f formation.Formation) []*court.Position {
	out := make([]*court.Position, len(ids))
	for i, id := range ids {
		if p, ok := f.Position(id); ok {
			out[i] = &p
		}
	}
	return out
}
