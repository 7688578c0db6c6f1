package teams

import "github.com/preston-bernstein/nba-possession-sim/internal/domain/players"

// OnCourt is the number of players a team fields.
const OnCourt = 5

// Team is an ordered roster. The first five players are on the floor and the first player is the
// designated primary ball handler.
type Team struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Abbreviation string           `json:"abbreviation"`
	City         string           `json:"city"`
	Players      []players.Player `json:"players"`
}

// Lineup returns the players on the floor.
func (t Team) Lineup() []players.Player {
	if len(t.Players) <= OnCourt {
		return t.Players
	}
	return t.Players[:OnCourt]
}

// Primary returns the designated ball handler.
func (t Team) Primary() (players.Player, bool) {
	if len(t.Players) == 0 {
		return players.Player{}, false
	}
	return t.Players[0], true
}

// Player returns the on-court player with id.
func (t Team) Player(id string) (players.Player, bool) {
	for _, p := range t.Lineup() {
		if p.ID == id {
			return p, true
		}
	}
	return players.Player{}, false
}

// Has reports whether id is on the floor for the team.
func (t Team) Has(id string) bool {
	_, ok := t.Player(id)
	return ok
}

// IDs returns the on-court player ids in roster order.
func (t Team) IDs() []string {
	lineup := t.Lineup()
	ids := make([]string, len(lineup))
	for i, p := range lineup {
		ids[i] = p.ID
	}
	return ids
}
