package games

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no simulation exists for an id.
var ErrNotFound = errors.New("simulation not found")

// GameStatus is the lifecycle state of a simulated game.
type GameStatus string

const (
	StatusFinal    GameStatus = "FINAL"
	StatusCanceled GameStatus = "CANCELED"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Line is a box-score row. It is used for both teams and players.
type Line struct {
	Points              int `json:"points"`
	FieldGoalsMade      int `json:"fieldGoalsMade"`
	FieldGoalsAttempted int `json:"fieldGoalsAttempted"`
	ThreesMade          int `json:"threesMade"`
	ThreesAttempted     int `json:"threesAttempted"`
	FreeThrowsMade      int `json:"freeThrowsMade"`
	FreeThrowsAttempted int `json:"freeThrowsAttempted"`
	OffensiveRebounds   int `json:"offensiveRebounds"`
	DefensiveRebounds   int `json:"defensiveRebounds"`
	Assists             int `json:"assists"`
	Turnovers           int `json:"turnovers"`
	Fouls               int `json:"fouls"`
}

// Rebounds is the total of both rebound kinds.
func (l Line) Rebounds() int {
	return l.OffensiveRebounds + l.DefensiveRebounds
}

// TeamLine totals a team's game.
type TeamLine struct {
	TeamID      string `json:"teamId"`
	Possessions int    `json:"possessions"`
	Line

	// QuickPoints credits shooting-foul free throws at a flat rate instead of the simulated makes.
	QuickPoints float64 `json:"quickPoints"`
}

// PlayerLine totals one player's game.
type PlayerLine struct {
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
	Line
}

// Game is the summary of one simulated game.
type Game struct {
	ID          string       `json:"id"`
	Seed        uint64       `json:"seed"`
	HomeTeamID  string       `json:"homeTeamId"`
	AwayTeamID  string       `json:"awayTeamId"`
	HomeScheme  string       `json:"homeScheme"`
	AwayScheme  string       `json:"awayScheme"`
	Quarters    int          `json:"quarters"`
	Status      GameStatus   `json:"status"`
	Score       Score        `json:"score"`
	Possessions int          `json:"possessions"`
	Plays       int          `json:"plays"`
	Home        TeamLine     `json:"home"`
	Away        TeamLine     `json:"away"`
	Players     []PlayerLine `json:"players"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Winner returns the id of the team with more points, or "" for a tie.
func (g Game) Winner() string {
	switch {
	case g.Score.Home > g.Score.Away:
		return g.HomeTeamID
	case g.Score.Away > g.Score.Home:
		return g.AwayTeamID
	default:
		return ""
	}
}

// ListResponse is the payload returned by GET /simulations.
type ListResponse struct {
	Count int    `json:"count"`
	Games []Game `json:"games"`
}

// NewListResponse builds a ListResponse payload.
func NewListResponse(games []Game) ListResponse {
	return ListResponse{
		Count: len(games),
		Games: games,
	}
}
