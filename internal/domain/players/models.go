package players

// Ratings holds a player's skill attributes on a 0-99 scale.
type Ratings struct {
	// Shooting
	CloseShot  int `json:"closeShot"`
	MidRange   int `json:"midRange"`
	ThreePoint int `json:"threePoint"`
	FreeThrow  int `json:"freeThrow"`
	ShotIQ     int `json:"shotIq"`

	// Finishing
	Layup       int `json:"layup"`
	Dunk        int `json:"dunk"`
	PostControl int `json:"postControl"`

	// Playmaking
	BallHandle int `json:"ballHandle"`
	Passing    int `json:"passing"`
	Vision     int `json:"vision"`

	// Defense
	Perimeter int `json:"perimeterDefense"`
	Interior  int `json:"interiorDefense"`
	Steal     int `json:"steal"`
	Block     int `json:"block"`
	HelpIQ    int `json:"helpIq"`

	// Rebounding
	OffRebound int `json:"offensiveRebound"`
	DefRebound int `json:"defensiveRebound"`
	BoxOut     int `json:"boxOut"`

	// Physical
	Speed        int `json:"speed"`
	Acceleration int `json:"acceleration"`
	Strength     int `json:"strength"`
	Vertical     int `json:"vertical"`
	Stamina      int `json:"stamina"`

	// Mental
	Clutch int `json:"clutch"`
}

// ActionTendencies weights how often a player looks for each on-ball action.
type ActionTendencies struct {
	CatchShoot float64 `json:"catchShoot"`
	Pullup     float64 `json:"pullup"`
	Stepback   float64 `json:"stepback"`
	Post       float64 `json:"post"`
	Drive      float64 `json:"drive"`
	Pass       float64 `json:"pass"`
	Reset      float64 `json:"reset"`
}

// ZoneTendencies weights where a player likes to shoot from.
type ZoneTendencies struct {
	Rim   float64 `json:"rim"`
	Mid   float64 `json:"mid"`
	Three float64 `json:"three"`
}

// OffBallTendencies weights what a player does without the ball.
type OffBallTendencies struct {
	Spot   float64 `json:"spot"`
	Cut    float64 `json:"cut"`
	Screen float64 `json:"screen"`
}

// Tendencies groups a player's probability-weight vectors.
type Tendencies struct {
	Actions ActionTendencies  `json:"actions"`
	Zones   ZoneTendencies    `json:"zones"`
	OffBall OffBallTendencies `json:"offBall"`
}

// Player is immutable for the duration of a game; simulation state refers to it by ID.
type Player struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Position     string     `json:"position"`
	HeightInches int        `json:"heightInches"`
	WeightPounds int        `json:"weightPounds"`
	Ratings      Ratings    `json:"ratings"`
	Tendencies   Tendencies `json:"tendencies"`
}

// Name returns the display name of the player.
func (p Player) Name() string {
	if p.LastName == "" {
		return p.FirstName
	}
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}
