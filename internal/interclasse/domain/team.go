package domain

type Player struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
	Goals  int    `json:"goals"`
}

type Team struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ClassName    string   `json:"className"`
	CaptainID    string   `json:"captainId"`
	Players      []Player `json:"players"`
	Points       int      `json:"points"`
	GoalsFor     int      `json:"goalsFor"`
	GoalsAgainst int      `json:"goalsAgainst"`
}

// GoalDifference is goals scored minus goals conceded.
func (t Team) GoalDifference() int { return t.GoalsFor - t.GoalsAgainst }

type TeamDraft struct {
	Name      string `json:"name"      validate:"required,min=2"`
	ClassName string `json:"className" validate:"required"`
	CaptainID string `json:"captainId"`
}

// Scorer is a player annotated with the team they play for.
type Scorer struct {
	Player
	TeamName string `json:"teamName"`
}
