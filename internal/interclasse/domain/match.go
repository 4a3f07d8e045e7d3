package domain

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchOngoing   MatchStatus = "ongoing"
	MatchFinished  MatchStatus = "finished"
)

type Match struct {
	ID          string      `json:"id"`
	HomeTeamID  string      `json:"homeTeamId"`
	AwayTeamID  string      `json:"awayTeamId"`
	ScheduledAt string      `json:"scheduledAt"`
	Location    string      `json:"location"`
	Status      MatchStatus `json:"status"`
	CreatedAt   string      `json:"createdAt"`
}

type MatchDraft struct {
	HomeTeamID  string `json:"homeTeamId"  validate:"required"`
	AwayTeamID  string `json:"awayTeamId"  validate:"required,nefield=HomeTeamID"`
	ScheduledAt string `json:"scheduledAt" validate:"required"`
	Location    string `json:"location"`
}
