package interclassesdk

import (
	"context"
	"net/http"
)

// CreateTeam registers a team captained by the logged-in user. Requires the
// capitao role or higher.
func (c *Client) CreateTeam(ctx context.Context, req TeamRequest) (*Team, error) {
	resp, err := c.postJSON(ctx, "/v1/teams", req)
	if err != nil {
		return nil, err
	}
	var t Team
	if err := decodeJSON(resp, &t, http.StatusCreated); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateMatch schedules a match. Requires the juiz role.
func (c *Client) CreateMatch(ctx context.Context, req MatchRequest) (*Match, error) {
	resp, err := c.postJSON(ctx, "/v1/matches", req)
	if err != nil {
		return nil, err
	}
	var m Match
	if err := decodeJSON(resp, &m, http.StatusCreated); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.getJSON(ctx, "/v1/teams", &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) ListMatches(ctx context.Context) ([]Match, error) {
	var matches []Match
	if err := c.getJSON(ctx, "/v1/matches", &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// Leaderboard returns teams by points, then goal difference.
func (c *Client) Leaderboard(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.getJSON(ctx, "/v1/leaderboard", &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) TopScorers(ctx context.Context) ([]Scorer, error) {
	var scorers []Scorer
	if err := c.getJSON(ctx, "/v1/top-scorers", &scorers); err != nil {
		return nil, err
	}
	return scorers, nil
}
