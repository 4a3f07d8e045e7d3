package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
)

const msgTeamNotFound = "Equipe não encontrada"

// TournamentService manages teams and matches. Role checks happen at the
// transport layer.
type TournamentService struct {
	Records *store.Records
}

func (s *TournamentService) CreateTeam(ctx context.Context, d domain.TeamDraft) (domain.Team, error) {
	if err := structFieldErrors(d); err != nil {
		return domain.Team{}, err
	}
	return s.Records.CreateTeam(ctx, d)
}

// CreateMatch schedules a match between two existing teams.
func (s *TournamentService) CreateMatch(ctx context.Context, d domain.MatchDraft) (domain.Match, error) {
	if err := structFieldErrors(d); err != nil {
		return domain.Match{}, err
	}

	teams, err := s.Records.Teams(ctx)
	if err != nil {
		return domain.Match{}, err
	}
	fe := FieldErrors{}
	if !hasTeam(teams, d.HomeTeamID) {
		fe["homeTeamId"] = msgTeamNotFound
	}
	if !hasTeam(teams, d.AwayTeamID) {
		fe["awayTeamId"] = msgTeamNotFound
	}
	if err := fe.orNil(); err != nil {
		return domain.Match{}, err
	}

	return s.Records.CreateMatch(ctx, d)
}

func (s *TournamentService) Teams(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.Records.Teams(ctx)
	return nonNil(teams), err
}

func (s *TournamentService) Matches(ctx context.Context) ([]domain.Match, error) {
	matches, err := s.Records.Matches(ctx)
	return nonNil(matches), err
}

// Leaderboard orders teams by points, then goal difference, both descending.
// Ties keep insertion order.
func (s *TournamentService) Leaderboard(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.Teams(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(teams, func(a, b domain.Team) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(b.GoalDifference(), a.GoalDifference())
	})
	return teams, nil
}

// TopScorers lists every player with at least one goal, most goals first.
func (s *TournamentService) TopScorers(ctx context.Context) ([]domain.Scorer, error) {
	teams, err := s.Records.Teams(ctx)
	if err != nil {
		return nil, err
	}

	scorers := []domain.Scorer{}
	for _, t := range teams {
		for _, p := range t.Players {
			if p.Goals > 0 {
				scorers = append(scorers, domain.Scorer{Player: p, TeamName: t.Name})
			}
		}
	}
	slices.SortStableFunc(scorers, func(a, b domain.Scorer) int {
		return cmp.Compare(b.Goals, a.Goals)
	})
	return scorers, nil
}

func hasTeam(teams []domain.Team, id string) bool {
	return slices.ContainsFunc(teams, func(t domain.Team) bool { return t.ID == id })
}

// nonNil keeps empty collections encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
