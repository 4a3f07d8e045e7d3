package service

import (
	"context"
	"log/slog"

	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

// Status counts the records in each collection.
type Status struct {
	Users   int `json:"users"`
	Teams   int `json:"teams"`
	Matches int `json:"matches"`
	Photos  int `json:"photos"`
}

// ResetService wipes collections. Durable holds remembered sessions; Sessions,
// when set, holds tab sessions and registration drafts.
type ResetService struct {
	Records  *store.Records
	Durable  store.KV
	Sessions store.KV
}

// ClearAll removes every collection and every stored session.
func (s *ResetService) ClearAll(ctx context.Context) error {
	log := slogx.FromContext(ctx)

	if err := s.Records.Clear(ctx, store.KeyUsers, store.KeyTeams, store.KeyMatches, store.KeyPhotos); err != nil {
		return err
	}

	n, err := deletePrefix(ctx, s.Durable, "device:")
	if err != nil {
		return err
	}
	if s.Sessions != nil {
		m, err := deletePrefix(ctx, s.Sessions, "session:")
		if err != nil {
			return err
		}
		n += m
	}

	log.Warn("all data cleared", slog.Int("sessions_removed", n))
	return nil
}

// ClearUsers removes users and their photos.
func (s *ResetService) ClearUsers(ctx context.Context) error {
	return s.clear(ctx, "users", store.KeyUsers, store.KeyPhotos)
}

func (s *ResetService) ClearTeams(ctx context.Context) error {
	return s.clear(ctx, "teams", store.KeyTeams)
}

func (s *ResetService) ClearMatches(ctx context.Context) error {
	return s.clear(ctx, "matches", store.KeyMatches)
}

func (s *ResetService) clear(ctx context.Context, what string, keys ...string) error {
	if err := s.Records.Clear(ctx, keys...); err != nil {
		return err
	}
	slogx.FromContext(ctx).Warn("collection cleared", slog.String("collection", what))
	return nil
}

func (s *ResetService) Status(ctx context.Context) (Status, error) {
	users, err := s.Records.Users(ctx)
	if err != nil {
		return Status{}, err
	}
	teams, err := s.Records.Teams(ctx)
	if err != nil {
		return Status{}, err
	}
	matches, err := s.Records.Matches(ctx)
	if err != nil {
		return Status{}, err
	}
	photos, err := s.Records.Photos(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{Users: len(users), Teams: len(teams), Matches: len(matches), Photos: len(photos)}, nil
}

func deletePrefix(ctx context.Context, kv store.KV, prefix string) (int, error) {
	keys, err := kv.Keys(ctx, prefix)
	if err != nil {
		return 0, err
	}
	if err := kv.Delete(ctx, keys...); err != nil {
		return 0, err
	}
	return len(keys), nil
}
