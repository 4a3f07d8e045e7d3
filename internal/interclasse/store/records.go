package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/pkg/cryptox"
	"github.com/projetointerclasse/interclasse/pkg/idx"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

// Records owns the users, teams, matches and photos collections. Each
// collection is a single JSON value in KV; every operation re-reads it, and
// read-modify-write cycles go through KV.Update so concurrent writers, in
// this process or in others sharing the backend, cannot overwrite each other.
type Records struct {
	KV     KV
	Hasher cryptox.PasswordHasher

	// IDs defaults to the idx package generator.
	IDs *idx.Generator
	// Now defaults to time.Now.
	Now func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewRecords(kv KV, hasher cryptox.PasswordHasher) *Records {
	return &Records{KV: kv, Hasher: hasher}
}

func (r *Records) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Records) newID(t time.Time) string {
	if r.IDs != nil {
		return r.IDs.NewAt(t).String()
	}
	return idx.NewAt(t).String()
}

// load reads key into a fresh T. Missing keys yield the zero value; corrupt
// values are logged and also yield the zero value.
func load[T any](ctx context.Context, kv KV, key string) (T, error) {
	var v T
	_, err := GetJSON(ctx, kv, key, &v)
	if errors.Is(err, ErrCorrupt) {
		discardCorrupt(ctx, key, err)
		var zero T
		return zero, nil
	}
	return v, err
}

// parse is load for a value already read inside an Update.
func parse[T any](ctx context.Context, current map[string]string, key string) T {
	var v T
	raw, ok := current[key]
	if !ok {
		return v
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		discardCorrupt(ctx, key, err)
		var zero T
		return zero
	}
	return v
}

func discardCorrupt(ctx context.Context, key string, err error) {
	slogx.FromContext(ctx).Warn("discarding corrupt collection",
		slog.String("key", key),
		slog.Any("err", err),
	)
}

func encode(key string, v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: encode %s: %w", ErrStorageWrite, key, err)
	}
	return string(raw), nil
}

// update runs fn through KV.Update. Errors raised by fn come back unchanged;
// backend failures are reported as ErrStorageWrite.
func (r *Records) update(ctx context.Context, keys []string, fn UpdateFunc) error {
	var fnErr error
	err := r.KV.Update(ctx, keys, func(current map[string]string) (map[string]string, error) {
		next, err := fn(current)
		fnErr = err
		return next, err
	})
	switch {
	case err == nil:
		return nil
	case fnErr != nil:
		return fnErr
	default:
		slogx.FromContext(ctx).Error("failed to persist collections", slog.Any("err", err))
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
}

func hasEmail(users []domain.User, email string) bool {
	for _, u := range users {
		if u.Email == email {
			return true
		}
	}
	return false
}

// CreateUser persists a new active user. The duplicate check, the user list
// and, when a photo is supplied, the photo map are one atomic update.
func (r *Records) CreateUser(ctx context.Context, d domain.UserDraft) (domain.User, error) {
	// 1. Cheap early rejection; the authoritative check runs inside the update.
	users, err := r.Users(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if hasEmail(users, d.Email) {
		return domain.User{}, ErrDuplicateEmail
	}

	// 2. Build the record.
	hash := d.PasswordHash
	if hash == "" {
		if hash, err = r.Hasher.Hash(d.Password); err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
	}
	now := r.now()
	u := domain.User{
		ID:        r.newID(now),
		Email:     d.Email,
		Password:  hash,
		Name:      d.Name,
		DOB:       d.DOB,
		Role:      d.Role,
		CreatedAt: domain.Timestamp(now),
		IsActive:  true,
		HasPhoto:  d.PhotoData != "",
	}

	// 3. Re-check and stage both collections against the live values.
	err = r.update(ctx, []string{KeyUsers, KeyPhotos}, func(current map[string]string) (map[string]string, error) {
		users := parse[[]domain.User](ctx, current, KeyUsers)
		if hasEmail(users, u.Email) {
			return nil, ErrDuplicateEmail
		}

		entries := make(map[string]string, 2)
		raw, err := encode(KeyUsers, append(users, u))
		if err != nil {
			return nil, err
		}
		entries[KeyUsers] = raw

		if u.HasPhoto {
			photos := parse[map[string]string](ctx, current, KeyPhotos)
			if photos == nil {
				photos = make(map[string]string, 1)
			}
			photos[u.ID] = d.PhotoData
			if entries[KeyPhotos], err = encode(KeyPhotos, photos); err != nil {
				return nil, err
			}
		}
		return entries, nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created",
		slog.String("user_id", u.ID),
		slog.String("role", string(u.Role)),
		slog.Bool("has_photo", u.HasPhoto),
	)
	return u, nil
}

// FindUserByEmail matches email exactly against active users only.
func (r *Records) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	users, err := r.Users(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.Email == email && u.IsActive {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

// ValidateLogin returns the active user whose password matches, or ErrNotFound.
// Unknown emails still pay for one hash verification.
func (r *Records) ValidateLogin(ctx context.Context, email, password string) (domain.User, error) {
	u, err := r.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		_ = r.Hasher.Verify(password, r.dummy())
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := r.Hasher.Verify(password, u.Password); err != nil {
		if errors.Is(err, cryptox.ErrInvalidHash) {
			slogx.FromContext(ctx).Warn("stored password hash is malformed", slog.String("user_id", u.ID))
		}
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

func (r *Records) dummy() string {
	r.dummyOnce.Do(func() {
		r.dummyHash = r.Hasher.MustHash("interclasse-timing-equaliser")
	})
	return r.dummyHash
}

// UserPhoto returns the data URL stored for a user, if any.
func (r *Records) UserPhoto(ctx context.Context, userID string) (string, bool, error) {
	photos, err := r.Photos(ctx)
	if err != nil {
		return "", false, err
	}
	p, ok := photos[userID]
	return p, ok, nil
}

func (r *Records) Users(ctx context.Context) ([]domain.User, error) {
	return load[[]domain.User](ctx, r.KV, KeyUsers)
}

func (r *Records) Photos(ctx context.Context) (map[string]string, error) {
	return load[map[string]string](ctx, r.KV, KeyPhotos)
}

func (r *Records) Teams(ctx context.Context) ([]domain.Team, error) {
	return load[[]domain.Team](ctx, r.KV, KeyTeams)
}

func (r *Records) Matches(ctx context.Context) ([]domain.Match, error) {
	return load[[]domain.Match](ctx, r.KV, KeyMatches)
}

// CreateTeam appends a team with no players and zeroed standings.
func (r *Records) CreateTeam(ctx context.Context, d domain.TeamDraft) (domain.Team, error) {
	t := domain.Team{
		ID:        r.newID(r.now()),
		Name:      d.Name,
		ClassName: d.ClassName,
		CaptainID: d.CaptainID,
		Players:   []domain.Player{},
	}

	err := r.update(ctx, []string{KeyTeams}, func(current map[string]string) (map[string]string, error) {
		teams := parse[[]domain.Team](ctx, current, KeyTeams)
		raw, err := encode(KeyTeams, append(teams, t))
		if err != nil {
			return nil, err
		}
		return map[string]string{KeyTeams: raw}, nil
	})
	if err != nil {
		return domain.Team{}, err
	}
	return t, nil
}

// CreateMatch appends a match in the scheduled state.
func (r *Records) CreateMatch(ctx context.Context, d domain.MatchDraft) (domain.Match, error) {
	now := r.now()
	m := domain.Match{
		ID:          r.newID(now),
		HomeTeamID:  d.HomeTeamID,
		AwayTeamID:  d.AwayTeamID,
		ScheduledAt: d.ScheduledAt,
		Location:    d.Location,
		Status:      domain.MatchScheduled,
		CreatedAt:   domain.Timestamp(now),
	}

	err := r.update(ctx, []string{KeyMatches}, func(current map[string]string) (map[string]string, error) {
		matches := parse[[]domain.Match](ctx, current, KeyMatches)
		raw, err := encode(KeyMatches, append(matches, m))
		if err != nil {
			return nil, err
		}
		return map[string]string{KeyMatches: raw}, nil
	})
	if err != nil {
		return domain.Match{}, err
	}
	return m, nil
}

// Clear deletes whole collections.
func (r *Records) Clear(ctx context.Context, keys ...string) error {
	if err := r.KV.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}
