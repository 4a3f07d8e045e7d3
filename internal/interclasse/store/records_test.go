package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store/drivers/memory"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store/drivers/sqlite"
	"github.com/projetointerclasse/interclasse/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newRecords(t *testing.T) (*store.Records, store.KV) {
	t.Helper()

	kv, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, kv.ApplyMigrations())
	t.Cleanup(func() { _ = kv.Close() })

	return store.NewRecords(kv, cryptox.PasswordHasher{Pepper: "test"}), kv
}

func ana() domain.UserDraft {
	return domain.UserDraft{
		Email:    "a@b.com",
		Password: "secret1",
		Name:     "Ana Silva",
		DOB:      "2010-05-01",
		Role:     domain.RolePlayer,
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	r, _ := newRecords(t)
	r.Now = func() time.Time { return time.Date(2025, 4, 2, 10, 30, 0, 123e6, time.UTC) }

	u, err := r.CreateUser(ctx, ana())
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "a@b.com", u.Email)
	require.Equal(t, "2025-04-02T10:30:00.123Z", u.CreatedAt)
	require.True(t, u.IsActive)
	require.False(t, u.HasPhoto)
	require.NotEqual(t, "secret1", u.Password)
	require.True(t, strings.HasPrefix(u.Password, "$argon2id$"))

	_, ok, err := r.UserPhoto(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCreateUser_WithPhoto(t *testing.T) {
	ctx := context.Background()
	r, _ := newRecords(t)

	d := ana()
	d.PhotoData = "data:image/jpeg;base64,AAAA"

	u, err := r.CreateUser(ctx, d)
	require.NoError(t, err)
	require.True(t, u.HasPhoto)

	photo, ok, err := r.UserPhoto(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, d.PhotoData, photo)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	r, _ := newRecords(t)

	_, err := r.CreateUser(ctx, ana())
	require.NoError(t, err)

	_, err = r.CreateUser(ctx, ana())
	require.ErrorIs(t, err, store.ErrDuplicateEmail)

	// Email matching is exact and case sensitive.
	d := ana()
	d.Email = "A@b.com"
	_, err = r.CreateUser(ctx, d)
	require.NoError(t, err)

	users, err := r.Users(ctx)
	require.NoError(t, err)

	var n int
	for _, u := range users {
		if u.Email == "a@b.com" {
			n++
		}
	}
	require.Equal(t, 1, n)
}

func TestCreateUser_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	r := store.NewRecords(memory.New(), cryptox.PasswordHasher{})

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		dups int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.CreateUser(ctx, ana())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				oks++
			case errors.Is(err, store.ErrDuplicateEmail):
				dups++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, oks)
	require.Equal(t, 7, dups)
}

func TestCreateUser_DuplicatesAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	// Separate Records share nothing but the backend, like two replicas.
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		dups int
	)
	for range 6 {
		r := store.NewRecords(kv, cryptox.PasswordHasher{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.CreateUser(ctx, ana())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				oks++
			case errors.Is(err, store.ErrDuplicateEmail):
				dups++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, oks)
	require.Equal(t, 5, dups)

	users, err := store.NewRecords(kv, cryptox.PasswordHasher{}).Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestCreateUser_LateDuplicateRejectedInsideUpdate(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	r := store.NewRecords(racingKV{KV: kv, before: func() {
		// Another replica commits the same email between the
		// pre-check and the update.
		other := store.NewRecords(kv, cryptox.PasswordHasher{})
		_, err := other.CreateUser(ctx, ana())
		require.NoError(t, err)
	}}, cryptox.PasswordHasher{})

	_, err := r.CreateUser(ctx, ana())
	require.ErrorIs(t, err, store.ErrDuplicateEmail)

	users, err := r.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

// racingKV runs before once, ahead of the first Update.
type racingKV struct {
	store.KV
	before func()
}

func (k racingKV) Update(ctx context.Context, keys []string, fn store.UpdateFunc) error {
	if k.before != nil {
		k.before()
	}
	return k.KV.Update(ctx, keys, fn)
}

func TestCreateTeam_ConcurrentAppendsKeepEveryTeam(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	var wg sync.WaitGroup
	for i := range 10 {
		r := store.NewRecords(kv, cryptox.PasswordHasher{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.CreateTeam(ctx, domain.TeamDraft{Name: fmt.Sprintf("Time %d", i), ClassName: "1A"})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	teams, err := store.NewRecords(kv, cryptox.PasswordHasher{}).Teams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 10)
}

func TestUsers_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r, kv := newRecords(t)

	for _, email := range []string{"a@b.com", "c@d.com", "e@f.org"} {
		d := ana()
		d.Email = email
		_, err := r.CreateUser(ctx, d)
		require.NoError(t, err)
	}

	first, err := r.Users(ctx)
	require.NoError(t, err)
	second, err := r.Users(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Persisted shape uses the documented field names.
	raw, err := kv.Get(ctx, store.KeyUsers)
	require.NoError(t, err)

	var generic []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &generic))
	require.Len(t, generic, 3)
	for _, field := range []string{"id", "email", "password", "name", "dob", "role", "createdAt", "isActive", "hasPhoto"} {
		require.Contains(t, generic[0], field)
	}
	require.Equal(t, "jogador", generic[0]["role"])
}

func TestFindUserByEmail_ActiveOnly(t *testing.T) {
	ctx := context.Background()
	r, kv := newRecords(t)

	inactive := domain.User{ID: "x", Email: "gone@b.com", IsActive: false}
	require.NoError(t, store.PutJSON(ctx, kv, store.KeyUsers, []domain.User{inactive}))

	_, err := r.FindUserByEmail(ctx, "gone@b.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = r.CreateUser(ctx, ana())
	require.NoError(t, err)

	u, err := r.FindUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "Ana Silva", u.Name)
}

func TestValidateLogin(t *testing.T) {
	ctx := context.Background()
	r, _ := newRecords(t)

	created, err := r.CreateUser(ctx, ana())
	require.NoError(t, err)

	u, err := r.ValidateLogin(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, created, u)

	_, errWrong := r.ValidateLogin(ctx, "a@b.com", "wrong")
	_, errUnknown := r.ValidateLogin(ctx, "nobody@b.com", "secret1")
	require.ErrorIs(t, errWrong, store.ErrNotFound)
	require.ErrorIs(t, errUnknown, store.ErrNotFound)
	require.Equal(t, errWrong, errUnknown)
}

func TestCorruptCollectionReadsEmpty(t *testing.T) {
	ctx := context.Background()
	r, kv := newRecords(t)

	require.NoError(t, kv.Set(ctx, store.KeyUsers, "not json"))

	users, err := r.Users(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	_, err = r.CreateUser(ctx, ana())
	require.NoError(t, err)
}

type failingKV struct {
	store.KV
}

func (failingKV) Update(context.Context, []string, store.UpdateFunc) error {
	return errors.New("quota exceeded")
}

func TestCreateUser_StorageWriteFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	base := memory.New()
	r := store.NewRecords(failingKV{KV: base}, cryptox.PasswordHasher{})

	d := ana()
	d.PhotoData = "data:image/jpeg;base64,AAAA"

	_, err := r.CreateUser(ctx, d)
	require.ErrorIs(t, err, store.ErrStorageWrite)

	keys, err := base.Keys(ctx, "")
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestTeamsAndMatches(t *testing.T) {
	ctx := context.Background()
	r, _ := newRecords(t)

	home, err := r.CreateTeam(ctx, domain.TeamDraft{Name: "Tigres", ClassName: "3A"})
	require.NoError(t, err)
	require.NotNil(t, home.Players)
	require.Empty(t, home.Players)
	require.Zero(t, home.Points)

	away, err := r.CreateTeam(ctx, domain.TeamDraft{Name: "Leões", ClassName: "3B"})
	require.NoError(t, err)

	m, err := r.CreateMatch(ctx, domain.MatchDraft{
		HomeTeamID:  home.ID,
		AwayTeamID:  away.ID,
		ScheduledAt: "2025-05-10T14:00:00.000Z",
		Location:    "Quadra 1",
	})
	require.NoError(t, err)
	require.Equal(t, domain.MatchScheduled, m.Status)
	require.NotEmpty(t, m.CreatedAt)

	teams, err := r.Teams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	matches, err := r.Matches(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Match{m}, matches)

	require.NoError(t, r.Clear(ctx, store.KeyTeams, store.KeyMatches))
	teams, err = r.Teams(ctx)
	require.NoError(t, err)
	require.Empty(t, teams)
}
