package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"path/filepath"
	"testing"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...sqlite.Option) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:", opts...)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Get(ctx, store.KeyUsers)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, store.KeyUsers, `[]`))
	require.NoError(t, s.Set(ctx, store.KeyUsers, `[{"id":"1"}]`))

	v, err := s.Get(ctx, store.KeyUsers)
	require.NoError(t, err)
	require.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, s.Delete(ctx, store.KeyUsers))
	_, err = s.Get(ctx, store.KeyUsers)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_SetMultiAndKeys(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.SetMulti(ctx, map[string]string{
		"device:abc:currentUser": "{}",
		"device:abd:currentUser": "{}",
		"Device:abc:currentUser": "{}",
		"interclasse_users":      "[]",
	}))

	keys, err := s.Keys(ctx, "device:")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"device:abc:currentUser", "device:abd:currentUser"}, keys)

	keys, err = s.Keys(ctx, "")
	require.NoError(t, err)
	require.Len(t, keys, 4)
}

func TestStore_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newStore(t, sqlite.WithTTL(time.Minute), sqlite.WithClock(func() time.Time { return now }))

	require.NoError(t, s.Set(ctx, "session:1:currentUser", "{}"))

	now = now.Add(2 * time.Minute)
	_, err := s.Get(ctx, "session:1:currentUser")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "interclasse.db")

	s, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = sqlite.NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.ApplyMigrations())

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
}

func TestStore_UpdateAcrossHandles(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.Join(t.TempDir(), "shared.db"))

	// Two handles on one file stand in for two server processes.
	var handles []*sqlite.Store
	for range 2 {
		s, err := sqlite.NewStore(dsn)
		require.NoError(t, err)
		require.NoError(t, s.ApplyMigrations())
		t.Cleanup(func() { _ = s.Close() })
		handles = append(handles, s)
	}

	var wg sync.WaitGroup
	for i := range 20 {
		s := handles[i%2]
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(ctx, []string{"n"}, func(cur map[string]string) (map[string]string, error) {
				n, _ := strconv.Atoi(cur["n"])
				return map[string]string{"n": strconv.Itoa(n + 1)}, nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := handles[0].Get(ctx, "n")
	require.NoError(t, err)
	require.Equal(t, "20", v)
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.Set(ctx, "a", "1"))

	boom := errors.New("boom")
	err := s.Update(ctx, []string{"a", "b"}, func(cur map[string]string) (map[string]string, error) {
		require.Equal(t, map[string]string{"a": "1"}, cur)
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	// The connection is usable again after the rollback.
	require.NoError(t, s.Update(ctx, []string{"a", "b"}, func(cur map[string]string) (map[string]string, error) {
		return map[string]string{"a": "2", "b": "x"}, nil
	}))
	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "2", v)
}
