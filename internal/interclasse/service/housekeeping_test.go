package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store/drivers/memory"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeeping_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	sessions := memory.New(memory.WithTTL(time.Minute), memory.WithClock(func() time.Time { return now }))

	require.NoError(t, sessions.Set(ctx, store.SessionPrefix("a")+store.KeyCurrentUser, "{}"))
	require.NoError(t, sessions.Set(ctx, store.SessionPrefix("b")+store.KeyCurrentUser, "{}"))

	// Scoped views do not expose Expirer and are skipped.
	hk := service.NewHousekeepingService(slogx.Discard(), time.Hour, sessions, store.Scoped(sessions, "x"))
	require.Len(t, hk.Stores, 1)

	require.Zero(t, hk.Sweep(ctx))

	now = now.Add(2 * time.Minute)
	require.EqualValues(t, 2, hk.Sweep(ctx))
}

func TestHousekeeping_StartStop(t *testing.T) {
	hk := service.NewHousekeepingService(slogx.Discard(), 0, memory.New())
	require.Equal(t, 10*time.Minute, hk.Interval)

	hk.Start()
	hk.Stop()
}
