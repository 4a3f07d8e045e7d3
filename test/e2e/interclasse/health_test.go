//go:build e2e

package interclasse_test

import (
	"context"
	"testing"

	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()
	baseURL := setupContainer(t)
	c := interclassesdk.NewClient(baseURL)

	live, err := c.GetLiveness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.NotEmpty(t, live.Version)

	ready, err := c.GetReadiness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Records)
	require.Equal(t, "ok", ready.Checks.Sessions)
}
