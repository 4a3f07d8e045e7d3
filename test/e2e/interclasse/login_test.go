//go:build e2e

package interclasse_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()
	baseURL := setupContainer(t, withEnv(relaxedLimits))
	ctx := context.Background()
	registerUser(t, baseURL, "ana@escola.com", "Ana", "capitao")

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		c := interclassesdk.NewClient(baseURL)

		_, err := c.Login(ctx, "ana@escola.com", "errada")
		wrong := requireAPIError(t, err, http.StatusUnauthorized, interclassesdk.ErrorCodeInvalidCredentials)

		_, err = c.Login(ctx, "ninguem@escola.com", password)
		unknown := requireAPIError(t, err, http.StatusUnauthorized, interclassesdk.ErrorCodeInvalidCredentials)

		require.Equal(t, wrong.Description, unknown.Description)
	})

	t.Run("remembered across tabs", func(t *testing.T) {
		c := loggedIn(t, baseURL, "ana@escola.com")

		require.NoError(t, c.ForgetTab())
		s, err := c.GetSession(ctx)
		require.NoError(t, err)
		require.True(t, s.LoggedIn)
		require.Equal(t, "Ana", s.DisplayName)

		_, err = c.Login(ctx, "ana@escola.com", password)
		requireAPIError(t, err, http.StatusConflict, interclassesdk.ErrorCodeAlreadyLoggedIn)
	})

	t.Run("logout forgets the device", func(t *testing.T) {
		c := loggedIn(t, baseURL, "ana@escola.com")

		require.NoError(t, c.Logout(ctx, false))
		require.NoError(t, c.ForgetTab())

		s, err := c.GetSession(ctx)
		require.NoError(t, err)
		require.False(t, s.LoggedIn)
		require.Equal(t, "Visitante", s.DisplayName)
	})

	t.Run("other devices are unaffected", func(t *testing.T) {
		a := loggedIn(t, baseURL, "ana@escola.com")
		b := interclassesdk.NewClient(baseURL)

		s, err := b.GetSession(ctx)
		require.NoError(t, err)
		require.False(t, s.LoggedIn)

		ok, err := a.HasPermission(ctx, "capitao")
		require.NoError(t, err)
		require.True(t, ok)
	})
}
