//go:build e2e

package interclasse_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
	"github.com/stretchr/testify/require"
)

func TestRegistration(t *testing.T) {
	t.Parallel()
	baseURL := setupContainer(t, withEnv(relaxedLimits))
	ctx := context.Background()

	t.Run("complete with photo", func(t *testing.T) {
		c := interclassesdk.NewClient(baseURL)

		_, err := c.SubmitCredentials(ctx, "foto@escola.com", password)
		require.NoError(t, err)
		_, err = c.SubmitConfirmation(ctx, password)
		require.NoError(t, err)
		_, err = c.SubmitProfile(ctx, "Com Foto", adultDOB, "jogador")
		require.NoError(t, err)

		p, err := c.UploadPhoto(ctx, "me.png", "image/png", pngBytes(t, 900, 1200))
		require.NoError(t, err)
		require.Equal(t, 300, p.Width)
		require.Equal(t, 400, p.Height)
		require.False(t, p.AspectWarning)

		sum, err := c.FinishRegistration(ctx)
		require.NoError(t, err)
		require.True(t, sum.HasPhoto)
		require.Equal(t, "Jogador", sum.RoleLabel)

		s, err := loggedIn(t, baseURL, "foto@escola.com").GetSession(ctx)
		require.NoError(t, err)
		require.Contains(t, s.User.PhotoData, "data:image/jpeg;base64,")
	})

	t.Run("draft survives between requests", func(t *testing.T) {
		c := interclassesdk.NewClient(baseURL)

		_, err := c.SubmitCredentials(ctx, "rascunho@escola.com", password)
		require.NoError(t, err)

		w, err := c.GetRegistration(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, w.Step)
		require.Equal(t, "rascunho@escola.com", w.Email)
	})

	t.Run("too young", func(t *testing.T) {
		c := interclassesdk.NewClient(baseURL)
		_, err := c.SubmitCredentials(ctx, "crianca@escola.com", password)
		require.NoError(t, err)
		_, err = c.SubmitConfirmation(ctx, password)
		require.NoError(t, err)

		_, err = c.SubmitProfile(ctx, "Criança", "2024-01-01", "jogador")
		apiErr := requireAPIError(t, err, http.StatusBadRequest, interclassesdk.ErrorCodeValidationFailed)
		require.Equal(t, "Data de nascimento inválida", apiErr.Fields["dob"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		registerUser(t, baseURL, "dup@escola.com", "Primeira", "jogador")

		c := interclassesdk.NewClient(baseURL)
		_, err := c.SubmitCredentials(ctx, "dup@escola.com", password)
		require.NoError(t, err)
		_, err = c.SubmitConfirmation(ctx, password)
		require.NoError(t, err)
		_, err = c.SubmitProfile(ctx, "Segunda", adultDOB, "jogador")
		require.NoError(t, err)

		_, err = c.FinishRegistration(ctx)
		requireAPIError(t, err, http.StatusConflict, interclassesdk.ErrorCodeDuplicateEmail)
	})
}
