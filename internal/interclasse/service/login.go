package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

// DefaultLoginDelay paces every credential check.
const DefaultLoginDelay = time.Second

type LoginService struct {
	Records *store.Records
	Delay   time.Duration
}

// Login authenticates email and password and stores the session snapshot in
// both scopes of h. An existing session short-circuits with ErrAlreadyLoggedIn
// and is returned alongside the error.
func (s *LoginService) Login(ctx context.Context, h *SessionHolder, email, password string) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Already logged in?
	existing, ok, err := h.Restore(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if ok {
		loginAttempts.WithLabelValues("already_logged_in").Inc()
		return existing, ErrAlreadyLoggedIn
	}

	// 2. Local checks, no store access.
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return domain.Session{}, ErrEmailRequired
	case password == "":
		return domain.Session{}, ErrPasswordRequired
	case !ValidEmail(email):
		return domain.Session{}, ErrInvalidEmail
	}

	// 3. Pace the attempt.
	if err := sleep(ctx, s.Delay); err != nil {
		return domain.Session{}, err
	}

	// 4. Verify.
	u, err := s.Records.ValidateLogin(ctx, email, password)
	if errors.Is(err, store.ErrNotFound) {
		loginAttempts.WithLabelValues("invalid_credentials").Inc()
		log.Info("login rejected")
		return domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		loginAttempts.WithLabelValues("error").Inc()
		return domain.Session{}, err
	}

	// 5. Snapshot with the resolved photo.
	photo, _, err := s.Records.UserPhoto(ctx, u.ID)
	if err != nil {
		return domain.Session{}, err
	}
	sess := domain.NewSession(u, photo)
	if err := h.Save(ctx, sess); err != nil {
		return domain.Session{}, err
	}

	loginAttempts.WithLabelValues("success").Inc()
	log.Info("login succeeded", slog.String("user_id", u.ID), slog.String("role", string(u.Role)))
	return sess, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
