package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/pkg/imagex"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

// RegistrationService keeps a Wizard per browser session, stored as JSON under
// registrationDraft in the session scope.
type RegistrationService struct {
	Users UserCreator

	// Now and Hasher are handed to every loaded Wizard.
	Now    func() time.Time
	Hasher PasswordHasher
}

// Summary is what a finished registration reports back.
type Summary struct {
	User      domain.User
	RoleLabel string
}

// Load returns the stored wizard or a fresh one.
func (s *RegistrationService) Load(ctx context.Context, scope store.KV) (*Wizard, error) {
	w := NewWizard()
	ok, err := store.GetJSON(ctx, scope, store.KeyRegistrationDraft, w)
	if errors.Is(err, store.ErrCorrupt) {
		slogx.FromContext(ctx).Warn("discarding unreadable registration draft", slog.Any("err", err))
		w, ok, err = NewWizard(), false, nil
	}
	if err != nil {
		return nil, err
	}
	if !ok || w.Step < StepCredentials || w.Step > StepProfile {
		w = NewWizard()
	}
	w.Now = s.Now
	w.Hasher = s.Hasher
	return w, nil
}

// Reset discards the stored wizard.
func (s *RegistrationService) Reset(ctx context.Context, scope store.KV) error {
	return scope.Delete(ctx, store.KeyRegistrationDraft)
}

// Apply loads the wizard, runs fn and stores the result. The wizard is stored
// even when fn returns an error, since failed steps still keep their valid fields.
func (s *RegistrationService) Apply(ctx context.Context, scope store.KV, fn func(*Wizard) error) (*Wizard, error) {
	w, err := s.Load(ctx, scope)
	if err != nil {
		return nil, err
	}

	stepErr := fn(w)
	if err := store.PutJSON(ctx, scope, store.KeyRegistrationDraft, w); err != nil {
		return nil, err
	}
	return w, stepErr
}

// AttachPhoto normalises and stores a photo on the session's wizard.
func (s *RegistrationService) AttachPhoto(ctx context.Context, scope store.KV, f imagex.File) (*Wizard, imagex.Normalized, error) {
	var img imagex.Normalized
	w, err := s.Apply(ctx, scope, func(w *Wizard) error {
		var err error
		img, err = w.AttachPhoto(ctx, f)
		return err
	})

	switch {
	case err == nil:
		photosNormalized.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrStepOutOfOrder):
	default:
		photosNormalized.WithLabelValues("rejected").Inc()
	}
	return w, img, err
}

// DiscardPhoto drops the session's photo after an upload that was rejected
// before it could be read, so no earlier photo survives a failed selection.
func (s *RegistrationService) DiscardPhoto(ctx context.Context, scope store.KV) error {
	photosNormalized.WithLabelValues("rejected").Inc()
	_, err := s.Apply(ctx, scope, func(w *Wizard) error {
		w.ClearPhoto()
		return nil
	})
	return err
}

// Finish completes the session's wizard. On success the draft is discarded.
func (s *RegistrationService) Finish(ctx context.Context, scope store.KV) (Summary, error) {
	w, err := s.Load(ctx, scope)
	if err != nil {
		return Summary{}, err
	}

	u, err := w.Finish(ctx, s.Users)
	if err != nil {
		registrations.WithLabelValues(outcome(err)).Inc()
		return Summary{}, err
	}

	if err := s.Reset(ctx, scope); err != nil {
		slogx.FromContext(ctx).Warn("failed to discard registration draft", slog.Any("err", err))
	}
	registrations.WithLabelValues("success").Inc()
	return Summary{User: u, RoleLabel: u.Role.Label()}, nil
}

func outcome(err error) string {
	var fe FieldErrors
	switch {
	case errors.As(err, &fe):
		return "invalid"
	case errors.Is(err, store.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrStepOutOfOrder):
		return "out_of_order"
	default:
		return "error"
	}
}
