package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

// GuestName is shown when nobody is logged in.
const GuestName = "Visitante"

// SessionHolder manages the currentUser snapshot for one browser. Session is
// the tab-lifetime scope; Durable is the remembered-device scope.
type SessionHolder struct {
	Session store.KV
	Durable store.KV
}

// Current reads the session scope only.
func (h *SessionHolder) Current(ctx context.Context) (domain.Session, bool, error) {
	return readSession(ctx, h.Session)
}

// Restore reads the session scope, then falls back to the remembered copy,
// copying it back into the session scope.
func (h *SessionHolder) Restore(ctx context.Context) (domain.Session, bool, error) {
	s, ok, err := h.Current(ctx)
	if err != nil || ok {
		return s, ok, err
	}

	s, ok, err = readSession(ctx, h.Durable)
	if err != nil || !ok {
		return domain.Session{}, false, err
	}
	if err := store.PutJSON(ctx, h.Session, store.KeyCurrentUser, s); err != nil {
		return domain.Session{}, false, err
	}
	slogx.FromContext(ctx).Debug("session restored from device", slog.String("user_id", s.ID))
	return s, true, nil
}

// Save writes s to both scopes.
func (h *SessionHolder) Save(ctx context.Context, s domain.Session) error {
	if err := store.PutJSON(ctx, h.Session, store.KeyCurrentUser, s); err != nil {
		return err
	}
	return store.PutJSON(ctx, h.Durable, store.KeyCurrentUser, s)
}

// HasRole reports whether the current session's role ranks at least required.
// Logged-out sessions, unknown roles and read failures all yield false.
func (h *SessionHolder) HasRole(ctx context.Context, required domain.Role) bool {
	s, ok, err := h.Current(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to read session for role check", slog.Any("err", err))
		return false
	}
	return ok && s.Role.Covers(required)
}

// Clear removes the session-scoped copy only. A later Restore brings the
// session back from the device scope.
func (h *SessionHolder) Clear(ctx context.Context) error {
	return h.Session.Delete(ctx, store.KeyCurrentUser)
}

// Forget removes both copies.
func (h *SessionHolder) Forget(ctx context.Context) error {
	if err := h.Session.Delete(ctx, store.KeyCurrentUser); err != nil {
		return err
	}
	return h.Durable.Delete(ctx, store.KeyCurrentUser)
}

// DisplayName is the logged-in user's name or GuestName.
func (h *SessionHolder) DisplayName(ctx context.Context) string {
	s, ok, err := h.Current(ctx)
	if err != nil || !ok {
		return GuestName
	}
	return s.Name
}

// readSession treats an unreadable snapshot as absent.
func readSession(ctx context.Context, kv store.KV) (domain.Session, bool, error) {
	var s domain.Session
	ok, err := store.GetJSON(ctx, kv, store.KeyCurrentUser, &s)
	if errors.Is(err, store.ErrCorrupt) {
		slogx.FromContext(ctx).Warn("discarding unreadable session", slog.Any("err", err))
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	return s, ok, nil
}
