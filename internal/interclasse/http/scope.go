package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/pkg/httpx"
	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
	"github.com/projetointerclasse/interclasse/pkg/jwtx"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

const (
	// DefaultSessionTokenTTL bounds how long a tab scope token stays valid.
	// The cookie itself has no Max-Age and dies with the browser session.
	DefaultSessionTokenTTL = 12 * time.Hour

	// DeviceTTL is the lifetime of the remembered-device cookie.
	DeviceTTL = 30 * 24 * time.Hour
)

// Scope is the per-browser state resolved from the scope cookies.
type Scope struct {
	SessionID string
	DeviceID  string

	// Session holds the tab-lifetime keys (currentUser, registrationDraft).
	Session store.KV
	Holder  *service.SessionHolder
}

type scopeKey struct{}
type userKey struct{}

// ScopeFromContext returns the scope attached by ScopeMiddleware.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok
}

// SessionFromContext returns the session attached by RequireRole.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(userKey{}).(domain.Session)
	return s, ok
}

// ScopeCookies resolves the session and device cookies into a Scope. Missing
// or invalid cookies are replaced by fresh scope ids.
type ScopeCookies struct {
	Signer   *jwtx.ScopeSigner
	Sessions store.KV
	Durable  store.KV

	SessionTTL time.Duration
	Secure     bool
}

func (c *ScopeCookies) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := c.resolve(w, r, interclassesdk.SessionCookie, jwtx.KindSession)
		if err != nil {
			writeServerError(w, r, "failed to issue session cookie", err)
			return
		}
		deviceID, err := c.resolve(w, r, interclassesdk.DeviceCookie, jwtx.KindDevice)
		if err != nil {
			writeServerError(w, r, "failed to issue device cookie", err)
			return
		}

		sessionKV := store.Scoped(c.Sessions, store.SessionPrefix(sessionID))
		sc := &Scope{
			SessionID: sessionID,
			DeviceID:  deviceID,
			Session:   sessionKV,
			Holder: &service.SessionHolder{
				Session: sessionKV,
				Durable: store.Scoped(c.Durable, store.DevicePrefix(deviceID)),
			},
		}

		ctx := context.WithValue(r.Context(), scopeKey{}, sc)
		ctx = slogx.With(ctx, slog.String("session_scope", sessionID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolve returns the scope id carried by the named cookie, issuing a new
// cookie when it is absent or does not verify.
func (c *ScopeCookies) resolve(w http.ResponseWriter, r *http.Request, name string, kind jwtx.Kind) (string, error) {
	if ck, err := r.Cookie(name); err == nil {
		id, err := c.Signer.Verify(ck.Value, kind)
		if err == nil {
			return id, nil
		}
		slogx.FromContext(r.Context()).Debug("replacing scope cookie",
			slog.String("cookie", name),
			slog.Any("err", err),
		)
	}

	ttl := c.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTokenTTL
	}
	maxAge := 0
	if kind == jwtx.KindDevice {
		ttl = DeviceTTL
		maxAge = int(DeviceTTL.Seconds())
	}

	id := uuid.NewString()
	token, err := c.Signer.Sign(kind, id, ttl)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// RequireRole rejects requests whose session does not cover required. A
// remembered session is restored first, as a page load would.
func RequireRole(required domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sc, ok := ScopeFromContext(ctx)
			if !ok {
				writeServerError(w, r, "scope middleware missing", errors.New("no scope in context"))
				return
			}

			sess, loggedIn, err := sc.Holder.Restore(ctx)
			if err != nil {
				writeServerError(w, r, "failed to read session", err)
				return
			}
			if !loggedIn {
				httpx.WriteError(w, http.StatusUnauthorized, interclassesdk.ErrorCodeLoginRequired, "Faça login para continuar.")
				return
			}
			if !sc.Holder.HasRole(ctx, required) {
				slogx.FromContext(ctx).Info("role check failed",
					slog.String("user_id", sess.ID),
					slog.String("role", string(sess.Role)),
					slog.String("required", string(required)),
				)
				httpx.WriteError(w, http.StatusForbidden, interclassesdk.ErrorCodeInsufficientRole,
					"Requer a função "+required.Label()+".")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userKey{}, sess)))
		})
	}
}

// scopeOf is used by handlers mounted behind ScopeCookies.Middleware.
func scopeOf(r *http.Request) *Scope {
	sc, ok := ScopeFromContext(r.Context())
	if !ok {
		panic("http: handler mounted without scope middleware")
	}
	return sc
}
