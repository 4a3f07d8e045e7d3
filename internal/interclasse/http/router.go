package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/pkg/httpx"
	"github.com/projetointerclasse/interclasse/pkg/jwtx"
	"github.com/projetointerclasse/interclasse/pkg/slogx"

	_ "github.com/projetointerclasse/interclasse/api/interclasse" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	scopes       *ScopeCookies
	records      store.KV
	sessions     store.KV
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	RegistrationService *service.RegistrationService
	LoginService        *service.LoginService
	TournamentService   *service.TournamentService
}

// NewRouter wires the scope cookies over the two stores. records holds the
// collections and, unless SetDeviceStore says otherwise, remembered device
// sessions; sessions holds tab-lifetime keys.
func NewRouter(
	signer *jwtx.ScopeSigner,
	records, sessions store.KV,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux: http.NewServeMux(),
		scopes: &ScopeCookies{
			Signer:   signer,
			Sessions: sessions,
			Durable:  records,
		},
		records:      records,
		sessions:     sessions,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	// Set default middleware chain. Metrics sits inside the logger so both
	// see the request the mux stamps with its pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Metrics,
	}

	return r
}

// SetCookiePolicy configures scope token lifetime and the Secure flag.
func (r *Router) SetCookiePolicy(sessionTTL time.Duration, secure bool) {
	r.scopes.SessionTTL = sessionTTL
	r.scopes.Secure = secure
}

// SetDeviceStore moves remembered device sessions to kv, typically a handle
// on the record backend whose writes expire after DeviceTTL.
func (r *Router) SetDeviceStore(kv store.KV) {
	r.scopes.Durable = kv
}

func (r *Router) ApplyRoutes() {
	r.registerRegistration()
	r.registerSession()
	r.registerTournament()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Interclasse API
//	@version		0.1.0
//	@description	Registration, login and tournament records for the school interclass games.
//	@description
//	@description	Browsers are identified by two signed cookies: interclasse_session (tab lifetime)
//	@description	and interclasse_device (30 days, remembers the login).
//
//	@contact.name	Projeto Interclasse
//	@contact.url	https://github.com/projetointerclasse/interclasse
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerRegistration() {
	h := &RegistrationHandler{RegistrationService: r.RegistrationService}

	steps := httpx.LimitFromEnv("REGISTRATION", httpx.ModerateLimit)
	finish := httpx.LimitFromEnv("REGISTRATION_FINISH", httpx.StrictLimit)

	scoped := func(fn http.HandlerFunc, l httpx.Limit) http.Handler {
		return httpx.Chain(fn,
			httpx.RateLimitByIP(l),
			r.scopes.Middleware,
		)
	}

	r.Mux.Handle("GET /v1/registration", scoped(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/registration/credentials", scoped(h.HandleCredentials, steps))
	r.Mux.Handle("POST /v1/registration/confirmation", scoped(h.HandleConfirmation, steps))
	r.Mux.Handle("POST /v1/registration/profile", scoped(h.HandleProfile, steps))
	r.Mux.Handle("POST /v1/registration/photo", scoped(h.HandlePhotoUpload, steps))
	r.Mux.Handle("DELETE /v1/registration/photo", scoped(h.HandlePhotoDelete, steps))
	r.Mux.Handle("POST /v1/registration/back", scoped(h.HandleBack, steps))

	// Account creation hashes a password; keep it strict.
	r.Mux.Handle("POST /v1/registration/finish", scoped(h.HandleFinish, finish))
}

func (r *Router) registerSession() {
	h := &SessionHandler{LoginService: r.LoginService}

	// POST /login - strict, by IP + email to slow down guessing
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndField(httpx.LimitFromEnv("LOGIN", httpx.StrictLimit), "email"),
			r.scopes.Middleware,
		),
	)

	lenient := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RateLimitByIP(httpx.LenientLimit),
			r.scopes.Middleware,
		)
	}
	r.Mux.Handle("POST /v1/logout", lenient(h.HandleLogout))
	r.Mux.Handle("GET /v1/session", lenient(h.HandleCurrent))
	r.Mux.Handle("GET /v1/session/permissions/{role}", lenient(h.HandlePermission))
}

func (r *Router) registerTournament() {
	h := &TournamentHandler{TournamentService: r.TournamentService}

	writes := httpx.LimitFromEnv("TOURNAMENT", httpx.ModerateLimit)

	r.Mux.Handle("POST /v1/teams",
		httpx.Chain(http.HandlerFunc(h.HandleCreateTeam),
			httpx.RateLimitByIP(writes),
			r.scopes.Middleware,
			RequireRole(domain.RoleCaptain),
		),
	)
	r.Mux.Handle("POST /v1/matches",
		httpx.Chain(http.HandlerFunc(h.HandleCreateMatch),
			httpx.RateLimitByIP(writes),
			r.scopes.Middleware,
			RequireRole(domain.RoleReferee),
		),
	)

	// Public reads
	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.PublicLimit))
	}
	r.Mux.Handle("GET /v1/teams", public(h.HandleListTeams))
	r.Mux.Handle("GET /v1/matches", public(h.HandleListMatches))
	r.Mux.Handle("GET /v1/leaderboard", public(h.HandleLeaderboard))
	r.Mux.Handle("GET /v1/top-scorers", public(h.HandleTopScorers))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.records, r.sessions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
