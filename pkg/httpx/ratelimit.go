package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/projetointerclasse/interclasse/pkg/slogx"
	"golang.org/x/time/rate"
)

// Limit is a token-bucket budget: Requests per Window, with Burst tokens up front.
type Limit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// Profiles. Each can be overridden with RATELIMIT_<NAME>_{REQUESTS,WINDOW_SEC,BURST}.
var (
	// StrictLimit guards credential endpoints.
	StrictLimit = Limit{Requests: 5, Window: time.Minute, Burst: 5}
	// ModerateLimit guards writes such as registration steps and record creation.
	ModerateLimit = Limit{Requests: 30, Window: time.Minute, Burst: 30}
	// LenientLimit guards session reads.
	LenientLimit = Limit{Requests: 120, Window: time.Minute, Burst: 120}
	// PublicLimit guards anonymous read-only listings.
	PublicLimit = Limit{Requests: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	StrictLimit = LimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = LimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = LimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = LimitFromEnv("PUBLIC", PublicLimit)
}

// LimitFromEnv overlays RATELIMIT_<name>_* variables on def. Non-positive or
// malformed values are ignored.
func LimitFromEnv(name string, def Limit) Limit {
	l := def
	if n, ok := positiveEnv("RATELIMIT_" + name + "_REQUESTS"); ok {
		l.Requests = n
	}
	if n, ok := positiveEnv("RATELIMIT_" + name + "_WINDOW_SEC"); ok {
		l.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("RATELIMIT_" + name + "_BURST"); ok {
		l.Burst = n
	}
	return l
}

func positiveEnv(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyFunc groups requests into buckets. An empty key bypasses limiting.
type KeyFunc func(*http.Request) string

// ClientIP keys by the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormValue keys by a query or form field, e.g. the login email.
func FormValue(field string) KeyFunc {
	return func(r *http.Request) string {
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return strings.TrimSpace(r.FormValue(field))
	}
}

// JoinKeys concatenates the non-empty keys of several KeyFuncs.
func JoinKeys(sep string, fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, sep)
	}
}

type bucketSet struct {
	limit   rate.Limit
	burst   int
	buckets sync.Map // string -> *rate.Limiter

	mu        sync.Mutex
	lastSweep time.Time
}

func (b *bucketSet) get(key string) *rate.Limiter {
	if l, ok := b.buckets.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := b.buckets.LoadOrStore(key, rate.NewLimiter(b.limit, b.burst))
	b.sweep()
	return l.(*rate.Limiter)
}

// sweep drops full buckets at most every five minutes; a full bucket is idle.
func (b *bucketSet) sweep() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Since(b.lastSweep) < 5*time.Minute {
		return
	}
	b.lastSweep = time.Now()

	b.buckets.Range(func(k, v any) bool {
		if v.(*rate.Limiter).Tokens() >= float64(b.burst) {
			b.buckets.Delete(k)
		}
		return true
	})
}

// RateLimit rejects requests over budget with 429 and a Retry-After header.
func RateLimit(l Limit, key KeyFunc) Middleware {
	bs := &bucketSet{
		limit:     rate.Limit(float64(l.Requests) / l.Window.Seconds()),
		burst:     l.Burst,
		lastSweep: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				slogx.FromContext(r.Context()).Warn("rate limit: empty key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			limiter := bs.get(k)
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.Reserve()
			retryAfter := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.Requests))
			w.Header().Set("X-RateLimit-Window", l.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k,
				"route", routeLabel(r),
				"retry_after", retryAfter,
			)
			rateLimited.WithLabelValues(routeLabel(r)).Inc()

			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
				"Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits per client address.
func RateLimitByIP(l Limit) Middleware {
	return RateLimit(l, ClientIP)
}

// RateLimitByIPAndField limits per client address and form field value.
func RateLimitByIPAndField(l Limit, field string) Middleware {
	return RateLimit(l, JoinKeys(":", ClientIP, FormValue(field)))
}
