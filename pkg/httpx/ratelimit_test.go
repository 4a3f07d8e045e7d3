package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/projetointerclasse/interclasse/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(h http.Handler, target, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"remote addr", nil, "192.168.1.1"},
		{"forwarded for first hop", map[string]string{"X-Forwarded-For": "203.0.113.1, 192.168.1.1"}, "203.0.113.1"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "203.0.113.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.ClientIP(req))
		})
	}
}

func TestFormValue(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?email=a@b.com", nil)
		require.Equal(t, "a@b.com", httpx.FormValue("email")(req))
	})

	t.Run("post form is trimmed", func(t *testing.T) {
		form := url.Values{"email": {"  c@d.com "}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		require.Equal(t, "c@d.com", httpx.FormValue("email")(req))
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.Empty(t, httpx.FormValue("email")(req))
	})
}

func TestJoinKeys(t *testing.T) {
	key := httpx.JoinKeys(":", httpx.ClientIP, httpx.FormValue("email"))

	req := httptest.NewRequest(http.MethodGet, "/?email=a@b.com", nil)
	req.RemoteAddr = "10.0.0.1:1"
	require.Equal(t, "10.0.0.1:a@b.com", key(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1"
	require.Equal(t, "10.0.0.1", key(req))
}

func TestRateLimit(t *testing.T) {
	t.Run("blocks over budget", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.Limit{Requests: 3, Window: time.Minute, Burst: 3})(okHandler())

		for i := range 3 {
			require.Equal(t, http.StatusOK, hit(h, "/", "192.168.1.1:1").Code, "request %d", i+1)
		}

		rec := hit(h, "/", "192.168.1.1:1")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	})

	t.Run("keys are independent", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.Limit{Requests: 1, Window: time.Minute, Burst: 1})(okHandler())

		require.Equal(t, http.StatusOK, hit(h, "/", "192.168.1.1:1").Code)
		require.Equal(t, http.StatusTooManyRequests, hit(h, "/", "192.168.1.1:1").Code)
		require.Equal(t, http.StatusOK, hit(h, "/", "192.168.1.2:1").Code)
	})

	t.Run("per field", func(t *testing.T) {
		h := httpx.RateLimitByIPAndField(httpx.Limit{Requests: 1, Window: time.Minute, Burst: 1}, "email")(okHandler())

		require.Equal(t, http.StatusOK, hit(h, "/?email=a@b.com", "192.168.1.1:1").Code)
		require.Equal(t, http.StatusTooManyRequests, hit(h, "/?email=a@b.com", "192.168.1.1:1").Code)
		require.Equal(t, http.StatusOK, hit(h, "/?email=x@y.com", "192.168.1.1:1").Code)
	})

	t.Run("empty key bypasses", func(t *testing.T) {
		empty := func(*http.Request) string { return "" }
		h := httpx.RateLimit(httpx.Limit{Requests: 1, Window: time.Minute, Burst: 1}, empty)(okHandler())

		for range 3 {
			require.Equal(t, http.StatusOK, hit(h, "/", "").Code)
		}
	})
}

func TestLimitFromEnv(t *testing.T) {
	def := httpx.Limit{Requests: 5, Window: time.Minute, Burst: 5}

	t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "10")
	t.Setenv("RATELIMIT_TEST_BURST", "-1")

	got := httpx.LimitFromEnv("TEST", def)
	require.Equal(t, 50, got.Requests)
	require.Equal(t, 10*time.Second, got.Window)
	require.Equal(t, 5, got.Burst)
}

func TestProfilesOrdered(t *testing.T) {
	require.Less(t, httpx.StrictLimit.Requests, httpx.ModerateLimit.Requests)
	require.Less(t, httpx.ModerateLimit.Requests, httpx.LenientLimit.Requests)
	require.Less(t, httpx.LenientLimit.Requests, httpx.PublicLimit.Requests)
}
