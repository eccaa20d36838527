package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, true)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("1.1.1.1"))
	assert.Equal(t, http.StatusOK, hit("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("1.1.1.1"))
	assert.Equal(t, http.StatusOK, hit("2.2.2.2"), "buckets are per client")

	rl.sweep(0)
	time.Sleep(time.Millisecond)
	rl.sweep(0)
	assert.Empty(t, rl.visitors)
}

func TestRateLimiterIgnoresForwardedForByDefault(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, false)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	hit := func(fwd string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("1.1.1.1"))
	assert.Equal(t, http.StatusOK, hit("2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, hit("3.3.3.3"), "a rotated header does not buy a new bucket")
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "203.0.113.7")
}

func TestPprofAndMetricsGuards(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	pprof := PprofSecurityMiddleware("")(ok)
	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	rec := httptest.NewRecorder()
	pprof.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code, "an empty secret disables pprof")

	metrics := BasicAuthMiddleware("prom", "pass")(ok)
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("prom", "pass")
	rec = httptest.NewRecorder()
	metrics.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req.SetBasicAuth("prom", "wrong")
	rec = httptest.NewRecorder()
	metrics.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
