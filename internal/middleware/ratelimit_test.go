package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/config"
)

func bucketConfig(capacity int, strategy string) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    strategy,
		Prefix:         "rl",
	}
}

func doLimited(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketBlocksWhenEmpty(t *testing.T) {
	rdb := newTestRedis(t)
	e := echo.New()
	e.Use(NewTokenBucket(bucketConfig(2, "ip_user_route"), rdb))
	e.GET("/v1/rooms", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	first := doLimited(t, e, "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := doLimited(t, e, "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := doLimited(t, e, "")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
}

// The limiter runs before authentication, so user-keyed strategies
// separate callers by their bearer token rather than a verified id.
func TestTokenBucketSeparatesBearerTokens(t *testing.T) {
	rdb := newTestRedis(t)
	e := echo.New()
	e.Use(NewTokenBucket(bucketConfig(1, "user"), rdb))
	e.GET("/v1/rooms", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	require.Equal(t, http.StatusOK, doLimited(t, e, "Bearer token-a").Code)
	assert.Equal(t, http.StatusTooManyRequests, doLimited(t, e, "Bearer token-a").Code)

	// A different caller's bucket is untouched.
	assert.Equal(t, http.StatusOK, doLimited(t, e, "Bearer token-b").Code)

	// Anonymous traffic shares its own bucket.
	assert.Equal(t, http.StatusOK, doLimited(t, e, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doLimited(t, e, "").Code)
}
