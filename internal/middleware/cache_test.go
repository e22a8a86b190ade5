package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/config"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/utils"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	srv := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: srv.Addr()})
}

func browseCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestRedisCacheServesRepeatReads(t *testing.T) {
	rdb := newTestRedis(t)
	e := echo.New()

	hits := 0
	g := e.Group("/v1", NewRedisCache(browseCacheConfig(), rdb))
	g.GET("/rooms", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusOK, echo.Map{"rooms": []string{"loft"}})
	})

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, hits, "second read must come from the cache")
}

func TestRedisCacheSkipsRequestsWithCredentials(t *testing.T) {
	rdb := newTestRedis(t)
	e := echo.New()

	hits := 0
	g := e.Group("/v1", NewRedisCache(browseCacheConfig(), rdb))
	g.GET("/rooms", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusOK, echo.Map{"rooms": []string{"loft"}})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, hits, "credentialed requests must never be cached")
}

// The cache wraps only routes whose responses carry no caller
// identity.  A user's authenticated reservation list must never
// become readable by an anonymous caller through the cache.
func TestRedisCacheDoesNotExposeAuthenticatedResponses(t *testing.T) {
	rdb := newTestRedis(t)
	e := echo.New()

	// Mirror the server wiring: cache on the browse group only, JWT
	// on the private group.
	browse := e.Group("/v1", NewRedisCache(browseCacheConfig(), rdb))
	browse.GET("/rooms", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"rooms": []string{"loft"}})
	})

	private := e.Group("/v1", JWTAuth(testSecret))
	private.GET("/reservations", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"owner": c.Get("user_id"), "data": "private"})
	})

	tok, err := utils.NewAccessToken(testSecret, 7, "CLIENT", 5)
	require.NoError(t, err)

	authed := httptest.NewRequest(http.MethodGet, "/v1/reservations", nil)
	authed.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, authed)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "private")

	// The same path without a token must be rejected, not replayed.
	anon := httptest.NewRecorder()
	e.ServeHTTP(anon, httptest.NewRequest(http.MethodGet, "/v1/reservations", nil))
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
	assert.NotContains(t, anon.Body.String(), "private")
	assert.NotEqual(t, "HIT", anon.Header().Get("X-Cache"))
}
