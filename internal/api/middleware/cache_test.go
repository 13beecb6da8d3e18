package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/chefmate/backend/internal/adapters/cache"
	redisclient "github.com/zatekoja/chefmate/backend/internal/infrastructure/clients/redis"
)

func newRedisCache(t *testing.T) *cache.RedisAdapter {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewRedisAdapter(redisclient.NewFromRedis(rdb), "test:")
}

func countingHandler(calls *int, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func TestCacheMiddleware_MissThenHit(t *testing.T) {
	calls := 0
	handler := NewCacheMiddleware(newRedisCache(t), nil).Middleware(countingHandler(&calls, http.StatusOK, `{"cities":["Delhi"]}`))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/cities", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/cities", nil))

	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, `{"cities":["Delhi"]}`, second.Body.String())
	assert.Equal(t, 1, calls)
}

func TestCacheMiddleware_QueryOrderDoesNotMatter(t *testing.T) {
	calls := 0
	handler := NewCacheMiddleware(newRedisCache(t), nil).Middleware(countingHandler(&calls, http.StatusOK, `{}`))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/recommendations?city=Delhi&cuisines=thai", nil))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recommendations?cuisines=thai&city=Delhi", nil))

	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)
}

func TestCacheMiddleware_Bypass(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"post", http.MethodPost, "/api/chat", http.StatusOK},
		{"uncached route", http.MethodGet, "/api/map/static", http.StatusOK},
		{"error response", http.MethodGet, "/api/map", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			handler := NewCacheMiddleware(newRedisCache(t), nil).Middleware(countingHandler(&calls, tt.status, `{}`))

			for i := 0; i < 2; i++ {
				handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))
			}

			assert.Equal(t, 2, calls)
		})
	}
}

func TestCacheMiddleware_NilCache(t *testing.T) {
	calls := 0
	handler := NewCacheMiddleware(nil, nil).Middleware(countingHandler(&calls, http.StatusOK, `{}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cities", nil))

	assert.Equal(t, 1, calls)
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestGetRouteConfig_LongestPrefix(t *testing.T) {
	m := NewCacheMiddlewareWithRoutes(nil, nil, map[string]CacheConfig{
		"/api/":                 {TTL: time.Minute, Enabled: true},
		"/api/map/restaurants/": {TTL: time.Hour, Enabled: true},
		"/api/cities":           {TTL: time.Second, Enabled: true},
	})

	assert.Equal(t, time.Hour, m.getRouteConfig("/api/map/restaurants/abc").TTL)
	assert.Equal(t, time.Minute, m.getRouteConfig("/api/recommendations").TTL)
	assert.Equal(t, time.Second, m.getRouteConfig("/api/cities").TTL)
	require.False(t, m.getRouteConfig("/health").Enabled)
}
