package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carddash.org/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveWithKey(handler http.Handler, key string) *httptest.ResponseRecorder {
	target := "/test"
	if key != "" {
		target += "?key=" + key
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func TestRateLimitMiddleware_BlocksRequestsOverLimit(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(3, time.Second)(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serveWithKey(limitedHandler, "test-api-key").Code,
			"Request %d should be allowed", i+1)
	}

	w := serveWithKey(limitedHandler, "test-api-key")
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "Request over limit should be blocked")
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, http.StatusTooManyRequests, response.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", response.Text)
}

func TestRateLimitMiddleware_PerAPIKeyLimiting(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(2, time.Second)(okHandler())

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serveWithKey(limitedHandler, "api-key-1").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, serveWithKey(limitedHandler, "api-key-1").Code,
		"API key 1 should be rate limited")
	assert.Equal(t, http.StatusOK, serveWithKey(limitedHandler, "api-key-2").Code,
		"API key 2 should not be affected")
}

func TestRateLimitMiddleware_SharesLimitWithoutKey(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(1, time.Second)(okHandler())

	assert.Equal(t, http.StatusOK, serveWithKey(limitedHandler, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serveWithKey(limitedHandler, "").Code)
}

func TestRateLimitMiddleware_ZeroAndNegativeRates(t *testing.T) {
	blocked := NewRateLimitMiddleware(0, time.Second)(okHandler())
	w := serveWithKey(blocked, "k")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))

	unlimited := NewRateLimitMiddleware(-1, time.Second)(okHandler())
	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, serveWithKey(unlimited, "k").Code)
	}
}

func TestRateLimitMiddleware_RefillsOverTime(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(1, 100*time.Millisecond)(okHandler())

	assert.Equal(t, http.StatusOK, serveWithKey(limitedHandler, "test-key").Code, "First request should succeed")
	assert.Equal(t, http.StatusTooManyRequests, serveWithKey(limitedHandler, "test-key").Code,
		"Second request should be rate limited")

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, http.StatusOK, serveWithKey(limitedHandler, "test-key").Code,
		"Request after refill should succeed")
}

func TestRateLimitMiddleware_ConcurrentRequests(t *testing.T) {
	limitedHandler := NewRateLimitMiddleware(5, time.Second)(okHandler())

	var allowed, blocked atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if serveWithKey(limitedHandler, "concurrent").Code == http.StatusOK {
				allowed.Add(1)
			} else {
				blocked.Add(1)
			}
		}()
	}
	wg.Wait()

	// Refill during the burst can let one extra request through
	assert.GreaterOrEqual(t, allowed.Load(), int32(5))
	assert.LessOrEqual(t, allowed.Load(), int32(6))
	assert.Equal(t, int32(20), allowed.Load()+blocked.Load())
}

func TestRateLimitMiddleware_Stop(t *testing.T) {
	rl := newRateLimiter(5, time.Second)
	rl.Stop()
	rl.Stop()

	assert.Equal(t, http.StatusOK, serveWithKey(rl.rateLimitHandler(okHandler()), "k").Code)
}

func TestRateLimitingIntegration(t *testing.T) {
	api := createTestApiWithRateLimit(t, 5)
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	statuses := map[int]int{}
	for i := 0; i < 8; i++ {
		resp, err := http.Get(server.URL + "/api/current-time.json?key=test-rate-limit")
		require.NoError(t, err)
		_ = resp.Body.Close()
		statuses[resp.StatusCode]++
	}
	assert.Equal(t, 5, statuses[http.StatusOK])
	assert.Equal(t, 3, statuses[http.StatusTooManyRequests])

	// Unknown keys are rejected before they reach a limiter
	resp, err := http.Get(server.URL + "/api/current-time.json?key=unknown")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Health and metrics are not rate limited
	for i := 0; i < 8; i++ {
		resp, err := http.Get(server.URL + "/healthz")
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
