package restapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carddash.org/internal/logging"
)

func TestRequestLoggingMiddleware(t *testing.T) {
	t.Run("logs HTTP request details", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		var seenID string
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenID = logging.RequestIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("test response"))
		})

		handler := NewRequestLoggingMiddleware(logger)(testHandler)

		req := httptest.NewRequest("GET", "/api/dashboard.json?key=test", nil)
		req.Header.Set("User-Agent", "test-client/1.0")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "test response", recorder.Body.String())

		requestID := recorder.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(requestID)
		require.NoError(t, err)
		assert.Equal(t, requestID, seenID)

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"http_request"`)
		assert.Contains(t, output, `"method":"GET"`)
		assert.Contains(t, output, `"path":"/api/dashboard.json"`)
		assert.NotContains(t, output, "key=test")
		assert.Contains(t, output, `"status":200`)
		assert.Contains(t, output, `"user_agent":"test-client/1.0"`)
		assert.Contains(t, output, `"duration_ms":`)
		assert.Contains(t, output, `"component":"http_server"`)
		assert.Contains(t, output, `"request_id":"`+requestID+`"`)
	})

	t.Run("captures the first status code", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		handler := NewRequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/missing", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, buf.String(), `"status":404`)
	})

	t.Run("reuses an incoming request id", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewRequestLoggingMiddleware(logging.NewStructuredLogger(&buf, slog.LevelInfo))(okHandler())

		req := httptest.NewRequest("GET", "/healthz", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, "abc-123", recorder.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
	})

	t.Run("handlers log with the request logger", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewRequestLoggingMiddleware(logging.NewStructuredLogger(&buf, slog.LevelInfo))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logging.FromContext(r.Context()).Info("inside handler")
			}))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "req-7")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), `"msg":"inside handler","request_id":"req-7"`)
	})
}

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/api/charts/ages":       "/api/charts/:chart",
		"/api/palettes/blues":    "/api/palettes/:name",
		"/api/dashboard.json":    "/api/dashboard.json",
		"/debug/":                "/debug/",
		"/":                      "/",
		"/healthz":               "/healthz",
		"/wp-admin/install.php":  "other",
		"/api/current-time.json": "/api/current-time.json",
	}
	for path, want := range tests {
		assert.Equal(t, want, routeLabel(path), path)
	}
}
