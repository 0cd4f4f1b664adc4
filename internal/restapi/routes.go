package restapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"carddash.org/internal/metrics"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// protected requires a valid key and then applies the per-key rate limit
func (api *RestAPI) protected(finalHandler handlerFunc) http.Handler {
	limited := http.Handler(http.HandlerFunc(finalHandler))
	if api.rateLimiter != nil {
		limited = api.rateLimiter(limited)
	}
	return validateAPIKey(api, limited.ServeHTTP)
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/dashboard.json", api.protected(api.dashboardHandler))
	router.Handler(http.MethodGet, "/api/charts/:chart", api.protected(api.chartHandler))
	router.Handler(http.MethodGet, "/api/options.json", api.protected(api.optionsHandler))
	router.Handler(http.MethodGet, "/api/palettes/:name", api.protected(api.paletteHandler))
	router.Handler(http.MethodGet, "/api/current-time.json", api.protected(api.currentTimeHandler))

	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	router.Handler(http.MethodGet, "/metrics", metrics.Handler())

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		api.serverErrorResponse(w, r, fmt.Errorf("panic: %v", v))
	}
}

// Handler builds the router with the API routes plus any extra route sets and wraps
// it in the middleware chain: request logging, security headers, compression.
func (api *RestAPI) Handler(extra ...func(*httprouter.Router)) http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	for _, register := range extra {
		register(router)
	}

	logger := api.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(logger)(handler)
	return handler
}
