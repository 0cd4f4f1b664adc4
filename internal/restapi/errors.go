package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"carddash.org/internal/logging"
	"carddash.org/internal/models"
)

// invalidAPIKeyResponse sends a 401 Unauthorized response for a missing or unknown key
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, r, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.requestLogger(r), "request failed", err,
		slog.String("path", r.URL.Path))
	api.sendError(w, r, http.StatusInternalServerError, "internal server error")
}

// serviceUnavailableResponse is sent while no dataset is loaded
func (api *RestAPI) serviceUnavailableResponse(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, r, http.StatusServiceUnavailable, "dataset not loaded")
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		Code        int                 `json:"code"`
		CurrentTime int64               `json:"currentTime"`
		FieldErrors map[string][]string `json:"fieldErrors"`
		Text        string              `json:"text"`
		Version     int                 `json:"version"`
	}{
		Code:        http.StatusBadRequest,
		CurrentTime: models.ResponseCurrentTime(),
		FieldErrors: fieldErrors,
		Text:        "invalid parameters",
		Version:     2,
	}

	setJSONResponseType(w)
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.requestLogger(r).Error("failed to encode validation error response", "error", err)
	}
}

func (api *RestAPI) sendError(w http.ResponseWriter, r *http.Request, code int, text string) {
	setJSONResponseType(w)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(models.NewResponse(code, nil, text)); err != nil {
		api.requestLogger(r).Error("failed to encode error response", "error", err, "code", code)
	}
}

// requestLogger prefers the logger attached by the request logging middleware
func (api *RestAPI) requestLogger(r *http.Request) *slog.Logger {
	if logger := logging.FromContext(r.Context()); logger != slog.Default() {
		return logger
	}
	if api.Logger != nil {
		return api.Logger
	}
	return slog.Default()
}
