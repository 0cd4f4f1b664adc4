package restapi

import (
	"net/http"

	"carddash.org/internal/models"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := models.Health{Status: models.HealthStatusUnavailable}
	code := http.StatusServiceUnavailable

	if api.DataManager != nil {
		if data, err := api.DataManager.Data(); err == nil {
			loadedAt := data.LoadedAt
			health = models.Health{
				Status:   models.HealthStatusOK,
				Source:   data.Source,
				Rows:     len(data.Rows),
				Warnings: len(data.Warnings),
				LoadedAt: &loadedAt,
			}
			code = http.StatusOK
		}
	}

	text := "OK"
	if code != http.StatusOK {
		text = "dataset not loaded"
	}
	api.sendResponse(w, r, models.NewResponse(code, models.EntryData{Entry: health}, text))
}
