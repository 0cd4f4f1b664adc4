package restapi

import (
	"errors"
	"net/http"

	"carddash.org/internal/dataset"
	"carddash.org/internal/models"
	"carddash.org/internal/utils"
)

func (api *RestAPI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	dashboard, ok := api.buildDashboard(w, r)
	if !ok {
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(dashboard))
}

// buildDashboard validates the filter query parameters and runs the pipeline. On
// failure the error response has already been written and ok is false.
func (api *RestAPI) buildDashboard(w http.ResponseWriter, r *http.Request) (dashboard models.Dashboard, ok bool) {
	if !api.DataLoaded() {
		api.serviceUnavailableResponse(w, r)
		return models.Dashboard{}, false
	}

	params := utils.ParseDashboardParams(r.URL.Query())
	if fieldErrors := utils.ValidateDashboardParams(params, api.Options()); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return models.Dashboard{}, false
	}

	dashboard, err := api.BuildDashboard(params)
	switch {
	case errors.Is(err, dataset.ErrShutdown):
		api.serviceUnavailableResponse(w, r)
		return models.Dashboard{}, false
	case err != nil:
		api.serverErrorResponse(w, r, err)
		return models.Dashboard{}, false
	}

	return dashboard, true
}
