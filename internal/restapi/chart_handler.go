package restapi

import (
	"net/http"
	"slices"

	"carddash.org/internal/models"
	"carddash.org/internal/pipeline"
	"carddash.org/internal/utils"
)

func (api *RestAPI) chartHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "chart")

	if err := utils.ValidateName(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"chart": {err.Error()},
		})
		return
	}

	if !slices.Contains(pipeline.ChartIDs(), id) {
		api.sendNotFound(w, r)
		return
	}

	dashboard, ok := api.buildDashboard(w, r)
	if !ok {
		return
	}

	chart, found := dashboard.Chart(id)
	if !found {
		api.sendNotFound(w, r)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(chart))
}
