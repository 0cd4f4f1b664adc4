package restapi

import (
	"net/http"

	"carddash.org/internal/models"
)

func (api *RestAPI) optionsHandler(w http.ResponseWriter, r *http.Request) {
	if !api.DataLoaded() {
		api.serviceUnavailableResponse(w, r)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(api.Options()))
}
