package restapi

import (
	"net/http"

	"carddash.org/internal/models"
	"carddash.org/internal/pipeline"
	"carddash.org/internal/utils"
)

// paletteHandler resolves a palette name. Unknown names are not an error; they
// return the default colors with fallback set.
func (api *RestAPI) paletteHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	if err := utils.ValidateName(name); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"name": {err.Error()},
		})
		return
	}

	palette := models.Palette{
		Name:     name,
		Colors:   pipeline.ResolvePalette(name),
		Fallback: !pipeline.IsKnownPalette(name),
	}
	api.sendResponse(w, r, models.NewEntryResponse(palette))
}
