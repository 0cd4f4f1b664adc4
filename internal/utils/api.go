package utils

import (
	"net/url"

	"carddash.org/internal/pipeline"
)

// ParseDashboardParams reads district, year and palette from query values. Missing
// values fall back to the "all" sentinels and the default palette.
func ParseDashboardParams(values url.Values) pipeline.Params {
	params := pipeline.Params{
		District: SanitizeInput(values.Get("district")),
		Year:     SanitizeInput(values.Get("year")),
		Palette:  SanitizeInput(values.Get("palette")),
	}
	return params.WithDefaults()
}
