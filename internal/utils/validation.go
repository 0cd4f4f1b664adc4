package utils

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"carddash.org/internal/models"
	"carddash.org/internal/pipeline"
)

var (
	// Chart ids and palette names: lowercase words joined by hyphens
	validNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

	paramValidate = validator.New()
)

// dashboardParamShape bounds the raw query values before they are looked up in the
// option sets. District names contain spaces, dots and hyphens, so only markup and
// control characters are rejected.
type dashboardParamShape struct {
	District string `validate:"max=100,excludesall=<>;"`
	Year     string `validate:"max=16,excludesall=<>;"`
	Palette  string `validate:"max=32,excludesall=<>;"`
}

var shapeFields = map[string]string{
	"District": "district",
	"Year":     "year",
	"Palette":  "palette",
}

// ValidateName validates a path segment such as a chart id or palette name
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}

	if len(name) > 64 {
		return errors.New("name too long (max 64 characters)")
	}

	if !validNamePattern.MatchString(name) {
		return errors.New("name contains invalid characters")
	}

	return nil
}

// ValidateDashboardParams checks params against the selectable options. District and
// year must be offered values; the palette is only checked for shape since unknown
// names resolve to the default colors.
func ValidateDashboardParams(params pipeline.Params, options models.FilterOptions) map[string][]string {
	fieldErrors := make(map[string][]string)

	err := paramValidate.Struct(dashboardParamShape{
		District: params.District,
		Year:     params.Year,
		Palette:  params.Palette,
	})
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			field := shapeFields[fe.Field()]
			fieldErrors[field] = append(fieldErrors[field], invalidFieldMessage(field))
		}
	}

	if len(fieldErrors["district"]) == 0 && !slices.Contains(options.Districts, params.District) {
		fieldErrors["district"] = append(fieldErrors["district"], fmt.Sprintf("Unknown district %q.", params.District))
	}

	if len(fieldErrors["year"]) == 0 {
		if _, _, err := pipeline.ParseYear(params.Year); err != nil {
			fieldErrors["year"] = append(fieldErrors["year"], invalidFieldMessage("year"))
		} else if !slices.Contains(options.Years, params.Year) {
			fieldErrors["year"] = append(fieldErrors["year"], fmt.Sprintf("Unknown year %q.", params.Year))
		}
	}

	return fieldErrors
}

func invalidFieldMessage(field string) string {
	return fmt.Sprintf("Invalid field value for field %q.", field)
}

// SanitizeInput removes HTML tags and surrounding whitespace
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}
