package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	AllDistricts = "All Districts"
	AllYears     = "All Years"

	// ReferenceYear is the fixed "now" used for ages so results do not drift between runs
	ReferenceYear = 2024

	DefaultTopN  = 10
	DefaultBins  = 20
	DensitySteps = 100
)

// Params is one filter selection made by a user
type Params struct {
	District string
	Year     string
	Palette  string
}

// DefaultParams selects everything with the first palette of the selector
func DefaultParams() Params {
	return Params{
		District: AllDistricts,
		Year:     AllYears,
		Palette:  DefaultPalette,
	}
}

// WithDefaults fills empty fields from DefaultParams
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if strings.TrimSpace(p.District) == "" {
		p.District = d.District
	}
	if strings.TrimSpace(p.Year) == "" {
		p.Year = d.Year
	}
	if strings.TrimSpace(p.Palette) == "" {
		p.Palette = d.Palette
	}
	return p
}

// Options tunes the sizes of the derived aggregates
type Options struct {
	TopN int
	Bins int
}

func (o Options) topN() int {
	if o.TopN <= 0 {
		return DefaultTopN
	}
	return o.TopN
}

func (o Options) bins() int {
	if o.Bins <= 0 {
		return DefaultBins
	}
	return o.Bins
}

// ParseYear returns the selected year and whether a year filter applies at all.
func ParseYear(year string) (int, bool, error) {
	if year == AllYears {
		return 0, false, nil
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	return y, true, nil
}
