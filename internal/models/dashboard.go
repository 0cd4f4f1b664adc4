package models

// Pair is one (category, value) point of an aggregate
type Pair struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// HistogramBin counts the ages falling in [Lower, Upper)
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// DensityPoint is one sample of the smoothed age density
type DensityPoint struct {
	Age     float64 `json:"age"`
	Density float64 `json:"density"`
}

// AgeDistribution pairs the age histogram with its density overlay
type AgeDistribution struct {
	Bins    []HistogramBin `json:"bins"`
	Density []DensityPoint `json:"density"`
}

// ChartKind names the mark the presentation layer should use
type ChartKind string

const (
	ChartKindBar       ChartKind = "bar"
	ChartKindDonut     ChartKind = "donut"
	ChartKindColumn    ChartKind = "column"
	ChartKindHistogram ChartKind = "histogram"
)

// Chart is one aggregate ready for a chart renderer
type Chart struct {
	ID       string         `json:"id"`
	Kind     ChartKind      `json:"kind"`
	Title    string         `json:"title"`
	XLabel   string         `json:"xLabel"`
	YLabel   string         `json:"yLabel"`
	Colors   []string       `json:"colors"`
	TopColor string         `json:"topColor"`
	Data     []Pair         `json:"data"`
	Bins     []HistogramBin `json:"bins,omitempty"`
	Density  []DensityPoint `json:"density,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Filters echoes the parameters a dashboard was built for
type Filters struct {
	District string `json:"district"`
	Year     string `json:"year"`
	Palette  string `json:"palette"`
}

// Summary reports the sizes of the row sets behind a dashboard
type Summary struct {
	TotalRows      int `json:"totalRows"`
	FilteredRows   int `json:"filteredRows"`
	YearScopedRows int `json:"yearScopedRows"`
}

// Dashboard is everything the page needs for one filter selection
type Dashboard struct {
	Filters Filters  `json:"filters"`
	Palette []string `json:"palette"`
	Summary Summary  `json:"summary"`
	Charts  []Chart  `json:"charts"`
}

// Chart returns the chart with the given id
func (d Dashboard) Chart(id string) (Chart, bool) {
	for _, c := range d.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}

// FilterOptions lists the selectable values for each dashboard filter
type FilterOptions struct {
	Districts []string `json:"districts"`
	Years     []string `json:"years"`
	Palettes  []string `json:"palettes"`
}

// Palette is a resolved color palette. Fallback is set when the name is not in the
// palette table and the default colors were returned instead.
type Palette struct {
	Name     string   `json:"name"`
	Colors   []string `json:"colors"`
	Fallback bool     `json:"fallback"`
}
