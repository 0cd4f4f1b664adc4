package webui

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"carddash.org/internal/logging"
	"carddash.org/internal/models"
	"carddash.org/internal/utils"
)

type barRow struct {
	Label string
	Value string
	Style template.CSS
}

type chartView struct {
	ID     string
	Title  string
	XLabel string
	YLabel string
	Error  string
	Rows   []barRow
}

type indexPage struct {
	Options models.FilterOptions
	Filters models.Filters
	Summary models.Summary
	Charts  []chartView
	Errors  map[string][]string
}

func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	if !webUI.DataLoaded() {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	params := utils.ParseDashboardParams(r.URL.Query())
	page := indexPage{
		Options: webUI.Options(),
		Filters: models.Filters{District: params.District, Year: params.Year, Palette: params.Palette},
	}

	status := http.StatusOK
	if fieldErrors := utils.ValidateDashboardParams(params, page.Options); len(fieldErrors) > 0 {
		page.Errors = fieldErrors
		status = http.StatusBadRequest
	} else {
		dashboard, err := webUI.BuildDashboard(params)
		if err != nil {
			logging.LogError(logging.FromContext(r.Context()), "failed to build dashboard page", err,
				slog.String("district", params.District),
				slog.String("year", params.Year))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		page.Summary = dashboard.Summary
		page.Charts = make([]chartView, len(dashboard.Charts))
		for i, chart := range dashboard.Charts {
			page.Charts[i] = newChartView(chart)
		}
	}

	renderTemplate(w, r, status, "index.html", page)
}

// newChartView scales every bar against the largest value of its chart and colors
// bars by cycling through the palette.
func newChartView(chart models.Chart) chartView {
	view := chartView{
		ID:     chart.ID,
		Title:  chart.Title,
		XLabel: chart.XLabel,
		YLabel: chart.YLabel,
		Error:  chart.Error,
		Rows:   make([]barRow, len(chart.Data)),
	}

	maxValue := 0.0
	for _, p := range chart.Data {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}

	for i, p := range chart.Data {
		width := 0.0
		if maxValue > 0 {
			width = 100 * p.Value / maxValue
		}
		color := "#888888"
		if len(chart.Colors) > 0 {
			color = chart.Colors[i%len(chart.Colors)]
		}
		view.Rows[i] = barRow{
			Label: p.Category,
			Value: formatValue(p.Value),
			Style: template.CSS(fmt.Sprintf("width: %.1f%%; background: %s", width, color)),
		}
	}
	return view
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// renderTemplate executes into a buffer first so a template error can still become a 500
func renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render template", err,
			slog.String("template", name))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
