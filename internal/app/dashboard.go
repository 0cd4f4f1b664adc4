package app

import (
	"log/slog"
	"time"

	"carddash.org/internal/dataset"
	"carddash.org/internal/metrics"
	"carddash.org/internal/models"
	"carddash.org/internal/pipeline"
)

// BuildDashboard runs the pipeline over the loaded rows for one filter selection.
// Params must already be validated against the dataset options.
func (app *Application) BuildDashboard(params pipeline.Params) (models.Dashboard, error) {
	if app.DataManager == nil {
		return models.Dashboard{}, dataset.ErrShutdown
	}
	data, err := app.DataManager.Data()
	if err != nil {
		return models.Dashboard{}, err
	}

	start := time.Now()
	dashboard, err := pipeline.Build(data.Rows, params, app.PipelineOptions())
	if err != nil {
		return models.Dashboard{}, err
	}
	metrics.DashboardBuildDuration.Observe(time.Since(start).Seconds())

	for _, chart := range dashboard.Charts {
		if chart.Error != "" {
			metrics.EmptyAggregates.WithLabelValues(chart.ID).Inc()
			if app.Logger != nil {
				app.Logger.Debug("chart has no data",
					slog.String("chart", chart.ID),
					slog.String("district", params.District),
					slog.String("year", params.Year))
			}
		}
	}

	return dashboard, nil
}

// Options returns the selectable filter values of the loaded dataset
func (app *Application) Options() models.FilterOptions {
	if app.DataManager == nil {
		return models.FilterOptions{}
	}
	return app.DataManager.Options()
}

// DataLoaded reports whether requests can be served from a dataset
func (app *Application) DataLoaded() bool {
	return app.DataManager != nil && app.DataManager.Loaded()
}
