package app

import (
	"log/slog"

	"carddash.org/internal/appconf"
	"carddash.org/internal/dataset"
	"carddash.org/internal/pipeline"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	DataConfig  dataset.Config
	Logger      *slog.Logger
	DataManager *dataset.Manager
}

// PipelineOptions returns the aggregate sizes configured for this instance
func (app *Application) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		TopN: app.Config.TopN,
		Bins: app.Config.Bins,
	}
}
