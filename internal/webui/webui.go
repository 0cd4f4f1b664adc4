package webui

import (
	"embed"
	"html/template"

	"carddash.org/internal/app"
)

//go:embed index.html debug_index.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "*.html"))

// WebUI serves the HTML dashboard and the debug data pages
type WebUI struct {
	*app.Application
}

func NewWebUI(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}
