package webui

import (
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// debugRowLimit caps the rows dumped by the debug page
const debugRowLimit = 100

var debugDataTypes = []string{"warnings", "options", "rows", "summary"}

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
}

type datasetSummary struct {
	Source    string
	Entry     string
	LoadedAt  time.Time
	Rows      int
	Warnings  int
	Districts int
	Years     int
}

func writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	renderTemplate(w, r, http.StatusOK, "debug_index.html", debugData{
		Title:     title,
		Pre:       spew.Sdump(data),
		DataTypes: debugDataTypes,
	})
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.DataManager == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}
	loaded, err := webUI.DataManager.Data()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "warnings":
		data = loaded.Warnings
		title = "Dataset - Parse Warnings"
	case "options":
		data = loaded.Options
		title = "Dataset - Filter Options"
	case "rows":
		rows := loaded.Rows
		if len(rows) > debugRowLimit {
			rows = rows[:debugRowLimit]
		}
		data = rows
		title = "Dataset - First Rows"
	case "summary":
		data = datasetSummary{
			Source:    loaded.Source,
			Entry:     loaded.Entry,
			LoadedAt:  loaded.LoadedAt,
			Rows:      len(loaded.Rows),
			Warnings:  len(loaded.Warnings),
			Districts: len(loaded.Options.Districts) - 1,
			Years:     len(loaded.Options.Years) - 1,
		}
		title = "Dataset - Summary"
	default:
		data = map[string]string{
			"error": "Please use one of the following: warnings, options, rows, summary.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, r, title, data)
}
