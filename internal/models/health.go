package models

import "time"

const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

// Health reports whether the dataset is loaded and how large it is
type Health struct {
	Status   string     `json:"status"`
	Source   string     `json:"source,omitempty"`
	Rows     int        `json:"rows"`
	Warnings int        `json:"warnings"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
}
