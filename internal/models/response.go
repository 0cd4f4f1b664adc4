package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// EntryData wraps a single payload under the "entry" key
type EntryData struct {
	Entry interface{} `json:"entry"`
}

// NewResponse builds a version 2 envelope around data
func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

// NewEntryResponse builds a 200 OK envelope with data.entry set to entry
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewResponse(http.StatusOK, EntryData{Entry: entry}, "OK")
}

// ResponseCurrentTime returns the current time in epoch milliseconds
func ResponseCurrentTime() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
