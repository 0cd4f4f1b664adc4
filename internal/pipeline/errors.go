package pipeline

import "errors"

var (
	// ErrEmptyAggregate is returned when a percentage aggregate has no rows to divide by
	ErrEmptyAggregate = errors.New("cannot compute shares over an empty row set")

	// ErrInvalidYear is returned for a year filter that is neither the sentinel nor an integer
	ErrInvalidYear = errors.New("invalid year filter")
)
