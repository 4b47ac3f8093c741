package storage

import "errors"

var (
	// ErrNotFound is returned when an operation references a habit or todo id that does not exist
	ErrNotFound = errors.New("not found")
	// ErrMaxPriorityExceeded is returned when a todo cannot become a priority because the cap is reached
	ErrMaxPriorityExceeded = errors.New("maximum 3 priority todos allowed")
	// ErrInvalidInput is returned for values that violate the data model (empty names, negative estimates, unknown moods)
	ErrInvalidInput = errors.New("invalid input")
)
