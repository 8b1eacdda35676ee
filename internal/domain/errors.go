package domain

import "errors"

var (
	// ErrNotFound: the requested review or property id is not in the dataset.
	ErrNotFound = errors.New("not found")
	// ErrValidation: the caller supplied missing or malformed required input.
	ErrValidation = errors.New("invalid input")
	// ErrSourceIO: the backing dataset could not be read, parsed, or written.
	ErrSourceIO = errors.New("source unavailable")
	// ErrNilReview: a nil record was handed to the normalizer directly.
	ErrNilReview = errors.New("review data is required")
)
