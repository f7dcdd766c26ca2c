package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when request validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedFormat is returned when an uploaded document is not a
	// supported type. Nothing is ingested.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrEmptyCorpus is returned when a query arrives before any document
	// has been successfully ingested.
	ErrEmptyCorpus = errors.New("no document has been ingested")
)

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
