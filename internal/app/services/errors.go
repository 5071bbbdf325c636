package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fr0stylo/gamecatalog/internal/app/domain"
)

// ErrNoFeedSources rejects a populate pipeline configured without feeds.
var ErrNoFeedSources = errors.New("populate requires at least one feed source")

// ErrorKind classifies service failures for transport-specific mapping.
type ErrorKind string

const (
	// ErrorUnknown is used when error is nil or not classified.
	ErrorUnknown ErrorKind = "unknown"
	// ErrorInvalidInput indicates rejected client input.
	ErrorInvalidInput ErrorKind = "invalid_input"
	// ErrorNotFound indicates a missing game id.
	ErrorNotFound ErrorKind = "not_found"
	// ErrorUpstream indicates every populate source failed.
	ErrorUpstream ErrorKind = "upstream"
)

// SourcesFailedError is returned by Populate when no feed could be fetched.
type SourcesFailedError struct {
	Warnings []string
}

func (e *SourcesFailedError) Error() string {
	if len(e.Warnings) == 0 {
		return "all feed sources failed"
	}
	return "all feed sources failed: " + strings.Join(e.Warnings, "; ")
}

// PersistenceError records one candidate that could not be written.
// Populate logs these and keeps going.
type PersistenceError struct {
	Key domain.GameKey
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}

// ClassifyError classifies a returned service error.
func ClassifyError(err error) ErrorKind {
	var sourcesErr *SourcesFailedError
	switch {
	case err == nil:
		return ErrorUnknown
	case errors.Is(err, domain.ErrInvalidGame):
		return ErrorInvalidInput
	case errors.Is(err, domain.ErrGameNotFound):
		return ErrorNotFound
	case errors.As(err, &sourcesErr):
		return ErrorUpstream
	default:
		return ErrorUnknown
	}
}
