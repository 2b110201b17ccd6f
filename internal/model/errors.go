package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: a referenced user, team, event, tool, template or report is absent.
	ErrNotFound = errors.New("not found")
	// ErrPreconditionFailed: the operation requires state the caller has not
	// established yet (e.g. publishing a week before its report is generated).
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrInvalidRange: a malformed or inverted date window, or a week start
	// that is not a canonical Monday midnight UTC.
	ErrInvalidRange = errors.New("invalid range")
	// ErrEntryPublished: minutes/title of a published event may not change
	// without an explicit unpublish, which this core does not provide.
	ErrEntryPublished = errors.New("entry already published")
	// ErrValidation: a request field failed validation.
	ErrValidation = errors.New("validation error")
	// ErrStorageUnavailable: storage I/O kept failing after bounded retries.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// NotFoundf wraps ErrNotFound with the entity kind and key that failed
// resolution, so callers can decide how to recover.
func NotFoundf(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
}
