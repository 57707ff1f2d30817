// Package common provides shared utilities and types used across the
// application: the reconciliation error taxonomy, logging setup, and the
// transport-layer retry helper.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Reconciliation errors. Each is fatal for the document being processed,
// never for the whole run: the other document's pipeline continues.
var (
	// ErrMissingColumn means a required semantic column could not be
	// resolved in a source header.
	ErrMissingColumn = errors.New("required column not found")
	// ErrEmptyAttachment means the source table has fewer than two rows.
	ErrEmptyAttachment = errors.New("attachment has no data rows")
	// ErrNoValidDates means the upcoming extract yielded zero usable dates.
	ErrNoValidDates = errors.New("no valid dates in attachment")
	// ErrUnparseableFilenameDate means the completed extract's filename
	// carries no extractable date, and that pipeline has no other source.
	ErrUnparseableFilenameDate = errors.New("no date found in filename")

	// ErrNoMatchingMessage means no mailbox message matched the subject
	// phrase; the document is skipped, not failed.
	ErrNoMatchingMessage = errors.New("no matching message")
	// ErrNoAttachment means the matched message has no usable spreadsheet
	// attachment; the document is skipped, not failed.
	ErrNoAttachment = errors.New("message has no spreadsheet attachment")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsSkip reports whether err means a document should be skipped rather
// than marked failed.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoMatchingMessage) || errors.Is(err, ErrNoAttachment)
}

// IsRetryable determines if an error should trigger a retry. Only
// transport-level conditions qualify; reconciliation errors never do.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
