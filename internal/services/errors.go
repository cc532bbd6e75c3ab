package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingIndex    = errors.New("missing index")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConfiguration   = errors.New("configuration error")
	ErrTraversal       = errors.New("traversal error")
	ErrNoMatch         = errors.New("no matching index record")
	ErrRemoteCall      = errors.New("remote call failure")
	ErrTransfer        = errors.New("transfer failure")
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, operation, subject, message string, err error) error {
	detail := buildDetail(operation, subject, message)
	if marker == nil {
		marker = ErrRemoteCall
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Aborts reports whether err must stop the whole invocation. Everything else is
// a per-file failure that the run isolates and reports.
func Aborts(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrMissingIndex), errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrConfiguration):
		return true
	default:
		return false
	}
}

// Kind returns a short label for the marker carried by err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingIndex):
		return "missing_index"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrTraversal):
		return "traversal"
	case errors.Is(err, ErrNoMatch):
		return "no_match"
	case errors.Is(err, ErrTransfer):
		return "transfer"
	default:
		return "remote_call"
	}
}

func buildDetail(operation, subject, message string) string {
	parts := make([]string, 0, 3)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if subject = strings.TrimSpace(subject); subject != "" {
		parts = append(parts, subject)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
