// Package orgerr defines the error taxonomy shared by the provisioning
// orchestrator and the HTTP handlers. Callers wrap a sentinel with a
// human-readable reason and handlers map the sentinel to a status code.
package orgerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict marks uniqueness violations (organization name or admin email).
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks lookups of unknown organizations or admins.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated marks bad credentials or bad/expired tokens.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden marks an organization-ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrInternal marks unexpected storage failures and dangling references.
	ErrInternal = errors.New("internal error")
)

// Conflict wraps ErrConflict with a reason.
func Conflict(reason string) error {
	return fmt.Errorf("%w: %s", ErrConflict, reason)
}

// NotFound wraps ErrNotFound with a reason.
func NotFound(reason string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, reason)
}

// Unauthenticated wraps ErrUnauthenticated with a reason.
func Unauthenticated(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnauthenticated, reason)
}

// Forbidden wraps ErrForbidden with a reason.
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// Internal wraps ErrInternal with a reason and the underlying cause.
func Internal(reason string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrInternal, reason)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, reason, cause)
}

// Reason returns the human-readable part of a taxonomy error, without the
// sentinel prefix.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range []error{ErrConflict, ErrNotFound, ErrUnauthenticated, ErrForbidden, ErrInternal} {
		if errors.Is(err, sentinel) {
			return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
		}
	}
	return err.Error()
}
