package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure so views can decide how to surface it.
type Kind string

// Failure kinds, mirroring how the backend reports problems.
const (
	// KindValidation covers malformed or rejected input. Never fatal.
	KindValidation Kind = "validation"
	// KindAuth covers missing, expired or insufficient credentials.
	KindAuth Kind = "auth"
	// KindConflict covers resource-state conflicts: hangout full, already
	// joined, duplicate friend request.
	KindConflict Kind = "conflict"
	// KindTransient covers network failures and server errors worth retrying.
	KindTransient Kind = "transient"
	// KindRemote covers everything else the server rejected.
	KindRemote Kind = "remote"
)

// Error is a classified failure from the PourPal API.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	// Fields holds per-field validation messages when the server returned any.
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (%s)", e.Message, e.Kind)
	}
	return fmt.Sprintf("api: status %d (%s)", e.StatusCode, e.Kind)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsAuth(err error) bool       { return IsKind(err, KindAuth) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }

// IsTransient reports whether err is retry-eligible. Plain network errors
// (no *Error at all) count as transient too.
func IsTransient(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindTransient
	}
	return err != nil
}
