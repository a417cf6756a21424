package services

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors returned by the profile service. Handlers translate these
// into HTTP statuses and user-facing reasons; anything else is an internal
// failure.
var (
	ErrProfileNotFound       = errors.New("user does not exist")
	ErrEmailAlreadyExists    = errors.New("email is already in use")
	ErrUsernameAlreadyExists = errors.New("username is already taken")
	ErrMissingIdentity       = errors.New("invalid token, user id not found")
	ErrMissingEmailClaim     = errors.New("invalid token, email not found")
)

// ValidationError aggregates every violated-field message from a request,
// never just the first one.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, " ")
}

// Reason returns the user-facing space-joined message list.
func (e *ValidationError) Reason() string {
	return strings.Join(e.Messages, " ")
}

// UnknownPreferenceError reports a preference name that is not part of the
// activity-type table.
type UnknownPreferenceError struct {
	Name string
}

func (e *UnknownPreferenceError) Error() string {
	return fmt.Sprintf("unknown preference %q", e.Name)
}

// Reason returns the user-facing message.
func (e *UnknownPreferenceError) Reason() string {
	return fmt.Sprintf("Unknown preference '%s'.", e.Name)
}
