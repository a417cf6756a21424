package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"usersvc/internal/models"
)

// ErrUserNotFound is returned when no profile exists for the given id.
var ErrUserNotFound = errors.New("user not found")

// ConstraintViolationError reports a uniqueness-constraint rejection from
// storage, carrying the violated column so the service layer can translate
// it into the matching domain error.
type ConstraintViolationError struct {
	Field string // "username" or "email"
	Err   error
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("unique constraint violated on %s: %v", e.Field, e.Err)
}

func (e *ConstraintViolationError) Unwrap() error {
	return e.Err
}

// UserRepository defines the interface for profile data access.
//
// Create inserts the profile together with its preference rows in one
// transaction. Update replaces the profile's mutable fields and its entire
// preference set (delete then insert) in one transaction; no partial state
// is ever visible to a concurrent reader.
type UserRepository interface {
	FindByID(id uuid.UUID) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
}
