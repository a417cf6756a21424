package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"usersvc/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository for
// testing. It enforces the same username/email uniqueness behavior as the
// database-backed implementation.
type MockUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

// NewMockUserRepository creates a new in-memory user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*models.User),
	}
}

// FindByID retrieves a profile by its id.
func (r *MockUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(user), nil
}

// Create stores a new profile, rejecting duplicate usernames and emails.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(user); err != nil {
		return err
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stampPreferences(user)
	r.users[user.ID] = copyUser(user)
	return nil
}

// Update replaces the stored profile and its entire preference set.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}

	user.UpdatedAt = time.Now()
	stampPreferences(user)
	r.users[user.ID] = copyUser(user)
	return nil
}

// PreferenceCount reports the total number of stored preference rows,
// used by tests to assert that failed writes left nothing behind.
func (r *MockUserRepository) PreferenceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, user := range r.users {
		count += len(user.Preferences)
	}
	return count
}

// UserCount reports the number of stored profiles.
func (r *MockUserRepository) UserCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// checkUnique rejects a write whose username or email collides with a
// different profile. A profile's own row never conflicts with itself.
func (r *MockUserRepository) checkUnique(user *models.User) error {
	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if existing.Email == user.Email {
			return &ConstraintViolationError{Field: "email", Err: errors.New("duplicate email")}
		}
		if existing.Username == user.Username {
			return &ConstraintViolationError{Field: "username", Err: errors.New("duplicate username")}
		}
	}
	return nil
}

func copyUser(user *models.User) *models.User {
	clone := *user
	clone.Preferences = make([]models.Preference, len(user.Preferences))
	copy(clone.Preferences, user.Preferences)
	return &clone
}
