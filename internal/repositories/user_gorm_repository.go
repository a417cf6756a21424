package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"usersvc/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// FindByID retrieves a profile with its preference rows.
func (r *GORMUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Preferences").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// Create inserts the profile row and its preference rows in one transaction.
func (r *GORMUserRepository) Create(user *models.User) error {
	stampPreferences(user)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		if len(user.Preferences) > 0 {
			if err := tx.Create(&user.Preferences).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translateConstraintError(err)
	}
	return nil
}

// Update deletes the owner's entire preference set, saves the profile row,
// and inserts the new preference batch, all in one transaction.
func (r *GORMUserRepository) Update(user *models.User) error {
	stampPreferences(user)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Preference{}).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			return err
		}
		if len(user.Preferences) > 0 {
			if err := tx.Create(&user.Preferences).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translateConstraintError(err)
	}
	return nil
}

// stampPreferences assigns ids and the owner reference to preference rows
// about to be inserted.
func stampPreferences(user *models.User) {
	for i := range user.Preferences {
		if user.Preferences[i].ID == uuid.Nil {
			user.Preferences[i].ID = uuid.New()
		}
		user.Preferences[i].UserID = user.ID
	}
}

// translateConstraintError maps a driver-level duplicate-key failure to a
// ConstraintViolationError carrying the violated column. The column is
// recovered from the constraint name in the driver message, which both the
// Postgres and SQLite drivers include.
func translateConstraintError(err error) error {
	msg := err.Error()
	duplicated := errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
	if !duplicated {
		return fmt.Errorf("failed to save user: %w", err)
	}
	switch {
	case strings.Contains(msg, "email"):
		return &ConstraintViolationError{Field: "email", Err: err}
	case strings.Contains(msg, "username"):
		return &ConstraintViolationError{Field: "username", Err: err}
	default:
		return fmt.Errorf("failed to save user: %w", err)
	}
}
