package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user profile aggregate. The ID and Email are always
// taken from the authenticated caller's token, never from the request body.
type User struct {
	ID          uuid.UUID    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username    string       `json:"username" gorm:"uniqueIndex;type:varchar(255)"`
	Email       string       `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	FirstName   string       `json:"firstName" gorm:"type:varchar(255)"`
	LastName    string       `json:"lastName" gorm:"type:varchar(255)"`
	City        string       `json:"city" gorm:"type:varchar(255)"`
	Preferences []Preference `json:"preferences" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Preference is one activity-type tag owned by a user profile. The set is
// replaced wholesale on every profile write, never merged.
type Preference struct {
	ID           uuid.UUID    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ActivityType ActivityType `json:"activityType" gorm:"type:varchar(64);not null"`
	UserID       uuid.UUID    `json:"userId" gorm:"type:varchar(36);not null;index"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
