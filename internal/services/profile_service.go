package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"usersvc/internal/models"
	"usersvc/internal/repositories"
)

// WelcomePublisher emits the welcome notification after a profile has been
// created. Implemented by the RabbitMQ client.
type WelcomePublisher interface {
	PublishWelcomeEmail(username, email string) error
}

// ProfileService handles business logic for the user profile aggregate:
// validation, caller-identity binding, persistence, conflict translation
// and the post-create welcome notification.
type ProfileService struct {
	userRepo  repositories.UserRepository
	publisher WelcomePublisher
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository, publisher WelcomePublisher) *ProfileService {
	return &ProfileService{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// GetProfile returns the caller's own profile.
func (s *ProfileService) GetProfile(callerID uuid.UUID) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile %s: %w", callerID, err)
	}
	return models.NewUserResponse(user), nil
}

// GetBasicInfo returns the public username/email pair for any profile.
func (s *ProfileService) GetBasicInfo(userID uuid.UUID) (*models.BasicUserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile %s: %w", userID, err)
	}
	return models.NewBasicUserResponse(user), nil
}

// CreateProfile creates the caller's profile. The profile id and email are
// unconditionally bound to the authenticated caller's token claims; whatever
// the request body carried for them never reaches storage. The welcome
// notification is published only after the transaction has committed, and
// its failure never fails the call.
func (s *ProfileService) CreateProfile(callerID uuid.UUID, callerEmail string, req *models.UserProfileRequest) (*models.UserResponse, error) {
	if messages := req.Validate(); len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	preferences, err := decodePreferences(req.Preferences)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          callerID,
		Email:       callerEmail,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		City:        req.City,
		Preferences: preferences,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, translateStoreError(err)
	}

	go s.publishWelcome(user.Username, user.Email)

	return models.NewUserResponse(user), nil
}

// UpdateProfile replaces the mutable fields and the whole preference set of
// the caller's existing profile. The stored id, email and creation time are
// carried over; an update never creates a profile.
func (s *ProfileService) UpdateProfile(callerID uuid.UUID, callerEmail string, req *models.UserProfileRequest) (*models.UserResponse, error) {
	if messages := req.Validate(); len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	preferences, err := decodePreferences(req.Preferences)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile %s: %w", callerID, err)
	}

	user.Username = req.Username
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.City = req.City
	user.Preferences = preferences

	if err := s.userRepo.Update(user); err != nil {
		return nil, translateStoreError(err)
	}

	return models.NewUserResponse(user), nil
}

// decodePreferences resolves every submitted display name; one unknown name
// fails the whole operation.
func decodePreferences(names []string) ([]models.Preference, error) {
	preferences := make([]models.Preference, 0, len(names))
	for _, name := range names {
		activityType, ok := models.ActivityTypeFromDisplayName(name)
		if !ok {
			return nil, &UnknownPreferenceError{Name: name}
		}
		preferences = append(preferences, models.Preference{ActivityType: activityType})
	}
	return preferences, nil
}

// translateStoreError maps storage-layer constraint violations to the
// domain conflict errors; anything unclassified surfaces as a generic
// persistence failure.
func translateStoreError(err error) error {
	var violation *repositories.ConstraintViolationError
	if errors.As(err, &violation) {
		switch violation.Field {
		case "email":
			return ErrEmailAlreadyExists
		case "username":
			return ErrUsernameAlreadyExists
		}
	}
	return fmt.Errorf("failed to save user: %w", err)
}

// publishWelcome sends the welcome notification. Failures are only logged;
// the profile transaction has already committed.
func (s *ProfileService) publishWelcome(username, email string) {
	if s.publisher == nil {
		log.Println("RabbitMQ client is not initialized. Skipping welcome email publication.")
		return
	}
	if err := s.publisher.PublishWelcomeEmail(username, email); err != nil {
		log.Printf("Warning: Failed to publish welcome email for user %s: %v", username, err)
		return
	}
	log.Printf("Successfully published welcome email event for user %s", username)
}
