package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// UserProfileRequest is the request body for creating or updating a profile.
// Any id or email smuggled into the body is ignored; identity always comes
// from the caller's token.
type UserProfileRequest struct {
	Username    string   `json:"username" validate:"notblank,min=3,max=255,username"`
	FirstName   string   `json:"firstName" validate:"notblank,max=255"`
	LastName    string   `json:"lastName" validate:"notblank,max=255"`
	City        string   `json:"city" validate:"notblank,max=255"`
	Preferences []string `json:"preferences" validate:"dive,notblank"`
}

// UserResponse is the full profile representation returned by the API.
type UserResponse struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	City        string   `json:"city"`
	Preferences []string `json:"preferences"`
}

// BasicUserResponse is the public subset exposed via /users-info.
type BasicUserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ErrorResponse is the single error body shape for every failure.
type ErrorResponse struct {
	Reason string `json:"reason"`
}

// NewUserResponse maps a persisted profile to its API representation,
// encoding preference tags back to display names.
func NewUserResponse(user *User) *UserResponse {
	preferences := make([]string, 0, len(user.Preferences))
	for _, p := range user.Preferences {
		preferences = append(preferences, p.ActivityType.DisplayName())
	}
	return &UserResponse{
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		City:        user.City,
		Preferences: preferences,
	}
}

// NewBasicUserResponse maps a persisted profile to its public subset.
func NewBasicUserResponse(user *User) *BasicUserResponse {
	return &BasicUserResponse{
		Username: user.Username,
		Email:    user.Email,
	}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

var validate = func() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}()

const usernameRuleMessage = "Username must be 3-255 characters long and can only include letters, numbers, dots, underscores, and hyphens."

// fieldMessages maps a struct field and the violated rule to the
// user-facing message. Every violated field contributes its message;
// validation never stops at the first failure.
var fieldMessages = map[string]map[string]string{
	"Username": {
		"notblank": "Username is mandatory.",
		"min":      usernameRuleMessage,
		"max":      usernameRuleMessage,
		"username": usernameRuleMessage,
	},
	"FirstName": {
		"notblank": "First name is mandatory.",
		"max":      "First name must be less than or equal to 255 characters.",
	},
	"LastName": {
		"notblank": "Last name is mandatory.",
		"max":      "Last name must be less than or equal to 255 characters.",
	},
	"City": {
		"notblank": "City name is mandatory.",
		"max":      "City must be less than or equal to 255 characters.",
	},
}

// Validate checks the request and returns one message per violated field.
// An empty slice means the request is valid.
func (r *UserProfileRequest) Validate() []string {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"Invalid request."}
	}

	var messages []string
	for _, e := range validationErrors {
		if byTag, ok := fieldMessages[e.StructField()]; ok {
			if msg, ok := byTag[e.Tag()]; ok {
				messages = append(messages, msg)
				continue
			}
		}
		// dive errors on the preferences slice carry an indexed field name
		messages = append(messages, "Each preference must not be blank.")
	}
	return messages
}
