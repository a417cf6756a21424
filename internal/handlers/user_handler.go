package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"usersvc/internal/middleware"
	"usersvc/internal/models"
	"usersvc/internal/services"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service *services.ProfileService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.ProfileService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the profile routes. The /users routes require
// the caller to hold the "user" role; /users-info only requires a valid
// token. Auth is attached per route: /users-info shares the /users prefix,
// so group-level middleware would leak across the two route sets.
func (h *UserHandler) RegisterRoutes(app *fiber.App, jwtSecret string) {
	authUser := middleware.AuthRequired(jwtSecret, "user")
	authAny := middleware.AuthRequired(jwtSecret, "")

	profileRoutes := app.Group("/users")
	profileRoutes.Get("/", authUser, h.HandleGetProfile)
	profileRoutes.Post("/", authUser, h.HandleCreateProfile)
	profileRoutes.Put("/", authUser, h.HandleUpdateProfile)

	infoRoutes := app.Group("/users-info")
	infoRoutes.Get("/:userId", authAny, h.HandleGetBasicInfo)
}

// HandleGetProfile returns the authenticated caller's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, err)
	}

	profile, err := h.service.GetProfile(callerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// HandleCreateProfile creates the authenticated caller's profile.
func (h *UserHandler) HandleCreateProfile(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, err)
	}
	callerEmail, err := middleware.CallerEmail(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.UserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: "Invalid request body.",
		})
	}

	log.Printf("Creating new user profile for caller %s", callerID)

	profile, err := h.service.CreateProfile(callerID, callerEmail, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// HandleUpdateProfile replaces the authenticated caller's profile.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, err)
	}
	callerEmail, err := middleware.CallerEmail(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.UserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: "Invalid request body.",
		})
	}

	log.Printf("Updating user profile for caller %s", callerID)

	profile, err := h.service.UpdateProfile(callerID, callerEmail, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// HandleGetBasicInfo returns the public username/email pair for a profile.
func (h *UserHandler) HandleGetBasicInfo(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: "Invalid user id.",
		})
	}

	log.Printf("Getting basic user data for user %s", userID)

	info, err := h.service.GetBasicInfo(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(info)
}

// respondError maps a domain error to its HTTP status and user-facing
// reason. Unclassified errors are logged and answered with a generic 500;
// internal detail never reaches the caller.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: validationErr.Reason(),
		})
	}

	var unknownPref *services.UnknownPreferenceError
	if errors.As(err, &unknownPref) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: unknownPref.Reason(),
		})
	}

	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: "User does not exists.",
		})
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: "Email already exists.",
		})
	case errors.Is(err, services.ErrUsernameAlreadyExists):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: "Username already exists.",
		})
	case errors.Is(err, services.ErrMissingIdentity):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: "Invalid token, user id not found.",
		})
	case errors.Is(err, services.ErrMissingEmailClaim):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Reason: "Invalid token, email not found.",
		})
	default:
		log.Printf("Unexpected error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Reason: "Unexpected error.",
		})
	}
}
