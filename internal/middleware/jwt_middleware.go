package middleware

import (
	"fmt"
	"log"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"usersvc/internal/models"
	"usersvc/internal/services"
)

// rolesClaim is the token claim carrying the caller's groups, as issued by
// the identity provider.
const rolesClaim = "cognito:groups"

const (
	localUserID = "user_id"
	localEmail  = "email"
)

// AuthRequired is a Fiber middleware that validates the bearer JWT and, when
// requiredRole is non-empty, checks that the token carries that role. The
// verified subject and email claims are stored on the request context for
// the identity accessors below.
func AuthRequired(jwtSecret string, requiredRole string) fiber.Handler {
	secret := []byte(jwtSecret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Reason: "Authorization header is required.",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Reason: "Authorization header format must be 'Bearer <token>'.",
			})
		}

		claims, err := validateToken(secret, parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Reason: "Invalid or expired token.",
			})
		}

		if requiredRole != "" && !hasRole(claims, requiredRole) {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{
				Reason: "Insufficient role.",
			})
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Locals(localUserID, sub)
		}
		if email, ok := claims["email"].(string); ok {
			c.Locals(localEmail, email)
		}

		return c.Next()
	}
}

// CallerID resolves the authenticated caller's profile identifier from the
// verified token subject.
func CallerID(c *fiber.Ctx) (uuid.UUID, error) {
	sub, ok := c.Locals(localUserID).(string)
	if !ok || sub == "" {
		return uuid.Nil, services.ErrMissingIdentity
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, services.ErrMissingIdentity
	}
	return id, nil
}

// CallerEmail resolves the authenticated caller's verified email claim.
func CallerEmail(c *fiber.Ctx) (string, error) {
	email, ok := c.Locals(localEmail).(string)
	if !ok || email == "" {
		return "", services.ErrMissingEmailClaim
	}
	return email, nil
}

// validateToken parses and validates an HS256 JWT, returning its claims.
func validateToken(secret []byte, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// hasRole reports whether the token's groups claim contains the role.
func hasRole(claims jwt.MapClaims, role string) bool {
	groups, ok := claims[rolesClaim].([]interface{})
	if !ok {
		return false
	}
	for _, g := range groups {
		if name, ok := g.(string); ok && name == role {
			return true
		}
	}
	return false
}
