package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"usersvc/internal/handlers"
	"usersvc/internal/models"
	"usersvc/internal/repositories"
	"usersvc/internal/services"
)

// welcomeRecorder captures asynchronous welcome publications.
type welcomeRecorder struct {
	calls chan [2]string
}

func newWelcomeRecorder() *welcomeRecorder {
	return &welcomeRecorder{calls: make(chan [2]string, 8)}
}

func (r *welcomeRecorder) PublishWelcomeEmail(username, email string) error {
	r.calls <- [2]string{username, email}
	return nil
}

// setupApp builds the Fiber app over the in-memory repository.
func setupApp() (*fiber.App, *repositories.MockUserRepository, *welcomeRecorder, string) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	userRepo := repositories.NewMockUserRepository()
	recorder := newWelcomeRecorder()
	profileService := services.NewProfileService(userRepo, recorder)
	userHandler := handlers.NewUserHandler(profileService)

	app := fiber.New()
	userHandler.RegisterRoutes(app, jwtSecret)

	return app, userRepo, recorder, jwtSecret
}

// signToken mints an HS256 token with the given claims.
func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	claims["iat"] = time.Now().Unix()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func userToken(t *testing.T, secret string, userID uuid.UUID, email string) string {
	return signToken(t, secret, jwt.MapClaims{
		"sub":            userID.String(),
		"email":          email,
		"cognito:groups": []interface{}{"user"},
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}

func profileBody() map[string]interface{} {
	return map[string]interface{}{
		"username":    "john.doe_99",
		"firstName":   "John",
		"lastName":    "Doe",
		"city":        "Madrid",
		"preferences": []string{"Soccer", "Baseball", "Food & Dining"},
	}
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestProfileEndpointsWithoutAuth(t *testing.T) {
	app, userRepo, _, _ := setupApp()

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut} {
		resp := doJSON(t, app, method, "/users", "", profileBody())
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodPost, "/users", "not-a-valid-token", profileBody())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// nothing reached the service
	assert.Equal(t, 0, userRepo.UserCount())
}

func TestProfileEndpointsRequireUserRole(t *testing.T) {
	app, userRepo, _, secret := setupApp()

	token := signToken(t, secret, jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "john@example.com",
	})

	resp := doJSON(t, app, http.MethodPost, "/users", token, profileBody())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, 0, userRepo.UserCount())
}

func TestCreateProfileAndRoundTrip(t *testing.T) {
	app, _, recorder, secret := setupApp()

	callerID := uuid.New()
	token := userToken(t, secret, callerID, "john@example.com")

	// smuggled id/email must be overwritten by the token claims
	body := profileBody()
	body["id"] = uuid.New().String()
	body["email"] = "attacker@example.com"

	resp := doJSON(t, app, http.MethodPost, "/users", token, body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.UserResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, "john.doe_99", created.Username)
	assert.Equal(t, "john@example.com", created.Email)
	assert.ElementsMatch(t, []string{"Soccer", "Baseball", "Food & Dining"}, created.Preferences)

	select {
	case call := <-recorder.calls:
		assert.Equal(t, "john.doe_99", call[0])
		assert.Equal(t, "john@example.com", call[1])
	case <-time.After(time.Second):
		t.Fatal("expected a welcome email publication")
	}

	resp = doJSON(t, app, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.UserResponse
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "john.doe_99", fetched.Username)
	assert.Equal(t, "john@example.com", fetched.Email)
	assert.ElementsMatch(t, []string{"Soccer", "Baseball", "Food & Dining"}, fetched.Preferences)
}

func TestCreateProfileValidationAggregation(t *testing.T) {
	app, userRepo, _, secret := setupApp()

	token := userToken(t, secret, uuid.New(), "john@example.com")
	body := map[string]interface{}{
		"username":  "",
		"firstName": "",
		"lastName":  "",
		"city":      "",
	}

	resp := doJSON(t, app, http.MethodPost, "/users", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp models.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Contains(t, errResp.Reason, "Username is mandatory.")
	assert.Contains(t, errResp.Reason, "First name is mandatory.")
	assert.Contains(t, errResp.Reason, "Last name is mandatory.")
	assert.Contains(t, errResp.Reason, "City name is mandatory.")

	assert.Equal(t, 0, userRepo.UserCount())
	assert.Equal(t, 0, userRepo.PreferenceCount())
}

func TestCreateProfileUnknownPreference(t *testing.T) {
	app, userRepo, _, secret := setupApp()

	token := userToken(t, secret, uuid.New(), "john@example.com")
	body := profileBody()
	body["preferences"] = []string{"Soccer", "Quidditch"}

	resp := doJSON(t, app, http.MethodPost, "/users", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp models.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "Unknown preference 'Quidditch'.", errResp.Reason)

	assert.Equal(t, 0, userRepo.UserCount())
}

func TestCreateProfileMissingEmailClaim(t *testing.T) {
	app, userRepo, _, secret := setupApp()

	token := signToken(t, secret, jwt.MapClaims{
		"sub":            uuid.New().String(),
		"cognito:groups": []interface{}{"user"},
	})

	resp := doJSON(t, app, http.MethodPost, "/users", token, profileBody())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp models.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "Invalid token, email not found.", errResp.Reason)

	assert.Equal(t, 0, userRepo.UserCount())
}

func TestCreateProfileDuplicateUsernameAndEmail(t *testing.T) {
	app, userRepo, _, secret := setupApp()

	firstToken := userToken(t, secret, uuid.New(), "first@example.com")
	resp := doJSON(t, app, http.MethodPost, "/users", firstToken, profileBody())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// same username, different caller
	secondToken := userToken(t, secret, uuid.New(), "second@example.com")
	resp = doJSON(t, app, http.MethodPost, "/users", secondToken, profileBody())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp models.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "Username already exists.", errResp.Reason)

	// same email, different username
	thirdToken := userToken(t, secret, uuid.New(), "first@example.com")
	body := profileBody()
	body["username"] = "someone.else"
	resp = doJSON(t, app, http.MethodPost, "/users", thirdToken, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	decodeBody(t, resp, &errResp)
	assert.Equal(t, "Email already exists.", errResp.Reason)

	assert.Equal(t, 1, userRepo.UserCount())
}

func TestUpdateProfileNotFound(t *testing.T) {
	app, userRepo, _, secret := setupApp()

	token := userToken(t, secret, uuid.New(), "john@example.com")

	resp := doJSON(t, app, http.MethodPut, "/users", token, profileBody())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp models.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "User does not exists.", errResp.Reason)

	assert.Equal(t, 0, userRepo.PreferenceCount())
}

func TestUpdateProfileReplacesPreferences(t *testing.T) {
	app, userRepo, _, secret := setupApp()

	token := userToken(t, secret, uuid.New(), "john@example.com")
	resp := doJSON(t, app, http.MethodPost, "/users", token, profileBody())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	body := profileBody()
	body["city"] = "Berlin"
	body["preferences"] = []string{"Hiking", "Baking"}

	resp = doJSON(t, app, http.MethodPut, "/users", token, body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.UserResponse
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Berlin", updated.City)
	assert.ElementsMatch(t, []string{"Hiking", "Baking"}, updated.Preferences)

	resp = doJSON(t, app, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.UserResponse
	decodeBody(t, resp, &fetched)
	assert.ElementsMatch(t, []string{"Hiking", "Baking"}, fetched.Preferences)
	assert.Equal(t, 2, userRepo.PreferenceCount())
}

func TestGetBasicUserInfo(t *testing.T) {
	app, _, _, secret := setupApp()

	callerID := uuid.New()
	token := userToken(t, secret, callerID, "john@example.com")
	resp := doJSON(t, app, http.MethodPost, "/users", token, profileBody())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// any authenticated caller may read basic info, no role needed
	readerToken := signToken(t, secret, jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "reader@example.com",
	})

	resp = doJSON(t, app, http.MethodGet, "/users-info/"+callerID.String(), readerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var info models.BasicUserResponse
	decodeBody(t, resp, &info)
	assert.Equal(t, "john.doe_99", info.Username)
	assert.Equal(t, "john@example.com", info.Email)

	resp = doJSON(t, app, http.MethodGet, "/users-info/"+uuid.New().String(), readerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp models.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "User does not exists.", errResp.Reason)

	resp = doJSON(t, app, http.MethodGet, "/users-info/not-a-uuid", readerToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetProfileBeforeCreation(t *testing.T) {
	app, _, _, secret := setupApp()

	token := userToken(t, secret, uuid.New(), "john@example.com")

	resp := doJSON(t, app, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp models.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "User does not exists.", errResp.Reason)
}
