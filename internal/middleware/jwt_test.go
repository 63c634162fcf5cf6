package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/sajjad-mugdho/frontend/internal/middleware"
)

const testSecret = "secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func echoUser(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	return c.SendString(userID)
}

func performWithToken(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTProtectedRequiresHeader(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.JWTProtected(testSecret), echoUser)

	resp := performWithToken(t, app, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedSetsStringSubject(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.JWTProtected(testSecret), echoUser)

	token := signToken(t, jwt.MapClaims{"sub": "github|42", "exp": time.Now().Add(time.Hour).Unix()})
	resp := performWithToken(t, app, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "github|42", string(body))
}

func TestJWTProtectedAcceptsNumericSubject(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.JWTProtected(testSecret), echoUser)

	token := signToken(t, jwt.MapClaims{"user_id": 7})
	resp := performWithToken(t, app, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTProtectedRejectsTokenWithoutSubject(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.JWTProtected(testSecret), echoUser)

	token := signToken(t, jwt.MapClaims{"role": "learner"})
	resp := performWithToken(t, app, token)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsExpiredToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.JWTProtected(testSecret), echoUser)

	token := signToken(t, jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Hour).Unix()})
	resp := performWithToken(t, app, token)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTOptionalAllowsAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.JWTOptional(testSecret), echoUser)

	resp := performWithToken(t, app, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = performWithToken(t, app, "not-a-token")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
