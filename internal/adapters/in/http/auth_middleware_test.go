package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	freighthttp "freight/internal/adapters/in/http"
	"freight/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "session-secret-for-tests"

func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func callAuthenticated(t *testing.T, authHeader string) (*httptest.ResponseRecorder, kernel.UUID, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipment/42/location", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		actorID kernel.UUID
		reached bool
	)

	middleware := freighthttp.NewAuthMiddleware(testSecret)
	handler := middleware.Authenticate(func(c echo.Context) error {
		actorID, reached = freighthttp.ActorID(c)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec, actorID, reached
}

func TestAuthMiddleware_ValidTokenSetsActor(t *testing.T) {
	subject := kernel.NewUUID()
	token := signToken(t, testSecret, subject.String(), time.Now().Add(time.Hour))

	rec, actorID, reached := callAuthenticated(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, reached)
	assert.True(t, actorID.IsEqual(subject))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, _, reached := callAuthenticated(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_NotBearerFormat(t *testing.T) {
	rec, _, reached := callAuthenticated(t, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	subject := kernel.NewUUID()
	token := signToken(t, testSecret, subject.String(), time.Now().Add(-time.Hour))

	rec, _, reached := callAuthenticated(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	subject := kernel.NewUUID()
	token := signToken(t, "a-different-secret", subject.String(), time.Now().Add(time.Hour))

	rec, _, reached := callAuthenticated(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_SubjectIsNotAnID(t *testing.T) {
	token := signToken(t, testSecret, "driver-jose", time.Now().Add(time.Hour))

	rec, _, reached := callAuthenticated(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}
