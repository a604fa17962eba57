package http

import (
	"strings"

	"freight/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorContextKey is where Authenticate stores the caller's identity.
const actorContextKey = "actorID"

// AuthMiddleware validates the session token on every fulfillment endpoint.
// The token's subject is the acting driver or agent; handlers read it back
// through ActorID to attribute ledger entries.
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// Authenticate is the core middleware function that validates the JWT session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		token, err := jwt.Parse(tokenString, func(_ *jwt.Token) (any, error) {
			return m.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			return Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return Unauthorized(c, "UNAUTHORIZED", "Failed to parse token claims")
		}

		subject, ok := claims["sub"].(string)
		if !ok {
			return Unauthorized(c, "UNAUTHORIZED", "Actor ID missing from token")
		}

		actorID, err := kernel.UUIDFromString(subject)
		if err != nil {
			return Unauthorized(c, "UNAUTHORIZED", "Invalid actor ID format in token")
		}

		c.Set(actorContextKey, actorID)

		return next(c)
	}
}

// ActorID returns the authenticated caller set by Authenticate.
func ActorID(c echo.Context) (kernel.UUID, bool) {
	actorID, ok := c.Get(actorContextKey).(kernel.UUID)
	return actorID, ok
}
