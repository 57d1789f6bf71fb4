package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/streamhive/streamhive-backend/internal/utils"
)

// UserIDKey is the Locals key the auth middlewares store the caller id under.
const UserIDKey = "userID"

// RequireAuth rejects requests without a valid Bearer access token.
func RequireAuth(jwtMgr *utils.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "missing authorization header")
		}
		userID, err := jwtMgr.ParseAccess(token)
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is present and stays
// silent otherwise. Channel profiles use it so anonymous viewers still get a
// page, just with isSubscribed=false.
func OptionalAuth(jwtMgr *utils.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if userID, err := jwtMgr.ParseAccess(token); err == nil {
				c.Locals(UserIDKey, userID)
			}
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller id, empty for anonymous requests.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDKey).(string); ok {
		return v
	}
	return ""
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
