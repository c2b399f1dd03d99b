package middleware

import (
	"context"
	"errors"
	"strings"

	"feedengine/internal/auth"
	"feedengine/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier resolves a session token to a user id.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// SessionRequired rejects requests without a valid session. The token is read
// from the cookie named cookieName, falling back to an Authorization Bearer
// header. On success the identity is attached to the request context.
func SessionRequired(verifier TokenVerifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c, cookieName)
		if token == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			message := "Invalid session token"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "Session expired"
			}
			Logger.DebugContext(c.UserContext(), "session rejected", "error", err.Error())
			return models.RespondWithError(c, models.NewUnauthorizedError(message))
		}

		c.Locals("userID", userID)
		ctx := auth.WithIdentity(c.UserContext(), auth.Identity{UserID: userID})
		ctx = context.WithValue(ctx, UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx, cookieName string) string {
	if v := c.Cookies(cookieName); v != "" {
		return v
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
