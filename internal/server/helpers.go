package server

import (
	"feedengine/internal/auth"
	"feedengine/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts a route parameter by name as a positive uint.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// identity returns the user id attached by the session middleware.
func identity(c *fiber.Ctx) (uint, error) {
	id, ok := auth.IdentityFrom(c.UserContext())
	if !ok {
		return 0, models.NewUnauthorizedError("Authentication required")
	}
	return id.UserID, nil
}

// currentUser loads the authenticated user. Likes and comments are recorded
// under the user's display name, so most engagement handlers need it.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := identity(c)
	if err != nil {
		return nil, err
	}
	return s.authService.CurrentUser(c.UserContext(), userID)
}
