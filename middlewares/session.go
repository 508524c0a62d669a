package middlewares

import (
	"time"

	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"

	"github.com/gofiber/fiber/v2"
)

// UserAuthMiddleware resolves X-Session-Token to an active user. The session
// itself is issued at registration/login; identity verification happens at
// the external auth provider.
func UserAuthMiddleware(c *fiber.Ctx) error {
	sid := c.Get("X-Session-Token")
	if sid == "" {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_TOKEN_REQUIRED")
	}

	var session models.Session
	if err := database.DB.Preload("User").
		Where("sid = ? AND expires_at > ?", sid, time.Now()).
		First(&session).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_OR_EXPIRED_SESSION")
	}

	if !session.User.IsActive {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "USER_INACTIVE")
	}

	c.Locals("user", session.User)
	return c.Next()
}
