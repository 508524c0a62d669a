package account

import (
	"errors"
	"strings"
	"time"

	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email string `json:"email"`
}

// LoginHandler issues a fresh session for an existing account. The identity
// provider has already verified the email before this endpoint is reached.
func LoginHandler(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return helpers.JSONError(c, "EMAIL_REQUIRED")
	}

	var user models.User
	if err := database.DB.Where("email = ? AND is_active = true", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "USER_NOT_FOUND")
		}
		logrus.WithError(err).Error("login lookup failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "LOGIN_FAILED")
	}

	session := models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL()),
	}
	if err := database.DB.Create(&session).Error; err != nil {
		logrus.WithError(err).Error("session create failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "LOGIN_FAILED")
	}

	return helpers.JSONSuccess(c, "Logged in", fiber.Map{
		"session_token": session.SID,
		"expires_at":    session.ExpiresAt,
	})
}
