package account

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func sessionTTL() time.Duration {
	hours := 72
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}
	return time.Duration(hours) * time.Hour
}

// RegisterHandler creates the local account for an externally authenticated
// email. The whitelist is consulted before any wallet or ticket state exists
// for the address.
func RegisterHandler(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return helpers.JSONError(c, "VALID_EMAIL_REQUIRED")
	}

	var entry models.WhitelistEntry
	if err := database.DB.Where("email = ?", email).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusForbidden, "EMAIL_NOT_WHITELISTED")
		}
		logrus.WithError(err).Error("whitelist lookup failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "REGISTRATION_FAILED")
	}

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "USER_ALREADY_EXISTS")
	}

	var session models.Session

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:    email,
			Username: strings.TrimSpace(req.Username),
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		wallet := models.Wallet{
			UserID:  user.ID,
			Address: "sv_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
		}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}

		session = models.Session{
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(sessionTTL()),
		}
		return tx.Create(&session).Error
	})

	if txErr != nil {
		logrus.WithError(txErr).Error("registration failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "REGISTRATION_FAILED")
	}

	return helpers.JSONSuccess(c, "Account registered", fiber.Map{
		"email":         email,
		"session_token": session.SID,
		"expires_at":    session.ExpiresAt,
	})
}
