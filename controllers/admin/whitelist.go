package admin

import (
	"strings"

	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"
)

type WhitelistRequest struct {
	Email string `json:"email"`
	Note  string `json:"note"`
}

func AddWhitelistHandler(c *fiber.Ctx) error {
	var req WhitelistRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return helpers.JSONError(c, "VALID_EMAIL_REQUIRED")
	}

	entry := models.WhitelistEntry{Email: email, Note: req.Note}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&entry).Error; err != nil {
		logrus.WithError(err).Error("whitelist insert failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "WHITELIST_FAILED")
	}

	return helpers.JSONSuccess(c, "Email whitelisted", fiber.Map{"email": email})
}

func RemoveWhitelistHandler(c *fiber.Ctx) error {
	var req WhitelistRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return helpers.JSONError(c, "EMAIL_REQUIRED")
	}

	if err := database.DB.Where("email = ?", email).
		Delete(&models.WhitelistEntry{}).Error; err != nil {
		logrus.WithError(err).Error("whitelist delete failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "WHITELIST_FAILED")
	}

	return helpers.JSONSuccess(c, "Email removed from whitelist", fiber.Map{"email": email})
}
