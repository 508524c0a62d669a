package admin

import (
	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ResetAllHandler wipes every user-facing collection, pool included. There
// is no confirmation step; the route is meant for test environments and sits
// behind the admin signature.
func ResetAllHandler(c *fiber.Ctx) error {
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.SpinTransaction{},
			&models.WalletTransaction{},
			&models.TokenBalance{},
			&models.Deposit{},
			&models.Withdrawal{},
			&models.Ticket{},
			&models.Session{},
			&models.Wallet{},
			&models.PrizePool{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
				Unscoped().Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if txErr != nil {
		logrus.WithError(txErr).Error("reset-all failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "RESET_FAILED")
	}

	logrus.Warn("all user, wallet, ticket, and pool data wiped")
	return helpers.JSONSuccess(c, "All data reset", nil)
}
