package wallet

import (
	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func BalanceHandler(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var wallet models.Wallet
	if err := database.DB.Preload("TokenBalances").
		Where("user_id = ?", user.ID).First(&wallet).Error; err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("wallet lookup failed")
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "WALLET_NOT_FOUND")
	}

	balances := make([]fiber.Map, 0, len(wallet.TokenBalances))
	for _, tb := range wallet.TokenBalances {
		balances = append(balances, fiber.Map{
			"token":           tb.Token,
			"balance":         tb.Balance,
			"total_deposited": tb.TotalDeposited,
			"total_withdrawn": tb.TotalWithdrawn,
		})
	}

	return helpers.JSONSuccess(c, "Balance retrieved successfully", fiber.Map{
		"address":  wallet.Address,
		"balances": balances,
	})
}
