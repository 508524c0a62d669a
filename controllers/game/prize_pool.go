package game

import (
	"spinvault/database"
	"spinvault/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PrizePoolHandler is the public pool transparency read. No auth, no
// mutation.
func PrizePoolHandler(c *fiber.Ctx) error {
	pool, err := services.GetOrCreatePool(database.DB)
	if err != nil {
		logrus.WithError(err).Error("failed to load prize pool")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "PRIZE_POOL_UNAVAILABLE",
		})
	}

	jackpot := services.CalculateJackpot(services.SnapshotPool(pool), jackpotCfg)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"balance":         pool.Balance,
		"jackpot":         jackpot,
		"jackpot_cap":     pool.JackpotCap,
		"total_deposited": pool.TotalDeposited,
		"total_paid_out":  pool.TotalPaidOut,
		"last_updated":    pool.UpdatedAt,
	})
}
