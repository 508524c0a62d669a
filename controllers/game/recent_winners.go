package game

import (
	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const recentWinnersLimit = 10

// RecentWinnersHandler returns the latest winning spins with the winner's
// email masked. Users that cannot be resolved (deleted accounts) show up as
// Anonymous rather than dropping the row.
func RecentWinnersHandler(c *fiber.Ctx) error {
	var spins []models.SpinTransaction
	if err := database.DB.
		Where("prize_amount > 0").
		Order("created_at DESC").
		Limit(recentWinnersLimit).
		Find(&spins).Error; err != nil {
		logrus.WithError(err).Error("failed to load recent winners")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "RECENT_WINNERS_UNAVAILABLE",
		})
	}

	winners := make([]fiber.Map, 0, len(spins))
	for _, spin := range spins {
		username := "Anonymous"
		var user models.User
		if err := database.DB.First(&user, spin.UserID).Error; err == nil {
			username = helpers.MaskEmail(user.Email)
		}

		winners = append(winners, fiber.Map{
			"username":    username,
			"prize":       spin.PrizeAmount,
			"is_jackpot":  spin.PrizeType == models.PrizeTypeJackpot,
			"ticket_type": spin.TicketType,
			"timestamp":   spin.CreatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"winners": winners,
	})
}
