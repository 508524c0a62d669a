package game

import (
	"errors"

	"spinvault/helpers"
	"spinvault/models"
	"spinvault/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SpinRequest struct {
	TicketType string `json:"ticket_type"`
}

// SpinHandler consumes one ticket and settles the spin. The response carries
// only the final result and amounts; odds and RNG state stay server-side.
func SpinHandler(c *fiber.Ctx) error {
	var req SpinRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	spin, err := engine.SettleSpin(user.ID, req.TicketType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTicketType):
			return helpers.JSONError(c, "INVALID_TICKET_TYPE")
		case errors.Is(err, services.ErrInsufficientTickets):
			return helpers.JSONError(c, "INSUFFICIENT_TICKETS")
		default:
			logrus.WithError(err).WithField("user_id", user.ID).Error("spin settlement failed")
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "SPIN_FAILED")
		}
	}

	return helpers.JSONSuccess(c, "Spin settled", fiber.Map{
		"result":         spin.Result,
		"prize":          spin.PrizeAmount,
		"prize_type":     spin.PrizeType,
		"was_downgraded": spin.WasDowngraded,
		"ticket_type":    spin.TicketType,
		"ref_id":         spin.RefID,
	})
}
