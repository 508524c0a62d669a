package game

import (
	"errors"

	"spinvault/helpers"
	"spinvault/models"
	"spinvault/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func TicketStatusHandler(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	ticket, err := tickets.TicketStatus(user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load ticket status")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "TICKET_STATUS_UNAVAILABLE")
	}

	return helpers.JSONSuccess(c, "Ticket status", fiber.Map{
		"free_tickets":            ticket.FreeTickets,
		"paid_tickets":            ticket.PaidTickets,
		"last_free_ticket_claim":  ticket.LastFreeTicketClaim,
		"total_tickets_purchased": ticket.TotalTicketsPurchased,
		"total_spent":             ticket.TotalSpent,
	})
}

func ClaimFreeTicketHandler(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	ticket, err := tickets.ClaimFreeTicket(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrCooldownActive) {
			return helpers.JSONError(c, "FREE_TICKET_COOLDOWN_ACTIVE")
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("free ticket claim failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "CLAIM_FAILED")
	}

	return helpers.JSONSuccess(c, "Free ticket claimed", fiber.Map{
		"free_tickets": ticket.FreeTickets,
		"paid_tickets": ticket.PaidTickets,
	})
}

type PurchaseTicketsRequest struct {
	Count int `json:"count"`
}

func PurchaseTicketsHandler(c *fiber.Ctx) error {
	var req PurchaseTicketsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	ticket, err := tickets.PurchaseTickets(user.ID, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTicketType):
			return helpers.JSONError(c, "INVALID_TICKET_COUNT")
		case errors.Is(err, services.ErrInsufficientBalance):
			return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "WALLET_NOT_FOUND")
		default:
			logrus.WithError(err).WithField("user_id", user.ID).Error("ticket purchase failed")
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "PURCHASE_FAILED")
		}
	}

	return helpers.JSONSuccess(c, "Tickets purchased", fiber.Map{
		"free_tickets":            ticket.FreeTickets,
		"paid_tickets":            ticket.PaidTickets,
		"total_tickets_purchased": ticket.TotalTicketsPurchased,
		"total_spent":             ticket.TotalSpent,
	})
}
