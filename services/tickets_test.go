package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanClaimFreeTicket(t *testing.T) {
	cooldown := 24 * time.Hour
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, CanClaimFreeTicket(nil, cooldown, now), "first claim is always allowed")

	recent := now.Add(-1 * time.Hour)
	assert.False(t, CanClaimFreeTicket(&recent, cooldown, now))

	exact := now.Add(-24 * time.Hour)
	assert.True(t, CanClaimFreeTicket(&exact, cooldown, now), "cooldown boundary allows the claim")

	old := now.Add(-48 * time.Hour)
	assert.True(t, CanClaimFreeTicket(&old, cooldown, now))
}

func TestPurchaseTicketsRejectsNonPositiveCount(t *testing.T) {
	svc := NewTicketService(nil, decimal.NewFromInt(1), "SPIN", 24*time.Hour)

	_, err := svc.PurchaseTickets(1, 0)
	assert.ErrorIs(t, err, ErrInvalidTicketType)

	_, err = svc.PurchaseTickets(1, -3)
	assert.ErrorIs(t, err, ErrInvalidTicketType)
}

func TestSettleSpinRejectsUnknownTicketType(t *testing.T) {
	engine := NewSettlementEngine(nil, DefaultOutcomeTable(), nil, twentyPercent(), false, "SPIN")

	_, err := engine.SettleSpin(1, "bonus")
	assert.ErrorIs(t, err, ErrInvalidTicketType)
}
