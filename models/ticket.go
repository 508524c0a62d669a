package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Ticket struct {
	gorm.Model

	UserID uint `gorm:"uniqueIndex"`

	FreeTickets int `gorm:"default:0" json:"free_tickets"`
	PaidTickets int `gorm:"default:0" json:"paid_tickets"`

	LastFreeTicketClaim *time.Time `json:"last_free_ticket_claim"`

	TotalTicketsPurchased int             `gorm:"default:0" json:"total_tickets_purchased"`
	TotalSpent            decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"total_spent"`
}
