package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PrizePool is a singleton: Slot is always 1 and carries a unique index so
// concurrent first-access inserts cannot produce a second row.
type PrizePool struct {
	gorm.Model

	Slot int `gorm:"uniqueIndex;default:1"`

	Balance        decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"balance"`
	TotalDeposited decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"total_deposited"`
	TotalPaidOut   decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"total_paid_out"`
	JackpotCap     decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"jackpot_cap"`
}
