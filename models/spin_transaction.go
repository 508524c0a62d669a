package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TicketTypeFree = "free"
	TicketTypePaid = "paid"
)

const (
	PrizeTypeNormal  = "normal"
	PrizeTypeJackpot = "jackpot"
)

// SpinTransaction is the append-only record of one settled spin. Rows are
// never updated or deleted outside of the admin reset.
type SpinTransaction struct {
	gorm.Model

	UserID     uint   `gorm:"index"`
	TicketType string `gorm:"size:8" json:"ticket_type"`

	Result    string `gorm:"size:16;index" json:"result"`
	PrizeType string `gorm:"size:8" json:"prize_type"`

	PrizeAmount   decimal.Decimal `gorm:"type:numeric(20,8);default:0;index" json:"prize_amount"`
	OriginalPrize decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"original_prize"`
	WasDowngraded bool            `gorm:"default:false" json:"was_downgraded"`

	PoolBalanceBefore decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"pool_balance_before"`
	PoolBalanceAfter  decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"pool_balance_after"`

	RefID           string  `gorm:"size:64;uniqueIndex"`
	TransactionHash *string `gorm:"size:128" json:"transaction_hash"`

	OutcomeDetails datatypes.JSON `gorm:"type:jsonb"`
}
