package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ChainStatusPending   = "pending"
	ChainStatusConfirmed = "confirmed"
	ChainStatusFailed    = "failed"
)

// Deposit rows are written by the external chain watchers. TxHash is unique
// so a replayed watcher callback cannot credit twice.
type Deposit struct {
	gorm.Model

	UserID uint   `gorm:"index"`
	Token  string `gorm:"size:16"`

	Amount           decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"amount"`
	PoolContribution decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"pool_contribution"`

	TxHash string `gorm:"uniqueIndex;size:128" json:"tx_hash"`
	Status string `gorm:"size:16;index" json:"status"`
}

type Withdrawal struct {
	gorm.Model

	UserID uint   `gorm:"index"`
	Token  string `gorm:"size:16"`

	Amount  decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"amount"`
	Address string          `gorm:"size:128" json:"address"`

	TxHash *string `gorm:"size:128" json:"tx_hash"`
	Status string  `gorm:"size:16;index" json:"status"`
	RefID  string  `gorm:"size:64;uniqueIndex"`
}
