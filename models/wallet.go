package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Wallet struct {
	gorm.Model

	UserID  uint   `gorm:"uniqueIndex"`
	Address string `gorm:"uniqueIndex;size:128" json:"address"`

	TokenBalances []TokenBalance      `gorm:"foreignKey:WalletID"`
	Transactions  []WalletTransaction `gorm:"foreignKey:WalletID"`
}

type TokenBalance struct {
	gorm.Model

	WalletID uint   `gorm:"index:idx_wallet_token,unique"`
	Token    string `gorm:"index:idx_wallet_token,unique;size:16" json:"token"`

	Balance        decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"balance"`
	TotalDeposited decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"total_deposited"`
	TotalWithdrawn decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"total_withdrawn"`
}

type WalletTransaction struct {
	gorm.Model

	WalletID uint   `gorm:"index"`
	UserID   uint   `gorm:"index"`
	Token    string `gorm:"size:16"`
	TrxType  string `gorm:"size:16;index"`

	Amount        decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(20,8);default:0" json:"balance_after"`

	Note  string `gorm:"size:255"`
	RefID string `gorm:"size:64;index"`
}
