package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Email    string `gorm:"uniqueIndex;size:128" json:"email"`
	Username string `gorm:"index;size:64" json:"username"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Wallet           *Wallet           `gorm:"foreignKey:UserID"`
	Ticket           *Ticket           `gorm:"foreignKey:UserID"`
	SpinTransactions []SpinTransaction `gorm:"foreignKey:UserID"`
}

type WhitelistEntry struct {
	gorm.Model

	Email string `gorm:"uniqueIndex;size:128" json:"email"`
	Note  string `gorm:"size:255" json:"note"`
}
