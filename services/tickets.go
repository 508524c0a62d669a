package services

import (
	"errors"
	"fmt"
	"time"

	"spinvault/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketService struct {
	db       *gorm.DB
	price    decimal.Decimal
	token    string
	cooldown time.Duration
}

func NewTicketService(db *gorm.DB, price decimal.Decimal, token string, cooldown time.Duration) *TicketService {
	return &TicketService{db: db, price: price, token: token, cooldown: cooldown}
}

// getOrCreateTicket upserts the per-user ticket row and locks it for the
// rest of the transaction.
func getOrCreateTicket(tx *gorm.DB, userID uint) (*models.Ticket, error) {
	seed := models.Ticket{UserID: userID}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var ticket models.Ticket
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ClaimFreeTicket grants one free ticket unless the 24h cooldown from the
// previous claim is still running.
func (s *TicketService) ClaimFreeTicket(userID uint) (*models.Ticket, error) {
	var ticket *models.Ticket

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		t, err := getOrCreateTicket(tx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		if t.LastFreeTicketClaim != nil {
			elapsed := now.Sub(*t.LastFreeTicketClaim)
			if elapsed < s.cooldown {
				return fmt.Errorf("%w: %s remaining", ErrCooldownActive, (s.cooldown - elapsed).Round(time.Second))
			}
		}

		t.FreeTickets++
		t.LastFreeTicketClaim = &now
		if err := tx.Model(t).Updates(map[string]any{
			"free_tickets":           t.FreeTickets,
			"last_free_ticket_claim": t.LastFreeTicketClaim,
		}).Error; err != nil {
			return err
		}

		ticket = t
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}
	return ticket, nil
}

// PurchaseTickets debits the user's token balance by count * price and
// credits that many paid tickets, all in one transaction.
func (s *TicketService) PurchaseTickets(userID uint, count int) (*models.Ticket, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: ticket count must be positive", ErrInvalidTicketType)
	}
	cost := s.price.Mul(decimal.NewFromInt(int64(count)))

	var ticket *models.Ticket

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			return err
		}

		// Decrement-if-sufficient: the WHERE clause is the balance check,
		// applied at write time.
		res := tx.Model(&models.TokenBalance{}).
			Where("wallet_id = ? AND token = ? AND balance >= ?", wallet.ID, s.token, cost).
			UpdateColumn("balance", gorm.Expr("balance - ?", cost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		var balance models.TokenBalance
		if err := tx.Where("wallet_id = ? AND token = ?", wallet.ID, s.token).
			First(&balance).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.WalletTransaction{
			WalletID:      wallet.ID,
			UserID:        userID,
			Token:         s.token,
			TrxType:       "debit",
			Amount:        cost,
			BalanceBefore: balance.Balance.Add(cost),
			BalanceAfter:  balance.Balance,
			Note:          fmt.Sprintf("purchase %d spin tickets", count),
			RefID:         uuid.New().String(),
		}).Error; err != nil {
			return err
		}

		t, err := getOrCreateTicket(tx, userID)
		if err != nil {
			return err
		}

		t.PaidTickets += count
		t.TotalTicketsPurchased += count
		t.TotalSpent = t.TotalSpent.Add(cost)
		if err := tx.Model(t).Updates(map[string]any{
			"paid_tickets":            t.PaidTickets,
			"total_tickets_purchased": t.TotalTicketsPurchased,
			"total_spent":             t.TotalSpent,
		}).Error; err != nil {
			return err
		}

		ticket = t
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}
	return ticket, nil
}

// TicketStatus returns the user's ticket row without creating one.
func (s *TicketService) TicketStatus(userID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.Where("user_id = ?", userID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Ticket{UserID: userID}, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// CanClaimFreeTicket reports whether the cooldown allows a claim for the
// given ticket snapshot at time now.
func CanClaimFreeTicket(lastClaim *time.Time, cooldown time.Duration, now time.Time) bool {
	if lastClaim == nil {
		return true
	}
	return now.Sub(*lastClaim) >= cooldown
}
