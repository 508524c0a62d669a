package services

import (
	"encoding/json"
	"math/rand"
	"sync"

	"spinvault/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettlementEngine resolves spins against the shared prize pool. One engine
// serves all requests; the store handle is injected, never reached through
// package state.
type SettlementEngine struct {
	db    *gorm.DB
	table *OutcomeTable

	mu  sync.Mutex
	rng *rand.Rand

	jackpot         JackpotConfig
	downgradeToZero bool
	payoutToken     string
}

func NewSettlementEngine(db *gorm.DB, table *OutcomeTable, rng *rand.Rand, jackpot JackpotConfig, downgradeToZero bool, payoutToken string) *SettlementEngine {
	return &SettlementEngine{
		db:              db,
		table:           table,
		rng:             rng,
		jackpot:         jackpot,
		downgradeToZero: downgradeToZero,
		payoutToken:     payoutToken,
	}
}

func (e *SettlementEngine) draw() OutcomeEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table.Draw(e.rng)
}

// resolvePrize applies the affordability downgrade policy to a candidate
// prize. cap-to-balance pays what the pool has left; cap-to-zero voids the
// prize entirely.
func resolvePrize(candidate decimal.Decimal, balance decimal.Decimal, toZero bool) (prize decimal.Decimal, downgraded bool) {
	if candidate.LessThanOrEqual(balance) {
		return candidate, false
	}
	if toZero {
		return decimal.Zero, true
	}
	return balance, true
}

// SettleSpin consumes one ticket of the requested type for the user, draws
// an outcome, and settles it against the pool as one transaction. Either
// every effect lands (ticket decrement, pool debit, wallet credit, history
// row) or none do.
func (e *SettlementEngine) SettleSpin(userID uint, ticketType string) (*models.SpinTransaction, error) {
	column := ""
	switch ticketType {
	case models.TicketTypeFree:
		column = "free_tickets"
	case models.TicketTypePaid:
		column = "paid_tickets"
	default:
		return nil, ErrInvalidTicketType
	}

	var spin models.SpinTransaction

	txErr := e.db.Transaction(func(tx *gorm.DB) error {
		// Decrement-if-positive closes the race between two spins from the
		// same user; zero rows affected means no ticket to spend.
		res := tx.Model(&models.Ticket{}).
			Where("user_id = ? AND "+column+" > 0", userID).
			UpdateColumn(column, gorm.Expr(column+" - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientTickets
		}

		pool, err := lockPool(tx)
		if err != nil {
			return err
		}

		outcome := e.draw()

		candidate := outcome.Prize
		prizeType := models.PrizeTypeNormal
		switch outcome.Result {
		case ResultJackpot:
			candidate = CalculateJackpot(SnapshotPool(pool), e.jackpot)
			prizeType = models.PrizeTypeJackpot
		case ResultFreeSpin:
			if err := creditFreeTicket(tx, userID); err != nil {
				return err
			}
			candidate = decimal.Zero
		}

		prize, downgraded, before, err := e.debitPool(tx, pool, candidate)
		if err != nil {
			return err
		}

		if prize.IsPositive() {
			if err := creditWallet(tx, userID, e.payoutToken, prize, "spin prize: "+outcome.Result); err != nil {
				return err
			}
		}

		details, _ := json.Marshal(map[string]any{
			"result":     outcome.Result,
			"prize_type": prizeType,
			"policy":     downgradePolicy(e.downgradeToZero),
		})

		spin = models.SpinTransaction{
			UserID:            userID,
			TicketType:        ticketType,
			Result:            outcome.Result,
			PrizeType:         prizeType,
			PrizeAmount:       prize,
			OriginalPrize:     candidate,
			WasDowngraded:     downgraded,
			PoolBalanceBefore: before,
			PoolBalanceAfter:  before.Sub(prize),
			RefID:             uuid.New().String(),
			OutcomeDetails:    details,
		}
		return tx.Create(&spin).Error
	})

	if txErr != nil {
		return nil, txErr
	}
	return &spin, nil
}

// debitPool takes prizeAmount out of the pool with a conditional update that
// re-checks affordability at write time. On a miss it reloads the row,
// re-applies the downgrade, and retries once; a second miss resolves as a
// full downgrade to whatever the pool holds, so the user never errors out of
// a win the pool partially covers.
func (e *SettlementEngine) debitPool(tx *gorm.DB, pool *models.PrizePool, candidate decimal.Decimal) (prize decimal.Decimal, downgraded bool, before decimal.Decimal, err error) {
	before = pool.Balance
	prize, downgraded = resolvePrize(candidate, pool.Balance, e.downgradeToZero)

	if prize.IsZero() {
		return prize, downgraded, before, nil
	}

	for attempt := 0; ; attempt++ {
		res := tx.Model(&models.PrizePool{}).
			Where("id = ? AND balance >= ?", pool.ID, prize).
			UpdateColumns(map[string]any{
				"balance":        gorm.Expr("balance - ?", prize),
				"total_paid_out": gorm.Expr("total_paid_out + ?", prize),
			})
		if res.Error != nil {
			return decimal.Zero, false, before, res.Error
		}
		if res.RowsAffected == 1 {
			return prize, downgraded, before, nil
		}

		// Balance moved underneath the earlier read. Reload and retry the
		// downgrade; after the second miss pay out exactly what is left.
		fresh := models.PrizePool{}
		if ferr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", pool.ID).First(&fresh).Error; ferr != nil {
			return decimal.Zero, false, before, ferr
		}
		before = fresh.Balance

		if attempt == 0 {
			prize, downgraded = resolvePrize(candidate, fresh.Balance, e.downgradeToZero)
		} else {
			logrus.WithField("pool_balance", fresh.Balance).
				Warn("pool debit retry exhausted, settling as full downgrade")
			prize = fresh.Balance
			downgraded = true
		}
		if prize.IsZero() {
			return prize, true, before, nil
		}
	}
}

func downgradePolicy(toZero bool) string {
	if toZero {
		return "cap_to_zero"
	}
	return "cap_to_balance"
}

func creditFreeTicket(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.Ticket{}).
		Where("user_id = ?", userID).
		UpdateColumn("free_tickets", gorm.Expr("free_tickets + 1")).Error
}

// creditWallet adds amount to the user's balance for the given token,
// creating the wallet rows on first credit, and appends the audit record.
func creditWallet(tx *gorm.DB, userID uint, token string, amount decimal.Decimal, note string) error {
	var wallet models.Wallet
	if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return err
	}

	seed := models.TokenBalance{WalletID: wallet.ID, Token: token}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_id"}, {Name: "token"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return err
	}

	var balance models.TokenBalance
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("wallet_id = ? AND token = ?", wallet.ID, token).
		First(&balance).Error; err != nil {
		return err
	}

	oldBalance := balance.Balance
	balance.Balance = balance.Balance.Add(amount)
	if err := tx.Model(&balance).Update("balance", balance.Balance).Error; err != nil {
		return err
	}

	return tx.Create(&models.WalletTransaction{
		WalletID:      wallet.ID,
		UserID:        userID,
		Token:         token,
		TrxType:       "credit",
		Amount:        amount,
		BalanceBefore: oldBalance,
		BalanceAfter:  balance.Balance,
		Note:          note,
		RefID:         uuid.New().String(),
	}).Error
}
