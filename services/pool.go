package services

import (
	"fmt"

	"spinvault/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PoolSnapshot is an immutable view of the fields the pool math needs.
// Derived values are computed from snapshots, never from live rows.
type PoolSnapshot struct {
	Balance    decimal.Decimal
	JackpotCap decimal.Decimal
}

func SnapshotPool(pool *models.PrizePool) PoolSnapshot {
	return PoolSnapshot{
		Balance:    pool.Balance,
		JackpotCap: pool.JackpotCap,
	}
}

type JackpotConfig struct {
	Percent    decimal.Decimal
	ClampToCap bool
}

// CalculateJackpot returns the jackpot candidate for the given pool state:
// a fixed fraction of the balance, clamped to the stored cap only when
// ClampToCap is set. The cap is advertised on the read API either way.
func CalculateJackpot(snap PoolSnapshot, cfg JackpotConfig) decimal.Decimal {
	jackpot := snap.Balance.Mul(cfg.Percent)
	if jackpot.IsNegative() {
		return decimal.Zero
	}
	if cfg.ClampToCap && snap.JackpotCap.IsPositive() && jackpot.GreaterThan(snap.JackpotCap) {
		return snap.JackpotCap
	}
	return jackpot
}

func CanAfford(snap PoolSnapshot, amount decimal.Decimal) bool {
	return snap.Balance.GreaterThanOrEqual(amount)
}

// GetOrCreatePool returns the singleton pool row, inserting it on first
// access. The insert is an upsert on the slot column, so two concurrent
// first calls race safely: the loser's insert is a no-op and both read the
// same row back.
func GetOrCreatePool(db *gorm.DB) (*models.PrizePool, error) {
	seed := models.PrizePool{Slot: 1}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPoolUnavailable, err)
	}

	var pool models.PrizePool
	if err := db.Where("slot = ?", 1).First(&pool).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPoolUnavailable, err)
	}
	return &pool, nil
}

// lockPool fetches the singleton row FOR UPDATE inside a transaction.
func lockPool(tx *gorm.DB) (*models.PrizePool, error) {
	if _, err := GetOrCreatePool(tx); err != nil {
		return nil, err
	}

	var pool models.PrizePool
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("slot = ?", 1).First(&pool).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPoolUnavailable, err)
	}
	return &pool, nil
}
