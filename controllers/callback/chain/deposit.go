package chain

import (
	"errors"
	"strings"

	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"
	"spinvault/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DepositCallback struct {
	UserID           uint   `json:"user_id"`
	Token            string `json:"token"`
	Amount           string `json:"amount"`
	PoolContribution string `json:"pool_contribution"`
	TxHash           string `json:"tx_hash"`
}

// DepositHandler is called by the chain watcher when a deposit confirms.
// TxHash is the idempotency key: a replayed callback finds the existing row
// and acknowledges without crediting again.
func DepositHandler(c *fiber.Ctx) error {
	var req DepositCallback
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	token := strings.ToUpper(strings.TrimSpace(req.Token))
	txHash := strings.TrimSpace(req.TxHash)
	if req.UserID == 0 || token == "" || txHash == "" {
		return helpers.JSONError(c, "USER_TOKEN_AND_TX_HASH_REQUIRED")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return helpers.JSONError(c, "VALID_AMOUNT_REQUIRED")
	}

	contribution := decimal.Zero
	if req.PoolContribution != "" {
		contribution, err = decimal.NewFromString(req.PoolContribution)
		if err != nil || contribution.IsNegative() || contribution.GreaterThan(amount) {
			return helpers.JSONError(c, "INVALID_POOL_CONTRIBUTION")
		}
	}

	var existing models.Deposit
	if err := database.DB.Where("tx_hash = ?", txHash).First(&existing).Error; err == nil {
		return helpers.JSONSuccess(c, "Deposit already processed", fiber.Map{
			"tx_hash": existing.TxHash,
			"status":  existing.Status,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("deposit lookup failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DEPOSIT_FAILED")
	}

	credited := amount.Sub(contribution)

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := tx.Where("user_id = ?", req.UserID).First(&wallet).Error; err != nil {
			return err
		}

		if err := creditTokenBalance(tx, &wallet, token, credited); err != nil {
			return err
		}

		if contribution.IsPositive() {
			pool, err := services.GetOrCreatePool(tx)
			if err != nil {
				return err
			}
			if err := tx.Model(pool).UpdateColumns(map[string]any{
				"balance":         gorm.Expr("balance + ?", contribution),
				"total_deposited": gorm.Expr("total_deposited + ?", contribution),
			}).Error; err != nil {
				return err
			}
		}

		return tx.Create(&models.Deposit{
			UserID:           req.UserID,
			Token:            token,
			Amount:           amount,
			PoolContribution: contribution,
			TxHash:           txHash,
			Status:           models.ChainStatusConfirmed,
		}).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "WALLET_NOT_FOUND")
		}
		logrus.WithError(txErr).WithField("tx_hash", txHash).Error("deposit confirm failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DEPOSIT_FAILED")
	}

	return helpers.JSONSuccess(c, "Deposit confirmed", fiber.Map{
		"tx_hash":           txHash,
		"credited":          credited,
		"pool_contribution": contribution,
	})
}

func creditTokenBalance(tx *gorm.DB, wallet *models.Wallet, token string, amount decimal.Decimal) error {
	seed := models.TokenBalance{WalletID: wallet.ID, Token: token}
	if err := tx.Clauses(gormOnConflictWalletToken()).Create(&seed).Error; err != nil {
		return err
	}

	res := tx.Model(&models.TokenBalance{}).
		Where("wallet_id = ? AND token = ?", wallet.ID, token).
		UpdateColumns(map[string]any{
			"balance":         gorm.Expr("balance + ?", amount),
			"total_deposited": gorm.Expr("total_deposited + ?", amount),
		})
	if res.Error != nil {
		return res.Error
	}

	return tx.Create(&models.WalletTransaction{
		WalletID: wallet.ID,
		UserID:   wallet.UserID,
		Token:    token,
		TrxType:  "deposit",
		Amount:   amount,
		Note:     "chain deposit",
		RefID:    uuid.New().String(),
	}).Error
}
