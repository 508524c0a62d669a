package chain

import (
	"errors"
	"strings"

	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func gormOnConflictWalletToken() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_id"}, {Name: "token"}},
		DoNothing: true,
	}
}

type WithdrawalCallback struct {
	RefID  string `json:"ref_id"`
	TxHash string `json:"tx_hash"`
	Status string `json:"status"`
}

// WithdrawalHandler finalizes a pending withdrawal: confirmed records the
// chain tx hash, failed refunds the locked amount. Already-finalized rows
// are acknowledged unchanged.
func WithdrawalHandler(c *fiber.Ctx) error {
	var req WithdrawalCallback
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	refID := strings.TrimSpace(req.RefID)
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if refID == "" {
		return helpers.JSONError(c, "REF_ID_REQUIRED")
	}
	if status != models.ChainStatusConfirmed && status != models.ChainStatusFailed {
		return helpers.JSONError(c, "INVALID_STATUS")
	}

	var withdrawal models.Withdrawal

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("ref_id = ?", refID).First(&withdrawal).Error; err != nil {
			return err
		}

		if withdrawal.Status != models.ChainStatusPending {
			return nil
		}

		updates := map[string]any{"status": status}
		if req.TxHash != "" {
			updates["tx_hash"] = req.TxHash
		}
		if err := tx.Model(&withdrawal).Updates(updates).Error; err != nil {
			return err
		}

		if status == models.ChainStatusFailed {
			var wallet models.Wallet
			if err := tx.Where("user_id = ?", withdrawal.UserID).First(&wallet).Error; err != nil {
				return err
			}
			return tx.Model(&models.TokenBalance{}).
				Where("wallet_id = ? AND token = ?", wallet.ID, withdrawal.Token).
				UpdateColumns(map[string]any{
					"balance":         gorm.Expr("balance + ?", withdrawal.Amount),
					"total_withdrawn": gorm.Expr("total_withdrawn - ?", withdrawal.Amount),
				}).Error
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "WITHDRAWAL_NOT_FOUND")
		}
		logrus.WithError(txErr).WithField("ref_id", refID).Error("withdrawal finalize failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "WITHDRAWAL_UPDATE_FAILED")
	}

	return helpers.JSONSuccess(c, "Withdrawal updated", fiber.Map{
		"ref_id": withdrawal.RefID,
		"status": withdrawal.Status,
	})
}
