package wallet

import (
	"errors"
	"strings"

	"spinvault/database"
	"spinvault/helpers"
	"spinvault/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var errInsufficient = errors.New("insufficient balance")

type WithdrawRequest struct {
	Token   string `json:"token"`
	Amount  string `json:"amount"`
	Address string `json:"address"`
}

// WithdrawHandler locks the requested amount out of the user's balance and
// records a pending withdrawal for the chain watcher to execute. The debit
// is conditional on sufficient balance at write time.
func WithdrawHandler(c *fiber.Ctx) error {
	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	token := strings.ToUpper(strings.TrimSpace(req.Token))
	address := strings.TrimSpace(req.Address)
	if token == "" || address == "" {
		return helpers.JSONError(c, "TOKEN_AND_ADDRESS_REQUIRED")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return helpers.JSONError(c, "VALID_AMOUNT_REQUIRED")
	}

	var withdrawal models.Withdrawal

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var w models.Wallet
		if err := tx.Where("user_id = ?", user.ID).First(&w).Error; err != nil {
			return err
		}

		res := tx.Model(&models.TokenBalance{}).
			Where("wallet_id = ? AND token = ? AND balance >= ?", w.ID, token, amount).
			UpdateColumns(map[string]any{
				"balance":         gorm.Expr("balance - ?", amount),
				"total_withdrawn": gorm.Expr("total_withdrawn + ?", amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errInsufficient
		}

		withdrawal = models.Withdrawal{
			UserID:  user.ID,
			Token:   token,
			Amount:  amount,
			Address: address,
			Status:  models.ChainStatusPending,
			RefID:   uuid.New().String(),
		}
		return tx.Create(&withdrawal).Error
	})

	if txErr != nil {
		if txErr == errInsufficient {
			return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
		}
		logrus.WithError(txErr).WithField("user_id", user.ID).Error("withdrawal request failed")
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "WITHDRAWAL_FAILED")
	}

	return helpers.JSONSuccess(c, "Withdrawal requested", fiber.Map{
		"ref_id": withdrawal.RefID,
		"token":  withdrawal.Token,
		"amount": withdrawal.Amount,
		"status": withdrawal.Status,
	})
}
