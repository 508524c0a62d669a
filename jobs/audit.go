package jobs

import (
	"spinvault/database"
	"spinvault/services"
	"spinvault/task"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartScheduler runs the recurring maintenance jobs: the pool
// reconciliation audit and expired session cleanup.
func StartScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 5m", auditPrizePool); err != nil {
		logrus.WithError(err).Fatal("failed to schedule pool audit")
	}
	if _, err := c.AddFunc("@hourly", task.CleanupExpiredSessions); err != nil {
		logrus.WithError(err).Fatal("failed to schedule session cleanup")
	}

	c.Start()
	return c
}

// auditPrizePool checks the audit counters against the live balance.
// Deposits and withdrawals move independently of spins, so drift is logged
// for operators rather than corrected automatically.
func auditPrizePool() {
	pool, err := services.GetOrCreatePool(database.DB)
	if err != nil {
		logrus.WithError(err).Error("pool audit: load failed")
		return
	}

	if pool.Balance.IsNegative() {
		logrus.WithField("balance", pool.Balance).
			Error("pool audit: balance is negative, invariant broken")
		return
	}

	expected := pool.TotalDeposited.Sub(pool.TotalPaidOut)
	if !expected.Equal(pool.Balance) {
		logrus.WithFields(logrus.Fields{
			"balance":         pool.Balance,
			"total_deposited": pool.TotalDeposited,
			"total_paid_out":  pool.TotalPaidOut,
			"drift":           pool.Balance.Sub(expected),
		}).Warn("pool audit: balance does not reconcile with counters")
	}
}
