package task

import (
	"time"

	"spinvault/database"
	"spinvault/models"

	"github.com/sirupsen/logrus"
)

func CleanupExpiredSessions() {
	result := database.DB.
		Where("expires_at < ?", time.Now()).
		Delete(&models.Session{})

	if result.Error != nil {
		logrus.WithError(result.Error).Error("failed to delete expired sessions")
		return
	}
	if result.RowsAffected > 0 {
		logrus.WithField("count", result.RowsAffected).Info("deleted expired sessions")
	}
}
