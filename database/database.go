package database

import (
	"spinvault/config"
	"spinvault/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	DB = db
	logrus.Info("connected to database")

	if cfg.DBAutoMigrate {
		logrus.Info("starting auto-migration")

		if err := DB.AutoMigrate(
			&models.User{},
			&models.WhitelistEntry{},
			&models.Session{},
			&models.Wallet{},
			&models.TokenBalance{},
			&models.WalletTransaction{},
			&models.PrizePool{},
			&models.Ticket{},
			&models.SpinTransaction{},
			&models.Deposit{},
			&models.Withdrawal{},
		); err != nil {
			logrus.WithError(err).Fatal("failed to auto-migrate database")
		}

		logrus.Info("auto migration completed")
	}
}
