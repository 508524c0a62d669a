package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spinvault/config"
	"spinvault/controllers/game"
	"spinvault/database"
	"spinvault/jobs"
	"spinvault/routes"
	"spinvault/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	database.Connect(cfg)

	ticketPrice, err := decimal.NewFromString(cfg.TicketPrice)
	if err != nil || !ticketPrice.IsPositive() {
		logrus.Fatalf("invalid TICKET_PRICE: %s", cfg.TicketPrice)
	}

	jackpotCfg := services.JackpotConfig{
		Percent:    decimal.NewFromFloat(cfg.JackpotPercent),
		ClampToCap: cfg.JackpotClampToCap,
	}

	engine := services.NewSettlementEngine(
		database.DB,
		services.DefaultOutcomeTable(),
		rand.New(rand.NewSource(time.Now().UnixNano())),
		jackpotCfg,
		cfg.DowngradeToZero,
		cfg.TicketToken,
	)
	tickets := services.NewTicketService(
		database.DB,
		ticketPrice,
		cfg.TicketToken,
		time.Duration(cfg.FreeTicketCooldownHours)*time.Hour,
	)
	game.Init(engine, tickets, jackpotCfg)

	app := fiber.New()
	routes.Setup(app)

	scheduler := jobs.StartScheduler()

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	logrus.WithField("addr", addr).Info("server running")

	go func() {
		if err := app.Listen(addr); err != nil {
			logrus.WithError(err).Panic("failed to start server")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logrus.Info("gracefully shutting down")
	scheduler.Stop()
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}
	logrus.Info("server exited cleanly")
}
