package game

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"spinvault/database"
	"spinvault/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupReadAPI(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.DB = db
	Init(nil, nil, services.JackpotConfig{Percent: decimal.NewFromFloat(0.20)})

	app := fiber.New()
	app.Get("/api/game/prize-pool", PrizePoolHandler)
	app.Get("/api/game/recent-winners", RecentWinnersHandler)
	return app, mock
}

func TestPrizePoolHandler(t *testing.T) {
	app, mock := setupReadAPI(t)

	now := time.Now()
	pool := sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "deleted_at",
		"slot", "balance", "total_deposited", "total_paid_out", "jackpot_cap",
	}).AddRow(1, now, now, nil, 1, "100", "150", "50", "1000")

	mock.ExpectQuery(`INSERT INTO "prize_pools"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "prize_pools"`).WillReturnRows(pool)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/game/prize-pool", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var got struct {
		Balance        decimal.Decimal `json:"balance"`
		Jackpot        decimal.Decimal `json:"jackpot"`
		JackpotCap     decimal.Decimal `json:"jackpot_cap"`
		TotalDeposited decimal.Decimal `json:"total_deposited"`
		TotalPaidOut   decimal.Decimal `json:"total_paid_out"`
	}
	require.NoError(t, json.Unmarshal(body, &got))

	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.Jackpot.Equal(decimal.NewFromInt(20)), "jackpot is 20%% of balance")
	assert.True(t, got.JackpotCap.Equal(decimal.NewFromInt(1000)))
	assert.True(t, got.TotalDeposited.Equal(decimal.NewFromInt(150)))
	assert.True(t, got.TotalPaidOut.Equal(decimal.NewFromInt(50)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentWinnersHandlerMasksEmails(t *testing.T) {
	app, mock := setupReadAPI(t)

	now := time.Now()
	spins := sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "deleted_at",
		"user_id", "ticket_type", "result", "prize_type",
		"prize_amount", "was_downgraded",
	}).
		AddRow(2, now, now, nil, 1, "free", "JACKPOT", "jackpot", "25", false).
		AddRow(1, now.Add(-time.Minute), now, nil, 9, "paid", "SMALL_WIN", "normal", "1", false)

	mock.ExpectQuery(`SELECT \* FROM "spin_transactions" WHERE prize_amount > 0`).
		WillReturnRows(spins)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "deleted_at", "email", "username", "is_active",
		}).AddRow(1, now, now, nil, "alice@gmail.com", "alice", true))
	// second winner's account no longer resolves
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(gorm.ErrRecordNotFound)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/game/recent-winners", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var got struct {
		Success bool `json:"success"`
		Winners []struct {
			Username   string          `json:"username"`
			Prize      decimal.Decimal `json:"prize"`
			IsJackpot  bool            `json:"is_jackpot"`
			TicketType string          `json:"ticket_type"`
		} `json:"winners"`
	}
	require.NoError(t, json.Unmarshal(body, &got))

	assert.True(t, got.Success)
	require.Len(t, got.Winners, 2)

	assert.Equal(t, "ali***@gmail.com", got.Winners[0].Username)
	assert.True(t, got.Winners[0].IsJackpot)
	assert.True(t, got.Winners[0].Prize.Equal(decimal.NewFromInt(25)))

	assert.Equal(t, "Anonymous", got.Winners[1].Username)
	assert.False(t, got.Winners[1].IsJackpot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrizePoolHandlerStoreFailure(t *testing.T) {
	app, mock := setupReadAPI(t)

	mock.ExpectQuery(`INSERT INTO "prize_pools"`).
		WillReturnError(assert.AnError)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/game/prize-pool", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
