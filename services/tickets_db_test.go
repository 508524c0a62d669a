package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketRows(userID uint, free, paid int, lastClaim *time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "deleted_at",
		"user_id", "free_tickets", "paid_tickets", "last_free_ticket_claim",
		"total_tickets_purchased", "total_spent",
	}).AddRow(5, now, now, nil, userID, free, paid, lastClaim, 0, "0")
}

func expectTicketUpsert(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`INSERT INTO "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "tickets" .* FOR UPDATE`).
		WillReturnRows(rows)
}

func TestClaimFreeTicketFirstClaim(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewTicketService(db, decimal.NewFromInt(1), "SPIN", 24*time.Hour)

	mock.ExpectBegin()
	expectTicketUpsert(mock, ticketRows(1, 0, 0, nil))
	mock.ExpectExec(`UPDATE "tickets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ticket, err := svc.ClaimFreeTicket(1)
	require.NoError(t, err)

	assert.Equal(t, 1, ticket.FreeTickets)
	assert.NotNil(t, ticket.LastFreeTicketClaim)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimFreeTicketCooldown(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewTicketService(db, decimal.NewFromInt(1), "SPIN", 24*time.Hour)

	lastClaim := time.Now().Add(-1 * time.Hour)

	mock.ExpectBegin()
	expectTicketUpsert(mock, ticketRows(1, 1, 0, &lastClaim))
	mock.ExpectRollback()

	_, err := svc.ClaimFreeTicket(1)
	assert.ErrorIs(t, err, ErrCooldownActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseTickets(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewTicketService(db, decimal.NewFromInt(2), "SPIN", 24*time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE user_id =`).
		WillReturnRows(walletRows(7, 1))
	mock.ExpectExec(`UPDATE "token_balances" SET "balance"=balance - `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "token_balances"`).
		WillReturnRows(tokenBalanceRows(3, 7, "4"))
	mock.ExpectQuery(`INSERT INTO "wallet_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
	expectTicketUpsert(mock, ticketRows(1, 0, 0, nil))
	mock.ExpectExec(`UPDATE "tickets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ticket, err := svc.PurchaseTickets(1, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, ticket.PaidTickets)
	assert.Equal(t, 3, ticket.TotalTicketsPurchased)
	assert.True(t, ticket.TotalSpent.Equal(decimal.NewFromInt(6)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseTicketsInsufficientBalance(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewTicketService(db, decimal.NewFromInt(2), "SPIN", 24*time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE user_id =`).
		WillReturnRows(walletRows(7, 1))
	mock.ExpectExec(`UPDATE "token_balances" SET "balance"=balance - `).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.PurchaseTickets(1, 3)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
