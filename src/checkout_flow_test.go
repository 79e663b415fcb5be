package main

import (
	"testing"

	"cfms/src/db"
	"cfms/src/types"
	"cfms/src/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCheckoutReplayReturnsStoredTicket(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	rows := sqlmock.NewRows([]string{"id", "nic", "type", "count", "payment_id", "counter_name", "checked_in"}).
		AddRow(4, "853920441V", "individual", 1, "pay_replay", "North-1", false)
	mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).WillReturnRows(rows)

	body := types.CheckoutRequestBody{
		NIC:       "853920441V",
		FullName:  "Test User",
		Email:     "someone@example.com",
		Type:      "individual",
		PaymentID: "pay_replay",
		Payment:   types.CheckoutPayment{Amount: 20},
	}
	ticket, created, err := utils.CreateCheckout(&body)

	assert.Nil(t, err)
	assert.False(t, created)
	assert.Equal(t, uint(4), ticket.ID)
	assert.Equal(t, "North-1", ticket.CounterName)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCheckoutRegistersAttendeeAccount(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM "counters"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "capacity", "load", "is_active"}).
			AddRow(1, "North-1", "Entry", 10, 0, true))
	mock.ExpectExec(`UPDATE "counters"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "counters"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "capacity", "load", "is_active"}).
			AddRow(1, "North-1", "Entry", 10, 3, true))
	mock.ExpectQuery(`INSERT INTO "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	body := types.CheckoutRequestBody{
		NIC:       "901234567V",
		FullName:  "Family Lead",
		Email:     "family@example.com",
		Type:      "family",
		Count:     3,
		Password:  "longenoughpw",
		PaymentID: "pay_new",
		Payment:   types.CheckoutPayment{Method: "cash", Amount: 60},
	}
	ticket, created, err := utils.CreateCheckout(&body)

	assert.Nil(t, err)
	assert.True(t, created)
	assert.Equal(t, "North-1", ticket.CounterName)
	assert.Equal(t, uint(3), ticket.Count)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCheckInRejectsCheckedInTicket(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payment_id", "count", "checked_in"}).
			AddRow(4, "pay_1", 1, true))
	mock.ExpectRollback()

	payload := types.QRTicketPayload{PaymentID: "pay_1", Count: 1}
	_, err := utils.CheckInTicket(&payload, nil, "gate-a")

	assert.ErrorIs(t, err, utils.ErrAlreadyCheckedIn)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCheckInRejectsLoggedScan(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payment_id", "count", "checked_in"}).
			AddRow(4, "pay_1", 1, false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "scan_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	payload := types.QRTicketPayload{PaymentID: "pay_1", Count: 1}
	_, err := utils.CheckInTicket(&payload, nil, "gate-a")

	assert.ErrorIs(t, err, utils.ErrAlreadyCheckedIn)
	assert.Nil(t, mock.ExpectationsWereMet())
}
