package main

import (
	"errors"
	"testing"
	"time"

	"cfms/src/db"
	"cfms/src/types"
	"cfms/src/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestReservationReplayReturnsStoredReservation(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "spot_id", "payment_id", "status", "start_time", "end_time", "hours", "amount_cents"}).
			AddRow(5, 3, "pay_r1", "confirmed", start, end, 2, 400))
	mock.ExpectQuery(`SELECT (.+) FROM "parking_spots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "zone_id", "label", "status"}).
			AddRow(3, 1, "north-003", "occupied"))
	mock.ExpectCommit()

	body := types.CreateReservationRequestBody{
		SpotID:    3,
		StartTime: "2026-09-01 10:00:00 +00:00",
		EndTime:   "2026-09-01 12:00:00 +00:00",
		PaymentID: "pay_r1",
	}
	reservation, replayed, err := utils.CreateSpotReservation(&body)

	assert.Nil(t, err)
	assert.True(t, replayed)
	assert.Equal(t, uint(5), reservation.ID)
	assert.Equal(t, int64(400), reservation.AmountCents)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReservationUnknownSpot(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "parking_spots"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "parking_spots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	body := types.CreateReservationRequestBody{
		SpotID:    99,
		StartTime: "2026-09-01 10:00:00 +00:00",
		EndTime:   "2026-09-01 12:00:00 +00:00",
		PaymentID: "pay_r2",
	}
	_, _, err := utils.CreateSpotReservation(&body)

	assert.ErrorIs(t, err, utils.ErrSpotNotFound)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReservationSpotTaken(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "parking_spots"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "parking_spots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "zone_id", "label", "status"}).
			AddRow(3, 1, "north-003", "occupied"))
	mock.ExpectRollback()

	body := types.CreateReservationRequestBody{
		SpotID:    3,
		StartTime: "2026-09-01 10:00:00 +00:00",
		EndTime:   "2026-09-01 12:00:00 +00:00",
		PaymentID: "pay_r3",
	}
	_, _, err := utils.CreateSpotReservation(&body)

	var unavailable *utils.SpotUnavailableError
	assert.True(t, errors.As(err, &unavailable))
	assert.Equal(t, types.SPOT_OCCUPIED, unavailable.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCancelTwiceIsNoOp(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "spot_id", "payment_id", "status"}).
			AddRow(5, 3, "pay_r1", "canceled"))
	mock.ExpectCommit()

	reservation, err := utils.CancelSpotReservation(5)

	assert.Nil(t, err)
	assert.Equal(t, types.RESERVATION_CANCELED, reservation.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}
