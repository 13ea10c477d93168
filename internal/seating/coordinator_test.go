package seating

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-reservations/internal/booking"
	"restaurant-reservations/internal/model"
	"restaurant-reservations/internal/repository"
)

var now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newCoordinator(t *testing.T) (*Coordinator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCoordinator(db, repository.NewTableRepo(db), repository.NewReservationRepo(db)), mock
}

func tableRows(reservationID interface{}, capacity int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "table_name", "capacity", "reservation_id", "created_at", "updated_at",
	}).AddRow(3, "Bar #1", capacity, reservationID, now, now)
}

func reservationRows(status string, people int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "mobile_number",
		"reservation_date", "reservation_time", "people", "status",
		"created_at", "updated_at",
	}).AddRow(7, "Tig", "Notaro", "8005551212", "2025-03-12", "18:00", people, status, now, now)
}

func TestSeatAssignsTableAndSeatsReservation(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(nil, 4))
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(7).WillReturnRows(reservationRows(model.StatusBooked, 4))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tables SET reservation_id").
		WithArgs(7, 3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs(model.StatusSeated, 7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	table, res, err := coord.Seat(context.Background(), 3, 7)
	require.NoError(t, err)
	require.NotNil(t, table.ReservationID)
	assert.Equal(t, uint64(7), *table.ReservationID)
	assert.Equal(t, model.StatusSeated, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatOccupiedTableConflicts(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(9, 4))

	_, _, err := coord.Seat(context.Background(), 3, 7)
	require.Error(t, err)
	assert.Equal(t, booking.KindConflict, booking.KindOf(err))
	assert.Equal(t, "table is occupied", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatInsufficientCapacityLeavesEntitiesUntouched(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(nil, 2))
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(7).WillReturnRows(reservationRows(model.StatusBooked, 4))

	_, _, err := coord.Seat(context.Background(), 3, 7)
	require.Error(t, err)
	assert.Equal(t, booking.KindValidation, booking.KindOf(err))
	assert.Equal(t, "table does not have sufficient capacity for reservation 7", err.Error())
	// No transaction was ever opened, so no write can have happened.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatAlreadySeatedReservationConflicts(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(nil, 4))
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(7).WillReturnRows(reservationRows(model.StatusSeated, 4))

	_, _, err := coord.Seat(context.Background(), 3, 7)
	require.Error(t, err)
	assert.Equal(t, booking.KindConflict, booking.KindOf(err))
	assert.Equal(t, "status cannot be updated from seated", err.Error())
}

func TestSeatTerminalReservationConflicts(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(nil, 4))
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(7).WillReturnRows(reservationRows(model.StatusFinished, 4))

	_, _, err := coord.Seat(context.Background(), 3, 7)
	require.Error(t, err)
	assert.Equal(t, booking.KindConflict, booking.KindOf(err))
	assert.Equal(t, "status finished cannot be updated", err.Error())
}

func TestSeatUnknownTableIsNotFound(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(99).WillReturnRows(sqlmock.NewRows([]string{
		"id", "table_name", "capacity", "reservation_id", "created_at", "updated_at",
	}))

	_, _, err := coord.Seat(context.Background(), 99, 7)
	require.Error(t, err)
	assert.Equal(t, booking.KindNotFound, booking.KindOf(err))
	assert.Equal(t, "table 99 not found", err.Error())
}

func TestSeatUnknownReservationIsNotFound(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(nil, 4))
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(42).WillReturnRows(sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "mobile_number",
		"reservation_date", "reservation_time", "people", "status",
		"created_at", "updated_at",
	}))

	_, _, err := coord.Seat(context.Background(), 3, 42)
	require.Error(t, err)
	assert.Equal(t, booking.KindNotFound, booking.KindOf(err))
	assert.Equal(t, "reservation 42 does not exist", err.Error())
}

func TestSeatLosingTheRaceRollsBack(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(nil, 4))
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(7).WillReturnRows(reservationRows(model.StatusBooked, 4))
	mock.ExpectBegin()
	// Another request occupied the table between the free check and the
	// guarded update: zero rows match.
	mock.ExpectExec("UPDATE tables SET reservation_id").
		WithArgs(7, 3).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, _, err := coord.Seat(context.Background(), 3, 7)
	require.Error(t, err)
	assert.Equal(t, booking.KindConflict, booking.KindOf(err))
	assert.Equal(t, "table is occupied", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatRollsBackWhenStatusUpdateFails(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(nil, 4))
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(7).WillReturnRows(reservationRows(model.StatusBooked, 4))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tables SET reservation_id").
		WithArgs(7, 3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs(model.StatusSeated, 7).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, _, err := coord.Seat(context.Background(), 3, 7)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishFreesTableAndFinishesReservation(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(7, 4))
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(7).WillReturnRows(reservationRows(model.StatusSeated, 4))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tables SET reservation_id = NULL").
		WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs(model.StatusFinished, 7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	table, res, err := coord.Finish(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, table.ReservationID)
	assert.Equal(t, model.StatusFinished, res.Status)
	// The returned reservation keeps its guest details for the
	// lifecycle event, not just the id and status.
	assert.Equal(t, "Tig", res.FirstName)
	assert.Equal(t, "Notaro", res.LastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishFreeTableConflicts(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).WillReturnRows(tableRows(nil, 4))

	_, _, err := coord.Finish(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, booking.KindConflict, booking.KindOf(err))
	assert.Equal(t, "table is not occupied", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishUnknownTableIsNotFound(t *testing.T) {
	coord, mock := newCoordinator(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(99).WillReturnRows(sqlmock.NewRows([]string{
		"id", "table_name", "capacity", "reservation_id", "created_at", "updated_at",
	}))

	_, _, err := coord.Finish(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, booking.KindNotFound, booking.KindOf(err))
}
