package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-reservations/internal/model"
	"restaurant-reservations/internal/repository"
	"restaurant-reservations/internal/seating"
)

var tableCols = []string{"id", "table_name", "capacity", "reservation_id", "created_at", "updated_at"}

func newTableHandler(t *testing.T) (*TableHandler, sqlmock.Sqlmock, *publishedEvents) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	tables := repository.NewTableRepo(db)
	reservations := repository.NewReservationRepo(db)
	h := NewTableHandler(tables, seating.NewCoordinator(db, tables, reservations))
	pub := &publishedEvents{}
	h.Publish = pub.publish
	return h, mock, pub
}

func TestCreateTableRejectsShortName(t *testing.T) {
	h, _, _ := newTableHandler(t)

	rec := doJSON(t, h.Create, http.MethodPost, "/tables",
		`{"data":{"table_name":"A","capacity":4}}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "A is not a valid table_name", errorMessage(t, rec))
}

func TestCreateTableRejectsAbsentCapacity(t *testing.T) {
	h, _, _ := newTableHandler(t)

	// A zero capacity is indistinguishable from an omitted one, so it
	// reads as the missing field.
	rec := doJSON(t, h.Create, http.MethodPost, "/tables",
		`{"data":{"table_name":"Bar #1","capacity":0}}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "data must have capacity property", errorMessage(t, rec))
}

func TestCreateTableRejectsNegativeCapacity(t *testing.T) {
	h, _, _ := newTableHandler(t)

	rec := doJSON(t, h.Create, http.MethodPost, "/tables",
		`{"data":{"table_name":"Bar #1","capacity":-2}}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "-2 is not a valid capacity", errorMessage(t, rec))
}

func TestCreateTableStoresRow(t *testing.T) {
	h, mock, _ := newTableHandler(t)

	mock.ExpectExec("INSERT INTO tables").
		WithArgs("Bar #1", 4).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(tableCols).
			AddRow(3, "Bar #1", 4, nil, stamp, stamp))

	rec := doJSON(t, h.Create, http.MethodPost, "/tables",
		`{"data":{"table_name":"Bar #1","capacity":4}}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Data model.Table `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(3), body.Data.ID)
	assert.Nil(t, body.Data.ReservationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatRejectsMissingReservationID(t *testing.T) {
	h, _, pub := newTableHandler(t)

	rec := doJSON(t, h.Seat, http.MethodPut, "/tables/3/seat",
		`{"data":{}}`, map[string]string{"table_id": "3"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "body must have reservation_id property", errorMessage(t, rec))
	assert.Empty(t, pub.events)
}

func TestSeatPublishesSeatedEvent(t *testing.T) {
	h, mock, pub := newTableHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(tableCols).
			AddRow(3, "Bar #1", 4, nil, stamp, stamp))
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(7, "Tig", "Notaro", "8005551212", "2025-03-12", "18:00", 4, model.StatusBooked, stamp, stamp))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tables SET reservation_id").
		WithArgs(uint64(7), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs(model.StatusSeated, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := doJSON(t, h.Seat, http.MethodPut, "/tables/3/seat",
		`{"data":{"reservation_id":7}}`, map[string]string{"table_id": "3"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, pub.events, 1)
	assert.Equal(t, model.StatusSeated, pub.events[0].Status)
	require.NotNil(t, pub.events[0].TableID)
	assert.Equal(t, uint64(3), *pub.events[0].TableID)
	assert.Equal(t, "Bar #1", pub.events[0].TableName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOccupiedTableIsRejected(t *testing.T) {
	h, mock, _ := newTableHandler(t)

	mock.ExpectExec("DELETE FROM tables").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM tables WHERE id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(tableCols).
			AddRow(3, "Bar #1", 4, 7, stamp, stamp))

	rec := doJSON(t, h.Delete, http.MethodDelete, "/tables/3", "",
		map[string]string{"table_id": "3"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "table is occupied", errorMessage(t, rec))
}

func TestDeleteFreeTableSucceeds(t *testing.T) {
	h, mock, _ := newTableHandler(t)

	mock.ExpectExec("DELETE FROM tables").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doJSON(t, h.Delete, http.MethodDelete, "/tables/3", "",
		map[string]string{"table_id": "3"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
