package repository

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-reservations/internal/model"
)

// reservationColumns is the shared select list.  DATE and TIME columns
// are formatted in SQL so the model carries the exact strings the API
// exchanges ("YYYY-MM-DD" and "HH:MM").
const reservationColumns = `id, first_name, last_name, mobile_number,
       DATE_FORMAT(reservation_date, '%Y-%m-%d'),
       TIME_FORMAT(reservation_time, '%H:%i'),
       people, status, created_at, updated_at`

// ReservationRepo provides CRUD operations for reservations.  All
// timestamp fields are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a new reservation and populates the generated ID and
// the database-assigned defaults and timestamps on the given model.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (first_name, last_name, mobile_number, reservation_date, reservation_time, people, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	created, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*res = *created
	return nil
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.FirstName, &res.LastName, &res.MobileNumber,
		&res.ReservationDate, &res.ReservationTime,
		&res.People, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Update rewrites the editable fields of an existing reservation and
// returns the stored row.  Status is deliberately not part of the edit;
// status changes go through UpdateStatus.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	const q = `UPDATE reservations
	           SET first_name = ?, last_name = ?, mobile_number = ?,
	               reservation_date = ?, reservation_time = ?, people = ?
	           WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, res.ID)
	if err != nil {
		return nil, err
	}
	if _, err := result.RowsAffected(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, res.ID)
}

// ListByDate returns the reservations for one calendar date, excluding
// finished ones, ordered by reservation time ascending.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE reservation_date = ? AND status <> 'finished'
	           ORDER BY reservation_time ASC`
	return r.queryList(ctx, q, date)
}

// SearchByMobile returns every reservation whose mobile number contains
// the given digit fragment, punctuation ignored, ordered by reservation
// time ascending.  The fragment must already be reduced to digits.
func (r *ReservationRepo) SearchByMobile(ctx context.Context, fragment string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '(', ''), ')', ''), '-', ''), ' ', '')
	                 LIKE CONCAT('%', ?, '%')
	           ORDER BY reservation_time ASC`
	return r.queryList(ctx, q, fragment)
}

// UpdateStatus sets the status of a reservation and returns the stored
// row, or ErrReservationNotFound when the identifier does not resolve.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error) {
	const q = `UPDATE reservations SET status = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, status, id); err != nil {
		return nil, err
	}
	// RowsAffected is zero both for a missing row and for an unchanged
	// status, so existence is settled by the read-back instead.
	return r.GetByID(ctx, id)
}

// UpdateStatusTx sets the status of a reservation inside an existing
// transaction.  The caller commits or rolls back.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	const q = `UPDATE reservations SET status = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, status, id)
	return err
}

func (r *ReservationRepo) queryList(ctx context.Context, q string, arg interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(
			&res.ID, &res.FirstName, &res.LastName, &res.MobileNumber,
			&res.ReservationDate, &res.ReservationTime,
			&res.People, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
