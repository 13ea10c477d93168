package repository

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-reservations/internal/model"
)

const tableColumns = `id, table_name, capacity, reservation_id, created_at, updated_at`

// TableRepo provides CRUD operations for tables and owns the occupancy
// guards used by the seating coordinator.  The reservation_id column is
// indexed so the table holding a given reservation can be resolved
// without a scan.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// Create inserts a new table and populates the generated ID and the
// database-assigned timestamps on the given model.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const q = `INSERT INTO tables (table_name, capacity) VALUES (?, ?)`
	result, err := r.db.ExecContext(ctx, q, t.Name, t.Capacity)
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
	*t = *created
	return nil
}

// List returns every table ordered by name.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables ORDER BY table_name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// GetByID returns a single table or ErrTableNotFound.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE id = ?`
	return scanTableRow(r.db.QueryRowContext(ctx, q, id))
}

// GetByIDTx is GetByID inside an existing transaction, locking the row
// so concurrent seat assignments serialize on it.
func (r *TableRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE id = ? FOR UPDATE`
	return scanTableRow(tx.QueryRowContext(ctx, q, id))
}

// FindByReservation returns the table currently referencing the given
// reservation, or ErrTableNotFound when no table holds it.
func (r *TableRepo) FindByReservation(ctx context.Context, reservationID uint64) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE reservation_id = ?`
	return scanTableRow(r.db.QueryRowContext(ctx, q, reservationID))
}

// AssignTx points a free table at a reservation inside an existing
// transaction.  The free-table guard is part of the UPDATE, so a
// concurrent assignment loses the race and gets ErrTableOccupied.
func (r *TableRepo) AssignTx(ctx context.Context, tx *sql.Tx, tableID, reservationID uint64) error {
	const q = `UPDATE tables SET reservation_id = ? WHERE id = ? AND reservation_id IS NULL`
	result, err := tx.ExecContext(ctx, q, reservationID, tableID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTableOccupied
	}
	return nil
}

// ReleaseTx clears the occupying reference of a table inside an existing
// transaction, failing with ErrTableNotOccupied when the table is
// already free.
func (r *TableRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, tableID uint64) error {
	const q = `UPDATE tables SET reservation_id = NULL WHERE id = ? AND reservation_id IS NOT NULL`
	result, err := tx.ExecContext(ctx, q, tableID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTableNotOccupied
	}
	return nil
}

// Delete removes a free table.  Deleting an occupied table returns
// ErrTableOccupied; deleting an unknown one returns ErrTableNotFound.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM tables WHERE id = ? AND reservation_id IS NULL`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		t, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t.Occupied() {
			return ErrTableOccupied
		}
		return ErrTableNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTable(s rowScanner) (*model.Table, error) {
	var t model.Table
	var reservationID sql.NullInt64
	if err := s.Scan(&t.ID, &t.Name, &t.Capacity, &reservationID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if reservationID.Valid {
		id := uint64(reservationID.Int64)
		t.ReservationID = &id
	}
	return &t, nil
}

func scanTableRow(row *sql.Row) (*model.Table, error) {
	t, err := scanTable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
