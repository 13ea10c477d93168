// Package seating binds tables and reservations together during seat
// and finish operations.  Each operation validates its preconditions
// first and then applies the paired table/reservation mutation inside a
// single database transaction, so a crash can never leave a table
// referencing a reservation whose status does not match.
package seating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-reservations/internal/booking"
	"restaurant-reservations/internal/model"
	"restaurant-reservations/internal/repository"
)

// Coordinator runs the seat/finish state machine over the two
// repositories.  It owns the transaction boundaries; the repositories
// only supply the guarded statements.
type Coordinator struct {
	db           *sql.DB
	tables       *repository.TableRepo
	reservations *repository.ReservationRepo
}

// NewCoordinator constructs a Coordinator and panics if any dependency
// is nil.
func NewCoordinator(db *sql.DB, tables *repository.TableRepo, reservations *repository.ReservationRepo) *Coordinator {
	if db == nil || tables == nil || reservations == nil {
		panic("nil dependency passed to NewCoordinator")
	}
	return &Coordinator{db: db, tables: tables, reservations: reservations}
}

// Seat assigns a reservation to a table.  Preconditions, in order: the
// table exists and is free, the reservation exists and is still booked,
// and the table capacity covers the party.  On success the table
// references the reservation and the reservation is seated, both
// applied in one transaction.  Seating an already-seated reservation is
// rejected rather than silently re-assigned.
func (s *Coordinator) Seat(ctx context.Context, tableID, reservationID uint64) (*model.Table, *model.Reservation, error) {
	table, err := s.tables.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return nil, nil, booking.NotFound(fmt.Sprintf("table %d not found", tableID))
		}
		return nil, nil, err
	}
	if table.Occupied() {
		return nil, nil, booking.Conflict("table is occupied")
	}
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, nil, booking.NotFound(fmt.Sprintf("reservation %d does not exist", reservationID))
		}
		return nil, nil, err
	}
	if res.Status == model.StatusSeated {
		return nil, nil, booking.Conflict("status cannot be updated from seated")
	}
	if res.Status != model.StatusBooked {
		return nil, nil, booking.Conflict(fmt.Sprintf("status %s cannot be updated", res.Status))
	}
	if table.Capacity < res.People {
		return nil, nil, booking.Invalid("capacity",
			fmt.Sprintf("table does not have sufficient capacity for reservation %d", reservationID))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.tables.AssignTx(ctx, tx, tableID, reservationID); err != nil {
		// A concurrent assignment can win between the free check above
		// and this guarded update; surface it as the same conflict.
		if errors.Is(err, repository.ErrTableOccupied) {
			return nil, nil, booking.Conflict("table is occupied")
		}
		return nil, nil, err
	}
	if err := s.reservations.UpdateStatusTx(ctx, tx, reservationID, model.StatusSeated); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true

	table.ReservationID = &res.ID
	res.Status = model.StatusSeated
	return table, res, nil
}

// Finish frees an occupied table.  The occupying reference is cleared
// and the formerly referenced reservation becomes finished, both in one
// transaction.  Finishing a free table is a conflict.
func (s *Coordinator) Finish(ctx context.Context, tableID uint64) (*model.Table, *model.Reservation, error) {
	table, err := s.tables.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return nil, nil, booking.NotFound(fmt.Sprintf("table %d not found", tableID))
		}
		return nil, nil, err
	}
	if !table.Occupied() {
		return nil, nil, booking.Conflict("table is not occupied")
	}
	reservationID := *table.ReservationID
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.tables.ReleaseTx(ctx, tx, tableID); err != nil {
		if errors.Is(err, repository.ErrTableNotOccupied) {
			return nil, nil, booking.Conflict("table is not occupied")
		}
		return nil, nil, err
	}
	if err := s.reservations.UpdateStatusTx(ctx, tx, reservationID, model.StatusFinished); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true

	table.ReservationID = nil
	res.Status = model.StatusFinished
	return table, res, nil
}
