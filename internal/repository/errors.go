// Package repository implements the persistence gateway over MySQL.
// Sentinel errors defined here let higher layers distinguish failure
// scenarios without inspecting driver errors: absent rows surface as
// the *NotFound values and occupancy guards surface as the occupancy
// errors when a guarded update matches no row.
package repository

import "errors"

// ErrReservationNotFound is returned when a reservation identifier does
// not resolve to a row.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrTableNotFound is returned when a table identifier does not resolve
// to a row.
var ErrTableNotFound = errors.New("table not found")

// ErrTableOccupied is returned when a seat assignment targets a table
// that already references a reservation.  The guard lives in the UPDATE
// itself, so concurrent assignments serialize on the row and the second
// writer sees this error.
var ErrTableOccupied = errors.New("table is occupied")

// ErrTableNotOccupied is returned when a release targets a table that is
// already free.
var ErrTableNotOccupied = errors.New("table is not occupied")
