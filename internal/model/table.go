package model

import "time"

// Table describes a physical table in the dining room.  A table is free
// when ReservationID is nil and occupied when it references the
// reservation currently seated at it.  The reference is the only link
// between the two entities; a reservation never stores its table.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – table name, at least two characters, unique per room.
//  Capacity      – number of guests the table seats, positive.
//  ReservationID – occupying reservation, nil when the table is free.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Table struct {
	ID            uint64    `json:"table_id"`       // tables.id
	Name          string    `json:"table_name"`     // tables.table_name
	Capacity      int       `json:"capacity"`       // tables.capacity
	ReservationID *uint64   `json:"reservation_id"` // tables.reservation_id (nullable)
	CreatedAt     time.Time `json:"created_at"`     // tables.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // tables.updated_at
}

// Occupied reports whether the table currently seats a reservation.
func (t *Table) Occupied() bool {
	return t.ReservationID != nil
}
