package model

import "time"

// Reservation statuses.  A reservation starts out booked, becomes seated
// when a table is assigned to it and finished when that table is freed.
// A booked reservation may also be cancelled directly.  Finished and
// cancelled are terminal: no further status change is accepted.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// Reservation records a party's booking for a given date and time.
// Dates and times are kept as the strings the API exchanges
// ("YYYY-MM-DD" and "HH:MM"); the database stores them as DATE and
// TIME columns and the repository formats them back on read.
//
// Fields:
//  ID              – primary key identifier.
//  FirstName       – guest first name.
//  LastName        – guest last name.
//  MobileNumber    – contact number; stored as received, ten digits required.
//  ReservationDate – calendar date of the booking.
//  ReservationTime – time of day, minute precision.
//  People          – party size, positive.
//  Status          – lifecycle status (booked, seated, finished, cancelled).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64    `json:"reservation_id"`   // reservations.id
	FirstName       string    `json:"first_name"`       // reservations.first_name
	LastName        string    `json:"last_name"`        // reservations.last_name
	MobileNumber    string    `json:"mobile_number"`    // reservations.mobile_number
	ReservationDate string    `json:"reservation_date"` // reservations.reservation_date
	ReservationTime string    `json:"reservation_time"` // reservations.reservation_time
	People          int       `json:"people"`           // reservations.people
	Status          string    `json:"status"`           // reservations.status
	CreatedAt       time.Time `json:"created_at"`       // reservations.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // reservations.updated_at
}

// KnownStatus reports whether s is one of the four reservation statuses.
func KnownStatus(s string) bool {
	switch s {
	case StatusBooked, StatusSeated, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus reports whether s is a terminal status.  A reservation
// in a terminal status rejects every further status update.
func TerminalStatus(s string) bool {
	return s == StatusFinished || s == StatusCancelled
}
