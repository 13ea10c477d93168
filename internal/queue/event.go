// Package queue defines message payloads exchanged over the message broker.
package queue

// LifecycleQueueName is the durable queue carrying reservation lifecycle
// events.
const LifecycleQueueName = "reservation.lifecycle"

// ReservationEvent is published whenever a reservation changes status:
// on creation (booked), on seat assignment (seated), on table release
// (finished) and on cancellation.  It carries enough information for
// downstream consumers to log or notify without querying the database.
type ReservationEvent struct {
	ReservationID   uint64  `json:"reservation_id"`
	Status          string  `json:"status"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	MobileNumber    string  `json:"mobile_number"`
	ReservationDate string  `json:"reservation_date"`
	ReservationTime string  `json:"reservation_time"`
	People          int     `json:"people"`
	TableID         *uint64 `json:"table_id,omitempty"`
	TableName       string  `json:"table_name,omitempty"`
	OccurredAt      string  `json:"occurred_at"`
}
