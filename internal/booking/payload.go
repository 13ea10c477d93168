package booking

// ReservationPayload is the typed request body for creating or editing a
// reservation.  Requests bind into this struct once at the boundary; the
// rules engine then checks presence and validity field by field, so a
// request cannot smuggle in fields the API does not declare.
type ReservationPayload struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          int    `json:"people"`
	Status          string `json:"status"`
}

// TablePayload is the typed request body for creating a table.
type TablePayload struct {
	TableName string `json:"table_name"`
	Capacity  int    `json:"capacity"`
}

// SeatPayload is the typed request body for assigning a reservation to a
// table.
type SeatPayload struct {
	ReservationID uint64 `json:"reservation_id"`
}

// StatusPayload is the typed request body for a direct status update.
type StatusPayload struct {
	Status string `json:"status"`
}
