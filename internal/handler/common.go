// Package handler contains the HTTP handlers exposed by the service.
// Handlers bind typed payloads, delegate to the rules engine, the
// repositories and the seating coordinator, and translate error kinds
// into status codes.  Requests and responses use the {"data": ...}
// envelope of the API this service implements.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"restaurant-reservations/internal/booking"
)

// respondError maps a booking error kind to its HTTP status.  Missing
// fields, validation failures and state conflicts are all client errors;
// unresolved identifiers are 404.  Anything else is treated as a
// database failure.
func respondError(c echo.Context, err error) error {
	var be *booking.Error
	if errors.As(err, &be) {
		status := http.StatusBadRequest
		if be.Kind == booking.KindNotFound {
			status = http.StatusNotFound
		}
		return c.JSON(status, echo.Map{"error": be.Message})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// pathID parses a numeric path parameter.  Zero is never a valid
// identifier.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}
