package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"restaurant-reservations/internal/booking"
	"restaurant-reservations/internal/model"
	"restaurant-reservations/internal/queue"
	"restaurant-reservations/internal/repository"
	queue_publisher "restaurant-reservations/internal/service"
)

// ReservationHandler serves the reservation endpoints: listing and
// searching, creation, lookup, editing and direct status updates.
// Lifecycle events are published best-effort; a broker failure is
// logged by the publisher and never fails the request.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Tables       *repository.TableRepo
	Rules        booking.Rules
	Publish      func(context.Context, queue.ReservationEvent) error
}

// NewReservationHandler constructs a ReservationHandler with the
// provided dependencies and panics if any repository is nil.
func NewReservationHandler(reservations *repository.ReservationRepo, tables *repository.TableRepo, rules booking.Rules) *ReservationHandler {
	if reservations == nil || tables == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Reservations: reservations,
		Tables:       tables,
		Rules:        rules,
		Publish:      queue_publisher.PublishReservationEvent,
	}
}

// List handles GET /reservations.  A query matching a date pattern
// lists the reservations of that date, finished ones excluded; any
// other query is a punctuation-insensitive phone fragment search.  Both
// modes order by reservation time ascending.
func (h *ReservationHandler) List(c echo.Context) error {
	query := c.QueryParam("date")
	if query == "" {
		query = c.QueryParam("mobile_number")
	}
	ctx := c.Request().Context()

	var (
		list []model.Reservation
		err  error
	)
	if booking.IsDateQuery(query) {
		list, err = h.Reservations.ListByDate(ctx, query)
	} else {
		list, err = h.Reservations.SearchByMobile(ctx, booking.PhoneFragment(query))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

// Create handles POST /reservations.  The payload runs through every
// booking rule; a valid reservation is always stored as booked, no
// matter what status the client attempted to set.
func (h *ReservationHandler) Create(c echo.Context) error {
	payload, err := bindReservation(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Rules.ValidateReservation(*payload); err != nil {
		return respondError(c, err)
	}

	res := &model.Reservation{
		FirstName:       payload.FirstName,
		LastName:        payload.LastName,
		MobileNumber:    payload.MobileNumber,
		ReservationDate: payload.ReservationDate,
		ReservationTime: payload.ReservationTime,
		People:          payload.People,
		Status:          model.StatusBooked,
	}
	ctx := c.Request().Context()
	if err := h.Reservations.Create(ctx, res); err != nil {
		return respondError(c, err)
	}
	_ = h.Publish(ctx, lifecycleEvent(res, nil))
	return c.JSON(http.StatusCreated, echo.Map{"data": res})
}

// Find handles GET /reservations/:reservation_id.
func (h *ReservationHandler) Find(c echo.Context) error {
	id, err := pathID(c, "reservation_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("reservation %d does not exist", id)})
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}

// Edit handles PUT /reservations/:reservation_id.  The reservation must
// exist and the payload passes the same rules as creation; the status
// field itself is not editable here.
func (h *ReservationHandler) Edit(c echo.Context) error {
	id, err := pathID(c, "reservation_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("reservation_id %d not found", id)})
		}
		return respondError(c, err)
	}
	payload, err := bindReservation(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Rules.ValidateReservation(*payload); err != nil {
		return respondError(c, err)
	}

	updated, err := h.Reservations.Update(ctx, &model.Reservation{
		ID:              id,
		FirstName:       payload.FirstName,
		LastName:        payload.LastName,
		MobileNumber:    payload.MobileNumber,
		ReservationDate: payload.ReservationDate,
		ReservationTime: payload.ReservationTime,
		People:          payload.People,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// UpdateStatus handles PUT /reservations/:reservation_id/status.  The
// transition rules apply: only known statuses may be requested, and a
// finished or cancelled reservation rejects every update.  Marking a
// reservation seated here does not occupy any table; that linkage only
// happens through seat assignment.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "reservation_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("reservation_id %d not found", id)})
		}
		return respondError(c, err)
	}

	var body struct {
		Data *booking.StatusPayload `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Data == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body must have data property"})
	}
	if err := booking.ValidateStatusUpdate(res.Status, body.Data.Status); err != nil {
		return respondError(c, err)
	}

	updated, err := h.Reservations.UpdateStatus(ctx, id, body.Data.Status)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.Publish(ctx, lifecycleEvent(updated, nil))
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// FindTable handles GET /reservations/:reservation_id/table.  It
// resolves the back-reference: the table, if any, currently seating the
// reservation.
func (h *ReservationHandler) FindTable(c echo.Context) error {
	id, err := pathID(c, "reservation_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("reservation %d does not exist", id)})
		}
		return respondError(c, err)
	}
	table, err := h.Tables.FindByReservation(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("reservation %d is not seated at a table", id)})
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": table})
}

// bindReservation decodes the {"data": {...}} request envelope into a
// typed payload.
func bindReservation(c echo.Context) (*booking.ReservationPayload, error) {
	var body struct {
		Data *booking.ReservationPayload `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return nil, booking.Invalid("", "invalid request body")
	}
	if body.Data == nil {
		return nil, booking.Invalid("", "body must have data property")
	}
	return body.Data, nil
}

// lifecycleEvent assembles the event published after a successful write.
func lifecycleEvent(res *model.Reservation, table *model.Table) queue.ReservationEvent {
	ev := queue.ReservationEvent{
		ReservationID:   res.ID,
		Status:          res.Status,
		FirstName:       res.FirstName,
		LastName:        res.LastName,
		MobileNumber:    res.MobileNumber,
		ReservationDate: res.ReservationDate,
		ReservationTime: res.ReservationTime,
		People:          res.People,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if table != nil {
		id := table.ID
		ev.TableID = &id
		ev.TableName = table.Name
	}
	return ev
}
