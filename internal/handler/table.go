package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant-reservations/internal/booking"
	"restaurant-reservations/internal/model"
	"restaurant-reservations/internal/queue"
	"restaurant-reservations/internal/repository"
	"restaurant-reservations/internal/seating"
	queue_publisher "restaurant-reservations/internal/service"
)

// TableHandler serves the table endpoints: listing, creation, deletion
// and the two seating operations, which it delegates to the
// coordinator.
type TableHandler struct {
	Tables      *repository.TableRepo
	Coordinator *seating.Coordinator
	Publish     func(context.Context, queue.ReservationEvent) error
}

// NewTableHandler constructs a TableHandler with the provided
// dependencies and panics if any of them is nil.
func NewTableHandler(tables *repository.TableRepo, coordinator *seating.Coordinator) *TableHandler {
	if tables == nil || coordinator == nil {
		panic("nil dependency passed to NewTableHandler")
	}
	return &TableHandler{
		Tables:      tables,
		Coordinator: coordinator,
		Publish:     queue_publisher.PublishReservationEvent,
	}
}

// List handles GET /tables, returning every table ordered by name.
func (h *TableHandler) List(c echo.Context) error {
	list, err := h.Tables.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

// Create handles POST /tables.  The table name needs at least two
// characters and the capacity must be positive.
func (h *TableHandler) Create(c echo.Context) error {
	var body struct {
		Data *booking.TablePayload `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Data == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body must have data property"})
	}
	if err := booking.ValidateTable(*body.Data); err != nil {
		return respondError(c, err)
	}

	table := &model.Table{Name: body.Data.TableName, Capacity: body.Data.Capacity}
	if err := h.Tables.Create(c.Request().Context(), table); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": table})
}

// Seat handles PUT /tables/:table_id/seat, assigning a reservation to
// the table.
func (h *TableHandler) Seat(c echo.Context) error {
	id, err := pathID(c, "table_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var body struct {
		Data *booking.SeatPayload `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Data == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body must have data property"})
	}
	if body.Data.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body must have reservation_id property"})
	}

	ctx := c.Request().Context()
	table, res, err := h.Coordinator.Seat(ctx, id, body.Data.ReservationID)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.Publish(ctx, lifecycleEvent(res, table))
	return c.JSON(http.StatusOK, echo.Map{"data": table})
}

// Finish handles DELETE /tables/:table_id/seat, freeing the table and
// finishing the reservation it referenced.
func (h *TableHandler) Finish(c echo.Context) error {
	id, err := pathID(c, "table_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	ctx := c.Request().Context()
	table, res, err := h.Coordinator.Finish(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.Publish(ctx, lifecycleEvent(res, table))
	return c.JSON(http.StatusOK, echo.Map{"data": table})
}

// Delete handles DELETE /tables/:table_id.  Only a free table can be
// deleted; an occupied one is a conflict.
func (h *TableHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "table_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	if err := h.Tables.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrTableNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("%d not found", id)})
		case errors.Is(err, repository.ErrTableOccupied):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "table is occupied"})
		}
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
