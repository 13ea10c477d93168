// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"restaurant-reservations/internal/handler"
)

// RegisterRoutes wires the reservation and table endpoints onto the
// provided Echo instance.  Route shapes follow the API this service
// implements: seating operations live under /tables/:table_id/seat, and
// /reservations/new and /:reservation_id/edit are aliases kept for the
// existing front end.
func RegisterRoutes(e *echo.Echo, r *handler.ReservationHandler, t *handler.TableHandler) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	res := e.Group("/reservations")
	res.GET("", r.List)
	res.POST("", r.Create)
	res.POST("/new", r.Create)
	res.GET("/:reservation_id", r.Find)
	res.PUT("/:reservation_id", r.Edit)
	res.PUT("/:reservation_id/edit", r.Edit)
	res.PUT("/:reservation_id/status", r.UpdateStatus)
	res.GET("/:reservation_id/table", r.FindTable)

	tab := e.Group("/tables")
	tab.GET("", t.List)
	tab.POST("", t.Create)
	tab.POST("/new", t.Create)
	tab.DELETE("/:table_id", t.Delete)
	tab.PUT("/:table_id/seat", t.Seat)
	tab.DELETE("/:table_id/seat", t.Finish)
}
