package notify

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the queue to polling display surfaces.
type Handler struct {
	center *Center
}

// NewHandler creates a Handler over the given queue.
func NewHandler(center *Center) *Handler {
	return &Handler{center: center}
}

// RegisterRoutes mounts the notification endpoints on g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.ListNotifications)
	g.DELETE("/notifications/:id", h.DismissNotification)
}

// ListNotifications returns the queued entries in insertion order.
func (h *Handler) ListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, h.center.List())
}

// DismissNotification removes an entry. Dismissing an unknown id still
// returns 204 since removal is idempotent.
func (h *Handler) DismissNotification(c echo.Context) error {
	h.center.Remove(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}
