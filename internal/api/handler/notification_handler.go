package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
)

// NotificationHandler handles HTTP requests for the per-user notification log.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type notificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// List handles GET /v1/notifications.
//
// @Summary      List the caller's notifications, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  notificationsResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationsResponse{
		Notifications: h.service.For(c.Request().Context(), userID),
	})
}

// MarkRead handles POST /v1/notifications/:id/read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	if err := h.service.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
