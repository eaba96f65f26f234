package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/muskanVaswani/sudharsetu-backend/internal/services"
)

// NotificationController is the display layer of the notification
// queue: it reads the active set and dismisses entries early.
type NotificationController struct {
	svc services.NotificationService
}

func NewNotificationController(svc services.NotificationService) *NotificationController {
	return &NotificationController{svc: svc}
}

func (ctr *NotificationController) Register(g *echo.Group) {
	g.GET("/notifications", ctr.ListActive)
	g.DELETE("/notifications/:id", ctr.Dismiss)
}

func (ctr *NotificationController) ListActive(c echo.Context) error {
	return c.JSON(http.StatusOK, ctr.svc.Active())
}

func (ctr *NotificationController) Dismiss(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid notification id"},
		)
	}

	ctr.svc.Dismiss(id)
	return c.NoContent(http.StatusNoContent)
}
