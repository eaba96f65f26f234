package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
	"github.com/muskanVaswani/sudharsetu-backend/internal/services"
)

// ComplaintController groups the HTTP routes over the complaint record
// store. The list and count endpoints back the user/public dashboards;
// the status endpoint is the admin dashboard's inline editor.
type ComplaintController struct {
	svc services.ComplaintService
}

// NewComplaintController receives a ComplaintService implementation and
// returns a configured controller.
func NewComplaintController(svc services.ComplaintService) *ComplaintController {
	return &ComplaintController{svc: svc}
}

// Register binds the complaint routes to the given group. admin guards
// the role-gated write.
func (ctr *ComplaintController) Register(g *echo.Group, admin echo.MiddlewareFunc) {
	g.GET("/complaints", ctr.ListComplaints)
	g.GET("/complaints/counts", ctr.StatusCounts)
	g.POST("/complaints", ctr.CreateComplaint)
	g.POST("/complaints/:id/affected", ctr.IncrementAffected)
	g.PATCH("/complaints/:id/status", ctr.UpdateStatus, admin)
}

// ListComplaints handles GET /complaints. An optional ?status= query
// narrows the set to one status; "All" or no filter returns everything,
// newest first.
func (ctr *ComplaintController) ListComplaints(c echo.Context) error {
	status := models.Status(c.QueryParam("status"))
	if status != "" && status != models.StatusAll && !models.ValidStatus(status) {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "unknown status filter"},
		)
	}

	complaints, err := ctr.svc.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			map[string]string{"error": err.Error()},
		)
	}

	return c.JSON(http.StatusOK, complaints)
}

// StatusCounts handles GET /complaints/counts with per-status totals
// over the full set.
func (ctr *ComplaintController) StatusCounts(c echo.Context) error {
	counts, err := ctr.svc.StatusCounts(c.Request().Context())
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			map[string]string{"error": err.Error()},
		)
	}

	return c.JSON(http.StatusOK, counts)
}

// CreateComplaint handles POST /complaints. It expects a JSON body with
// the citizen-provided fields; identifier, status, timestamp and
// affected count are assigned server-side.
func (ctr *ComplaintController) CreateComplaint(c echo.Context) error {
	req := new(models.ComplaintRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid request format: " + err.Error()},
		)
	}

	if req.Title == "" || req.Description == "" || req.Type == "" || req.Impact == "" {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "required fields missing"},
		)
	}

	complaint, err := ctr.svc.Create(c.Request().Context(), req)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			map[string]string{"error": err.Error()},
		)
	}

	return c.JSON(http.StatusCreated, complaint)
}

// UpdateStatus handles PATCH /complaints/:id/status. Notes, when
// provided, replace the resolution notes; an empty notes field keeps
// whatever was there.
func (ctr *ComplaintController) UpdateStatus(c echo.Context) error {
	req := new(models.StatusUpdateRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid request format: " + err.Error()},
		)
	}

	if !models.ValidStatus(req.Status) {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "unknown status value"},
		)
	}

	complaint, err := ctr.svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, req.Notes)
	if errors.Is(err, services.ErrComplaintNotFound) {
		return c.JSON(
			http.StatusNotFound,
			map[string]string{"error": err.Error()},
		)
	}
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			map[string]string{"error": err.Error()},
		)
	}

	return c.JSON(http.StatusOK, complaint)
}

// IncrementAffected handles POST /complaints/:id/affected, the
// "affects me too" action.
func (ctr *ComplaintController) IncrementAffected(c echo.Context) error {
	complaint, err := ctr.svc.IncrementAffected(c.Request().Context(), c.Param("id"))
	if errors.Is(err, services.ErrComplaintNotFound) {
		return c.JSON(
			http.StatusNotFound,
			map[string]string{"error": err.Error()},
		)
	}
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			map[string]string{"error": err.Error()},
		)
	}

	return c.JSON(http.StatusOK, complaint)
}
