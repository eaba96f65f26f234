package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
	"github.com/muskanVaswani/sudharsetu-backend/internal/services"
)

// SubmissionController drives the guided three-step reporting flow over
// HTTP. Each session is identified by the id returned from Start.
type SubmissionController struct {
	svc services.SubmissionService
}

func NewSubmissionController(svc services.SubmissionService) *SubmissionController {
	return &SubmissionController{svc: svc}
}

func (ctr *SubmissionController) Register(g *echo.Group) {
	g.POST("/submissions", ctr.Start)
	g.GET("/submissions/:id", ctr.Get)
	g.PUT("/submissions/:id/location", ctr.SetManualLocation)
	g.PUT("/submissions/:id/device-location", ctr.SetDeviceLocation)
	g.POST("/submissions/:id/back", ctr.Back)
	g.POST("/submissions/:id/proceed", ctr.Proceed)
	g.POST("/submissions/:id/affected/:complaintID", ctr.AffectsMe)
	g.PUT("/submissions/:id/details", ctr.SetDetails)
	g.PUT("/submissions/:id/photo", ctr.AttachPhoto)
	g.POST("/submissions/:id/submit", ctr.Submit)
	g.DELETE("/submissions/:id", ctr.Abandon)
}

func (ctr *SubmissionController) Start(c echo.Context) error {
	return c.JSON(http.StatusCreated, ctr.svc.Start())
}

func (ctr *SubmissionController) Get(c echo.Context) error {
	sub, err := ctr.svc.Get(c.Param("id"))
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (ctr *SubmissionController) SetManualLocation(c echo.Context) error {
	req := new(models.ManualLocationRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid request format: " + err.Error()},
		)
	}

	sub, err := ctr.svc.SetManualLocation(c.Request().Context(), c.Param("id"), *req)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (ctr *SubmissionController) SetDeviceLocation(c echo.Context) error {
	req := new(models.DeviceLocationRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid request format: " + err.Error()},
		)
	}

	sub, err := ctr.svc.SetDeviceLocation(c.Request().Context(), c.Param("id"), req.Lat, req.Lng)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (ctr *SubmissionController) Back(c echo.Context) error {
	sub, err := ctr.svc.Back(c.Param("id"))
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (ctr *SubmissionController) Proceed(c echo.Context) error {
	sub, err := ctr.svc.Proceed(c.Param("id"))
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (ctr *SubmissionController) AffectsMe(c echo.Context) error {
	sub, err := ctr.svc.AffectsMe(c.Request().Context(), c.Param("id"), c.Param("complaintID"))
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (ctr *SubmissionController) SetDetails(c echo.Context) error {
	req := new(models.SubmissionDetailsRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid request format: " + err.Error()},
		)
	}

	sub, err := ctr.svc.SetDetails(c.Param("id"), *req)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (ctr *SubmissionController) AttachPhoto(c echo.Context) error {
	req := new(models.PhotoRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid request format: " + err.Error()},
		)
	}
	if req.Photo == "" || req.MimeType == "" {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "photo and mimeType are required"},
		)
	}

	sub, err := ctr.svc.AttachPhoto(c.Param("id"), req.Photo, req.MimeType)
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

func (ctr *SubmissionController) Submit(c echo.Context) error {
	complaint, err := ctr.svc.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return submissionError(c, err)
	}
	return c.JSON(http.StatusCreated, complaint)
}

func (ctr *SubmissionController) Abandon(c echo.Context) error {
	ctr.svc.Abandon(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// submissionError maps workflow errors onto HTTP statuses. Validation
// and remote-lookup failures are client-recoverable 400s so the form can
// surface the message inline.
func submissionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrComplaintNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrWrongState),
		errors.Is(err, services.ErrVerificationPending):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrMissingAddressFields),
		errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrTypeNotSelected),
		errors.Is(err, services.ErrAlreadyAcknowledged),
		errors.Is(err, services.ErrDetailsIncomplete),
		errors.Is(err, services.ErrPhotoNotVerified):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
