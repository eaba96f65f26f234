package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
	"github.com/muskanVaswani/sudharsetu-backend/internal/services"
)

// GeocodeController exposes the address lookup endpoints used by the
// locating step of the reporting form.
type GeocodeController struct {
	svc services.GeocodeService
}

func NewGeocodeController(svc services.GeocodeService) *GeocodeController {
	return &GeocodeController{svc: svc}
}

func (ctr *GeocodeController) Register(g *echo.Group) {
	g.GET("/geocode/forward", ctr.Forward)
	g.GET("/geocode/reverse", ctr.Reverse)
}

// Forward handles GET /geocode/forward. Street, city and pincode query
// parameters are mandatory; houseNo and landmark are optional.
func (ctr *GeocodeController) Forward(c echo.Context) error {
	partial := models.Location{
		HouseNo:  c.QueryParam("houseNo"),
		Street:   c.QueryParam("street"),
		Landmark: c.QueryParam("landmark"),
		City:     c.QueryParam("city"),
		Pincode:  c.QueryParam("pincode"),
	}

	if partial.Street == "" || partial.City == "" || partial.Pincode == "" {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "street, city and pincode are required"},
		)
	}

	loc := ctr.svc.Forward(c.Request().Context(), partial)
	if loc == nil {
		return c.JSON(
			http.StatusNotFound,
			map[string]string{"error": "address not found"},
		)
	}

	return c.JSON(http.StatusOK, loc)
}

// Reverse handles GET /geocode/reverse?lat=..&lng=..
func (ctr *GeocodeController) Reverse(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid latitude"},
		)
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid longitude"},
		)
	}

	loc := ctr.svc.Reverse(c.Request().Context(), lat, lng)
	if loc == nil {
		return c.JSON(
			http.StatusNotFound,
			map[string]string{"error": "address not found"},
		)
	}

	return c.JSON(http.StatusOK, loc)
}
