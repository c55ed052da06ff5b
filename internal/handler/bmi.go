package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bmi-calculator/internal/metrics"
	"github.com/iliyamo/bmi-calculator/internal/model"
	"github.com/iliyamo/bmi-calculator/internal/service"
)

// BMIHandler serves the calculate endpoints.  Validation happens here so the
// calculator only ever sees finite, positive measurements.
type BMIHandler struct {
	Metrics *metrics.Metrics // optional; nil disables counting
}

// NewBMIHandler constructs a BMIHandler.  m may be nil.
func NewBMIHandler(m *metrics.Metrics) *BMIHandler {
	return &BMIHandler{Metrics: m}
}

// CalculatePost handles POST /api/bmi/calculate with a JSON body
// {"weight": 70, "height": 1.75, "unit": "metric"}.
func (h *BMIHandler) CalculatePost(c echo.Context) error {
	var req model.BMIRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "Malformed request body",
			Message: bindMessage(err),
		})
	}
	if errs := validateMeasurement(req.Weight, req.Height); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, errs) // field -> message
	}
	return h.respond(c, *req.Weight, *req.Height, req.Unit)
}

// CalculateGet handles GET /api/bmi/calculate?weight=&height=&unit=.
// unit is optional and defaults to metric.
func (h *BMIHandler) CalculateGet(c echo.Context) error {
	errs := map[string]string{}
	weight := queryNumber(c, "weight", "Weight", errs)
	height := queryNumber(c, "height", "Height", errs)
	for field, msg := range validateMeasurement(weight, height) {
		if _, seen := errs[field]; !seen { // keep the parse error for that field
			errs[field] = msg
		}
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, errs)
	}
	unit := c.QueryParam("unit")
	if unit == "" {
		unit = "metric"
	}
	return h.respond(c, *weight, *height, unit)
}

func (h *BMIHandler) respond(c echo.Context, weight, height float64, unit string) error {
	res := service.Calculate(weight, height, unit)
	if math.IsInf(res.BMI, 0) || math.IsNaN(res.BMI) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"bmi": "Weight and height give a BMI outside the representable range",
		})
	}
	if h.Metrics != nil {
		h.Metrics.Calculations.WithLabelValues(res.Category.String(), service.ParseUnit(unit).String()).Inc()
	}
	return c.JSON(http.StatusOK, model.NewBMIResponse(res))
}

// validateMeasurement returns a field -> message map; empty means valid.
func validateMeasurement(weight, height *float64) map[string]string {
	errs := map[string]string{}
	checkPositive(errs, "weight", "Weight", weight)
	checkPositive(errs, "height", "Height", height)
	return errs
}

func checkPositive(errs map[string]string, field, label string, v *float64) {
	switch {
	case v == nil:
		errs[field] = label + " is required"
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		errs[field] = label + " must be a finite number"
	case *v <= 0:
		errs[field] = label + " must be positive"
	}
}

// queryNumber reads a float query parameter.  An absent parameter yields nil
// (reported later as required); an unparsable one is recorded in errs.
func queryNumber(c echo.Context, name, label string, errs map[string]string) *float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs[name] = label + " must be a number"
		return nil
	}
	return &v
}

// bindMessage extracts a readable message from a bind error.
func bindMessage(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		if s, ok := he.Message.(string); ok {
			return s
		}
	}
	return err.Error()
}
