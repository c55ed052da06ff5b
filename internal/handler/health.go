package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/bmi-calculator/internal/model"
)

// HealthMessage is reported by the JSON health endpoint.
const HealthMessage = "BMI Calculator API is running! 🚀"

// now is replaced in tests.
var now = time.Now

// Liveness is a plain-text probe for load balancers.  It returns "ok" with a
// 200 status and does no work.
func Liveness(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Health handles GET /api/bmi/health.  The timestamp is the current time in
// Unix milliseconds, sent as a string.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "UP",
		Message:   HealthMessage,
		Timestamp: strconv.FormatInt(now().UnixMilli(), 10),
	})
}

// Metrics serves the gatherer in the Prometheus exposition format.
func Metrics(g prometheus.Gatherer) echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
