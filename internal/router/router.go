package router // package router defines how HTTP routes are registered for the API

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/bmi-calculator/internal/config"
	"github.com/iliyamo/bmi-calculator/internal/handler"
	"github.com/iliyamo/bmi-calculator/internal/metrics"
	"github.com/iliyamo/bmi-calculator/internal/middleware"
)

// Options carries the collaborators the server is assembled from.  Redis may
// be nil, in which case the response cache is a pass-through.
type Options struct {
	Logger           *slog.Logger
	Metrics          *metrics.Metrics
	Cache            config.CacheConfig
	Redis            *redis.Client
	CORSAllowOrigins []string
}

// New builds an Echo instance with the global middleware chain, the error
// handler and every route registered.
func New(o Options) *echo.Echo {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Metrics == nil {
		o.Metrics = metrics.New()
	}
	if len(o.CORSAllowOrigins) == 0 {
		o.CORSAllowOrigins = []string{"*"}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(o.Logger)

	// Order matters: the counter sits outside the logger so it sees the
	// status written by the error handler, and Recover sits inside the
	// logger so panics are logged as 500s.
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestCounter(o.Metrics.Requests))
	e.Use(middleware.RequestLogger(o.Logger))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			o.Logger.Error("panic recovered", "err", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: o.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	RegisterRoutes(e, handler.NewBMIHandler(o.Metrics), middleware.NewRedisCache(o.Cache, o.Redis, o.Logger))
	e.GET("/metrics", handler.Metrics(o.Metrics.Registry))
	return e
}

// RegisterRoutes registers the BMI API under /api/bmi plus the plain
// liveness probe.  cache wraps only the GET calculate route; POST bodies are
// never cached.
func RegisterRoutes(e *echo.Echo, h *handler.BMIHandler, cache echo.MiddlewareFunc) {
	// Map GET /healthz to the liveness handler used by load balancers.
	e.GET("/healthz", handler.Liveness)

	g := e.Group("/api/bmi")
	g.POST("/calculate", h.CalculatePost)
	g.GET("/calculate", h.CalculateGet, cache)
	g.GET("/health", handler.Health)
}
