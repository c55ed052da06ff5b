package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bmi-calculator/internal/model"
)

// GenericErrorMessage is the "error" value of every 500 response.
const GenericErrorMessage = "Something went wrong!"

// ErrorHandler returns an echo.HTTPErrorHandler.  Echo errors below 500
// (unknown route, wrong method, unsupported media type) keep their status
// and are wrapped as {error: <status text>, message: <detail>}.  Anything
// else, including recovered panics, becomes a 500 carrying the error text.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := model.ErrorResponse{Error: GenericErrorMessage, Message: err.Error()}

		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			status = he.Code
			body = model.ErrorResponse{Error: http.StatusText(he.Code), Message: fmt.Sprint(he.Message)}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.Error("write error response", "err", werr, "status", status)
		}
	}
}
