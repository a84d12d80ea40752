package router

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"videoclub/internal/apperror"
	"videoclub/internal/config"
)

// NewErrorFunnel builds the single Echo HTTPErrorHandler through which every
// failure leaves the API.  Operational errors (the apperror taxonomy and
// Echo's own routing errors) expose their message; anything else is logged
// server-side and hidden behind a generic 500.  In development the response
// additionally carries the raw error and a stack trace.
func NewErrorFunnel(dev bool, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := config.MsgServerError
		operational := false

		if ae, ok := apperror.As(err); ok {
			status = ae.Code
			message = ae.Message
			operational = true
		} else if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			operational = true
			switch status {
			case http.StatusNotFound:
				message = fmt.Sprintf("Ruta %s no encontrada", c.Request().RequestURI)
			case http.StatusMethodNotAllowed:
				message = "Método no permitido"
			default:
				message = fmt.Sprint(he.Message)
			}
		}

		if dev {
			_ = c.JSON(status, echo.Map{
				"success": false,
				"message": message,
				"error":   err.Error(),
				"stack":   string(debug.Stack()),
			})
			return
		}

		if !operational {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().RequestURI).
				Msg("unexpected error")
			_ = c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"message": "Algo salió mal en el servidor",
			})
			return
		}

		_ = c.JSON(status, echo.Map{
			"success": false,
			"message": message,
		})
	}
}
