package handler // package handler exposes the HTTP handlers for the videoclub API

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health returns a liveness handler for load balancers and monitoring.
func Health(env string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":      "ok",
			"timestamp":   time.Now().UTC(),
			"environment": env,
		})
	}
}

// Welcome describes the API for anyone hitting the root path.
func Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Videoclub API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"health": "/health",
			"api":    "/api/v1",
		},
	})
}
