package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoclub/internal/apperror"
	"videoclub/internal/logger"
)

func runFunnel(t *testing.T, dev bool, err error, target string) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewErrorFunnel(dev, logger.Nop())(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestFunnelOperationalError(t *testing.T) {
	code, body := runFunnel(t, false, apperror.Validation("El título es requerido"), "/x")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "El título es requerido", body["message"])
	assert.NotContains(t, body, "error")
	assert.NotContains(t, body, "stack")
}

func TestFunnelHidesUnexpectedErrorsInProduction(t *testing.T) {
	code, body := runFunnel(t, false, errors.New("pq: connection reset"), "/x")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Algo salió mal en el servidor", body["message"])
	assert.NotContains(t, body, "error")
}

func TestFunnelVerboseInDevelopment(t *testing.T) {
	code, body := runFunnel(t, true, errors.New("pq: connection reset"), "/x")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "pq: connection reset", body["error"])
	assert.NotEmpty(t, body["stack"])
}

func TestFunnelUnknownRouteMessage(t *testing.T) {
	code, body := runFunnel(t, false, echo.NewHTTPError(http.StatusNotFound), "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Ruta /api/v1/nope no encontrada", body["message"])
}

func TestFunnelMethodNotAllowed(t *testing.T) {
	code, body := runFunnel(t, false, echo.NewHTTPError(http.StatusMethodNotAllowed), "/x")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "Método no permitido", body["message"])
}

func TestFunnelWrappedCauseStaysHidden(t *testing.T) {
	err := apperror.Wrap(http.StatusInternalServerError, "Error al verificar alquileres",
		errors.New("driver: bad connection"))
	code, body := runFunnel(t, false, err, "/x")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Error al verificar alquileres", body["message"])
	assert.NotContains(t, body, "error")
}
