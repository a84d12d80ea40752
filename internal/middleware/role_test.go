package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoclub/internal/apperror"
	"videoclub/internal/model"
)

func runRole(c echo.Context, roles ...string) error {
	next := func(c echo.Context) error { return nil }
	return RequireRole(roles...)(next)(c)
}

func TestRequireRoleNoIdentity(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := runRole(c, "admin")
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, ae.Code)
}

func TestRequireRoleForbidden(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	SetIdentity(c, model.Identity{ID: "u1", Role: "user"})

	err := runRole(c, "admin")
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, ae.Code)
}

func TestRequireRoleAllowed(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	SetIdentity(c, model.Identity{ID: "u1", Role: "admin"})

	assert.NoError(t, runRole(c, "admin"))
}
