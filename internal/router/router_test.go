package router

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoclub/internal/config"
	"videoclub/internal/handler"
	"videoclub/internal/logger"
	"videoclub/internal/repository"
	"videoclub/internal/utils"
)

const movieID = "8d6f6f0e-2222-4a7b-9c3d-000000000002"

func testRouterConfig() config.Config {
	return config.Config{
		Env:            "test",
		FrontendURL:    "*",
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4,
	}
}

func newTestServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := testRouterConfig()
	movies := repository.NewMovieRepo(db)
	h := Handlers{
		Auth:    handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)),
		Movies:  handler.NewMovieHandler(movies),
		Rentals: handler.NewRentalHandler(repository.NewRentalRepo(db), movies),
	}
	return New(cfg, logger.Nop(), h, nil), mock
}

func doJSON(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// Register, log in, rent a movie and list active rentals through the real
// route registration, middleware chain and error funnel.
func TestRegisterLoginRentActiveScenario(t *testing.T) {
	e, mock := newTestServer(t)
	now := time.Now()

	// register
	mock.ExpectExec(`INSERT INTO usuarios`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/register",
		`{"email":"ana@example.com","password":"secreta123","nombre":"Ana"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// login
	hash, err := utils.HashPassword("secreta123", 4)
	require.NoError(t, err)
	mock.ExpectQuery(`FROM usuarios WHERE email=\? LIMIT 1`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "nombre", "role", "created_at", "updated_at",
		}).AddRow("u1", "ana@example.com", hash, "Ana", "user", now, now))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/login",
		`{"email":"ana@example.com","password":"secreta123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)

	// rent
	mock.ExpectQuery(`SELECT 1 FROM alquileres WHERE perfil_id=\? AND pelicula_id=\? AND devuelto=FALSE`).
		WithArgs("u1", movieID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`CALL crear_alquiler\(\?, \?\)`).
		WithArgs("u1", movieID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "perfil_id", "pelicula_id", "fecha_alquiler", "fecha_devolucion_prevista", "devuelto",
		}).AddRow("r1", "u1", movieID, now, now.AddDate(0, 0, 7), false))
	mock.ExpectQuery(`SELECT id, titulo, genero, precio_alquiler FROM peliculas WHERE id=\? LIMIT 1`).
		WithArgs(movieID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "titulo", "genero", "precio_alquiler"}).
			AddRow(movieID, "Alien", "Terror", 3.99))

	rec = doJSON(e, http.MethodPost, "/api/v1/rentals",
		`{"pelicula_id":"`+movieID+`"}`, login.Data.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// active listing
	mock.ExpectQuery(`WHERE a\.perfil_id=\? AND a\.devuelto=FALSE`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "fecha_alquiler", "fecha_devolucion_prevista", "devuelto",
			"p.id", "titulo", "genero", "precio_alquiler",
		}).AddRow("r1", now, now.AddDate(0, 0, 7), false, movieID, "Alien", "Terror", 3.99))

	rec = doJSON(e, http.MethodGet, "/api/v1/rentals/active", "", login.Data.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var active struct {
		Success bool              `json:"success"`
		Count   int               `json:"count"`
		Data    []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.True(t, active.Success)
	assert.Equal(t, 1, active.Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGatedRoutes(t *testing.T) {
	e, _ := newTestServer(t)

	userToken, err := utils.NewAccessToken("test-secret", "u1", "a@x.com", "user", 15)
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		target string
		body   string
		token  string
		want   int
	}{
		{"rentals admin list no token", http.MethodGet, "/api/v1/rentals", "", "", http.StatusUnauthorized},
		{"rentals admin list user token", http.MethodGet, "/api/v1/rentals", "", userToken.Token, http.StatusForbidden},
		{"movie create no token", http.MethodPost, "/api/v1/movies", `{}`, "", http.StatusUnauthorized},
		{"movie create user token", http.MethodPost, "/api/v1/movies", `{}`, userToken.Token, http.StatusForbidden},
		{"rental create no token", http.MethodPost, "/api/v1/rentals", `{}`, "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(e, tc.method, tc.target, tc.body, tc.token)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())

			var body struct {
				Success bool `json:"success"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
		})
	}
}
