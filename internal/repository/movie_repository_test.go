package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var movieCols = []string{
	"id", "titulo", "genero", "stock_total", "stock_disponible", "precio_alquiler",
	"poster_url", "director", "anio", "duracion", "descripcion", "created_at", "updated_at",
}

func movieRow(id, titulo string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(movieCols).
		AddRow(id, titulo, "Ciencia Ficción", 5, 3, 2.5, nil, nil, nil, nil, nil, now, now)
}

func TestMovieListWithGenreFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM peliculas WHERE LOWER(genero) LIKE ?")).
		WithArgs("%cien%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .+ FROM peliculas WHERE LOWER\\(genero\\) LIKE \\? ORDER BY titulo ASC LIMIT \\? OFFSET \\?").
		WithArgs("%cien%", 10, 0).
		WillReturnRows(movieRow("m1", "Matrix"))

	// The filter is lowercased before hitting SQL, making the match
	// case-insensitive: "Cien" finds "Ciencia Ficción".
	movies, total, err := repo.List(context.Background(), ListOptions{Page: 1, Limit: 10, Genero: "Cien"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, movies, 1)
	assert.Equal(t, "Matrix", movies[0].Titulo)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieListOffset(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM peliculas WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery("SELECT .+ FROM peliculas WHERE 1=1 ORDER BY titulo ASC LIMIT \\? OFFSET \\?").
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows(movieCols))

	movies, total, err := repo.List(context.Background(), ListOptions{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, movies)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery("SELECT .+ FROM peliculas WHERE id=\\? LIMIT 1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM peliculas WHERE id=?")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieCountActiveRentals(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM alquileres WHERE pelicula_id=? AND devuelto=FALSE")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountActiveRentals(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
