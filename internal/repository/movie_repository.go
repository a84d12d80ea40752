package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"videoclub/internal/model"
)

// MovieRepo provides CRUD operations over the 'peliculas' table.  The
// catalog is small, so listing uses the classic COUNT + page query pair;
// both run against the same filter but are not transactionally linked.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

// ListOptions defines filters and pagination for the catalog listing.
type ListOptions struct {
	Page   int
	Limit  int
	Genero string // case-insensitive substring filter, empty = no filter
}

const movieColumns = `id, titulo, genero, stock_total, stock_disponible, precio_alquiler,
	poster_url, director, anio, duracion, descripcion, created_at, updated_at`

// List returns one page of movies ordered by title ascending, plus the
// total number of rows matching the filter.
func (r *MovieRepo) List(ctx context.Context, opts ListOptions) ([]model.Movie, int, error) {
	cond := "1=1"
	args := []any{}
	if opts.Genero != "" {
		cond = "LOWER(genero) LIKE ?"
		args = append(args, "%"+strings.ToLower(opts.Genero)+"%")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM peliculas WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := opts.Limit
	offset := (opts.Page - 1) * opts.Limit
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM peliculas WHERE "+cond+" ORDER BY titulo ASC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Movie, 0, limit)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

// GetByID returns one movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (model.Movie, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM peliculas WHERE id=? LIMIT 1", id)
	m, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// GetSummary returns the display fields attached to rental responses.
func (r *MovieRepo) GetSummary(ctx context.Context, id string) (model.MovieSummary, error) {
	var s model.MovieSummary
	var precio float64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, titulo, genero, precio_alquiler FROM peliculas WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Titulo, &s.Genero, &precio)
	if err == sql.ErrNoRows {
		return model.MovieSummary{}, ErrMovieNotFound
	}
	if err != nil {
		return model.MovieSummary{}, err
	}
	s.PrecioAlquiler = &precio
	return s, nil
}

// Create inserts a movie with a fresh UUID and reads the row back so the
// caller sees database-assigned timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	m.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO peliculas (id, titulo, genero, stock_total, stock_disponible, precio_alquiler,
			poster_url, director, anio, duracion, descripcion)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		m.ID, m.Titulo, m.Genero, m.StockTotal, m.StockDisponible, m.PrecioAlquiler,
		m.PosterURL, m.Director, m.Anio, m.Duracion, m.Descripcion)
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = got
	return nil
}

// Update overwrites the mutable columns of an existing movie and returns the
// fresh row, or ErrMovieNotFound when the id does not exist.
func (r *MovieRepo) Update(ctx context.Context, id string, m *model.Movie) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE peliculas SET titulo=?, genero=?, stock_total=?, stock_disponible=?, precio_alquiler=?,
			poster_url=?, director=?, anio=?, duracion=?, descripcion=?
		 WHERE id=?`,
		m.Titulo, m.Genero, m.StockTotal, m.StockDisponible, m.PrecioAlquiler,
		m.PosterURL, m.Director, m.Anio, m.Duracion, m.Descripcion, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero affected rows can also mean a no-op update; confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	got, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*m = got
	return nil
}

// CountActiveRentals reports how many unreturned rentals reference a movie.
// Used as a pre-delete check; it is a separate read and deliberately not
// transactionally linked to the delete.
func (r *MovieRepo) CountActiveRentals(ctx context.Context, movieID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM alquileres WHERE pelicula_id=? AND devuelto=FALSE",
		movieID).Scan(&n)
	return n, err
}

// Delete removes a movie, returning ErrMovieNotFound when nothing matched.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM peliculas WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanMovie(row rowScanner) (model.Movie, error) {
	var (
		m        model.Movie
		poster   sql.NullString
		director sql.NullString
		anio     sql.NullInt64
		duracion sql.NullInt64
		desc     sql.NullString
	)
	err := row.Scan(&m.ID, &m.Titulo, &m.Genero, &m.StockTotal, &m.StockDisponible, &m.PrecioAlquiler,
		&poster, &director, &anio, &duracion, &desc, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Movie{}, err
	}
	if poster.Valid {
		m.PosterURL = &poster.String
	}
	if director.Valid {
		m.Director = &director.String
	}
	if anio.Valid {
		v := int(anio.Int64)
		m.Anio = &v
	}
	if duracion.Valid {
		v := int(duracion.Int64)
		m.Duracion = &v
	}
	if desc.Valid {
		m.Descripcion = &desc.String
	}
	return m, nil
}
