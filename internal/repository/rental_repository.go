package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"videoclub/internal/model"
)

// RentalRepo provides access to the 'alquileres' table.  Creation and
// return go through the crear_alquiler / devolver_alquiler stored
// procedures, which are the sole authority for the active-rental cap and
// stock accounting.  This layer only translates their SIGNAL messages into
// sentinel errors; everything else here is plain reads.
type RentalRepo struct{ DB *sql.DB }

func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{DB: db} }

// HasActive reports whether the user already holds an unreturned rental of
// the movie.  This is the advisory duplicate pre-check: it races with
// concurrent creates and is never relied on for correctness, the procedure
// enforces the invariant.
func (r *RentalRepo) HasActive(ctx context.Context, userID, movieID string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM alquileres WHERE perfil_id=? AND pelicula_id=? AND devuelto=FALSE LIMIT 1",
		userID, movieID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByIDForUser fetches a rental scoped to its owner.  A rental belonging
// to another user yields ErrRentalNotFound, never ErrForbidden, so rental
// ids are not probeable across accounts.
func (r *RentalRepo) GetByIDForUser(ctx context.Context, id, userID string) (model.Rental, error) {
	var a model.Rental
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, perfil_id, pelicula_id, fecha_alquiler, fecha_devolucion_prevista, devuelto
		 FROM alquileres WHERE id=? AND perfil_id=? LIMIT 1`,
		id, userID).Scan(&a.ID, &a.PerfilID, &a.PeliculaID, &a.FechaAlquiler, &a.FechaDevolucionPrevista, &a.Devuelto)
	if err == sql.ErrNoRows {
		return model.Rental{}, ErrRentalNotFound
	}
	return a, err
}

// Create invokes the crear_alquiler procedure.  The procedure checks the
// rental cap and available stock under row locks, decrements stock, inserts
// the row and selects it back; failures arrive as SIGNAL errors whose text
// is matched by substring below.
func (r *RentalRepo) Create(ctx context.Context, userID, movieID string) (model.Rental, error) {
	var a model.Rental
	err := r.DB.QueryRowContext(ctx, "CALL crear_alquiler(?, ?)", userID, movieID).
		Scan(&a.ID, &a.PerfilID, &a.PeliculaID, &a.FechaAlquiler, &a.FechaDevolucionPrevista, &a.Devuelto)
	if err != nil {
		return model.Rental{}, mapCreateError(err)
	}
	return a, nil
}

// Return invokes the devolver_alquiler procedure, which increments stock and
// flips devuelto inside one transaction.
func (r *RentalRepo) Return(ctx context.Context, rentalID string) error {
	if _, err := r.DB.ExecContext(ctx, "CALL devolver_alquiler(?)", rentalID); err != nil {
		if strings.Contains(err.Error(), "no encontrado o ya devuelto") {
			return ErrRentalNotFound
		}
		return fmt.Errorf("devolver_alquiler: %w", err)
	}
	return nil
}

// mapCreateError translates crear_alquiler SIGNAL text into sentinels.  The
// substrings are part of the procedure contract; anything unrecognized is
// forwarded raw for the 500 path.
func mapCreateError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Límite de 3 películas"):
		return ErrMaxRentals
	case strings.Contains(msg, "Sin stock disponible"):
		return ErrNoStock
	case strings.Contains(msg, "Película no encontrada"):
		return ErrMovieNotFound
	default:
		return fmt.Errorf("crear_alquiler: %w", err)
	}
}

const rentalDetailColumns = `a.id, a.fecha_alquiler, a.fecha_devolucion_prevista, a.devuelto,
	p.id, p.titulo, p.genero, p.precio_alquiler`

// ListActiveByUser returns the user's unreturned rentals, newest first,
// joined with movie display fields.
func (r *RentalRepo) ListActiveByUser(ctx context.Context, userID string) ([]model.RentalDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+rentalDetailColumns+`
		 FROM alquileres a JOIN peliculas p ON p.id = a.pelicula_id
		 WHERE a.perfil_id=? AND a.devuelto=FALSE
		 ORDER BY a.fecha_alquiler DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectDetails(rows, true)
}

// ListHistoryByUser returns all of the user's rentals, newest first.
func (r *RentalRepo) ListHistoryByUser(ctx context.Context, userID string) ([]model.RentalDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+rentalDetailColumns+`
		 FROM alquileres a JOIN peliculas p ON p.id = a.pelicula_id
		 WHERE a.perfil_id=?
		 ORDER BY a.fecha_alquiler DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectDetails(rows, true)
}

// ListAll returns every rental across all users for the admin view, without
// pagination and without rental prices.
func (r *RentalRepo) ListAll(ctx context.Context) ([]model.RentalDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.fecha_alquiler, a.fecha_devolucion_prevista, a.devuelto, a.perfil_id,
			p.id, p.titulo, p.genero
		 FROM alquileres a JOIN peliculas p ON p.id = a.pelicula_id
		 ORDER BY a.fecha_alquiler DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RentalDetail{}
	for rows.Next() {
		var d model.RentalDetail
		if err := rows.Scan(&d.ID, &d.FechaAlquiler, &d.FechaDevolucionPrevista, &d.Devuelto,
			&d.PerfilID, &d.Pelicula.ID, &d.Pelicula.Titulo, &d.Pelicula.Genero); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func collectDetails(rows *sql.Rows, withPrice bool) ([]model.RentalDetail, error) {
	defer rows.Close()
	out := []model.RentalDetail{}
	for rows.Next() {
		var (
			d      model.RentalDetail
			precio float64
		)
		if err := rows.Scan(&d.ID, &d.FechaAlquiler, &d.FechaDevolucionPrevista, &d.Devuelto,
			&d.Pelicula.ID, &d.Pelicula.Titulo, &d.Pelicula.Genero, &precio); err != nil {
			return nil, err
		}
		if withPrice {
			p := precio
			d.Pelicula.PrecioAlquiler = &p
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
