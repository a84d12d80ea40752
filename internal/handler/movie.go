package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"videoclub/internal/apperror"
	"videoclub/internal/config"
	"videoclub/internal/model"
	"videoclub/internal/repository"
	"videoclub/internal/validator"
)

// MovieHandler exposes the movie catalog CRUD.  Listing and detail are
// public; create/update/delete sit behind the admin role gate in the router.
type MovieHandler struct {
	Movies *repository.MovieRepo
}

func NewMovieHandler(m *repository.MovieRepo) *MovieHandler { return &MovieHandler{Movies: m} }

// List returns one page of the catalog ordered by title.
// GET /api/v1/movies?page=&limit=&genero=
func (h *MovieHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, total, err := h.Movies.List(ctx, repository.ListOptions{
		Page:   page,
		Limit:  limit,
		Genero: c.QueryParam("genero"),
	})
	if err != nil {
		return err
	}

	totalPages := (total + limit - 1) / limit
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    movies,
		"pagination": model.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// Get returns one movie.  GET /api/v1/movies/:id
func (h *MovieHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return apperror.NotFound(config.MsgMovieNotFound)
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": m})
}

// Create adds a movie to the catalog.  POST /api/v1/movies (admin)
func (h *MovieHandler) Create(c echo.Context) error {
	m, err := h.bindMovie(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Create(ctx, &m); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Película creada exitosamente",
		"data":    m,
	})
}

// Update replaces the mutable fields of a movie.  PUT /api/v1/movies/:id (admin)
func (h *MovieHandler) Update(c echo.Context) error {
	m, err := h.bindMovie(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Update(ctx, c.Param("id"), &m); err != nil {
		if err == repository.ErrMovieNotFound {
			return apperror.NotFound(config.MsgMovieNotFound)
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Película actualizada exitosamente",
		"data":    m,
	})
}

// Delete removes a movie unless rentals still reference it.  The active
// rental check is a separate read and races with concurrent rentals; the
// gap is accepted.  DELETE /api/v1/movies/:id (admin)
func (h *MovieHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, id); err != nil {
		if err == repository.ErrMovieNotFound {
			return apperror.NotFound(config.MsgMovieNotFound)
		}
		return err
	}
	active, err := h.Movies.CountActiveRentals(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperror.Validation("No se puede eliminar una película con alquileres activos")
	}
	if err := h.Movies.Delete(ctx, id); err != nil {
		if err == repository.ErrMovieNotFound {
			return apperror.NotFound(config.MsgMovieNotFound)
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"message": "Película eliminada exitosamente"},
	})
}

func (h *MovieHandler) bindMovie(c echo.Context) (model.Movie, error) {
	var raw validator.MovieRequest
	if err := c.Bind(&raw); err != nil {
		return model.Movie{}, apperror.Validation("Cuerpo de la solicitud inválido")
	}
	return validator.ValidateMovie(raw)
}
